package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseList(t *testing.T) {
	got, err := parseList("70.07, 21.21,39.29")
	require.NoError(t, err)
	assert.Equal(t, []float64{70.07, 21.21, 39.29}, got)

	got, err = parseList("  ")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = parseList("1,,2")
	assert.Error(t, err)
}
