package net

import "github.com/pkg/errors"

var (
	// ErrConfiguration reports a Config that cannot describe a network.
	ErrConfiguration = errors.New("net: invalid configuration")

	// ErrShapeMismatch reports a vector whose length disagrees with the
	// layer it is meant for. The network is left unmodified.
	ErrShapeMismatch = errors.New("net: shape mismatch")

	// ErrSequence reports a training call made out of order, such as
	// computing errors before a forward pass.
	ErrSequence = errors.New("net: call out of sequence")
)
