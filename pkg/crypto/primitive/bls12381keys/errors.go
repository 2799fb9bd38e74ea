/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bls12381keys

import "errors"

var (
	// ErrMalformedInput is returned when seed, secret key or public key bytes cannot be decoded.
	ErrMalformedInput = errors.New("malformed input")

	// ErrInvalidDerivedKey is returned when derived key material fails its validity checks.
	ErrInvalidDerivedKey = errors.New("invalid derived key")

	// ErrEntropyUnavailable is returned when the random source cannot be read.
	ErrEntropyUnavailable = errors.New("entropy source unavailable")
)

// Kind classifies a key generation failure.
type Kind int

const (
	// KindUnknown is any error not produced by this module.
	KindUnknown Kind = iota
	// KindMalformedInput wraps ErrMalformedInput.
	KindMalformedInput
	// KindInvalidDerivedKey wraps ErrInvalidDerivedKey.
	KindInvalidDerivedKey
	// KindEntropyUnavailable wraps ErrEntropyUnavailable.
	KindEntropyUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindMalformedInput:
		return "malformed-input"
	case KindInvalidDerivedKey:
		return "invalid-derived-key"
	case KindEntropyUnavailable:
		return "entropy-source-unavailable"
	default:
		return "unknown"
	}
}

// KindOf returns the Kind of err. A nil error has KindUnknown.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrMalformedInput):
		return KindMalformedInput
	case errors.Is(err, ErrInvalidDerivedKey):
		return KindInvalidDerivedKey
	case errors.Is(err, ErrEntropyUnavailable):
		return KindEntropyUnavailable
	default:
		return KindUnknown
	}
}
