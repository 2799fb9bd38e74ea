/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bls12381keys

import (
	"fmt"
	"io"
)

// Seed is the input keying material of a key generation call.
// The zero value selects the generator's secure random source.
type Seed struct {
	ikm []byte
}

// SelectSeed wraps seed as input keying material. An empty or nil seed selects the default random source, so
// SelectSeed(nil) and SelectSeed([]byte{}) are equivalent. The seed bytes are copied.
func SelectSeed(seed []byte) Seed {
	if len(seed) == 0 {
		return Seed{}
	}

	ikm := make([]byte, len(seed))
	copy(ikm, seed)

	return Seed{ikm: ikm}
}

// UseDefault reports whether the seed defers to the random source.
func (s Seed) UseDefault() bool {
	return len(s.ikm) == 0
}

// keyingMaterial returns ikm || 0x00, reading fresh ikm from random when the seed is empty.
func (s Seed) keyingMaterial(random io.Reader) ([]byte, error) {
	if !s.UseDefault() {
		ikm := make([]byte, len(s.ikm)+1)
		copy(ikm, s.ikm)

		return ikm, nil
	}

	ikm := make([]byte, defaultSeedSize+1)

	if _, err := io.ReadFull(random, ikm[:defaultSeedSize]); err != nil {
		return nil, fmt.Errorf("read random seed: %w: %v", ErrEntropyUnavailable, err)
	}

	return ikm, nil
}
