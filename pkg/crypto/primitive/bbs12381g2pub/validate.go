/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs12381g2pub

import (
	"fmt"

	bls12381 "github.com/kilic/bls12-381"

	"github.com/hyperledger/aries-framework-go/component/bbskeys/pkg/crypto/primitive/bls12381keys"
)

// Validate checks that the key is usable: the generators count matches the messages count, and w, h0 and every
// message generator decode to non-identity points of the prime order subgroups. Points are re-decoded with
// kilic/bls12-381, independently of the library that derived them.
func (pkwg *PublicKeyWithGenerators) Validate() error {
	if pkwg.w == nil || pkwg.h0 == nil {
		return fmt.Errorf("incomplete public key: %w", bls12381keys.ErrInvalidDerivedKey)
	}

	if pkwg.messagesCount < 0 || len(pkwg.h) != pkwg.messagesCount {
		return fmt.Errorf("generators count %d does not match messages count %d: %w",
			len(pkwg.h), pkwg.messagesCount, bls12381keys.ErrInvalidDerivedKey)
	}

	// kilic groups keep scratch space, so they are not shared between calls.
	g1, g2 := bls12381.NewG1(), bls12381.NewG2()

	if err := checkG2(g2, pkwg.w.Compressed()); err != nil {
		return fmt.Errorf("w: %w", err)
	}

	if err := checkG1(g1, pkwg.h0.Compressed()); err != nil {
		return fmt.Errorf("h0: %w", err)
	}

	for i, h := range pkwg.h {
		if h == nil {
			return fmt.Errorf("h%d: missing generator: %w", i+1, bls12381keys.ErrInvalidDerivedKey)
		}

		if err := checkG1(g1, h.Compressed()); err != nil {
			return fmt.Errorf("h%d: %w", i+1, err)
		}
	}

	return nil
}

func checkG1(g1 *bls12381.G1, compressed []byte) error {
	p, err := g1.FromCompressed(compressed)
	if err != nil {
		return fmt.Errorf("decode G1 point: %w: %v", bls12381keys.ErrInvalidDerivedKey, err)
	}

	if g1.IsZero(p) {
		return fmt.Errorf("G1 point is identity: %w", bls12381keys.ErrInvalidDerivedKey)
	}

	if !g1.InCorrectSubgroup(p) {
		return fmt.Errorf("G1 point is not in subgroup: %w", bls12381keys.ErrInvalidDerivedKey)
	}

	return nil
}

func checkG2(g2 *bls12381.G2, compressed []byte) error {
	p, err := g2.FromCompressed(compressed)
	if err != nil {
		return fmt.Errorf("decode G2 point: %w: %v", bls12381keys.ErrInvalidDerivedKey, err)
	}

	if g2.IsZero(p) {
		return fmt.Errorf("G2 point is identity: %w", bls12381keys.ErrInvalidDerivedKey)
	}

	if !g2.InCorrectSubgroup(p) {
		return fmt.Errorf("G2 point is not in subgroup: %w", bls12381keys.ErrInvalidDerivedKey)
	}

	return nil
}
