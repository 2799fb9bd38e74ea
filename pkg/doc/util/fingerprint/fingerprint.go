/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package fingerprint builds and parses did:key identifiers for BLS12-381 public keys.
package fingerprint

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/multiformats/go-multibase"
)

const (
	// BLS12381g1PubKeyMultiCodec for BLS12-381 G1 public key in multicodec table.
	// source: https://github.com/multiformats/multicodec/blob/master/table.csv.
	BLS12381g1PubKeyMultiCodec = 0xea
	// BLS12381g2PubKeyMultiCodec for BLS12-381 G2 public key in multicodec table.
	BLS12381g2PubKeyMultiCodec = 0xeb
	// BLS12381g1g2PubKeyMultiCodec for BLS12-381 G1G2 public key in multicodec table.
	BLS12381g1g2PubKeyMultiCodec = 0xee

	// Default BLS 12-381 public key length in G2 field.
	bls12381G2PublicKeyLen = 96

	// Number of bytes in G1 X coordinate.
	g1CompressedSize = 48

	didKeyPrefix = "did:key:"
)

// CreateDIDKeyByCode creates a did:key ID using the multicodec key fingerprint as per the did:key format spec found at:
// https://w3c-ccg.github.io/did-method-key/#format. It does not parse the contents of 'pubKey'.
func CreateDIDKeyByCode(code uint64, pubKey []byte) (string, string) {
	methodID := KeyFingerprint(code, pubKey)
	didKey := didKeyPrefix + methodID
	keyID := fmt.Sprintf("%s#%s", didKey, methodID)

	return didKey, keyID
}

// CreateBLS12381G1G2DIDKey creates a did:key ID for a G1 and a G2 public key sharing one secret.
func CreateBLS12381G1G2DIDKey(g1PubKey, g2PubKey []byte) (string, string, error) {
	if len(g1PubKey) != g1CompressedSize || len(g2PubKey) != bls12381G2PublicKeyLen {
		return "", "", errors.New("invalid size of G1G2 public key")
	}

	pubKey := make([]byte, 0, len(g1PubKey)+len(g2PubKey))
	pubKey = append(pubKey, g1PubKey...)
	pubKey = append(pubKey, g2PubKey...)

	didKey, keyID := CreateDIDKeyByCode(BLS12381g1g2PubKeyMultiCodec, pubKey)

	return didKey, keyID, nil
}

// KeyFingerprint generates a multicode fingerprint for pubKeyValue (raw key []byte).
// It is mainly used as the controller ID (methodSpecification ID) of a did key.
func KeyFingerprint(code uint64, pubKeyValue []byte) string {
	multicodecValue := multicodec(code)
	mcLength := len(multicodecValue)
	buf := make([]uint8, mcLength+len(pubKeyValue))
	copy(buf, multicodecValue)
	copy(buf[mcLength:], pubKeyValue)

	// base58-btc is always a known encoding.
	fp, _ := multibase.Encode(multibase.Base58BTC, buf) //nolint:errcheck

	return fp
}

func multicodec(code uint64) []byte {
	buf := make([]byte, binary.MaxVarintLen64)
	bw := binary.PutUvarint(buf, code)

	return buf[:bw]
}

// PubKeyFromFingerprint extracts the raw public key and its multicodec code from a did:key fingerprint.
func PubKeyFromFingerprint(fingerprint string) ([]byte, uint64, error) {
	// did:key:MULTIBASE(base58-btc, MULTICODEC(public-key-type, raw-public-key-bytes))
	// https://w3c-ccg.github.io/did-method-key/#format
	const maxMulticodecBytes = 9

	encoding, mc, err := multibase.Decode(fingerprint)
	if err != nil || encoding != multibase.Base58BTC {
		return nil, 0, errors.New("unknown key encoding")
	}

	code, br := binary.Uvarint(mc)
	if br <= 0 {
		return nil, 0, errors.New("unknown key encoding")
	}

	if br > maxMulticodecBytes {
		return nil, 0, errors.New("code exceeds maximum size")
	}

	pubKey := mc[br:]

	var expectedLen int

	switch code {
	case BLS12381g1PubKeyMultiCodec:
		expectedLen = g1CompressedSize
	case BLS12381g2PubKeyMultiCodec:
		expectedLen = bls12381G2PublicKeyLen
	case BLS12381g1g2PubKeyMultiCodec:
		expectedLen = g1CompressedSize + bls12381G2PublicKeyLen
	default:
		return nil, 0, fmt.Errorf("unsupported key multicodec code [0x%x]", code)
	}

	if len(pubKey) != expectedLen {
		return nil, 0, fmt.Errorf("invalid size of public key for multicodec code [0x%x]", code)
	}

	return pubKey, code, nil
}

// MethodIDFromDIDKey parses the did:key DID and returns its method specific ID.
func MethodIDFromDIDKey(didKey string) (string, error) {
	if !strings.HasPrefix(didKey, didKeyPrefix) {
		return "", fmt.Errorf("not a did:key: %s", didKey)
	}

	methodID := strings.TrimPrefix(didKey, didKeyPrefix)

	if i := strings.IndexByte(methodID, '#'); i >= 0 {
		methodID = methodID[:i]
	}

	if methodID == "" {
		return "", errors.New("empty did:key method id")
	}

	return methodID, nil
}

// PubKeyFromDIDKey parses the did:key DID and returns the key's raw value and multicodec code.
func PubKeyFromDIDKey(didKey string) ([]byte, uint64, error) {
	methodID, err := MethodIDFromDIDKey(didKey)
	if err != nil {
		return nil, 0, fmt.Errorf("pubKeyFromDIDKey: MethodIDFromDIDKey: %w", err)
	}

	return PubKeyFromFingerprint(methodID)
}
