/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package keygencmd

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcutil/base58"
	"github.com/multiformats/go-multibase"
)

const (
	encodingBase58    = "base58"
	encodingBase64URL = "base64url"
	encodingHex       = "hex"
)

// Raw base58 has no prefix. The other encodings are multibase strings.
// nolint:gochecknoglobals
var multibaseEncodings = map[string]multibase.Encoding{
	encodingBase64URL: multibase.Base64url,
	encodingHex:       multibase.Base16,
}

func checkEncoding(enc string) error {
	if enc == encodingBase58 {
		return nil
	}

	if _, ok := multibaseEncodings[enc]; !ok {
		return fmt.Errorf("unsupported encoding '%s'", enc)
	}

	return nil
}

func encode(enc string, data []byte) (string, error) {
	if enc == encodingBase58 {
		return base58.Encode(data), nil
	}

	mbEnc, ok := multibaseEncodings[enc]
	if !ok {
		return "", fmt.Errorf("unsupported encoding '%s'", enc)
	}

	return multibase.Encode(mbEnc, data)
}

func decode(enc, value string) ([]byte, error) {
	if enc == encodingBase58 {
		data := base58.Decode(value)
		if len(data) == 0 && value != "" {
			return nil, errors.New("invalid base58 string")
		}

		return data, nil
	}

	mbEnc, ok := multibaseEncodings[enc]
	if !ok {
		return nil, fmt.Errorf("unsupported encoding '%s'", enc)
	}

	actual, data, err := multibase.Decode(value)
	if err != nil {
		return nil, err
	}

	if actual != mbEnc {
		return nil, fmt.Errorf("expected %s multibase string", enc)
	}

	return data, nil
}
