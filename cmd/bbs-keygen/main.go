/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package main is bbs-keygen, a command line tool that derives BLS12-381 key pairs and BBS+ public keys.
package main

import (
	"github.com/hyperledger/aries-framework-go/component/log"

	"github.com/hyperledger/aries-framework-go/component/bbskeys/cmd/bbs-keygen/keygencmd"
)

func main() {
	logger := log.New("bbs-keys/cmd")

	if err := keygencmd.Cmd().Execute(); err != nil {
		logger.Fatalf("Failed to run bbs-keygen: %s", err)
	}
}
