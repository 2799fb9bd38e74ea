/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"os"
	"testing"
)

// Without arguments main prints the help text and returns. A non-zero exit terminates the test binary, which is
// the only failure this test can report.
func TestMainPrintsHelp(t *testing.T) {
	args := os.Args
	defer func() { os.Args = args }()

	// drop the test framework flags
	os.Args = os.Args[:1]

	main()
}
