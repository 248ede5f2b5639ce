// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package robotcrypto

import (
	"errors"
	"fmt"
)

// ErrCrypto is the root of every error returned by this package.
var ErrCrypto = errors.New("robotcrypto")

var (
	// ErrInvalidPadding reports a PKCS#7 padding check failure after
	// AES decryption. Usually the wrong key.
	ErrInvalidPadding = fmt.Errorf("%w: invalid PKCS#7 padding", ErrCrypto)

	// ErrInvalidPublicKey reports a public key body that does not
	// parse as an RSA key once wrapped in PEM headers.
	ErrInvalidPublicKey = fmt.Errorf("%w: invalid RSA public key", ErrCrypto)
)
