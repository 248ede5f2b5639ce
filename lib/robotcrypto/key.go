// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package robotcrypto

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// SymmetricKeyLength is the length in characters of a generated key.
const SymmetricKeyLength = 32

// GenerateSymmetricKey returns a fresh session key: a version 4 UUID
// drawn from random, rendered as lowercase hex without separators.
// Pass crypto/rand.Reader in production.
func GenerateSymmetricKey(random io.Reader) (string, error) {
	id, err := uuid.NewRandomFromReader(random)
	if err != nil {
		return "", fmt.Errorf("%w: generating session key: %v", ErrCrypto, err)
	}
	return strings.ToLower(strings.ReplaceAll(id.String(), "-", "")), nil
}
