// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package robotcrypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"fmt"
	"unicode/utf8"
)

// EncryptECB encrypts plaintext with AES-ECB and PKCS#7 padding. The
// cipher key is the raw UTF-8 encoding of key, so key must be 16, 24,
// or 32 bytes long. The result is standard base64.
func EncryptECB(plaintext []byte, key string) (string, error) {
	block, err := newBlock(key)
	if err != nil {
		return "", err
	}

	padded := pad(plaintext, block.BlockSize())
	ciphertext := make([]byte, len(padded))
	for offset := 0; offset < len(padded); offset += block.BlockSize() {
		block.Encrypt(ciphertext[offset:], padded[offset:offset+block.BlockSize()])
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// DecryptECB reverses EncryptECB and returns the plaintext as a
// string. The plaintext must be valid UTF-8.
func DecryptECB(ciphertextB64 string, key string) (string, error) {
	block, err := newBlock(key)
	if err != nil {
		return "", err
	}

	ciphertext, err := base64.StdEncoding.DecodeString(ciphertextB64)
	if err != nil {
		return "", fmt.Errorf("%w: decoding ciphertext: %v", ErrCrypto, err)
	}
	size := block.BlockSize()
	if len(ciphertext) == 0 || len(ciphertext)%size != 0 {
		return "", fmt.Errorf("%w: ciphertext length %d is not a positive multiple of %d", ErrCrypto, len(ciphertext), size)
	}

	plaintext := make([]byte, len(ciphertext))
	for offset := 0; offset < len(ciphertext); offset += size {
		block.Decrypt(plaintext[offset:], ciphertext[offset:offset+size])
	}

	plaintext, err = unpad(plaintext, size)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(plaintext) {
		return "", fmt.Errorf("%w: plaintext is not valid UTF-8", ErrCrypto)
	}
	return string(plaintext), nil
}

func newBlock(key string) (cipher.Block, error) {
	block, err := aes.NewCipher([]byte(key))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCrypto, err)
	}
	return block, nil
}

// pad appends PKCS#7 padding. A full block of padding is added when
// the input is already block aligned.
func pad(data []byte, size int) []byte {
	count := size - len(data)%size
	padded := make([]byte, len(data), len(data)+count)
	copy(padded, data)
	return append(padded, bytes.Repeat([]byte{byte(count)}, count)...)
}

func unpad(data []byte, size int) ([]byte, error) {
	count := int(data[len(data)-1])
	if count == 0 || count > size || count > len(data) {
		return nil, ErrInvalidPadding
	}
	for _, b := range data[len(data)-count:] {
		if int(b) != count {
			return nil, ErrInvalidPadding
		}
	}
	return data[:len(data)-count], nil
}
