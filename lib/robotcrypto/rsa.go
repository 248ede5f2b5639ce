// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package robotcrypto

import (
	"bytes"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"io"
	"strings"
)

// pemLineWidth is the column at which WrapPEM breaks the key body.
const pemLineWidth = 64

// pkcs1Overhead is the number of bytes PKCS#1 v1.5 encryption padding
// consumes from each RSA block.
const pkcs1Overhead = 11

// WrapPEM turns a bare base64 key body into a PEM "PUBLIC KEY" block
// with 64-character lines. Whitespace already present in body is
// removed first.
func WrapPEM(body string) string {
	body = strings.Join(strings.Fields(body), "")

	var builder strings.Builder
	builder.WriteString("-----BEGIN PUBLIC KEY-----\n")
	for len(body) > pemLineWidth {
		builder.WriteString(body[:pemLineWidth])
		builder.WriteByte('\n')
		body = body[pemLineWidth:]
	}
	if body != "" {
		builder.WriteString(body)
		builder.WriteByte('\n')
	}
	builder.WriteString("-----END PUBLIC KEY-----")
	return builder.String()
}

// ParsePublicKeyBody parses a bare base64 key body as an RSA public
// key. Both SubjectPublicKeyInfo and PKCS#1 encodings are accepted.
func ParsePublicKeyBody(body string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(WrapPEM(body)))
	if block == nil {
		return nil, fmt.Errorf("%w: key body is not valid base64", ErrInvalidPublicKey)
	}

	if parsed, err := x509.ParsePKIXPublicKey(block.Bytes); err == nil {
		key, ok := parsed.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("%w: got %T", ErrInvalidPublicKey, parsed)
		}
		return key, nil
	}

	key, err := x509.ParsePKCS1PublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return key, nil
}

// MaxChunkSize returns how many plaintext bytes fit in one PKCS#1 v1.5
// block for key.
func MaxChunkSize(key *rsa.PublicKey) int {
	return key.Size() - pkcs1Overhead
}

// EncryptChunked encrypts plaintext to the public key whose bare base64
// body is publicKeyBody. Plaintext longer than one block is split into
// MaxChunkSize pieces, each encrypted independently; the raw ciphertext
// blocks are concatenated and the whole is base64 encoded.
func EncryptChunked(plaintext []byte, publicKeyBody string, random io.Reader) (string, error) {
	key, err := ParsePublicKeyBody(publicKeyBody)
	if err != nil {
		return "", err
	}

	chunkSize := MaxChunkSize(key)
	if chunkSize <= 0 {
		return "", fmt.Errorf("%w: %d-bit key too small for PKCS#1 v1.5", ErrInvalidPublicKey, key.N.BitLen())
	}

	var ciphertext bytes.Buffer
	for offset := 0; offset < len(plaintext); offset += chunkSize {
		end := min(offset+chunkSize, len(plaintext))
		encrypted, err := rsa.EncryptPKCS1v15(random, key, plaintext[offset:end])
		if err != nil {
			return "", fmt.Errorf("%w: encrypting chunk at offset %d: %v", ErrCrypto, offset, err)
		}
		ciphertext.Write(encrypted)
	}
	return base64.StdEncoding.EncodeToString(ciphertext.Bytes()), nil
}

// DecryptChunked reverses EncryptChunked with the matching private key.
func DecryptChunked(ciphertextB64 string, key *rsa.PrivateKey) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(ciphertextB64)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding ciphertext: %v", ErrCrypto, err)
	}

	blockSize := key.Size()
	if len(ciphertext)%blockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext length %d is not a multiple of the %d-byte block", ErrCrypto, len(ciphertext), blockSize)
	}

	var plaintext bytes.Buffer
	for offset := 0; offset < len(ciphertext); offset += blockSize {
		chunk, err := rsa.DecryptPKCS1v15(nil, key, ciphertext[offset:offset+blockSize])
		if err != nil {
			return nil, fmt.Errorf("%w: decrypting block at offset %d: %v", ErrCrypto, offset, err)
		}
		plaintext.Write(chunk)
	}
	return plaintext.Bytes(), nil
}

// PublicKeyBody returns the bare base64 SubjectPublicKeyInfo encoding
// of key, the form the robot embeds in its discovery payload.
func PublicKeyBody(key *rsa.PublicKey) (string, error) {
	der, err := x509.MarshalPKIXPublicKey(key)
	if err != nil {
		return "", fmt.Errorf("%w: marshaling public key: %v", ErrCrypto, err)
	}
	return base64.StdEncoding.EncodeToString(der), nil
}
