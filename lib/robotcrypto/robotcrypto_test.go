// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package robotcrypto

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

const testKey = "0123456789abcdef0123456789abcdef"

func TestGenerateSymmetricKey(t *testing.T) {
	seed := bytes.NewReader([]byte{
		0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07,
		0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f,
	})
	key, err := GenerateSymmetricKey(seed)
	if err != nil {
		t.Fatalf("GenerateSymmetricKey: %v", err)
	}
	// Version and variant bits are forced by the UUID encoding.
	if want := "000102030405460788090a0b0c0d0e0f"; key != want {
		t.Errorf("key = %q, want %q", key, want)
	}
}

func TestGenerateSymmetricKeyRandom(t *testing.T) {
	first, err := GenerateSymmetricKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateSymmetricKey: %v", err)
	}
	second, err := GenerateSymmetricKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateSymmetricKey: %v", err)
	}
	for _, key := range []string{first, second} {
		if len(key) != SymmetricKeyLength {
			t.Errorf("len(%q) = %d, want %d", key, len(key), SymmetricKeyLength)
		}
		if strings.Trim(key, "0123456789abcdef") != "" {
			t.Errorf("key %q is not lowercase hex", key)
		}
	}
	if first == second {
		t.Errorf("two generated keys are equal: %q", first)
	}
}

func TestGenerateSymmetricKeyShortReader(t *testing.T) {
	_, err := GenerateSymmetricKey(bytes.NewReader([]byte{1, 2, 3}))
	if !errors.Is(err, ErrCrypto) {
		t.Fatalf("error = %v, want ErrCrypto", err)
	}
}

func TestEncryptECBKnownVectors(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		plaintext string
		want      string
	}{
		{"aes256 session key", testKey, `{"type":"answer","sdp":"v=0"}`, "6onMTfvUYujucAplaneHXifT7V+l4+rI8Zc5bwBDAPQ="},
		{"empty plaintext pads a full block", testKey, "", "iqNiQf3o3wVNwyXGxpW4ng=="},
		{"aes128", "0123456789abcdef", "hello", "Z0x+8454yr2c7JwSWCOmOQ=="},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := EncryptECB([]byte(test.plaintext), test.key)
			if err != nil {
				t.Fatalf("EncryptECB: %v", err)
			}
			if got != test.want {
				t.Errorf("EncryptECB = %q, want %q", got, test.want)
			}
			plaintext, err := DecryptECB(test.want, test.key)
			if err != nil {
				t.Fatalf("DecryptECB: %v", err)
			}
			if plaintext != test.plaintext {
				t.Errorf("DecryptECB = %q, want %q", plaintext, test.plaintext)
			}
		})
	}
}

func TestECBRoundTrip(t *testing.T) {
	messages := []string{
		"",
		"a",
		"exactly sixteen!",
		`{"id":"STA_localnetwork","type":"offer","token":"","sdp":"v=0\r\n"}`,
		"ünïcödé 机器狗 🐕",
		strings.Repeat("x", 4096),
	}
	key, err := GenerateSymmetricKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateSymmetricKey: %v", err)
	}
	for _, message := range messages {
		ciphertext, err := EncryptECB([]byte(message), key)
		if err != nil {
			t.Fatalf("EncryptECB(%d bytes): %v", len(message), err)
		}
		got, err := DecryptECB(ciphertext, key)
		if err != nil {
			t.Fatalf("DecryptECB(%d bytes): %v", len(message), err)
		}
		if got != message {
			t.Errorf("round trip of %d bytes returned %q", len(message), got)
		}
	}
}

func TestDecryptECBErrors(t *testing.T) {
	valid, err := EncryptECB([]byte("payload"), testKey)
	if err != nil {
		t.Fatalf("EncryptECB: %v", err)
	}

	tests := []struct {
		name       string
		ciphertext string
		key        string
	}{
		{"not base64", "%%%", testKey},
		{"empty", "", testKey},
		{"not block aligned", base64.StdEncoding.EncodeToString([]byte("short")), testKey},
		{"wrong key", valid, "fedcba9876543210fedcba9876543210"},
		{"bad key length", valid, "short"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := DecryptECB(test.ciphertext, test.key)
			if !errors.Is(err, ErrCrypto) {
				t.Fatalf("DecryptECB error = %v, want ErrCrypto", err)
			}
		})
	}
}

func TestUnpadRejectsBadPadding(t *testing.T) {
	block := bytes.Repeat([]byte{0x41}, 16)
	block[15] = 0x03
	block[14] = 0x03
	block[13] = 0x02
	if _, err := unpad(block, 16); !errors.Is(err, ErrInvalidPadding) {
		t.Errorf("unpad mismatched padding: error = %v, want ErrInvalidPadding", err)
	}
	block[15] = 0x00
	if _, err := unpad(block, 16); !errors.Is(err, ErrInvalidPadding) {
		t.Errorf("unpad zero padding: error = %v, want ErrInvalidPadding", err)
	}
}

func newTestRSAKey(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		t.Fatalf("generating RSA key: %v", err)
	}
	body, err := PublicKeyBody(&key.PublicKey)
	if err != nil {
		t.Fatalf("PublicKeyBody: %v", err)
	}
	return key, body
}

func TestWrapPEM(t *testing.T) {
	body := strings.Repeat("A", 130)
	wrapped := WrapPEM(body)
	lines := strings.Split(wrapped, "\n")
	want := []string{
		"-----BEGIN PUBLIC KEY-----",
		strings.Repeat("A", 64),
		strings.Repeat("A", 64),
		"AA",
		"-----END PUBLIC KEY-----",
	}
	if len(lines) != len(want) {
		t.Fatalf("WrapPEM produced %d lines, want %d:\n%s", len(lines), len(want), wrapped)
	}
	for index := range want {
		if lines[index] != want[index] {
			t.Errorf("line %d = %q, want %q", index, lines[index], want[index])
		}
	}
}

func TestParsePublicKeyBodyPKCS1(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		t.Fatalf("generating RSA key: %v", err)
	}
	body := base64.StdEncoding.EncodeToString(x509.MarshalPKCS1PublicKey(&key.PublicKey))
	parsed, err := ParsePublicKeyBody(body)
	if err != nil {
		t.Fatalf("ParsePublicKeyBody: %v", err)
	}
	if !parsed.Equal(&key.PublicKey) {
		t.Error("parsed PKCS#1 key does not match")
	}
}

func TestParsePublicKeyBodyInvalid(t *testing.T) {
	for _, body := range []string{"", "not base64 at all!", base64.StdEncoding.EncodeToString([]byte("garbage"))} {
		if _, err := ParsePublicKeyBody(body); !errors.Is(err, ErrInvalidPublicKey) {
			t.Errorf("ParsePublicKeyBody(%q) error = %v, want ErrInvalidPublicKey", body, err)
		}
	}
}

func TestChunkedRoundTrip(t *testing.T) {
	privateKey, body := newTestRSAKey(t)
	chunkSize := MaxChunkSize(&privateKey.PublicKey)
	if chunkSize != 117 {
		t.Fatalf("MaxChunkSize = %d, want 117 for a 1024-bit key", chunkSize)
	}

	tests := []struct {
		name   string
		length int
		blocks int
	}{
		{"session key", SymmetricKeyLength, 1},
		{"exactly one chunk", chunkSize, 1},
		{"one byte over", chunkSize + 1, 2},
		{"sdp sized", 2500, 22},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			plaintext := make([]byte, test.length)
			if _, err := rand.Read(plaintext); err != nil {
				t.Fatalf("rand.Read: %v", err)
			}

			ciphertextB64, err := EncryptChunked(plaintext, body, rand.Reader)
			if err != nil {
				t.Fatalf("EncryptChunked: %v", err)
			}
			raw, err := base64.StdEncoding.DecodeString(ciphertextB64)
			if err != nil {
				t.Fatalf("ciphertext is not base64: %v", err)
			}
			if want := test.blocks * privateKey.Size(); len(raw) != want {
				t.Errorf("ciphertext is %d bytes, want %d (%d blocks)", len(raw), want, test.blocks)
			}

			decrypted, err := DecryptChunked(ciphertextB64, privateKey)
			if err != nil {
				t.Fatalf("DecryptChunked: %v", err)
			}
			if !bytes.Equal(decrypted, plaintext) {
				t.Error("decrypted plaintext does not match")
			}
		})
	}
}

func TestDecryptChunkedRejectsTruncated(t *testing.T) {
	privateKey, body := newTestRSAKey(t)
	ciphertextB64, err := EncryptChunked([]byte("hello"), body, rand.Reader)
	if err != nil {
		t.Fatalf("EncryptChunked: %v", err)
	}
	raw, _ := base64.StdEncoding.DecodeString(ciphertextB64)
	truncated := base64.StdEncoding.EncodeToString(raw[:len(raw)-1])
	if _, err := DecryptChunked(truncated, privateKey); !errors.Is(err, ErrCrypto) {
		t.Errorf("DecryptChunked(truncated) error = %v, want ErrCrypto", err)
	}
}

func TestChallengeResponse(t *testing.T) {
	if got, want := ChallengeResponse("abc"), "4abXPNYxcgdRuaRNpcKTtg=="; got != want {
		t.Errorf("ChallengeResponse(abc) = %q, want %q", got, want)
	}
	if got, want := ChallengeResponse(""), "/J1XAV5nmActpiOnU0jwGw=="; got != want {
		t.Errorf("ChallengeResponse(\"\") = %q, want %q", got, want)
	}
	if ChallengeResponse("abc") != ChallengeResponse("abc") {
		t.Error("ChallengeResponse is not deterministic")
	}

	seen := make(map[string]string)
	for index := 0; index < 1000; index++ {
		challenge := base64.StdEncoding.EncodeToString([]byte{byte(index), byte(index >> 8)})
		response := ChallengeResponse(challenge)
		if previous, ok := seen[response]; ok {
			t.Fatalf("challenges %q and %q share response %q", previous, challenge, response)
		}
		seen[response] = challenge
	}
}
