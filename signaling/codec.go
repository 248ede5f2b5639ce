// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package signaling

import (
	"fmt"
	"strings"
)

// suffixAlphabet maps letters to route digits by index.
const suffixAlphabet = "ABCDEFGHIJ"

// payloadFrameLength is the length of the header before, and the tail
// after, the public key body in a discovery payload.
const payloadFrameLength = 10

// DeriveSuffix computes the signaling route suffix from a discovery
// payload. The last ten characters are split into two-character chunks
// and the second character of each chunk is looked up in A..J, giving
// one decimal digit per chunk. Characters outside the alphabet are
// skipped and returned in unknown so the caller can warn about them.
// A payload shorter than ten characters has no tail and yields "".
func DeriveSuffix(payload string) (suffix string, unknown []string) {
	runes := []rune(payload)
	if len(runes) < payloadFrameLength {
		return "", nil
	}
	tail := runes[len(runes)-payloadFrameLength:]

	var digits strings.Builder
	for offset := 0; offset+1 < len(tail); offset += 2 {
		character := tail[offset+1]
		index := strings.IndexRune(suffixAlphabet, character)
		if index < 0 {
			unknown = append(unknown, string(character))
			continue
		}
		digits.WriteByte(byte('0' + index))
	}
	return digits.String(), unknown
}

// ExtractPublicKeyBody returns the bare base64 public key embedded in a
// discovery payload: everything between the ten-character header and
// the ten-character tail, verbatim.
func ExtractPublicKeyBody(payload string) (string, error) {
	runes := []rune(payload)
	if len(runes) <= 2*payloadFrameLength {
		return "", fmt.Errorf("%w: %d characters leaves no room for a key", ErrMalformedDiscovery, len(runes))
	}
	return string(runes[payloadFrameLength : len(runes)-payloadFrameLength]), nil
}

// EncodeTail builds a ten-character payload tail that DeriveSuffix maps
// back to digits. digits must be exactly five decimal digits.
func EncodeTail(digits string) (string, error) {
	if len(digits) != payloadFrameLength/2 {
		return "", fmt.Errorf("route suffix %q must have %d digits", digits, payloadFrameLength/2)
	}

	var tail strings.Builder
	for _, digit := range digits {
		if digit < '0' || digit > '9' {
			return "", fmt.Errorf("route suffix %q contains non-digit %q", digits, digit)
		}
		tail.WriteRune(digit)
		tail.WriteByte(suffixAlphabet[digit-'0'])
	}
	return tail.String(), nil
}

// BuildDiscoveryPayload assembles a discovery payload from a
// ten-character header, a bare base64 key body, and a five-digit route
// suffix. It is the inverse of ExtractPublicKeyBody and DeriveSuffix.
func BuildDiscoveryPayload(header, keyBody, digits string) (string, error) {
	if len(header) != payloadFrameLength {
		return "", fmt.Errorf("payload header %q must be %d characters", header, payloadFrameLength)
	}
	tail, err := EncodeTail(digits)
	if err != nil {
		return "", err
	}
	return header + keyBody + tail, nil
}
