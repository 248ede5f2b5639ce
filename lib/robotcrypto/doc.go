// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

// Package robotcrypto implements the primitives the robot's signaling
// handshake and data channel validation depend on.
//
// The robot firmware fixes every choice here, so none of it is
// negotiable:
//
//   - [GenerateSymmetricKey] produces the per-session key: a random
//     UUID with its hyphens removed (32 lowercase hex characters).
//   - [EncryptECB] and [DecryptECB] run AES in ECB mode with PKCS#7
//     padding, keyed with the raw UTF-8 bytes of that key string, and
//     exchange ciphertext as standard base64. No IV is sent.
//   - [EncryptChunked] wraps the robot's bare base64 public key in PEM
//     headers ([WrapPEM]) and encrypts with RSA PKCS#1 v1.5, splitting
//     the plaintext into (k-11)-byte chunks and concatenating the raw
//     ciphertext blocks before base64 encoding. [DecryptChunked] is the
//     inverse, used by the fake robot in tests.
//   - [ChallengeResponse] answers a data channel validation challenge
//     with base64(MD5("UnitreeGo2_" + challenge)).
//
// Every failure wraps [ErrCrypto].
package robotcrypto
