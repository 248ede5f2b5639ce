// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides go2remote's standard CBOR encoding
// configuration.
//
// JSON is the robot's wire format and stays JSON. CBOR is used only for
// go2remote's own on-disk formats, currently capture files. Sharing one
// encoder configuration keeps those files byte-for-byte reproducible:
// the encoder uses Core Deterministic Encoding (RFC 8949 §4.2), so the
// same logical record always produces identical bytes.
//
// Record types use `cbor` struct tags. Decoding ignores unknown fields
// so older readers accept files written by newer versions.
package codec
