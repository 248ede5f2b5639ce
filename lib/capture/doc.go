// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

// Package capture records data channel frames to disk for protocol
// debugging.
//
// A capture file starts with a fixed preamble: the four magic bytes
// "G2RC", a format version byte, and a compression tag byte. The rest
// of the file is a single compressed stream (zstd by default, lz4 or
// none on request) holding a sequence of CBOR items encoded with
// [codec]: one [Header] followed by any number of [Record] values in
// the order they were written.
//
// [Writer] is safe for concurrent use, so it can sit directly behind a
// frame observer that is called from both the sending goroutine and the
// connection's event loop. [Reader] returns records in file order and
// io.EOF after the last one. Records are only guaranteed to reach disk
// once the Writer is closed.
package capture
