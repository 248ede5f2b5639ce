// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

// Package signaling speaks the robot's local HTTP signaling protocol.
//
// The robot listens on port 9991 ([DefaultPort]). A client first fetches
// GET /con_notify, whose body is base64 text wrapping a JSON object. Its
// "data1" field is a discovery payload: ten characters of header, the
// robot's RSA public key as bare base64, and a ten-character tail. The
// tail encodes the signaling route: the second character of each
// two-character chunk is a letter A..J standing for a digit 0..9
// ([DeriveSuffix]). The key body sits between the header and the tail
// ([ExtractPublicKeyBody]).
//
// The client then seals its SDP offer ([Seal]): the offer JSON is
// AES-ECB encrypted under a fresh session key, and the session key is
// RSA encrypted to the robot. Both go out as a raw JSON body
// {"data1", "data2"} in POST /con_ing_<suffix>, labelled
// application/x-www-form-urlencoded even though it is not form encoded.
// The response is the robot's SDP answer, AES-ECB encrypted under the
// same session key ([Material.OpenAnswer]).
//
// [Client] performs the two HTTP requests; [Material] carries the key
// material of one handshake and is closed when the handshake ends.
// Nothing here is persisted.
package signaling
