// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package signaling

// DefaultPeerID is the peer identifier the robot expects in offers from
// clients on its local network.
const DefaultPeerID = "STA_localnetwork"

// Discovery is the decoded body of GET /con_notify.
type Discovery struct {
	// Data1 is the discovery payload: header, public key body, and the
	// route-encoding tail.
	Data1 string `json:"data1"`
}

// Offer is the plaintext the client AES-encrypts into Request.Data1.
type Offer struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Token string `json:"token"`
	SDP   string `json:"sdp"`
}

// Request is the JSON body of POST /con_ing_<suffix>.
type Request struct {
	// Data1 is the AES-ECB encrypted Offer, base64.
	Data1 string `json:"data1"`
	// Data2 is the RSA encrypted session key, base64.
	Data2 string `json:"data2"`
}

// SessionDescription is the robot's decrypted answer.
type SessionDescription struct {
	Type string `json:"type"`
	SDP  string `json:"sdp"`
}
