// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package transport

import (
	"github.com/pion/webrtc/v4"

	"github.com/richgrov/go2remote/lib/config"
)

// ICEConfig holds ICE server configuration for the PeerConnection.
// The robot answers from the local network, so the zero value (host
// candidates only, loopback included) is the usual choice.
type ICEConfig struct {
	// Servers is the list of ICE servers (STUN + TURN) to use during
	// candidate gathering. Order matters: pion tries them in sequence.
	Servers []webrtc.ICEServer
}

// ICEConfigFromSettings converts configured ICE servers into pion ICE
// server entries. Entries without URLs are skipped.
func ICEConfigFromSettings(servers []config.ICEServer) ICEConfig {
	var result ICEConfig
	for _, server := range servers {
		if len(server.URLs) == 0 {
			continue
		}
		result.Servers = append(result.Servers, webrtc.ICEServer{
			URLs:       server.URLs,
			Username:   server.Username,
			Credential: server.Credential,
		})
	}
	return result
}
