// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package signaling

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(ClientConfig{Address: strings.TrimPrefix(server.URL, "http://")})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestNewClientAddress(t *testing.T) {
	tests := []struct {
		name    string
		config  ClientConfig
		wantURL string
	}{
		{"bare IP", ClientConfig{Address: "192.168.123.161"}, "http://192.168.123.161:9991"},
		{"explicit port field", ClientConfig{Address: "robot.local", Port: 8081}, "http://robot.local:8081"},
		{"port in address", ClientConfig{Address: "10.0.0.2:1234", Port: 8081}, "http://10.0.0.2:1234"},
		{"IPv6", ClientConfig{Address: "fe80::1"}, "http://[fe80::1]:9991"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			client, err := NewClient(test.config)
			if err != nil {
				t.Fatalf("NewClient: %v", err)
			}
			if client.BaseURL() != test.wantURL {
				t.Errorf("BaseURL() = %q, want %q", client.BaseURL(), test.wantURL)
			}
		})
	}

	if _, err := NewClient(ClientConfig{}); err == nil {
		t.Error("NewClient with no address succeeded")
	}
}

func TestDiscover(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/con_notify" {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, base64.StdEncoding.EncodeToString([]byte(`{"data1":"HEADER0123keybody0A1B2C3D4J","data2":2}`))+"\n")
	}))

	discovery, err := client.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if discovery.Data1 != "HEADER0123keybody0A1B2C3D4J" {
		t.Errorf("Data1 = %q", discovery.Data1)
	}
}

func TestDiscoverMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not base64", "%%%"},
		{"not JSON", base64.StdEncoding.EncodeToString([]byte("hello"))},
		{"missing data1", base64.StdEncoding.EncodeToString([]byte(`{"data2":1}`))},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, test.body)
			}))
			_, err := client.Discover(context.Background())
			if !errors.Is(err, ErrMalformedDiscovery) {
				t.Errorf("Discover error = %v, want ErrMalformedDiscovery", err)
			}
		})
	}
}

func TestDiscoverStatusError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "robot busy", http.StatusServiceUnavailable)
	}))

	_, err := client.Discover(context.Background())
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("Discover error = %v, want ErrNetwork", err)
	}
	if !strings.Contains(err.Error(), "503") || !strings.Contains(err.Error(), "robot busy") {
		t.Errorf("error %q does not carry status and body", err)
	}
}

func TestDiscoverUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	address := strings.TrimPrefix(server.URL, "http://")
	server.Close()

	client, err := NewClient(ClientConfig{Address: address})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := client.Discover(context.Background()); !errors.Is(err, ErrNetwork) {
		t.Errorf("Discover error = %v, want ErrNetwork", err)
	}
}

func TestExchange(t *testing.T) {
	var gotPath, gotContentType string
	var gotBody []byte
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		io.WriteString(w, "  ZW5jcnlwdGVk\n")
	}))

	answer, err := client.Exchange(context.Background(), "01239", Request{Data1: "offer", Data2: "key"})
	if err != nil {
		t.Fatalf("Exchange: %v", err)
	}
	if answer != "ZW5jcnlwdGVk" {
		t.Errorf("answer = %q, want trimmed body", answer)
	}
	if gotPath != "/con_ing_01239" {
		t.Errorf("path = %q, want /con_ing_01239", gotPath)
	}
	if gotContentType != "application/x-www-form-urlencoded" {
		t.Errorf("Content-Type = %q", gotContentType)
	}

	var request map[string]string
	if err := json.Unmarshal(gotBody, &request); err != nil {
		t.Fatalf("request body %q is not raw JSON: %v", gotBody, err)
	}
	if request["data1"] != "offer" || request["data2"] != "key" {
		t.Errorf("request body = %v", request)
	}
}

func TestExchangeCancelled(t *testing.T) {
	release := make(chan struct{})
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.Exchange(ctx, "1", Request{})
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("Exchange error = %v, want ErrNetwork", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Exchange error = %v, want context.Canceled in chain", err)
	}
}
