// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package signaling

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/richgrov/go2remote/lib/netutil"
)

// DefaultPort is the robot's signaling port.
const DefaultPort = 9991

const (
	discoveryPath = "/con_notify"
	exchangePath  = "/con_ing_"
)

// ClientConfig configures a Client.
type ClientConfig struct {
	// Address is the robot's IP address or host name, optionally with a
	// port. Without a port, Port is used.
	Address string

	// Port defaults to DefaultPort.
	Port int

	// HTTPClient defaults to a client with no timeout; bound requests
	// with the context instead.
	HTTPClient *http.Client

	Logger *slog.Logger
}

// Client issues the two signaling requests against one robot.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient returns a Client for the robot at config.Address.
func NewClient(config ClientConfig) (*Client, error) {
	if config.Address == "" {
		return nil, fmt.Errorf("signaling: robot address is required")
	}

	host := config.Address
	if _, _, err := net.SplitHostPort(config.Address); err != nil {
		port := config.Port
		if port == 0 {
			port = DefaultPort
		}
		host = net.JoinHostPort(config.Address, strconv.Itoa(port))
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Client{
		baseURL:    "http://" + host,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// BaseURL returns the scheme and host requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Discover fetches and decodes GET /con_notify.
func (c *Client) Discover(ctx context.Context) (Discovery, error) {
	url := c.baseURL + discoveryPath
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Discovery{}, fmt.Errorf("building discovery request: %w", err)
	}

	body, err := c.do(request)
	if err != nil {
		return Discovery{}, err
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(body)))
	if err != nil {
		return Discovery{}, fmt.Errorf("%w: body is not base64: %v", ErrMalformedDiscovery, err)
	}
	var discovery Discovery
	if err := json.Unmarshal(decoded, &discovery); err != nil {
		return Discovery{}, fmt.Errorf("%w: %v", ErrMalformedDiscovery, err)
	}
	if discovery.Data1 == "" {
		return Discovery{}, fmt.Errorf("%w: missing data1", ErrMalformedDiscovery)
	}

	c.logger.Debug("robot discovery fetched", "url", url, "payload_length", len(discovery.Data1))
	return discovery, nil
}

// Exchange posts a sealed offer to POST /con_ing_<suffix> and returns
// the encrypted answer text.
func (c *Client) Exchange(ctx context.Context, suffix string, sealed Request) (string, error) {
	payload, err := json.Marshal(sealed)
	if err != nil {
		return "", fmt.Errorf("encoding signaling request: %w", err)
	}

	url := c.baseURL + exchangePath + suffix
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("building signaling request: %w", err)
	}
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := c.do(request)
	if err != nil {
		return "", err
	}

	c.logger.Debug("robot answer received", "url", url, "answer_length", len(body))
	return strings.TrimSpace(string(body)), nil
}

// do sends request and returns the body of a 2xx response.
func (c *Client) do(request *http.Request) ([]byte, error) {
	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrNetwork, request.Method, request.URL, err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s %s: status %d: %s", ErrNetwork,
			request.Method, request.URL, response.StatusCode, netutil.ErrorBody(response.Body))
	}

	body, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s response: %w", ErrNetwork, request.URL, err)
	}
	return body, nil
}
