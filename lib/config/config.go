// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the variable Load reads the config path
// from.
const EnvironmentVariable = "GO2REMOTE_CONFIG"

// Config is the master configuration for go2remote.
type Config struct {
	// Robot identifies the robot to connect to.
	Robot RobotConfig `yaml:"robot"`

	// Session configures a connected session.
	Session SessionConfig `yaml:"session"`

	// ICE configures STUN/TURN servers. The robot is on the local
	// network, so the default is host candidates only.
	ICE ICEConfig `yaml:"ice"`

	// Logging configures the CLI logger.
	Logging LoggingConfig `yaml:"logging"`

	// Emotes configures the gesture table.
	Emotes EmotesConfig `yaml:"emotes"`

	// Capture configures frame capture.
	Capture CaptureConfig `yaml:"capture"`
}

// RobotConfig identifies the robot.
type RobotConfig struct {
	// Address is the robot's IP address or host name. Required to
	// connect, usually given with --robot.
	Address string `yaml:"address"`

	// SignalingPort is the robot's HTTP signaling port.
	// Default: 9991
	SignalingPort int `yaml:"signaling_port"`

	// PeerID is sent as the "id" of every offer.
	// Default: STA_localnetwork
	PeerID string `yaml:"peer_id"`
}

// SessionConfig configures a connected session.
type SessionConfig struct {
	// HeartbeatInterval is the keep-alive period.
	// Default: 2s
	HeartbeatInterval time.Duration `yaml:"heartbeat_interval"`

	// ConnectTimeout bounds the whole handshake.
	// Default: 30s
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

// ICEConfig lists ICE servers.
type ICEConfig struct {
	Servers []ICEServer `yaml:"servers"`
}

// ICEServer is one STUN or TURN server.
type ICEServer struct {
	URLs       []string `yaml:"urls"`
	Username   string   `yaml:"username,omitempty"`
	Credential string   `yaml:"credential,omitempty"`
}

// LoggingConfig configures the CLI logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: info
	Level string `yaml:"level"`

	// Format is one of auto, text, json. Auto selects text on a
	// terminal and JSON otherwise.
	// Default: auto
	Format string `yaml:"format"`
}

// EmotesConfig configures the gesture table.
type EmotesConfig struct {
	// TableFile is a JSONC file of name → id entries merged over the
	// built-in table. Empty uses the built-in table only.
	TableFile string `yaml:"table_file"`
}

// CaptureConfig configures frame capture.
type CaptureConfig struct {
	// Path is where data channel frames are recorded. Empty disables
	// capture.
	Path string `yaml:"path"`

	// Compression is zstd, lz4, or none.
	Compression string `yaml:"compression"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Robot: RobotConfig{
			SignalingPort: 9991,
			PeerID:        "STA_localnetwork",
		},
		Session: SessionConfig{
			HeartbeatInterval: 2 * time.Second,
			ConnectTimeout:    30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "auto",
		},
		Capture: CaptureConfig{
			Compression: "zstd",
		},
	}
}

// Load loads configuration from the GO2REMOTE_CONFIG environment
// variable. It fails if the variable is not set.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your go2remote.yaml config file, or use --config flag", EnvironmentVariable)
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. Values in the
// file replace the defaults; absent keys keep them.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.expandVariables()

	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Emotes.TableFile = expandVars(c.Emotes.TableFile, vars)
	c.Capture.Path = expandVars(c.Capture.Path, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors. The robot address is
// not checked here because commands that never connect do not need it.
func (c *Config) Validate() error {
	var errs []error

	if c.Robot.SignalingPort < 1 || c.Robot.SignalingPort > 65535 {
		errs = append(errs, fmt.Errorf("robot.signaling_port %d is out of range", c.Robot.SignalingPort))
	}

	if c.Robot.PeerID == "" {
		errs = append(errs, fmt.Errorf("robot.peer_id is required"))
	}

	if c.Session.HeartbeatInterval <= 0 {
		errs = append(errs, fmt.Errorf("session.heartbeat_interval must be positive"))
	}

	if c.Session.ConnectTimeout <= 0 {
		errs = append(errs, fmt.Errorf("session.connect_timeout must be positive"))
	}

	for i, server := range c.ICE.Servers {
		if len(server.URLs) == 0 {
			errs = append(errs, fmt.Errorf("ice.servers[%d].urls is required", i))
		}
	}

	levels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(levels, c.Logging.Level) {
		errs = append(errs, fmt.Errorf("logging.level must be one of: %v", levels))
	}

	formats := []string{"auto", "text", "json"}
	if !slices.Contains(formats, c.Logging.Format) {
		errs = append(errs, fmt.Errorf("logging.format must be one of: %v", formats))
	}

	compressions := []string{"zstd", "lz4", "none"}
	if !slices.Contains(compressions, c.Capture.Compression) {
		errs = append(errs, fmt.Errorf("capture.compression must be one of: %v", compressions))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
