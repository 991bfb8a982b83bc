// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2026 xiaostang

package mqtt5

import (
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// defaultKeepalive is the default keepalive time in seconds.
	defaultKeepalive uint16 = 60

	// defaultReceiveMaximum is the number of unacknowledged QoS>0
	// publications permitted in flight until the peer advertises its own
	// receive maximum.
	defaultReceiveMaximum uint16 = 1024
)

// Options contains the configurable options for a session.
// Note: struct fields must be public in order for unmarshal to correctly
// populate the data.
type Options struct {
	// Logger specifies a custom configured implementation of log/slog to
	// override the servers default logger.
	Logger *slog.Logger `yaml:"-" json:"-"`

	// ClientID is the client identifier presented in CONNECT. When empty
	// and CleanStart is set, an identifier is generated and the server
	// may assign its own.
	ClientID string `yaml:"client_id" json:"client_id"`

	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`

	// SessionExpiryInterval is the requested session lifetime in seconds
	// after disconnect. 0 means the session ends with the connection.
	SessionExpiryInterval uint32 `yaml:"session_expiry_interval" json:"session_expiry_interval"`

	// MaximumPacketSize caps the size of packets accepted from the peer.
	// 0 means no limit beyond the protocol maximum.
	MaximumPacketSize uint32 `yaml:"maximum_packet_size" json:"maximum_packet_size"`

	// Keepalive is the connection keepalive in seconds.
	Keepalive uint16 `yaml:"keepalive" json:"keepalive"`

	// ReceiveMaximum is the number of QoS>0 publications this end is
	// willing to process concurrently.
	ReceiveMaximum uint16 `yaml:"receive_maximum" json:"receive_maximum"`

	// CleanStart requests the broker discard any prior session state
	// held for the client id.
	CleanStart bool `yaml:"clean_start" json:"clean_start"`
}

// ensureDefaults fills in any default values which have been left unset.
func (o *Options) ensureDefaults() {
	if o.Keepalive == 0 {
		o.Keepalive = defaultKeepalive
	}

	if o.ReceiveMaximum == 0 {
		o.ReceiveMaximum = defaultReceiveMaximum
	}

	if o.Logger == nil {
		log := slog.New(slog.NewTextHandler(os.Stdout, nil))
		o.Logger = log
	}
}

// Config wraps the session options for file-based configuration.
type Config struct {
	Session struct {
		Options `yaml:"options"`
	} `yaml:"session"`
}

// OpenConfigFile reads session options from a yaml file at path p.
func OpenConfigFile(p string) (*Options, error) {
	if p == "" {
		slog.Default().Debug("no file path provided")
		return nil, nil
	}

	data, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}

	config := new(Config)
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return &config.Session.Options, nil
}
