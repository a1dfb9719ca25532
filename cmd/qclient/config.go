package main

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/quic-go/qclient"
	"github.com/quic-go/qclient/internal/protocol"
)

// options are the settings of a run, read from the config file and the flags.
type options struct {
	Versions                 []qclient.Version
	MaxClientHellos          int
	DisableStatelessRejects  bool
	YieldAfterPackets        int
	YieldAfterDuration       time.Duration
	ConnectionIDLength       int
	HandshakeTimeout         time.Duration
	RequestTimeout           time.Duration
	Insecure                 bool
	MigrateAfterConnect      bool
	MetricsAddr              string
	QlogDir                  string
	InitialReceiveBufferSize int
	InitialSendBufferSize    int
}

func defaultOptions() options {
	return options{
		HandshakeTimeout: 5 * time.Second,
		RequestTimeout:   30 * time.Second,
	}
}

// config.toml keys
type fileConfig struct {
	Versions                 []string `toml:"versions"`
	MaxClientHellos          int      `toml:"max_client_hellos"`
	DisableStatelessRejects  bool     `toml:"disable_stateless_reject_support"`
	YieldAfterPackets        int      `toml:"yield_after_packets"`
	YieldAfterDuration       string   `toml:"yield_after_duration"`
	ConnectionIDLength       int      `toml:"connection_id_length"`
	HandshakeTimeout         string   `toml:"handshake_timeout"`
	RequestTimeout           string   `toml:"request_timeout"`
	Insecure                 bool     `toml:"insecure"`
	MigrateAfterConnect      bool     `toml:"migrate_after_connect"`
	MetricsAddr              string   `toml:"metrics_addr"`
	QlogDir                  string   `toml:"qlog_dir"`
	InitialReceiveBufferSize int      `toml:"receive_buffer_size"`
	InitialSendBufferSize    int      `toml:"send_buffer_size"`
}

// loadConfig overlays the values defined in the TOML file at path onto opts.
func loadConfig(path string, opts *options) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("load config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("versions") {
		versions, err := parseVersions(raw.Versions)
		if err != nil {
			return err
		}
		opts.Versions = versions
	}
	if meta.IsDefined("max_client_hellos") {
		opts.MaxClientHellos = raw.MaxClientHellos
	}
	if meta.IsDefined("disable_stateless_reject_support") {
		opts.DisableStatelessRejects = raw.DisableStatelessRejects
	}
	if meta.IsDefined("yield_after_packets") {
		opts.YieldAfterPackets = raw.YieldAfterPackets
	}
	if meta.IsDefined("connection_id_length") {
		opts.ConnectionIDLength = raw.ConnectionIDLength
	}
	if meta.IsDefined("insecure") {
		opts.Insecure = raw.Insecure
	}
	if meta.IsDefined("migrate_after_connect") {
		opts.MigrateAfterConnect = raw.MigrateAfterConnect
	}
	if meta.IsDefined("metrics_addr") {
		opts.MetricsAddr = raw.MetricsAddr
	}
	if meta.IsDefined("qlog_dir") {
		opts.QlogDir = raw.QlogDir
	}
	if meta.IsDefined("receive_buffer_size") {
		opts.InitialReceiveBufferSize = raw.InitialReceiveBufferSize
	}
	if meta.IsDefined("send_buffer_size") {
		opts.InitialSendBufferSize = raw.InitialSendBufferSize
	}
	for _, d := range []struct {
		key   string
		value string
		dst   *time.Duration
	}{
		{"yield_after_duration", raw.YieldAfterDuration, &opts.YieldAfterDuration},
		{"handshake_timeout", raw.HandshakeTimeout, &opts.HandshakeTimeout},
		{"request_timeout", raw.RequestTimeout, &opts.RequestTimeout},
	} {
		if !meta.IsDefined(d.key) {
			continue
		}
		v, err := time.ParseDuration(d.value)
		if err != nil {
			return fmt.Errorf("load config: invalid value for %s: %w", d.key, err)
		}
		*d.dst = v
	}
	return nil
}

func parseVersions(names []string) ([]qclient.Version, error) {
	versions := make([]qclient.Version, 0, len(names))
	for _, name := range names {
		switch name {
		case "v1", "1":
			versions = append(versions, protocol.Version1)
		case "v2", "2":
			versions = append(versions, protocol.Version2)
		default:
			return nil, fmt.Errorf("unknown QUIC version: %q", name)
		}
	}
	return versions, nil
}

func (o *options) clientConfig() *qclient.Config {
	return &qclient.Config{
		Versions:                      o.Versions,
		MaxClientHellos:               o.MaxClientHellos,
		DisableStatelessRejectSupport: o.DisableStatelessRejects,
		YieldAfterPackets:             o.YieldAfterPackets,
		YieldAfterDuration:            o.YieldAfterDuration,
		ConnectionIDLength:            o.ConnectionIDLength,
		InitialReceiveBufferSize:      o.InitialReceiveBufferSize,
		InitialSendBufferSize:         o.InitialSendBufferSize,
	}
}
