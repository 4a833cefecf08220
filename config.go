package dustdb

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"
)

// Environment variable names understood by ConfigFromEnv.
const (
	EnvAddr         = "DUST_DB_ADDR"
	EnvPort         = "DUST_DB_PORT"
	EnvStorageRoot  = "DUST_DATA_STORAGE_PATH"
	EnvDataExt      = "DUST_DATA_FMT"
	EnvMaxConns     = "DUST_DB_MAX_CONNS"
	EnvConnDeadline = "DUST_DB_CONN_DEADLINE"
)

// Config holds the server and storage engine configuration. It is built once
// at startup and passed by value into NewStore and NewServer; nothing reads
// the environment per request.
type Config struct {
	// Addr is the interface the daemon binds to.
	Addr string

	// Port is the TCP port the daemon listens on.
	Port string

	// StorageRoot is the directory holding one subdirectory per pile.
	StorageRoot string

	// DataExt is the filename extension given to record files, without the
	// leading dot. Records are JSON by convention, so the default is "json",
	// but the storage engine treats it as opaque.
	DataExt string

	// MaxConns bounds the number of concurrently served connections.
	// Accepted connections beyond the bound wait for a slot.
	MaxConns int64

	// ConnDeadline is an absolute per-connection deadline covering both the
	// request read and the response write. Zero disables it.
	ConnDeadline time.Duration
}

// DefaultConfig returns the configuration used when no environment
// variables are set.
func DefaultConfig() Config {
	return Config{
		Addr:        "127.0.0.1",
		Port:        "7878",
		StorageRoot: "./dust_data",
		DataExt:     "json",
		MaxConns:    256,
	}
}

// ConfigFromEnv builds a Config from the DUST_* environment variables,
// falling back to DefaultConfig for anything unset.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	cfg.Addr = getenv(EnvAddr, cfg.Addr)
	cfg.Port = getenv(EnvPort, cfg.Port)
	cfg.StorageRoot = getenv(EnvStorageRoot, cfg.StorageRoot)
	cfg.DataExt = getenv(EnvDataExt, cfg.DataExt)

	if v := os.Getenv(EnvMaxConns); v != "" {
		maxConns, err := strconv.ParseInt(v, 10, 64)
		if err != nil || maxConns <= 0 {
			return Config{}, fmt.Errorf("%s must be a positive integer, got %q", EnvMaxConns, v)
		}
		cfg.MaxConns = maxConns
	}

	if v := os.Getenv(EnvConnDeadline); v != "" {
		deadline, err := time.ParseDuration(v)
		if err != nil || deadline < 0 {
			return Config{}, fmt.Errorf("%s must be a non-negative duration, got %q", EnvConnDeadline, v)
		}
		cfg.ConnDeadline = deadline
	}

	return cfg, nil
}

// ListenAddr returns the host:port the daemon listens on.
func (c Config) ListenAddr() string {
	return net.JoinHostPort(c.Addr, c.Port)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
