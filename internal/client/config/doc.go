// Package config loads runtime configuration for the PeerPoint client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend HTTP API
//	-t int      per-request timeout (seconds)
//	-d string   path to the local credential database
//	-i int      online status check interval (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "3s" or integer nanoseconds:
//
//	{
//	  "endpoint_addr": "http://127.0.0.1:8080",
//	  "request_timeout": "10s",
//	  "db_path": "peerpoint.db",
//	  "notice_ttl": "3s",
//	  "online_check_interval": "3s"
//	}
//
// This package does not read environment variables; use the JSON file or
// flags to configure values.
package config
