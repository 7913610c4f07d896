// Package main provides the entry point for redislite-server.
//
// redislite-server speaks a small subset of the Redis protocol (PING, ECHO,
// SET [PX], GET, CONFIG GET) over TCP, serving an in-memory store that is
// seeded once at startup from an RDB snapshot.
//
// Usage:
//
//	redislite-server [flags]
//	redislite-server --dir /tmp/redis-files --dbfilename dump.rdb
//	redislite-server --config /etc/redislite.yaml
//
// Configuration is layered: built-in defaults, then the YAML file, then
// REDISLITE_* environment variables (a .env file in the working directory is
// loaded first), then command line flags. Changing log.level in the config
// file takes effect without a restart.
package main
