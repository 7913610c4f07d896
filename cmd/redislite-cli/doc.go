// Package main provides the entry point for redislite-cli.
//
// redislite-cli sends single commands to a redislite (or any Redis) server,
// or opens an interactive prompt when run without a command:
//
//	redislite-cli ping
//	redislite-cli set --px 5000 session abc
//	redislite-cli -o json config get dir
//	redislite-cli --server 127.0.0.1:6380
package main
