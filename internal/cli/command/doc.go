// Package command defines the redislite-cli commands using urfave/cli/v2.
//
//   - root.go: App, global flags, interactive mode when no command is given
//   - redis.go: ping, echo, get, set, config get, raw
//
// Every command opens one connection, sends one request and prints the reply
// with the formatter selected by --output. A server error reply makes the
// command fail with ErrReply after the reply is printed.
package command
