// Package redisserver provides a Redis protocol compatible server for redislite.
//
// It implements the RESP2 subset needed by the supported commands:
//   - PING
//   - ECHO <message>
//   - SET <key> <value> [PX <milliseconds>]
//   - GET <key>
//   - CONFIG GET dir|dbfilename
//
// Command names are lower-cased before matching. The CONFIG subcommand is
// matched case-sensitively ("get") while the PX option is matched
// case-insensitively.
//
// Each accepted connection is served by its own goroutine. By default a
// connection reads one fixed-size chunk per command and decodes exactly one
// RESP value from it; commands split across reads are not reassembled.
// Config.Framed switches to a length-aware reader that buffers partial frames
// and keeps pipelined remainders.
package redisserver
