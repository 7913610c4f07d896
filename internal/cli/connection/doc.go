// Package connection is the RESP client used by redislite-cli.
//
// A Client sends each command as an array of bulk strings and reads one
// reply. Replies cover the full RESP2 reply set (simple strings, errors,
// integers, bulk strings including the $-1 null, and arrays) so the CLI
// can talk to any Redis-compatible server, not only redislite.
package connection
