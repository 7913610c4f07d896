// Package domain defines the core value types shared by the server,
// the store and the snapshot decoder.
//
// It has no IO dependencies. This package contains:
//
//   - Value: a stored byte string with an optional absolute expiration
//   - Errors: the error kinds every layer reports (IO, PARSE, VALIDATION,
//     STATE, RDB_FORMAT)
package domain
