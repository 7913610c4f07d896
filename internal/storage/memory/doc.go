// Package memory provides the in-memory expiring key-value store.
//
// Features:
//
//   - Single Lock: one mutex guards the whole map, so every read observes
//     one complete write
//   - Lazy Expiration: expiry is checked on read; an expired entry stays
//     resident until a later SET replaces it
//   - Optional Sweeper: an opt-in background loop that removes expired
//     entries (disabled by default)
//   - Injectable Clock: tests drive expiry without sleeping
//
// Thread Safety:
//
// All operations are safe for concurrent use. The lock is held only for the
// duration of the map access; callers perform network I/O outside it.
package memory
