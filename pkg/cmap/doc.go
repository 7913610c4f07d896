// Package cmap provides a sharded concurrent map.
//
// Each shard has its own RWMutex, so operations on keys in different shards
// do not contend. redislite uses it as the registry of live client
// connections, which is written on every accept and close and walked on
// shutdown.
//
//	m := cmap.New[string, *Conn]()
//	m.Set(id, conn)
//	m.Range(func(id string, c *Conn) bool { c.Close(); return true })
package cmap
