// Package output renders server replies for redislite-cli.
//
// The raw format mimics redis-cli (quoted bulk strings, "(nil)",
// "(integer) n", numbered array items). The json and yaml formats emit the
// reply as plain data for scripting.
package output
