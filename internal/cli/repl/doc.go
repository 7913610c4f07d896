// Package repl is the interactive mode of redislite-cli.
//
// Each input line is split into arguments (double quotes with backslash
// escapes and single quotes are honoured, as in redis-cli), sent to the
// server as one command and the reply is printed with the selected
// formatter. "help [prefix]" lists known commands; "exit" or "quit" leaves.
package repl
