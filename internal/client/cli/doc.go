// Package cli implements the interactive REPL of the Monica CLI: command
// dispatch, interactive prompts and the online-status watcher. All domain
// behavior lives in the services layer; this package only does I/O.
package cli
