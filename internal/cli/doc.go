// Package cli is the tccm command line.
//
// Usage:
//
//	tccm config --set-origin=http://example.com   set the registry origin
//	tccm config --set-user=alice                  set the author name
//	tccm config --set-email=alice@example.com     set the author email
//	tccm version 0.0.1                            stamp the current directory
//	tccm publish                                  archive and upload it
//	tccm get lazyload-0.0.1                       download a component
//
// Subcommands receive their tokens unparsed. Tokens are classified by shape
// (--set-x=value, x.y.z, identifier) and anything unrecognised is ignored.
// Run prints a single result line and returns the process exit code.
package cli
