// Package main is the entry point for the tccm command line tool.
//
// tccm versions a component directory, publishes it to a component registry
// and downloads published components.
//
// Configuration:
//   - config.json beside the executable (tccm config --set-...)
//   - Environment variables for runtime knobs (TCCM_*)
//
// Usage:
//
//	tccm config --set-origin=http://example.com
//	tccm version 0.0.1
//	tccm publish
//	tccm get lazyload-0.0.1
//
// Exit codes:
//   - 0: success
//   - 1: internal error
//   - 2: usage error
//   - 3: filesystem error
//   - 4: network error
//   - 5: registry answered with an error
//
// Signals:
//   - SIGINT, SIGTERM: cancel the running command
package main
