// Package settings persists the registry settings shared by every tccm run.
//
// The settings file is a single JSON object with the keys origin, user and
// email; any subset may be absent. Updates merge into what is already on
// disk and are written with a temp-file rename so a crash never leaves a
// truncated file behind.
//
// Commands that talk to the registry gate on the settings first:
//   - Validate: origin, user and email, checked in that order
//   - RequireOrigin: origin only (used by get)
//
// The first missing field produces its own error naming the config command
// that fixes it.
package settings
