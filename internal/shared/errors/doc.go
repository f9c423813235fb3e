// Package errors classifies failures of tccm commands.
//
// Every command handler returns a plain error. Errors built here carry a
// Category that decides two things at the edge of the program:
//   - the process exit code (see ExitCode)
//   - how the single result line is printed (see Format)
//
// Categories:
//   - usage: missing or invalid arguments, missing config fields, stale stamps
//   - filesystem: reading or writing config, stamp, archive or download files
//   - network: transport failures and non-2xx responses
//   - registry: the registry answered with a non-zero envelope code
//   - internal: anything else
//
// Example Usage:
//
//	if info == nil {
//	    return errors.Usage("can't publish before setting version")
//	}
//	if err := os.WriteFile(path, data, 0o644); err != nil {
//	    return errors.FileSystem(err, "failed to write stamp file")
//	}
package errors
