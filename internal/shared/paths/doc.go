// Package paths names the files tccm reads and writes.
//
// # Layout
//
//	<tool install dir>/config.json        registry origin and user identity
//	<component dir>/info.json             version stamp of the component
//	<component dir>/.tccmignore           optional archive ignore patterns
//	<temp dir>/<dirname>@<version>.zip    archive staged for upload
//	<cwd>/<name>.zip                      fetched component
//
// # Usage
//
//	stampPath := paths.StampFile(cwd)
//	archive := filepath.Join(tempDir, paths.ArchiveName("widget", "1.0.0", ".zip"))
//
//	if !paths.Same(info.Cwd, cwd) {
//	    // stamp was copied from another checkout
//	}
package paths
