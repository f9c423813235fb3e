// Package filesystem builds component archives.
//
// This package is organized into:
//   - types: archive formats, requests and results
//   - archives: archive creation (zip store, tar, tar.gz, tar.zst) and listing
//   - ignore: .tccmignore pattern matching
//
// Archive creation:
//   - Walks the source directory with fastwalk, then writes entries in
//     sorted order so identical trees produce identical entry lists
//   - Stores zip entries uncompressed
//   - Skips symlinks and other non-regular files
//   - Never includes the output file itself
//   - Removes the output file on any failure, so a file at the output path
//     is always a complete archive
//
// Example Usage:
//
//	archiver := filesystem.NewArchiver(logger)
//	result, err := archiver.Create(ctx, filesystem.ArchiveRequest{
//	    Source: cwd,
//	    Output: filepath.Join(os.TempDir(), "widget@1.0.0.zip"),
//	    Format: filesystem.FormatZip,
//	})
package filesystem
