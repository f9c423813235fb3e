package filesystem

import (
	"fmt"
	"io/fs"
)

// Format is an archive format
type Format string

const (
	FormatZip    Format = "zip"
	FormatTar    Format = "tar"
	FormatTarGz  Format = "tar.gz"
	FormatTarZst Format = "tar.zst"
)

// ParseFormat converts a configured format name
func ParseFormat(name string) (Format, error) {
	switch f := Format(name); f {
	case FormatZip, FormatTar, FormatTarGz, FormatTarZst:
		return f, nil
	case "":
		return FormatZip, nil
	default:
		return "", fmt.Errorf("unsupported archive format: %s", name)
	}
}

// Ext returns the file extension including the leading dot
func (f Format) Ext() string {
	return "." + string(f)
}

// ArchiveRequest describes an archive to build
type ArchiveRequest struct {
	// Source is the directory whose contents are archived
	Source string
	// Output is the archive path; it is created or truncated
	Output string
	Format Format
	// IgnoreFile is a file name inside Source holding ignore patterns
	IgnoreFile string
}

// ArchiveResult describes a finished archive
type ArchiveResult struct {
	Path   string
	Format Format
	Files  int
	Dirs   int
	// Bytes is the total size of archived file contents
	Bytes int64
	// Size is the size of the archive file
	Size    int64
	Skipped int
}

// Entries returns the number of entries written
func (r *ArchiveResult) Entries() int {
	return r.Files + r.Dirs
}

// entry is a walked path waiting to be written
type entry struct {
	rel  string // slash separated, relative to the source
	path string
	info fs.FileInfo
}
