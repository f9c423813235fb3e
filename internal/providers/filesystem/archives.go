package filesystem

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/tccm/internal/infrastructure/logging"
)

// Archiver creates component archives
type Archiver struct {
	logger *logging.Logger
}

// NewArchiver creates an archiver
func NewArchiver(logger *logging.Logger) *Archiver {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Archiver{logger: logger}
}

// Create archives req.Source into req.Output. On error the output file is
// removed.
func (a *Archiver) Create(ctx context.Context, req ArchiveRequest) (result *ArchiveResult, err error) {
	if req.Source == "" || req.Output == "" {
		return nil, fmt.Errorf("archive source and output are required")
	}
	format, err := ParseFormat(string(req.Format))
	if err != nil {
		return nil, err
	}

	source, err := filepath.Abs(req.Source)
	if err != nil {
		return nil, fmt.Errorf("invalid source: %w", err)
	}
	output, err := filepath.Abs(req.Output)
	if err != nil {
		return nil, fmt.Errorf("invalid output: %w", err)
	}

	var ignore *IgnoreMatcher
	if req.IgnoreFile != "" {
		ignore, err = LoadIgnoreFile(filepath.Join(source, req.IgnoreFile))
		if err != nil {
			return nil, fmt.Errorf("failed to load ignore file: %w", err)
		}
	}

	entries, skipped, err := a.collect(ctx, source, output, ignore)
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", source, err)
	}

	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	out, err := os.Create(output)
	if err != nil {
		return nil, fmt.Errorf("create failed: %w", err)
	}
	defer func() {
		if err != nil {
			out.Close()
			os.Remove(output)
		}
	}()

	result = &ArchiveResult{Path: output, Format: format, Skipped: skipped}

	switch format {
	case FormatZip:
		err = writeZip(ctx, out, entries, result)
	case FormatTarGz:
		gz := gzip.NewWriter(out)
		if err = writeTar(ctx, gz, entries, result); err == nil {
			err = gz.Close()
		}
	case FormatTarZst:
		var zw *zstd.Encoder
		zw, err = zstd.NewWriter(out)
		if err != nil {
			return nil, fmt.Errorf("zstd failed: %w", err)
		}
		if err = writeTar(ctx, zw, entries, result); err == nil {
			err = zw.Close()
		} else {
			zw.Close()
		}
	default:
		err = writeTar(ctx, out, entries, result)
	}
	if err != nil {
		return nil, fmt.Errorf("%s creation failed: %w", format, err)
	}

	if err = out.Sync(); err != nil {
		return nil, fmt.Errorf("sync failed: %w", err)
	}
	if err = out.Close(); err != nil {
		return nil, fmt.Errorf("close failed: %w", err)
	}

	stat, err := os.Stat(output)
	if err != nil {
		return nil, fmt.Errorf("failed to stat archive: %w", err)
	}
	result.Size = stat.Size()

	a.logger.Debug("archive created",
		zap.String("path", output),
		zap.String("format", string(format)),
		zap.Int("files", result.Files),
		zap.Int("dirs", result.Dirs),
		zap.Int("skipped", result.Skipped),
		zap.Int64("size", result.Size))

	return result, nil
}

// collect walks source and returns the entries to archive in sorted order
func (a *Archiver) collect(ctx context.Context, source, output string, ignore *IgnoreMatcher) ([]entry, int, error) {
	var (
		mu      sync.Mutex
		entries []entry
		skipped int
	)

	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, source, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if path == source || path == output {
			return nil
		}

		relPath, err := filepath.Rel(source, path)
		if err != nil {
			return err
		}
		rel := filepath.ToSlash(relPath)

		if ignore.Match(rel, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.IsDir() && !d.Type().IsRegular() {
			a.logger.Debug("skipping non-regular file", zap.String("path", rel))
			mu.Lock()
			skipped++
			mu.Unlock()
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		mu.Lock()
		entries = append(entries, entry{rel: rel, path: path, info: info})
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].rel < entries[j].rel
	})
	return entries, skipped, nil
}

func writeZip(ctx context.Context, w io.Writer, entries []entry, result *ArchiveResult) error {
	zw := zip.NewWriter(w)

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		header, err := zip.FileInfoHeader(e.info)
		if err != nil {
			return err
		}
		header.Name = e.rel
		header.Method = zip.Store

		if e.info.IsDir() {
			header.Name += "/"
			if _, err := zw.CreateHeader(header); err != nil {
				return err
			}
			result.Dirs++
			continue
		}

		writer, err := zw.CreateHeader(header)
		if err != nil {
			return err
		}
		n, err := copyFile(writer, e.path)
		if err != nil {
			return err
		}
		result.Bytes += n
		result.Files++
	}

	return zw.Close()
}

func writeTar(ctx context.Context, w io.Writer, entries []entry, result *ArchiveResult) error {
	tw := tar.NewWriter(w)

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		header, err := tar.FileInfoHeader(e.info, "")
		if err != nil {
			return err
		}
		header.Name = e.rel
		if e.info.IsDir() {
			header.Name += "/"
		}

		if err := tw.WriteHeader(header); err != nil {
			return err
		}

		if e.info.IsDir() {
			result.Dirs++
			continue
		}

		n, err := copyFile(tw, e.path)
		if err != nil {
			return err
		}
		if n != header.Size {
			return fmt.Errorf("%s changed size while archiving", e.rel)
		}
		result.Bytes += n
		result.Files++
	}

	return tw.Close()
}

func copyFile(w io.Writer, path string) (int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()
	return io.Copy(w, file)
}

// List returns the entry names of a zip or tar archive in stored order
func List(path string) ([]string, error) {
	switch {
	case strings.HasSuffix(path, ".zip"):
		reader, err := zip.OpenReader(path)
		if err != nil {
			return nil, fmt.Errorf("open failed: %w", err)
		}
		defer reader.Close()

		names := make([]string, 0, len(reader.File))
		for _, file := range reader.File {
			names = append(names, file.Name)
		}
		return names, nil
	default:
		return listTar(path)
	}
}

func listTar(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open failed: %w", err)
	}
	defer file.Close()

	var src io.Reader = file
	switch {
	case strings.HasSuffix(path, ".gz") || strings.HasSuffix(path, ".tgz"):
		gzReader, err := gzip.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("gzip failed: %w", err)
		}
		defer gzReader.Close()
		src = gzReader
	case strings.HasSuffix(path, ".zst"):
		zstdReader, err := zstd.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("zstd failed: %w", err)
		}
		defer zstdReader.Close()
		src = zstdReader
	}

	tarReader := tar.NewReader(src)
	var names []string
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		names = append(names, header.Name)
	}
	return names, nil
}
