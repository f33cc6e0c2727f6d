// Package archive packages a publish directory into a Lambda deployment zip.
package archive

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	humanize "github.com/dustin/go-humanize"
	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"

	"github.com/bookspot/lambdapack/api"
	lambdafs "github.com/bookspot/lambdapack/internal/fs"
)

// Archiver writes every regular file of Source into a deflate-compressed
// zip named Output inside Dest.
type Archiver struct {
	// Source is the publish directory. It is only ever read.
	Source billy.Filesystem
	// Dest holds the archive. Output is the archive's name within it.
	Dest   billy.Filesystem
	Output string

	// Out receives progress and the final summary.
	Out io.Writer
	// Level is the deflate level, flate.HuffmanOnly through flate.BestCompression.
	Level  int
	Logger *slog.Logger
}

// New returns an Archiver over the OS filesystem.
func New(sourceDir, outputArchive string) *Archiver {
	return &Archiver{
		Source: lambdafs.ReadOnly(osfs.New(sourceDir)),
		Dest:   osfs.New(filepath.Dir(outputArchive)),
		Output: filepath.Base(outputArchive),
		Out:    os.Stdout,
		Level:  flate.DefaultCompression,
		Logger: slog.Default(),
	}
}

// Package packages sourceDir into outputArchive, printing progress and the
// summary to out.
func Package(sourceDir, outputArchive string, out io.Writer) (*api.ArchiveResult, error) {
	a := New(sourceDir, outputArchive)
	a.Out = out
	return a.Package()
}

// ValidateLevel rejects deflate levels the compressor does not support.
func ValidateLevel(level int) error {
	if level < flate.HuffmanOnly || level > flate.BestCompression {
		return fmt.Errorf("invalid compression level %d: want %d..%d", level, flate.HuffmanOnly, flate.BestCompression)
	}
	return nil
}

// Package removes a stale archive, writes a fresh one and reports its size.
// A failure after the archive was created leaves the partial file in place.
func (a *Archiver) Package() (*api.ArchiveResult, error) {
	if err := ValidateLevel(a.Level); err != nil {
		return nil, err
	}
	out := a.out()
	res := &api.ArchiveResult{Path: a.path()}

	replaced, err := a.removeStale()
	if err != nil {
		return nil, err
	}
	if replaced {
		fmt.Fprintf(out, "Removed existing %s\n", res.Path)
	}
	res.Replaced = replaced

	fmt.Fprintln(out, "Creating Lambda deployment package...")
	if err := a.write(res); err != nil {
		return nil, err
	}

	info, err := a.Dest.Stat(a.Output)
	if err != nil {
		return nil, &FilesystemError{Op: "stat", Path: res.Path, Err: err}
	}
	res.Size = info.Size()

	a.logger().Info("package created",
		"path", res.Path,
		"entries", len(res.Entries),
		"size", humanize.IBytes(uint64(res.Size)),
	)
	Report(out, res)
	return res, nil
}

// removeStale deletes a previous archive. It reports whether one existed.
func (a *Archiver) removeStale() (bool, error) {
	if _, err := a.Dest.Stat(a.Output); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, &FilesystemError{Op: "stat", Path: a.path(), Err: err}
	}
	if err := a.Dest.Remove(a.Output); err != nil {
		return false, &FilesystemError{Op: "remove", Path: a.path(), Err: err}
	}
	a.logger().Debug("removed stale package", "path", a.path())
	return true, nil
}

// write creates the archive and streams every selected file into it.
// The zip writer and the file are closed on every path, writer first, so
// the central directory is flushed before the file handle goes away.
func (a *Archiver) write(res *api.ArchiveResult) (err error) {
	f, err := a.Dest.Create(a.Output)
	if err != nil {
		return &FilesystemError{Op: "create", Path: res.Path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &FilesystemError{Op: "close", Path: res.Path, Err: cerr}
		}
	}()

	zw := zip.NewWriter(f)
	level := a.Level
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, level)
	})
	defer func() {
		if cerr := zw.Close(); cerr != nil && err == nil {
			err = &FilesystemError{Op: "close", Path: res.Path, Err: cerr}
		}
	}()

	out := a.out()
	return walkRegular(a.Source, func(path string, info os.FileInfo) error {
		name, err := a.addEntry(zw, path, info)
		if err != nil {
			return err
		}
		res.Entries = append(res.Entries, name)
		fmt.Fprintf(out, "  Added: %s\n", name)
		return nil
	})
}

// addEntry copies one source file into the archive under its relative,
// slash-separated name.
func (a *Archiver) addEntry(zw *zip.Writer, path string, info os.FileInfo) (string, error) {
	name := filepath.ToSlash(path)

	src, err := a.Source.Open(path)
	if err != nil {
		return "", &FilesystemError{Op: "open", Path: name, Err: err}
	}
	defer func() { _ = src.Close() }()

	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return "", &FilesystemError{Op: "header", Path: name, Err: err}
	}
	hdr.Name = name
	hdr.Method = zip.Deflate

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return "", &FilesystemError{Op: "write", Path: name, Err: err}
	}
	n, err := io.Copy(w, src)
	if err != nil {
		return "", &FilesystemError{Op: "write", Path: name, Err: err}
	}

	a.logger().Debug("added entry", "entry", name, "size", humanize.IBytes(uint64(n)))
	return name, nil
}

func (a *Archiver) path() string {
	return a.Dest.Join(a.Dest.Root(), a.Output)
}

func (a *Archiver) out() io.Writer {
	if a.Out == nil {
		return io.Discard
	}
	return a.Out
}

func (a *Archiver) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.Default()
	}
	return a.Logger
}
