package archive

import (
	"os"
	"sort"

	billy "github.com/go-git/go-billy/v5"
)

// visitFunc is called once per selected file. path is relative to the
// source root in host form; info describes the bytes that will be read.
type visitFunc func(path string, info os.FileInfo) error

// walkRegular visits every regular file under the root of src, depth first,
// each directory's entries in name order. Directories are descended into but
// never reported. A symlink counts when it resolves to a regular file; links
// to directories and dangling links are skipped, as are devices, pipes and
// sockets.
func walkRegular(src billy.Filesystem, fn visitFunc) error {
	return walkDir(src, ".", fn)
}

func walkDir(src billy.Filesystem, dir string, fn visitFunc) error {
	infos, err := src.ReadDir(dir)
	if err != nil {
		return &FilesystemError{Op: "walk", Path: src.Join(src.Root(), dir), Err: err}
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name() < infos[j].Name() })

	for _, info := range infos {
		path := src.Join(dir, info.Name())

		mode := info.Mode()
		switch {
		case mode.IsDir():
			if err := walkDir(src, path, fn); err != nil {
				return err
			}
			continue
		case mode&os.ModeSymlink != 0:
			target, err := src.Stat(path)
			if err != nil || !target.Mode().IsRegular() {
				continue
			}
			info = target
		case !mode.IsRegular():
			continue
		}

		if err := fn(path, info); err != nil {
			return err
		}
	}
	return nil
}
