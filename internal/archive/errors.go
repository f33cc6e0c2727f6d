package archive

import "fmt"

// FilesystemError reports a failed filesystem operation while packaging.
// It covers the source tree, the stale archive and the new archive alike;
// none of these failures are retried.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }
