package api

// Fixed locations used when the packager runs without overrides.
const (
	DefaultSourceDir = "BookSpot.API/publish"
	DefaultOutput    = "bookspot-api.zip"
)

// MiB is one binary megabyte.
const MiB = 1024 * 1024

// SizeLimit is the largest package Lambda accepts as a direct upload.
// Packages at or above it should be deployed through S3.
const SizeLimit = 50 * MiB

// ArchiveResult describes a finished deployment package.
type ArchiveResult struct {
	// Path of the archive on disk.
	Path string `json:"path"`
	// Entries holds the archive entry names in write order.
	Entries []string `json:"entries"`
	// Size of the closed archive in bytes.
	Size int64 `json:"size"`
	// Replaced is true when a stale archive was removed first.
	Replaced bool `json:"replaced"`
}

// SizeMB returns the archive size in binary megabytes.
func (r *ArchiveResult) SizeMB() float64 {
	return float64(r.Size) / MiB
}

// ExceedsLimit reports whether the archive is too large for a direct upload.
func (r *ArchiveResult) ExceedsLimit() bool {
	return r.Size >= SizeLimit
}
