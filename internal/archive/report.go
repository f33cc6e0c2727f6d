package archive

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/bookspot/lambdapack/api"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	warnColor    = color.New(color.FgYellow)
)

// Report prints the summary for a finished package. The size warning is
// advisory only.
func Report(w io.Writer, res *api.ArchiveResult) {
	fmt.Fprintln(w)
	successColor.Fprintf(w, "✅ Lambda package created: %s\n", res.Path)
	fmt.Fprintf(w, "📦 Package size: %.2f MB\n", res.SizeMB())

	if res.ExceedsLimit() {
		warnColor.Fprintf(w, "⚠️  Warning: Package exceeds %dMB. Consider using S3 for deployment.\n", api.SizeLimit/api.MiB)
	}
}
