package analyze

import (
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// newProgressBar shows bytes read out of size; a size of -1 (stdin,
// compressed files) turns it into a spinner.
func newProgressBar(w io.Writer, size int64, desc string) *progressbar.ProgressBar {
	return progressbar.NewOptions64(size,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(desc),
		progressbar.OptionShowBytes(true),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}
