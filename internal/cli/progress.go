package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/schollz/progressbar/v3"
)

// ProgressReader reports read progress of an import source on a bar.
type ProgressReader struct {
	reader progressbar.Reader
	bar    *progressbar.ProgressBar
}

// NewProgressReader wraps r with a byte progress bar written to w.
// A non-positive size renders an indeterminate spinner.
func NewProgressReader(r io.Reader, w io.Writer, size int64, description string) *ProgressReader {
	if size <= 0 {
		size = -1
	}
	bar := progressbar.NewOptions64(size,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription(fmt.Sprintf("[cyan][bold]%s[reset]", description)),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(w); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
	return &ProgressReader{
		reader: progressbar.NewReader(r, bar),
		bar:    bar,
	}
}

// Read implements io.Reader.
func (p *ProgressReader) Read(b []byte) (int, error) {
	return p.reader.Read(b)
}

// Finish completes the bar.
func (p *ProgressReader) Finish() {
	if err := p.bar.Finish(); err != nil {
		slog.Warn("Failed to finish progress bar", "error", err)
	}
}
