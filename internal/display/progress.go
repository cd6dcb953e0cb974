package display

import (
	"fmt"
	"io"

	"github.com/alimgiray/gitaudit/internal/services"
	"github.com/schollz/progressbar/v3"
)

// PassProgress shows a progress bar advancing once per history traversal
type PassProgress struct {
	bar *progressbar.ProgressBar
}

func NewPassProgress(w io.Writer) *PassProgress {
	bar := progressbar.NewOptions(len(services.HistoryPasses),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(10),
		progressbar.OptionSetDescription("[cyan]Reading history[reset]"),
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]#[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: "-",
			BarStart:      "[",
			BarEnd:        "]",
		}))
	return &PassProgress{bar: bar}
}

func (p *PassProgress) PassStarted(pass services.HistoryPass) {
	p.bar.Describe(fmt.Sprintf("[cyan]Reading %s history[reset]", pass))
}

func (p *PassProgress) PassFinished(pass services.HistoryPass, stats services.ParseStats) {
	_ = p.bar.Add(1)
}

// Finish completes the bar and moves the cursor past it
func (p *PassProgress) Finish() error {
	return p.bar.Finish()
}
