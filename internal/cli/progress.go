package cli

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/schollz/progressbar/v3"

	"github.com/Veraticus/easy-style/internal/styling"
)

var stageOrder = []styling.Stage{
	styling.StagePlanning,
	styling.StageResolvingProducts,
	styling.StageSynthesizing,
	styling.StageCropping,
	styling.StageDone,
}

// StageProgress draws a progress bar that advances with the styling pipeline.
type StageProgress struct {
	bar *progressbar.ProgressBar
	mu  sync.Mutex
}

// NewStageProgress creates a progress bar writing to w.
func NewStageProgress(w io.Writer) *StageProgress {
	bar := progressbar.NewOptions(len(stageOrder)-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription("[magenta][bold]"+StageLabel(styling.StagePlanning)+"[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[magenta]=[reset]",
			SaucerHead:    "[magenta]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprintln(w)
		}),
	)
	return &StageProgress{bar: bar}
}

// Update moves the bar to stage. It has the signature of styling.ProgressFunc.
func (p *StageProgress) Update(stage styling.Stage) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, s := range stageOrder {
		if s != stage {
			continue
		}
		p.bar.Describe("[magenta][bold]" + StageLabel(stage) + "[reset]")
		if err := p.bar.Set(i); err != nil {
			slog.Warn("Failed to update progress bar", "error", err)
		}
		return
	}
}

// Finished reports whether the bar reached the final stage.
func (p *StageProgress) Finished() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bar.IsFinished()
}
