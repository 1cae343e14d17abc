package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
)

// spinnerFrames is the braille animation cycled on stderr while a slow
// impedance sweep or render runs.
var spinnerFrames = [...]string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// spinner animates a label on stderr until Stop is called or the parent
// context is cancelled. Stdout stays free for artifact bytes.
type spinner struct {
	label  string
	cancel context.CancelFunc
	idle   chan struct{}
}

// startSpinner begins animating label and returns the running spinner.
func startSpinner(ctx context.Context, label string) *spinner {
	ctx, cancel := context.WithCancel(ctx)
	s := &spinner{label: label, cancel: cancel, idle: make(chan struct{})}

	go func() {
		defer close(s.idle)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()

		for frame := 0; ; frame++ {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				glyph := spinnerFrames[frame%len(spinnerFrames)]
				fmt.Fprintf(os.Stderr, "\r%s %s", styleIconSpinner.Render(glyph), StyleDim.Render(s.label))
			}
		}
	}()
	return s
}

// Stop halts the animation and erases the spinner line.
func (s *spinner) Stop() {
	s.cancel()
	<-s.idle
	fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", len(s.label)+4))
}
