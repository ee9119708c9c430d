package ui

import (
	"context"
	"fmt"
	"os"
	"time"
)

var spinnerFrames = []rune{'⠋', '⠙', '⠹', '⠸', '⠼', '⠴', '⠦', '⠧', '⠇', '⠏'}

// Spinner shows animated feedback while a blocking wait runs
type Spinner struct {
	output *OutputHandler
}

func NewSpinner(output *OutputHandler) *Spinner {
	return &Spinner{output: output}
}

// Wait blocks for the given duration, animating when attached to a terminal.
// Very short waits skip the animation to avoid flicker.
func (s *Spinner) Wait(ctx context.Context, message string, duration time.Duration) error {
	if duration < 500*time.Millisecond || !s.output.IsTTY() {
		if duration >= 500*time.Millisecond {
			fmt.Fprintf(os.Stderr, "%s: waiting %s\n", message, formatDuration(duration))
		}
		select {
		case <-time.After(duration):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	start := time.Now()
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	frame := 0
	for {
		select {
		case <-ticker.C:
			remaining := duration - time.Since(start)
			if remaining <= 0 {
				fmt.Fprint(os.Stderr, "\r\033[2K")
				return nil
			}
			fmt.Fprintf(os.Stderr, "\r\033[2K%c %s (%s left)",
				spinnerFrames[frame%len(spinnerFrames)], message, formatDuration(remaining))
			frame++
		case <-ctx.Done():
			fmt.Fprint(os.Stderr, "\r\033[2K")
			return ctx.Err()
		}
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Round(time.Second).Seconds()))
	}
	return d.Round(time.Second).String()
}
