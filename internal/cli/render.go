package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"
)

// progressRenderer draws a single-line live progress display. It stays
// silent unless enabled, and throttles redraws so a flood of progress
// events does not melt the terminal.
type progressRenderer struct {
	w          io.Writer
	enabled    bool
	lastTick   time.Time
	minTickGap time.Duration
	started    bool
}

func newProgressRenderer(w io.Writer, enabled bool) *progressRenderer {
	return &progressRenderer{w: w, enabled: enabled, minTickGap: 150 * time.Millisecond}
}

// Update redraws the progress line at throttled intervals.
func (p *progressRenderer) Update(fraction float64, total int64) {
	if !p.enabled {
		return
	}
	now := time.Now()
	if now.Sub(p.lastTick) < p.minTickGap && fraction < 1.0 {
		return
	}
	hashed := int64(fraction * float64(total))
	_, _ = fmt.Fprintf(p.w, "\rhashing %3.0f%% (%s/%s)", fraction*100, humanBytes(hashed), humanBytes(total))
	p.lastTick = now
	p.started = true
}

// Finish terminates the progress line so later output starts cleanly.
func (p *progressRenderer) Finish() {
	if p.started {
		_, _ = fmt.Fprintln(p.w)
	}
}

// writerIsTerminal reports whether w is an interactive terminal; progress
// lines are suppressed for pipes and files.
func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func humanBytes(v int64) string {
	if v < 0 {
		v = 0
	}
	units := []string{"B", "KB", "MB", "GB", "TB"}
	val := float64(v)
	u := 0
	for val >= 1024 && u < len(units)-1 {
		val /= 1024
		u++
	}
	return fmt.Sprintf("%.1f%s", val, units[u])
}
