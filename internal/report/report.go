// Package report renders accumulated hashing outcomes into the plain-text
// results file and saves it atomically.
package report

import (
	"strings"
	"time"

	"quickhash/internal/engine"
)

const rule = "----------------------------------------"

// timestampLayout is the long human-readable form used in section headers.
const timestampLayout = "January 2, 2006 at 3:04:05 PM MST"

// Report accumulates per-file outcomes in arrival order.
type Report struct {
	Results []engine.Digest
	Errors  []engine.Failure
}

// Add records an outcome event. Progress events are ignored.
func (r *Report) Add(ev engine.Event) {
	switch e := ev.(type) {
	case engine.Digest:
		r.Results = append(r.Results, e)
	case engine.Failure:
		r.Errors = append(r.Errors, e)
	}
}

// Empty reports whether there is nothing to save.
func (r *Report) Empty() bool {
	return len(r.Results) == 0 && len(r.Errors) == 0
}

// Render produces the report text. Each section appears only when it has
// entries; entries are one path:value:algorithm line each.
func (r *Report) Render(now time.Time) string {
	ts := now.Format(timestampLayout)
	var b strings.Builder

	if len(r.Results) > 0 {
		b.WriteString("Results - Saved on " + ts + ":\n")
		b.WriteString(rule + "\n")
		for _, d := range r.Results {
			b.WriteString(d.Path + ":" + d.Hex + ":" + d.Algorithm + "\n")
		}
	}
	if len(r.Errors) > 0 {
		if len(r.Results) > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Errors - Saved on " + ts + ":\n")
		b.WriteString(rule + "\n")
		for _, f := range r.Errors {
			b.WriteString(f.Path + ":" + f.Message + ":" + f.Algorithm + "\n")
		}
	}
	return b.String()
}
