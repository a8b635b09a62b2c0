package engine

// Event is one item delivered on a job set's result channel. Exactly three
// kinds exist: Progress, Digest and Failure. A file abandoned by
// cancellation produces no event at all.
type Event interface{ event() }

// Progress carries the aggregate hashed fraction across all files of the
// job set, clamped to [0.0, 1.0].
type Progress struct {
	Fraction float64
}

// Digest is the successful outcome for one file.
type Digest struct {
	Path      string
	Hex       string
	Algorithm string
}

// Failure is the failed outcome for one file or unreadable path.
type Failure struct {
	Path      string
	Message   string
	Algorithm string
}

func (Progress) event() {}
func (Digest) event()   {}
func (Failure) event()  {}
