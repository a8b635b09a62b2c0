package engine

import (
	"context"
	"io"
	"os"

	"quickhash/internal/digest"
	"quickhash/internal/scan"
)

// hashFile streams one file through a fresh accumulator, reporting progress
// after every chunk. Cancellation is checked before each read and again at
// the chunk boundary; an interrupted file emits no outcome at all.
func hashFile(ctx context.Context, job scan.Job, cfg Config, prog *tracker, emit func(Event)) {
	acc, err := digest.New(cfg.Algorithm, digest.WithLength(cfg.Length))
	if err != nil {
		emit(Failure{Path: job.Path, Message: err.Error(), Algorithm: cfg.Algorithm})
		return
	}

	file, err := os.Open(job.Path)
	if err != nil {
		emit(Failure{Path: job.Path, Message: err.Error(), Algorithm: cfg.Algorithm})
		return
	}
	defer func() { _ = file.Close() }()

	// Larger chunks amortize per-read overhead on big files while keeping
	// the per-worker buffer bounded for everything else.
	chunk := cfg.ChunkSize
	if job.Size > cfg.LargeFileThreshold {
		chunk = cfg.LargeChunkSize
	}
	buf := make([]byte, chunk)

	for {
		if ctx.Err() != nil {
			return
		}
		n, readErr := file.Read(buf)
		if n > 0 {
			_, _ = acc.Write(buf[:n])
			emit(Progress{Fraction: prog.add(int64(n))})
		}
		if ctx.Err() != nil {
			return
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			emit(Failure{Path: job.Path, Message: readErr.Error(), Algorithm: cfg.Algorithm})
			return
		}
	}

	emit(Digest{Path: job.Path, Hex: acc.SumHex(), Algorithm: cfg.Algorithm})
}
