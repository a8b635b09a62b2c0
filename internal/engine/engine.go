// Package engine runs batch file hashing jobs: it expands input paths into
// a job set, streams every file through the selected digest algorithm under
// a bounded worker pool, and delivers progress and per-file outcomes over an
// asynchronous result channel. Producers never block on a slow consumer.
package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"quickhash/internal/digest"
	apperrors "quickhash/internal/errors"
	"quickhash/internal/logging"
	"quickhash/internal/scan"
)

const (
	// DefaultChunkSize is the read size for ordinary files.
	DefaultChunkSize = 1 << 20
	// DefaultLargeChunkSize is the read size above the large-file threshold.
	DefaultLargeChunkSize = 4 << 20
	// DefaultLargeFileThreshold selects the large chunk size.
	DefaultLargeFileThreshold = 100 << 20
)

// DefaultWorkers reserves one unit of parallelism for the consumer.
func DefaultWorkers() int {
	if n := runtime.NumCPU() - 1; n > 1 {
		return n
	}
	return 1
}

// Config selects the algorithm and tunes scheduling for one job set.
type Config struct {
	Algorithm          string
	Length             int // output bytes for variable-length algorithms
	Workers            int
	ChunkSize          int
	LargeChunkSize     int
	LargeFileThreshold int64
	Logger             *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.Algorithm == "" {
		c.Algorithm = digest.DefaultAlgorithm
	}
	if c.Length <= 0 {
		c.Length = digest.DefaultLength
	}
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers()
	}
	if c.ChunkSize <= 0 {
		c.ChunkSize = DefaultChunkSize
	}
	if c.LargeChunkSize <= 0 {
		c.LargeChunkSize = DefaultLargeChunkSize
	}
	if c.LargeFileThreshold <= 0 {
		c.LargeFileThreshold = DefaultLargeFileThreshold
	}
	if c.Logger == nil {
		c.Logger = logging.New(io.Discard, slog.LevelError)
	}
	return c
}

// JobSet is the handle for one in-flight hashing request. Each job set owns
// its own progress counter and cancellation signal.
type JobSet struct {
	id     string
	ctx    context.Context
	cancel context.CancelFunc

	in     chan Event // producers write here, never blocking for long
	events chan Event // consumer reads here
	done   chan struct{}

	totalBytes atomic.Int64
	jobCount   atomic.Int64
}

// Start validates the algorithm, then expands and hashes paths in the
// background. An unsupported algorithm fails the whole job set up front; all
// later errors are delivered per file as Failure events.
func Start(ctx context.Context, cfg Config, paths []string) (*JobSet, error) {
	cfg = cfg.withDefaults()
	if _, err := digest.New(cfg.Algorithm, digest.WithLength(cfg.Length)); err != nil {
		return nil, err
	}

	jsCtx, cancel := context.WithCancel(ctx)
	js := &JobSet{
		id:     fmt.Sprintf("%s-%d", cfg.Algorithm, time.Now().UnixNano()),
		ctx:    jsCtx,
		cancel: cancel,
		in:     make(chan Event),
		events: make(chan Event),
		done:   make(chan struct{}),
	}

	go js.pump()
	go js.run(cfg, paths)
	return js, nil
}

// ID identifies this job set in logs.
func (js *JobSet) ID() string { return js.id }

// Events returns the result channel. It is closed once every started job
// has either delivered its outcome or been abandoned by cancellation; the
// consumer must drain until close.
func (js *JobSet) Events() <-chan Event { return js.events }

// Cancel requests cooperative cancellation: no new jobs start and in-flight
// reads stop at the next chunk boundary without emitting an outcome.
func (js *JobSet) Cancel() { js.cancel() }

// Done is closed once every job has been attempted or abandoned. Events
// already produced may still be queued for delivery at that point.
func (js *JobSet) Done() <-chan struct{} { return js.done }

// Completed reports whether the job set has finished producing events.
func (js *JobSet) Completed() bool {
	select {
	case <-js.done:
		return true
	default:
		return false
	}
}

// Err reports why the job set stopped early. It returns a cancellation error
// once Cancel has been called or the parent context expired, nil otherwise.
func (js *JobSet) Err() error {
	if js.ctx.Err() != nil {
		return fmt.Errorf("job set %s: %w", js.id, apperrors.ErrCancelled)
	}
	return nil
}

// TotalBytes returns the byte estimate computed during enumeration. It is
// zero until enumeration finishes.
func (js *JobSet) TotalBytes() int64 { return js.totalBytes.Load() }

// JobCount returns the number of files enumerated for hashing.
func (js *JobSet) JobCount() int { return int(js.jobCount.Load()) }

func (js *JobSet) emit(ev Event) {
	js.in <- ev
}

// run enumerates synchronously, then fans the jobs out to a bounded pool.
func (js *JobSet) run(cfg Config, paths []string) {
	defer close(js.done)
	defer close(js.in)

	result := scan.Enumerate(js.ctx, paths)
	js.totalBytes.Store(result.TotalBytes)
	js.jobCount.Store(int64(len(result.Jobs)))
	cfg.Logger.Info("job set enumerated",
		"id", js.id,
		"algorithm", cfg.Algorithm,
		"jobs", len(result.Jobs),
		"total_bytes", result.TotalBytes,
		"failures", len(result.Failures))

	for _, f := range result.Failures {
		js.emit(Failure{Path: f.Path, Message: f.Message, Algorithm: cfg.Algorithm})
	}

	// Nothing was enumerated: signal instant completion.
	if len(result.Jobs) == 0 {
		js.emit(Progress{Fraction: 1.0})
		return
	}
	// A job set of only zero-byte files has no byte progress to report.
	// Complete the progress up front but still hash every file, so empty
	// files deliver their digest.
	if result.TotalBytes == 0 {
		js.emit(Progress{Fraction: 1.0})
	}

	prog := &tracker{total: result.TotalBytes}
	workers := cfg.Workers
	if workers > len(result.Jobs) {
		workers = len(result.Jobs)
	}

	jobs := make(chan scan.Job)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				if js.ctx.Err() != nil {
					continue
				}
				hashFile(js.ctx, job, cfg, prog, js.emit)
			}
		}()
	}

feed:
	for _, job := range result.Jobs {
		select {
		case jobs <- job:
		case <-js.ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
}

// pump decouples producers from the consumer: events accumulate in an
// in-memory queue so hasher goroutines never wait on consumer cadence.
// Workers increment the shared counter and emit in two separate steps, so
// progress events can arrive here slightly out of order; stale fractions
// are dropped to keep the delivered sequence monotone.
func (js *JobSet) pump() {
	defer close(js.events)

	var queue []Event
	maxFraction := -1.0
	in := js.in
	for in != nil || len(queue) > 0 {
		var out chan Event
		var next Event
		if len(queue) > 0 {
			out = js.events
			next = queue[0]
		}
		select {
		case ev, ok := <-in:
			if !ok {
				in = nil
				continue
			}
			if p, isProgress := ev.(Progress); isProgress {
				if p.Fraction <= maxFraction {
					continue
				}
				maxFraction = p.Fraction
			}
			queue = append(queue, ev)
		case out <- next:
			queue = queue[1:]
		}
	}
}
