package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"

	"quickhash/internal/config"
	"quickhash/internal/digest"
	"quickhash/internal/engine"
	apperrors "quickhash/internal/errors"
	"quickhash/internal/logging"
	"quickhash/internal/report"
)

const (
	// drainInterval and drainBatchSize bound how much consumer work one
	// drain cycle performs, keeping the process responsive to SIGINT.
	drainInterval  = 100 * time.Millisecond
	drainBatchSize = 8
)

func (r *RootCommand) runHash(args []string) error {
	fs := pflag.NewFlagSet("hash", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	algo := fs.StringP("algo", "a", "", `digest algorithm (see "quickhash algos")`)
	length := fs.Int("length", 0, "output bytes for shake algorithms")
	workers := fs.Int("workers", 0, "max concurrent file hashers (default: CPUs-1)")
	all := fs.Bool("all", false, "hash with every supported algorithm")
	output := fs.StringP("output", "o", "", "write a plain-text report to this path")
	overwrite := fs.Bool("overwrite", false, "replace an existing report file instead of numbering it")
	quiet := fs.BoolP("quiet", "q", false, "suppress live progress output")
	configPath := fs.String("config", "", "config file (default: $QUICKHASH_CONFIG)")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn, error")
	helpFlag := fs.BoolP("help", "h", false, "help for hash")

	if err := fs.Parse(args); err != nil {
		return usageError("parse hash flags: %v", err)
	}
	if *helpFlag {
		_, _ = fmt.Fprint(r.out, "Hash files and directories (non-recursive)\n\nUsage:\n  quickhash hash [flags] PATH...\n\nFlags:\n")
		_, _ = fmt.Fprint(r.out, fs.FlagUsages())
		return nil
	}
	paths := fs.Args()
	if len(paths) == 0 {
		return usageError("hash requires at least one file or directory path")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if fs.Changed("algo") {
		cfg.Algorithm = *algo
	}
	if fs.Changed("length") {
		if *length <= 0 {
			return usageError("length must be positive, got %d", *length)
		}
		cfg.ShakeLength = *length
	}
	if fs.Changed("workers") {
		cfg.Workers = *workers
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = *logLevel
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return usageError("%v", err)
	}
	logger := logging.New(r.errOut, level)

	if !digest.IsSupported(cfg.Algorithm) {
		return fmt.Errorf("algorithm %q: %w", cfg.Algorithm, apperrors.ErrUnsupportedAlgorithm)
	}

	algorithms := []string{cfg.Algorithm}
	if *all {
		algorithms = digest.Supported()
	}

	rep := &report.Report{}
	showProgress := !*quiet && writerIsTerminal(r.errOut)
	var runErr error
	for _, name := range algorithms {
		if runErr = r.runJobSet(name, cfg, paths, rep, logger, showProgress); runErr != nil {
			break
		}
	}
	return r.finishReport(*output, *overwrite, rep, logger, runErr)
}

// finishReport saves whatever the runs accumulated, then surfaces runErr. A
// cancelled run still writes its partial results.
func (r *RootCommand) finishReport(output string, overwrite bool, rep *report.Report, logger *slog.Logger, runErr error) error {
	if output == "" {
		return runErr
	}
	if err := r.saveReport(output, overwrite, rep, logger); err != nil {
		if runErr != nil {
			logger.Error("saving report failed", "error", err)
			return runErr
		}
		return err
	}
	return runErr
}

// runJobSet starts one engine job set and drains its result channel in
// bounded batches on a timer, the cadence the surrounding application would
// use for a UI tick. SIGINT cancels the job set; draining then continues
// until the engine closes the channel.
func (r *RootCommand) runJobSet(algorithm string, cfg config.Config, paths []string, rep *report.Report, logger *slog.Logger, showProgress bool) error {
	js, err := engine.Start(context.Background(), engine.Config{
		Algorithm:          algorithm,
		Length:             cfg.ShakeLength,
		Workers:            cfg.Workers,
		ChunkSize:          cfg.ChunkSize,
		LargeChunkSize:     cfg.LargeChunkSize,
		LargeFileThreshold: cfg.LargeFileThreshold,
		Logger:             logger,
	}, paths)
	if err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)

	renderer := newProgressRenderer(r.errOut, showProgress)
	ticker := time.NewTicker(drainInterval)
	defer ticker.Stop()

	digestsBefore, errorsBefore := len(rep.Results), len(rep.Errors)
drain:
	for {
		select {
		case <-sigCh:
			logger.Warn("cancelling job set", "id", js.ID())
			js.Cancel()
		case <-ticker.C:
			if r.drainBatch(js, rep, renderer) {
				break drain
			}
		}
	}
	renderer.Finish()

	logger.Info("job set complete",
		"id", js.ID(),
		"digests", len(rep.Results)-digestsBefore,
		"failures", len(rep.Errors)-errorsBefore,
		"cancelled", js.Err() != nil)

	return js.Err()
}

// drainBatch consumes at most drainBatchSize events and reports whether the
// result channel has been closed.
func (r *RootCommand) drainBatch(js *engine.JobSet, rep *report.Report, renderer *progressRenderer) bool {
	for i := 0; i < drainBatchSize; i++ {
		select {
		case ev, ok := <-js.Events():
			if !ok {
				return true
			}
			r.handleEvent(ev, js, rep, renderer)
		default:
			return false
		}
	}
	return false
}

func (r *RootCommand) handleEvent(ev engine.Event, js *engine.JobSet, rep *report.Report, renderer *progressRenderer) {
	switch e := ev.(type) {
	case engine.Progress:
		renderer.Update(e.Fraction, js.TotalBytes())
	case engine.Digest:
		rep.Add(e)
		_, _ = fmt.Fprintf(r.out, "%s:%s:%s\n", e.Path, e.Hex, e.Algorithm)
	case engine.Failure:
		rep.Add(e)
		_, _ = fmt.Fprintf(r.errOut, "%s:%s:%s\n", e.Path, e.Message, e.Algorithm)
	}
}

func (r *RootCommand) saveReport(path string, overwrite bool, rep *report.Report, logger *slog.Logger) error {
	if rep.Empty() {
		logger.Warn("nothing to save, skipping report", "path", path)
		return nil
	}
	dir, name := filepath.Split(filepath.Clean(path))
	if dir == "" {
		dir = "."
	}
	resolved, err := report.ResolvePath(dir, name, overwrite)
	if err != nil {
		return fmt.Errorf("resolve report path: %w", err)
	}
	if err := report.Save(resolved, rep.Render(time.Now())); err != nil {
		return fmt.Errorf("%w: %w", err, apperrors.ErrIO)
	}
	if _, err := fmt.Fprintf(r.out, "Report saved to %s\n", resolved); err != nil {
		return fmt.Errorf("write report confirmation: %w", err)
	}
	return nil
}
