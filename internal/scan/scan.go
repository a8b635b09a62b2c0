// Package scan expands user-supplied paths into a flat set of regular-file
// hashing jobs. Directories contribute their immediate regular files only;
// sub-directories are skipped, never recursed into.
package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Job is one regular file queued for hashing.
type Job struct {
	Path string
	Size int64
}

// Failure records a path that could not be enumerated. Failures bypass
// hashing entirely and are forwarded straight to the consumer.
type Failure struct {
	Path    string
	Message string
}

// Result is the expanded job set for one hashing request.
type Result struct {
	Jobs       []Job
	TotalBytes int64
	Failures   []Failure
}

// Enumerate expands paths into jobs, recording a failure for every path that
// cannot be listed or statted. Enumeration of remaining paths continues past
// individual failures. The context is checked between paths so a cancelled
// job set stops expanding.
func Enumerate(ctx context.Context, paths []string) Result {
	var res Result
	for _, path := range paths {
		if ctx.Err() != nil {
			return res
		}
		path = filepath.Clean(path)

		info, err := os.Stat(path)
		if err != nil {
			res.fail(path, err.Error())
			continue
		}

		switch {
		case info.Mode().IsRegular():
			res.add(path, info.Size())
		case info.IsDir():
			res.listDir(path)
		default:
			res.fail(path, fmt.Sprintf("not a regular file or directory (mode %s)", info.Mode()))
		}
	}
	return res
}

// listDir adds the directory's immediate regular files. A listing error is
// keyed on the directory path; a stat error on an entry is keyed on the
// entry path and does not abort the rest of the directory.
func (r *Result) listDir(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		r.fail(dir, err.Error())
		return
	}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			r.fail(path, err.Error())
			continue
		}
		r.add(path, info.Size())
	}
}

func (r *Result) add(path string, size int64) {
	r.Jobs = append(r.Jobs, Job{Path: path, Size: size})
	r.TotalBytes += size
}

func (r *Result) fail(path, message string) {
	r.Failures = append(r.Failures, Failure{Path: path, Message: message})
}
