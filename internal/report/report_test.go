package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"quickhash/internal/engine"
)

var fixedTime = time.Date(2026, time.August, 26, 15, 4, 5, 0, time.UTC)

func TestRenderBothSections(t *testing.T) {
	rep := &Report{}
	rep.Add(engine.Digest{Path: "/data/a.iso", Hex: "deadbeef", Algorithm: "sha256"})
	rep.Add(engine.Digest{Path: "/data/b.iso", Hex: "cafef00d", Algorithm: "sha256"})
	rep.Add(engine.Failure{Path: "/data/gone", Message: "no such file or directory", Algorithm: "sha256"})
	rep.Add(engine.Progress{Fraction: 0.5}) // must be ignored

	got := rep.Render(fixedTime)
	want := "Results - Saved on August 26, 2026 at 3:04:05 PM UTC:\n" +
		"----------------------------------------\n" +
		"/data/a.iso:deadbeef:sha256\n" +
		"/data/b.iso:cafef00d:sha256\n" +
		"\n" +
		"Errors - Saved on August 26, 2026 at 3:04:05 PM UTC:\n" +
		"----------------------------------------\n" +
		"/data/gone:no such file or directory:sha256\n"
	if got != want {
		t.Fatalf("render mismatch\ngot:\n%q\nwant:\n%q", got, want)
	}
}

func TestRenderResultsOnly(t *testing.T) {
	rep := &Report{}
	rep.Add(engine.Digest{Path: "x", Hex: "ab", Algorithm: "md5"})

	got := rep.Render(fixedTime)
	if strings.Contains(got, "Errors") {
		t.Fatalf("empty error section must be omitted:\n%q", got)
	}
	if !strings.HasPrefix(got, "Results - Saved on ") || !strings.Contains(got, "x:ab:md5\n") {
		t.Fatalf("unexpected render:\n%q", got)
	}
}

func TestRenderErrorsOnly(t *testing.T) {
	rep := &Report{}
	rep.Add(engine.Failure{Path: "y", Message: "permission denied", Algorithm: "sha1"})

	got := rep.Render(fixedTime)
	if strings.Contains(got, "Results") {
		t.Fatalf("empty results section must be omitted:\n%q", got)
	}
	if !strings.HasPrefix(got, "Errors - Saved on ") || !strings.Contains(got, "y:permission denied:sha1\n") {
		t.Fatalf("unexpected render:\n%q", got)
	}
}

func TestRenderEmpty(t *testing.T) {
	rep := &Report{}
	if !rep.Empty() {
		t.Fatalf("new report must be empty")
	}
	if got := rep.Render(fixedTime); got != "" {
		t.Fatalf("empty report rendered %q", got)
	}
}

func TestSaveWritesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.txt")

	if err := Save(path, "hello report\n"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "hello report\n" {
		t.Fatalf("content = %q", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("list dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestResolvePathAvoidsCollisions(t *testing.T) {
	dir := t.TempDir()

	first, err := ResolvePath(dir, "report.txt", false)
	if err != nil {
		t.Fatalf("ResolvePath: %v", err)
	}
	if first != filepath.Join(dir, "report.txt") {
		t.Fatalf("first path = %s", first)
	}
	if err := Save(first, "one"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	second, err := ResolvePath(dir, "report.txt", false)
	if err != nil {
		t.Fatalf("ResolvePath: %v", err)
	}
	if second != filepath.Join(dir, "report (1).txt") {
		t.Fatalf("second path = %s, want (1) suffix", second)
	}

	replacing, err := ResolvePath(dir, "report.txt", true)
	if err != nil {
		t.Fatalf("ResolvePath overwrite: %v", err)
	}
	if replacing != first {
		t.Fatalf("overwrite path = %s, want %s", replacing, first)
	}
}
