package app

import "testing"

func TestRunVersionReturnsZero(t *testing.T) {
	application := New()
	if code := application.Run([]string{"version"}); code != 0 {
		t.Fatalf("version exit code = %d, want 0", code)
	}
}

func TestRunHashWithoutPathsReturnsUsageCode(t *testing.T) {
	application := New()
	if code := application.Run([]string{"hash"}); code != 2 {
		t.Fatalf("hash without paths exit code = %d, want 2", code)
	}
}

func TestRunUnknownAlgorithmReturnsDedicatedCode(t *testing.T) {
	t.Setenv("QUICKHASH_CONFIG", "")
	application := New()
	if code := application.Run([]string{"hash", "--algo", "rot13", "x"}); code != 3 {
		t.Fatalf("unsupported algorithm exit code = %d, want 3", code)
	}
}
