package digest

import (
	"errors"
	"sort"
	"testing"

	apperrors "quickhash/internal/errors"
)

func TestKnownVectors(t *testing.T) {
	cases := []struct {
		algorithm string
		input     string
		want      string
	}{
		{"sha256", "abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{"sha256", "helloworld", "936a185caaa266bb9cbe981e9e05cb78cd732b0b3280eb944412bb6f8f8f07af"},
		{"sha256", "", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"md5", "hello", "5d41402abc4b2a76b9719d911017c592"},
		{"sha3_256", "helloworld", "92dad9443e4dd6d70a7f11872101ebff87e21798e4fbb26fa4bf590eb440e71b"},
		{"shake_128", "helloworld", "c10fb3319e7b048b84ed8ead46abbb9f2305f595ced48174125064d734a07a3a"},
	}

	for _, tc := range cases {
		acc, err := New(tc.algorithm)
		if err != nil {
			t.Fatalf("New(%s) error = %v", tc.algorithm, err)
		}
		_, _ = acc.Write([]byte(tc.input))
		if got := acc.SumHex(); got != tc.want {
			t.Fatalf("%s(%q) = %s, want %s", tc.algorithm, tc.input, got, tc.want)
		}
	}
}

func TestChunkingDoesNotAffectDigest(t *testing.T) {
	input := []byte("the quick brown fox jumps over the lazy dog, twice over")
	for _, algorithm := range Supported() {
		whole, err := New(algorithm)
		if err != nil {
			t.Fatalf("New(%s) error = %v", algorithm, err)
		}
		_, _ = whole.Write(input)

		chunked, err := New(algorithm)
		if err != nil {
			t.Fatalf("New(%s) error = %v", algorithm, err)
		}
		for i := 0; i < len(input); i += 3 {
			end := i + 3
			if end > len(input) {
				end = len(input)
			}
			_, _ = chunked.Write(input[i:end])
		}

		if whole.SumHex() != chunked.SumHex() {
			t.Fatalf("%s: chunked digest %s differs from single-write %s", algorithm, chunked.SumHex(), whole.SumHex())
		}
	}
}

func TestUnsupportedAlgorithm(t *testing.T) {
	_, err := New("sha1337")
	if err == nil {
		t.Fatalf("expected error for unsupported algorithm")
	}
	if !errors.Is(err, apperrors.ErrUnsupportedAlgorithm) {
		t.Fatalf("error = %v, want ErrUnsupportedAlgorithm", err)
	}
}

func TestShakeOutputLength(t *testing.T) {
	def, err := New("shake_128")
	if err != nil {
		t.Fatalf("New(shake_128) error = %v", err)
	}
	_, _ = def.Write([]byte("helloworld"))
	if got := len(def.SumHex()); got != 64 {
		t.Fatalf("default shake_128 hex length = %d, want 64", got)
	}

	short, err := New("shake_128", WithLength(16))
	if err != nil {
		t.Fatalf("New(shake_128, 16) error = %v", err)
	}
	_, _ = short.Write([]byte("helloworld"))
	if got := len(short.SumHex()); got != 32 {
		t.Fatalf("shake_128 with 16-byte output: hex length = %d, want 32", got)
	}
	if def.SumHex()[:32] != short.SumHex() {
		t.Fatalf("shorter shake output should be a prefix of the longer one")
	}

	fixed, err := New("sha256", WithLength(16))
	if err != nil {
		t.Fatalf("New(sha256, 16) error = %v", err)
	}
	_, _ = fixed.Write([]byte("abc"))
	if got := len(fixed.SumHex()); got != 64 {
		t.Fatalf("fixed algorithm must ignore length option, hex length = %d", got)
	}
}

func TestSumHexIsRepeatable(t *testing.T) {
	for _, algorithm := range []string{"sha256", "shake_256", "blake3"} {
		acc, err := New(algorithm)
		if err != nil {
			t.Fatalf("New(%s) error = %v", algorithm, err)
		}
		_, _ = acc.Write([]byte("repeat me"))
		first := acc.SumHex()
		second := acc.SumHex()
		if first != second {
			t.Fatalf("%s: SumHex not repeatable: %s vs %s", algorithm, first, second)
		}
	}
}

func TestSupportedSetIsSortedAndComplete(t *testing.T) {
	names := Supported()
	if !sort.StringsAreSorted(names) {
		t.Fatalf("Supported() not sorted: %v", names)
	}
	required := []string{
		"md5", "sha1", "sha224", "sha256", "sha384", "sha512",
		"sha512_224", "sha512_256", "sha3_224", "sha3_256", "sha3_384",
		"sha3_512", "shake_128", "shake_256", "blake2b", "blake2s", "blake3",
	}
	if len(names) != len(required) {
		t.Fatalf("Supported() has %d algorithms, want %d: %v", len(names), len(required), names)
	}
	for _, name := range required {
		if !IsSupported(name) {
			t.Fatalf("expected %q to be supported", name)
		}
	}
	if !IsVariableLength("shake_128") || IsVariableLength("sha256") {
		t.Fatalf("variable-length classification wrong")
	}
}
