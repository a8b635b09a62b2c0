// Package digest provides streaming digest accumulators for the supported
// algorithm set. Accumulators absorb file bytes in arbitrarily sized chunks
// and finalize into a lowercase hex digest; each accumulator is independent
// and safe to construct concurrently.
package digest

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"sort"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/sha3"

	apperrors "quickhash/internal/errors"
)

// DefaultAlgorithm is used when the caller selects nothing.
const DefaultAlgorithm = "sha256"

// DefaultLength is the output byte count for variable-length algorithms.
const DefaultLength = 32

// entry describes one supported algorithm. Exactly one constructor is set:
// fixed for standard hash.Hash algorithms, xof for extendable-output ones.
type entry struct {
	fixed func() (hash.Hash, error)
	xof   func() sha3.ShakeHash
}

var registry = map[string]entry{
	"md5":        {fixed: func() (hash.Hash, error) { return md5.New(), nil }},
	"sha1":       {fixed: func() (hash.Hash, error) { return sha1.New(), nil }},
	"sha224":     {fixed: func() (hash.Hash, error) { return sha256.New224(), nil }},
	"sha256":     {fixed: func() (hash.Hash, error) { return sha256.New(), nil }},
	"sha384":     {fixed: func() (hash.Hash, error) { return sha512.New384(), nil }},
	"sha512":     {fixed: func() (hash.Hash, error) { return sha512.New(), nil }},
	"sha512_224": {fixed: func() (hash.Hash, error) { return sha512.New512_224(), nil }},
	"sha512_256": {fixed: func() (hash.Hash, error) { return sha512.New512_256(), nil }},
	"sha3_224":   {fixed: func() (hash.Hash, error) { return sha3.New224(), nil }},
	"sha3_256":   {fixed: func() (hash.Hash, error) { return sha3.New256(), nil }},
	"sha3_384":   {fixed: func() (hash.Hash, error) { return sha3.New384(), nil }},
	"sha3_512":   {fixed: func() (hash.Hash, error) { return sha3.New512(), nil }},
	"shake_128":  {xof: sha3.NewShake128},
	"shake_256":  {xof: sha3.NewShake256},
	"blake2b":    {fixed: func() (hash.Hash, error) { return blake2b.New512(nil) }},
	"blake2s":    {fixed: func() (hash.Hash, error) { return blake2s.New256(nil) }},
	"blake3":     {fixed: func() (hash.Hash, error) { return blake3.New(), nil }},
}

// Supported returns the supported algorithm names in sorted order.
func Supported() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsSupported reports whether the algorithm name is in the supported set.
func IsSupported(algorithm string) bool {
	_, ok := registry[algorithm]
	return ok
}

// IsVariableLength reports whether the algorithm takes an output length.
func IsVariableLength(algorithm string) bool {
	e, ok := registry[algorithm]
	return ok && e.xof != nil
}

// Option adjusts accumulator construction.
type Option func(*options)

type options struct {
	length int
}

// WithLength sets the output byte count for variable-length algorithms.
// Fixed-output algorithms ignore it.
func WithLength(n int) Option {
	return func(o *options) { o.length = n }
}

// Accumulator is an incremental hash state for one file.
type Accumulator struct {
	algorithm string
	fixed     hash.Hash
	xof       sha3.ShakeHash
	length    int
}

// New creates an accumulator for the named algorithm.
func New(algorithm string, opts ...Option) (*Accumulator, error) {
	e, ok := registry[algorithm]
	if !ok {
		return nil, fmt.Errorf("algorithm %q: %w", algorithm, apperrors.ErrUnsupportedAlgorithm)
	}

	cfg := options{length: DefaultLength}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.length <= 0 {
		return nil, fmt.Errorf("output length must be positive, got %d: %w", cfg.length, apperrors.ErrUsage)
	}

	acc := &Accumulator{algorithm: algorithm, length: cfg.length}
	if e.xof != nil {
		acc.xof = e.xof()
		return acc, nil
	}
	fixed, err := e.fixed()
	if err != nil {
		return nil, fmt.Errorf("create %s state: %w", algorithm, err)
	}
	acc.fixed = fixed
	return acc, nil
}

// Algorithm returns the algorithm name this accumulator computes.
func (a *Accumulator) Algorithm() string { return a.algorithm }

// Write absorbs a chunk of input. Chunk boundaries do not affect the digest.
func (a *Accumulator) Write(p []byte) (int, error) {
	if a.xof != nil {
		return a.xof.Write(p)
	}
	return a.fixed.Write(p)
}

// SumHex finalizes and returns the lowercase hex digest. The accumulator
// state is not consumed; SumHex may be called more than once.
func (a *Accumulator) SumHex() string {
	if a.xof != nil {
		out := make([]byte, a.length)
		// Reading drains XOF state, so finalize a clone instead.
		_, _ = a.xof.Clone().Read(out)
		return hex.EncodeToString(out)
	}
	return hex.EncodeToString(a.fixed.Sum(nil))
}
