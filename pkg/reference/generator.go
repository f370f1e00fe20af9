// Package reference provides human-readable reference generation for
// operations and stock moves.
//
// A reference looks like "REC-MBX4K2Q1-7F3A": prefix, the current Unix
// millisecond timestamp in base36, and a 4-character random base36 suffix.
// Uniqueness is probabilistic; storage carries a unique constraint and
// callers retry with a fresh reference on collision.
package reference

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Known prefixes per operation kind.
const (
	PrefixReceipt    = "REC"
	PrefixDelivery   = "DEL"
	PrefixTransfer   = "TRF"
	PrefixAdjustment = "ADJ"
)

const suffixLen = 4

const base36Digits = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Generator produces references for a given prefix.
type Generator interface {
	Next(prefix string) string
}

// Clock returns the current time. Injectable for tests.
type Clock func() time.Time

// TimeRandom is the production Generator: timestamp plus random suffix.
// Safe for concurrent use.
type TimeRandom struct {
	clock Clock

	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a generator with the real clock and a time-seeded source.
func New() *TimeRandom {
	return NewWithSource(time.Now, time.Now().UnixNano())
}

// NewWithSource creates a generator with an explicit clock and seed.
// With a fixed clock and seed the output sequence is fully deterministic,
// which is what tests use.
func NewWithSource(clock Clock, seed int64) *TimeRandom {
	return &TimeRandom{
		clock: clock,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// Next returns the next reference for the prefix.
func (g *TimeRandom) Next(prefix string) string {
	ts := strings.ToUpper(formatBase36(g.clock().UnixMilli()))

	g.mu.Lock()
	suffix := make([]byte, suffixLen)
	for i := range suffix {
		suffix[i] = base36Digits[g.rng.Intn(len(base36Digits))]
	}
	g.mu.Unlock()

	return fmt.Sprintf("%s-%s-%s", prefix, ts, suffix)
}

func formatBase36(v int64) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var b [16]byte
	i := len(b)
	for v > 0 {
		i--
		b[i] = base36Digits[v%36]
		v /= 36
	}
	if neg {
		i--
		b[i] = '-'
	}
	return string(b[i:])
}

// Static is a test Generator returning canned values in order.
type Static struct {
	mu     sync.Mutex
	Values []string
	next   int
}

// Next implements Generator. After the canned values run out it falls back
// to "PREFIX-STATIC-NNNN".
func (s *Static) Next(prefix string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next < len(s.Values) {
		v := s.Values[s.next]
		s.next++
		return v
	}
	s.next++
	return fmt.Sprintf("%s-STATIC-%04d", prefix, s.next)
}

// Ensure compile-time interface compliance.
var (
	_ Generator = (*TimeRandom)(nil)
	_ Generator = (*Static)(nil)
)
