package reference

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func TestNext_Format(t *testing.T) {
	at := time.UnixMilli(1700000000000)
	gen := NewWithSource(fixedClock(at), 1)

	ref := gen.Next(PrefixReceipt)

	parts := strings.Split(ref, "-")
	require.Len(t, parts, 3)
	assert.Equal(t, "REC", parts[0])
	assert.Equal(t, strings.ToUpper(formatBase36(at.UnixMilli())), parts[1])
	assert.Len(t, parts[2], suffixLen)
	for _, c := range parts[2] {
		assert.Contains(t, base36Digits, string(c))
	}
}

func TestNext_DeterministicWithSeed(t *testing.T) {
	at := time.UnixMilli(1700000000000)

	a := NewWithSource(fixedClock(at), 42)
	b := NewWithSource(fixedClock(at), 42)

	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Next(PrefixTransfer), b.Next(PrefixTransfer))
	}
}

func TestNext_UniqueOverBurst(t *testing.T) {
	// The clock is frozen, so uniqueness rests entirely on the suffix.
	// 36^4 keyspace vs 500 draws keeps the birthday bound comfortable.
	gen := NewWithSource(fixedClock(time.UnixMilli(1700000000000)), 7)

	seen := make(map[string]struct{})
	for i := 0; i < 500; i++ {
		ref := gen.Next(PrefixAdjustment)
		_, dup := seen[ref]
		require.False(t, dup, "duplicate reference %s", ref)
		seen[ref] = struct{}{}
	}
}

func TestStatic_ReturnsCannedThenFallback(t *testing.T) {
	s := &Static{Values: []string{"REC-A", "REC-B"}}

	assert.Equal(t, "REC-A", s.Next(PrefixReceipt))
	assert.Equal(t, "REC-B", s.Next(PrefixReceipt))
	assert.Equal(t, "REC-STATIC-0003", s.Next(PrefixReceipt))
}
