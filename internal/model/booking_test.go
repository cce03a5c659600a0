package model

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"identical", "09:00", "11:00", "09:00", "11:00", true},
		{"contained", "09:00", "12:00", "10:00", "11:00", true},
		{"partial front", "09:00", "11:00", "10:00", "12:00", true},
		{"partial back", "10:00", "12:00", "09:00", "11:00", true},
		{"touching end-start", "09:00", "11:00", "11:00", "13:00", false},
		{"touching start-end", "11:00", "13:00", "09:00", "11:00", false},
		{"disjoint", "09:00", "10:00", "14:00", "15:00", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd))
			// the test must be symmetric
			assert.Equal(t, tc.want, Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd))
		})
	}
}

// clock renders minutes-from-midnight as a zero-padded HH:MM string.
func clock(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// TestOverlapsRandomized cross-checks the string comparison against
// integer interval arithmetic for randomized intervals, including
// boundary-touching pairs which must never be reported as overlapping.
func TestOverlapsRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 5000; i++ {
		aStart := rng.Intn(23 * 60)
		aEnd := aStart + 1 + rng.Intn(24*60-aStart-1)
		bStart := rng.Intn(23 * 60)
		bEnd := bStart + 1 + rng.Intn(24*60-bStart-1)

		want := aStart < bEnd && aEnd > bStart
		got := Overlaps(clock(aStart), clock(aEnd), clock(bStart), clock(bEnd))
		require.Equalf(t, want, got, "[%d,%d) vs [%d,%d)", aStart, aEnd, bStart, bEnd)
	}
	// force boundary-touching pairs, which random draws rarely produce
	for i := 0; i < 1000; i++ {
		aStart := rng.Intn(22 * 60)
		aEnd := aStart + 1 + rng.Intn(60)
		bEnd := aEnd + 1 + rng.Intn(60)
		require.Falsef(t, Overlaps(clock(aStart), clock(aEnd), clock(aEnd), clock(bEnd)),
			"touching boundary [%d,%d)[%d,%d) must not conflict", aStart, aEnd, aEnd, bEnd)
	}
}

func TestValidClock(t *testing.T) {
	assert.True(t, ValidClock("09:30"))
	assert.True(t, ValidClock("23:59"))
	assert.False(t, ValidClock("9:30"))
	assert.False(t, ValidClock("24:00"))
	assert.False(t, ValidClock("09:60"))
	assert.False(t, ValidClock(""))
}

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate("2026-03-10"))
	assert.False(t, ValidDate("2026-3-10"))
	assert.False(t, ValidDate("10-03-2026"))
	assert.False(t, ValidDate("2026-02-30"))
}

func TestBookingActive(t *testing.T) {
	assert.True(t, (&Booking{Status: BookingPending}).Active())
	assert.True(t, (&Booking{Status: BookingApproved}).Active())
	assert.False(t, (&Booking{Status: BookingRejected}).Active())
	assert.False(t, (&Booking{Status: BookingCancelled}).Active())
}
