package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSnapQuarter(t *testing.T) {
	cases := []struct {
		name       string
		rawQuarter float64
		expected   int
		ok         bool
	}{
		{name: "exact quarter", rawQuarter: 2.0, expected: 2, ok: true},
		{name: "within threshold below", rawQuarter: 1.7, expected: 2, ok: true},
		{name: "within threshold above", rawQuarter: 2.3, expected: 2, ok: true},
		{name: "just inside threshold", rawQuarter: 1.66, expected: 2, ok: true},
		{name: "midpoint rejected", rawQuarter: 1.5, ok: false},
		{name: "outside threshold", rawQuarter: 2.4, ok: false},
		{name: "start of hour", rawQuarter: 0.1, expected: 0, ok: true},
		{name: "end of hour", rawQuarter: 2.9, expected: 3, ok: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			quarter, ok := SnapQuarter(tc.rawQuarter)

			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.expected, quarter)
			}
		})
	}
}

func TestSnapTime(t *testing.T) {
	cellStart := time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC)

	snapped, ok := SnapTime(cellStart, 1.8)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2025, 11, 3, 10, 30, 0, 0, time.UTC), snapped)

	snapped, ok = SnapTime(cellStart, 0.2)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC), snapped)

	_, ok = SnapTime(cellStart, 1.5)
	assert.False(t, ok)
}

func TestSnapTime_MidHourCell(t *testing.T) {
	// Смещение внутри часа отбрасывается: ячейка привязана к началу часа
	cellStart := time.Date(2025, 11, 3, 10, 20, 0, 0, time.UTC)

	snapped, ok := SnapTime(cellStart, 3.1)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2025, 11, 3, 10, 45, 0, 0, time.UTC), snapped)
}
