package timeline

import (
	"math"
	"testing"
	"time"

	"github.com/ederv/plandeck/internal/dateutil"
)

func day(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}

// grid42 is a six-week grid, 420 units wide (10 units per day)
func grid42() Grid {
	return Grid{Start: day("2025-03-02"), TotalDays: 42, Width: 420}
}

func TestWeekGridSpansWholeWeeks(t *testing.T) {
	// 03-12 (Wed) through 03-25 (Tue) covers three display weeks:
	// Sun 03-09 .. Sat 03-29
	g := WeekGrid(day("2025-03-12"), day("2025-03-25"), 210)

	if got := dateutil.DayString(g.Start); got != "2025-03-09" {
		t.Errorf("grid start = %s, want 2025-03-09", got)
	}
	if g.TotalDays != 21 {
		t.Errorf("grid TotalDays = %d, want 21", g.TotalDays)
	}
}

func TestBarForOffsets(t *testing.T) {
	g := grid42()
	start := dateutil.AddDays(g.Start, 10)
	end := dateutil.AddDays(g.Start, 20)

	bar := g.BarFor(start, end)
	wantLeft := 10.0 / 42 * 100
	wantWidth := 11.0 / 42 * 100 // Inclusive span: offsets 10..20 is 11 days

	if math.Abs(bar.LeftPercent-wantLeft) > 1e-9 {
		t.Errorf("LeftPercent = %f, want %f", bar.LeftPercent, wantLeft)
	}
	if math.Abs(bar.WidthPercent-wantWidth) > 1e-9 {
		t.Errorf("WidthPercent = %f, want %f", bar.WidthPercent, wantWidth)
	}
}

func TestBarForSingleDay(t *testing.T) {
	g := grid42()
	d := dateutil.AddDays(g.Start, 5)
	bar := g.BarFor(d, d)
	if bar.WidthPercent <= 0 {
		t.Errorf("single-day bar must have positive width, got %f", bar.WidthPercent)
	}
}

func TestDeltaDaysSnapping(t *testing.T) {
	g := grid42() // 10 units per day

	for _, tc := range []struct {
		px   float64
		want int
	}{
		{0, 0},
		{4, 0},    // Under half a day rounds to zero
		{5, 1},    // Half rounds up
		{14, 1},   // 1.4 days rounds down
		{20, 2},   // +2 days exactly
		{-20, -2}, // Negative drags snap symmetrically
		{-4, 0},
	} {
		if got := g.DeltaDays(tc.px); got != tc.want {
			t.Errorf("DeltaDays(%f) = %d, want %d", tc.px, got, tc.want)
		}
	}
}

func TestDeltaDaysDegenerateGrid(t *testing.T) {
	g := Grid{Start: day("2025-03-02"), TotalDays: 42, Width: 0}
	if got := g.DeltaDays(100); got != 0 {
		t.Errorf("zero-width grid DeltaDays = %d, want 0", got)
	}
}

func TestDayAtClamps(t *testing.T) {
	g := grid42()
	if got := g.DayAt(-50); !got.Equal(g.Start) {
		t.Errorf("DayAt left of grid = %v, want grid start", got)
	}
	last := dateutil.AddDays(g.Start, 41)
	if got := g.DayAt(9999); !got.Equal(last) {
		t.Errorf("DayAt right of grid = %v, want last day", got)
	}
	if got := g.DayAt(105); !got.Equal(dateutil.AddDays(g.Start, 10)) {
		t.Errorf("DayAt(105) = %v, want day offset 10", got)
	}
}
