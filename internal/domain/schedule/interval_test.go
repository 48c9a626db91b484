package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeToMinutes(t *testing.T) {
	cases := map[string]int{
		"00:00":    0,
		"09:30":    570,
		"13:00:00": 780,
		"23:59":    1439,
		"24:00":    1440,
	}
	for in, want := range cases {
		got, err := TimeToMinutes(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "9:00", "25:00", "12:60", "aa:bb", "12", "24:30", "10:00:61"} {
		_, err := TimeToMinutes(bad)
		assert.Error(t, err, bad)
	}
}

func TestMinutesToTimeRoundTrip(t *testing.T) {
	for m := 0; m <= MinutesPerDay; m += 7 {
		back, err := TimeToMinutes(MinutesToTime(m))
		require.NoError(t, err)
		assert.Equal(t, m, back)
	}
}

func TestIntervalsOverlap(t *testing.T) {
	t.Run("touching endpoints are free", func(t *testing.T) {
		assert.False(t, IntervalsOverlap(540, 570, 570, 600))
		assert.False(t, IntervalsOverlap(570, 600, 540, 570))
	})

	t.Run("symmetric", func(t *testing.T) {
		pairs := [][4]int{
			{540, 600, 570, 630},
			{540, 600, 550, 560},
			{540, 600, 600, 660},
			{0, 10, 20, 30},
		}
		for _, p := range pairs {
			assert.Equal(t,
				IntervalsOverlap(p[0], p[1], p[2], p[3]),
				IntervalsOverlap(p[2], p[3], p[0], p[1]),
			)
		}
	})

	t.Run("containment overlaps", func(t *testing.T) {
		assert.True(t, IntervalsOverlap(540, 600, 550, 560))
	})
}

func TestParseIntervalRejectsInverted(t *testing.T) {
	_, err := ParseInterval("10:00", "09:00")
	assert.Error(t, err)

	_, err = ParseInterval("10:00", "10:00")
	assert.Error(t, err)
}

func TestMinuteOfDayClamps(t *testing.T) {
	loc := time.UTC
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, loc)

	assert.Equal(t, 0, MinuteOfDay(day, day.Add(-2*time.Hour)))
	assert.Equal(t, 630, MinuteOfDay(day, day.Add(10*time.Hour+30*time.Minute)))
	assert.Equal(t, MinutesPerDay, MinuteOfDay(day, day.Add(30*time.Hour)))
	assert.Equal(t, day.Add(10*time.Hour), At(day, 600))
}
