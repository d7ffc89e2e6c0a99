package queries_test

import (
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodFromString(t *testing.T) {
	t.Run("should parse all windows", func(t *testing.T) {
		cases := map[string]queries.Period{
			"day":   queries.PeriodDay,
			"week":  queries.PeriodWeek,
			"month": queries.PeriodMonth,
			"year":  queries.PeriodYear,
		}
		for raw, want := range cases {
			got, err := queries.PeriodFromString(raw)
			require.NoError(t, err)
			assert.Equal(t, want, got)
			assert.Equal(t, raw, got.String())
		}
	})

	t.Run("should default empty to month", func(t *testing.T) {
		got, err := queries.PeriodFromString("")
		require.NoError(t, err)
		assert.Equal(t, queries.PeriodMonth, got)
	})

	t.Run("should reject unknown window", func(t *testing.T) {
		_, err := queries.PeriodFromString("quarter")
		require.Error(t, err)
	})
}

func TestPeriod_WindowStart(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, now.AddDate(0, 0, -1), queries.PeriodDay.WindowStart(now))
	assert.Equal(t, now.AddDate(0, 0, -7), queries.PeriodWeek.WindowStart(now))
	assert.Equal(t, now.AddDate(0, -1, 0), queries.PeriodMonth.WindowStart(now))
	assert.Equal(t, now.AddDate(-1, 0, 0), queries.PeriodYear.WindowStart(now))
}
