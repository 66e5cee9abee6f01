package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSchoolYearBounds(t *testing.T) {
	cases := []struct {
		now         time.Time
		expectStart time.Time
		expectEnd   time.Time
	}{
		{
			now:         time.Date(2023, time.October, 10, 0, 0, 0, 0, Location),
			expectStart: time.Date(2023, time.August, 1, 0, 0, 0, 0, Location),
			expectEnd:   time.Date(2024, time.July, 31, 23, 59, 59, 0, Location),
		},
		{
			now:         time.Date(2024, time.March, 2, 0, 0, 0, 0, Location),
			expectStart: time.Date(2023, time.August, 1, 0, 0, 0, 0, Location),
			expectEnd:   time.Date(2024, time.July, 31, 23, 59, 59, 0, Location),
		},
		{
			now:         time.Date(2024, time.August, 1, 0, 0, 0, 0, Location),
			expectStart: time.Date(2024, time.August, 1, 0, 0, 0, 0, Location),
			expectEnd:   time.Date(2025, time.July, 31, 23, 59, 59, 0, Location),
		},
		{
			now:         time.Date(2024, time.July, 31, 23, 59, 59, 0, Location),
			expectStart: time.Date(2023, time.August, 1, 0, 0, 0, 0, Location),
			expectEnd:   time.Date(2024, time.July, 31, 23, 59, 59, 0, Location),
		},
	}

	for _, test := range cases {
		require.Equal(t, test.expectStart, SchoolYearStart(test.now))
		require.Equal(t, test.expectEnd, SchoolYearEnd(test.now))
	}
}
