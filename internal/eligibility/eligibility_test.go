package eligibility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"server/internal/apperr"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestAge_CalendarSubtraction(t *testing.T) {
	tests := []struct {
		name        string
		dob         time.Time
		ref         time.Time
		expectedAge int
	}{
		{
			name:        "birthday not yet reached this year",
			dob:         date(2000, time.March, 1),
			ref:         date(2030, time.February, 28),
			expectedAge: 29,
		},
		{
			name:        "birthday reached today",
			dob:         date(2000, time.March, 1),
			ref:         date(2030, time.March, 1),
			expectedAge: 30,
		},
		{
			name:        "birthday passed this year",
			dob:         date(2000, time.March, 1),
			ref:         date(2030, time.June, 15),
			expectedAge: 30,
		},
		{
			name:        "earlier month but later day",
			dob:         date(1998, time.September, 20),
			ref:         date(2026, time.September, 19),
			expectedAge: 27,
		},
		{
			name:        "leap day birth, day before anniversary",
			dob:         date(2000, time.February, 29),
			ref:         date(2026, time.February, 28),
			expectedAge: 25,
		},
		{
			name:        "leap day birth, march first",
			dob:         date(2000, time.February, 29),
			ref:         date(2026, time.March, 1),
			expectedAge: 26,
		},
		{
			name:        "same day",
			dob:         date(2026, time.January, 10),
			ref:         date(2026, time.January, 10),
			expectedAge: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedAge, Age(tt.dob, tt.ref))
		})
	}
}

func TestIsEligible(t *testing.T) {
	tests := []struct {
		name     string
		dob      time.Time
		ref      time.Time
		eligible bool
	}{
		{
			name:     "29 on the reference date",
			dob:      date(2000, time.March, 1),
			ref:      date(2030, time.February, 28),
			eligible: true,
		},
		{
			name:     "turns 30 on the reference date",
			dob:      date(2000, time.March, 1),
			ref:      date(2030, time.March, 1),
			eligible: false,
		},
		{
			name:     "well under the cutoff",
			dob:      date(2003, time.July, 4),
			ref:      date(2026, time.August, 29),
			eligible: true,
		},
		{
			name:     "well over the cutoff",
			dob:      date(1985, time.January, 1),
			ref:      date(2026, time.August, 29),
			eligible: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.eligible, IsEligible(tt.dob, tt.ref))
			assert.Equal(t, tt.eligible, Age(tt.dob, tt.ref) < MaxAge)
		})
	}
}

func TestParseDOB(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
	}{
		{name: "valid date", input: "2001-05-17", expectError: false},
		{name: "valid date with surrounding whitespace", input: " 2001-05-17 ", expectError: false},
		{name: "empty", input: "", expectError: true},
		{name: "whitespace only", input: "   ", expectError: true},
		{name: "wrong format", input: "05/17/2001", expectError: true},
		{name: "garbage", input: "not-a-date", expectError: true},
		{name: "impossible day", input: "2001-02-30", expectError: true},
		{name: "future date", input: "2999-01-01", expectError: true},
		{name: "tomorrow", input: time.Now().AddDate(0, 0, 1).Format("2006-01-02"), expectError: true},
		{name: "implausibly old", input: "1200-01-01", expectError: true},
		{name: "just past the plausibility bound", input: time.Now().AddDate(-121, 0, -1).Format("2006-01-02"), expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dob, err := ParseDOB(tt.input)

			if tt.expectError {
				require.Error(t, err)
				assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
				assert.Equal(t, "dob", apperr.FieldOf(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, date(2001, time.May, 17), dob)
		})
	}
}
