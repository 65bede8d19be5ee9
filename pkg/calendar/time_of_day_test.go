package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	testCases := []struct {
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{input: "00:00", want: 0},
		{input: "06:00", want: 360},
		{input: "23:59", want: 23*60 + 59},
		{input: "09:05", want: 9*60 + 5},
		{input: "9:05", wantErr: true},
		{input: "24:00", wantErr: true},
		{input: "12:60", wantErr: true},
		{input: "12.30", wantErr: true},
		{input: "12:30:00", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseTimeOfDay(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTimeOfDay_String(t *testing.T) {
	assert.Equal(t, "06:00", MustTimeOfDay("06:00").String())
	assert.Equal(t, "09:05", TimeOfDay(9*60+5).String())
	assert.Equal(t, "23:59", TimeOfDay(23*60+59).String())
}

func TestTimeOfDay_Sub(t *testing.T) {
	assert.Equal(t, 90*time.Minute, MustTimeOfDay("10:30").Sub(MustTimeOfDay("09:00")))
}

func TestParseDate(t *testing.T) {
	t.Run("Canonical date", func(t *testing.T) {
		date, err := ParseDate("2026-03-02")
		require.NoError(t, err)
		assert.Equal(t, "2026-03-02", date)
	})

	t.Run("Invalid formats", func(t *testing.T) {
		for _, input := range []string{"02/03/2026", "2026-13-01", "not-a-date", ""} {
			_, err := ParseDate(input)
			assert.Error(t, err, "input %q", input)
		}
	})
}

func TestEvent_Validate(t *testing.T) {
	valid := Event{
		Title: "Team sync",
		Date:  "2026-03-02",
		Start: MustTimeOfDay("09:00"),
		End:   MustTimeOfDay("10:00"),
	}

	t.Run("Valid event", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	t.Run("Time block without title", func(t *testing.T) {
		block := valid
		block.Title = ""
		block.TimeBlock = true
		assert.NoError(t, block.Validate())
	})

	testCases := []struct {
		name   string
		modify func(e *Event)
		field  string
	}{
		{"Missing title", func(e *Event) { e.Title = "" }, "title"},
		{"Invalid date", func(e *Event) { e.Date = "03/02/2026" }, "date"},
		{"Start equals end", func(e *Event) { e.End = e.Start }, "startTime"},
		{"Start after end", func(e *Event) { e.Start = MustTimeOfDay("11:00") }, "startTime"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			event := valid
			tc.modify(&event)

			err := event.Validate()

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.field, validationErr.Field)
		})
	}
}
