package cronparser_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skillcoder/computeinfo-api/internal/infra/cronparser"
)

func TestParser_NextAfter(t *testing.T) {
	t.Parallel()

	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	tests := []struct {
		name      string
		giveSpec  string
		giveTZ    string
		giveAfter time.Time
		want      time.Time
		wantErr   bool
	}{
		{
			name:      "utc by default",
			giveSpec:  "*/15 * * * *",
			giveAfter: time.Date(2026, 2, 15, 7, 1, 0, 0, time.UTC),
			want:      time.Date(2026, 2, 15, 7, 15, 0, 0, time.UTC),
		},
		{
			name:      "strictly after",
			giveSpec:  "0 * * * *",
			giveAfter: time.Date(2026, 2, 15, 7, 0, 0, 0, time.UTC),
			want:      time.Date(2026, 2, 15, 8, 0, 0, 0, time.UTC),
		},
		{
			name:      "tz parameter",
			giveSpec:  "0 8 * * *",
			giveTZ:    "America/New_York",
			giveAfter: time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC),
			want:      time.Date(2026, 2, 15, 8, 0, 0, 0, newYork),
		},
		{
			name:      "inline CRON_TZ wins over tz parameter",
			giveSpec:  "CRON_TZ=UTC 0 14 * * *",
			giveTZ:    "America/New_York",
			giveAfter: time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC),
			want:      time.Date(2026, 2, 15, 14, 0, 0, 0, time.UTC),
		},
		{
			name:      "descriptor",
			giveSpec:  "@hourly",
			giveAfter: time.Date(2026, 2, 15, 12, 30, 0, 0, time.UTC),
			want:      time.Date(2026, 2, 15, 13, 0, 0, 0, time.UTC),
		},
		{
			name:     "malformed spec",
			giveSpec: "invalid",
			wantErr:  true,
		},
		{
			name:     "unknown timezone",
			giveSpec: "0 8 * * *",
			giveTZ:   "Mars/Olympus",
			wantErr:  true,
		},
	}

	p := cronparser.New()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := p.NextAfter(tt.giveSpec, tt.giveTZ, tt.giveAfter)
			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			require.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestSchedule_String(t *testing.T) {
	t.Parallel()

	schedule, err := cronparser.New().Parse(" */5 * * * * ", "Europe/Berlin")
	require.NoError(t, err)
	require.Equal(t, "CRON_TZ=Europe/Berlin */5 * * * *", schedule.String())
}
