package impl

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/SookX/Demeter/internal/domain/entity"
	mockSvc "github.com/SookX/Demeter/internal/mocks/service"
)

func schedulerFixture(t *testing.T) (*wateringScheduler, *mockSvc.MockCompletionProvider, *entity.Plant, *entity.Region, *entity.Watering) {
	t.Helper()

	completions := &mockSvc.MockCompletionProvider{}
	scheduler := newWateringScheduler(completions, newDiscardLogger())

	plant := &entity.Plant{Name: "Tomato", ScientificName: "Solanum lycopersicum"}
	region := &entity.Region{
		SoilType: "Cambisols",
		Climate:  entity.Climate{KoppenGeigerZone: "Cfb", ZoneDescription: "Marine west coast"},
	}
	watering := &entity.Watering{
		WateredAt: time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC),
		Amount:    1.5,
	}

	return scheduler, completions, plant, region, watering
}

func TestWateringScheduler_AcceptsFuturePrediction(t *testing.T) {
	scheduler, completions, plant, region, watering := schedulerFixture(t)

	completions.On("Complete", mock.Anything, mock.Anything).
		Return("2026-08-31T09:00:00Z", nil)

	next := scheduler.Next(context.Background(), plant, region, watering, nil)
	assert.Equal(t, time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC), next)
}

func TestWateringScheduler_FallsBackOnCompletionError(t *testing.T) {
	scheduler, completions, plant, region, watering := schedulerFixture(t)

	completions.On("Complete", mock.Anything, mock.Anything).
		Return("", errors.New("rate limited"))

	next := scheduler.Next(context.Background(), plant, region, watering, nil)

	// Exactly wateredAt + 24h, not approximately.
	assert.Equal(t, watering.WateredAt.Add(24*time.Hour), next)
}

func TestWateringScheduler_FallsBackOnUnparseableCompletion(t *testing.T) {
	scheduler, completions, plant, region, watering := schedulerFixture(t)

	completions.On("Complete", mock.Anything, mock.Anything).
		Return("water it when the soil feels dry", nil)

	next := scheduler.Next(context.Background(), plant, region, watering, nil)
	assert.Equal(t, watering.WateredAt.Add(24*time.Hour), next)
}

func TestWateringScheduler_FallsBackOnPastPrediction(t *testing.T) {
	scheduler, completions, plant, region, watering := schedulerFixture(t)

	// Parseable, but not strictly after the watering timestamp.
	completions.On("Complete", mock.Anything, mock.Anything).
		Return("2026-08-28T09:00:00Z", nil)

	next := scheduler.Next(context.Background(), plant, region, watering, nil)
	assert.Equal(t, watering.WateredAt.Add(24*time.Hour), next)
}

func TestParsePredictedTime(t *testing.T) {
	cases := []struct {
		name  string
		raw   string
		want  time.Time
		valid bool
	}{
		{"rfc3339", "2026-09-01T08:00:00Z", time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC), true},
		{"no zone", "2026-09-01T08:00:00", time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC), true},
		{"space separator", "2026-09-01 08:00:00", time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC), true},
		{"date only", "2026-09-01", time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), true},
		{"quoted", `"2026-09-01"`, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), true},
		{"fenced", "```\n2026-09-01\n```", time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), true},
		{"prose", "next Tuesday sounds good", time.Time{}, false},
		{"empty", "", time.Time{}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := parsePredictedTime(tc.raw)
			assert.Equal(t, tc.valid, ok)
			if tc.valid {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}
