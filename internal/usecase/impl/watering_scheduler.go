package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SookX/Demeter/internal/domain/entity"
	"github.com/SookX/Demeter/internal/domain/service"
)

// fallbackWateringInterval is the deterministic schedule applied whenever the
// completion provider cannot produce a usable prediction.
const fallbackWateringInterval = 24 * time.Hour

const schedulerSystemPrompt = "You are a precise gardening assistant. " +
	"Given a plant, its region and its latest watering, answer with a single " +
	"ISO-8601 date and time for the next watering. Answer with the date and " +
	"time only, no explanation."

// acceptedTimeLayouts are the formats a completion may use for the predicted
// date. RFC 3339 first; the laxer layouts cover models that drop the zone.
var acceptedTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// wateringScheduler predicts the next watering date for a plant. It never
// returns an error: any completion or parse failure degrades to the
// deterministic fallback so a recorded watering always leaves the plant with
// a schedule.
type wateringScheduler struct {
	completions service.CompletionProvider
	logger      *slog.Logger
}

func newWateringScheduler(completions service.CompletionProvider, logger *slog.Logger) *wateringScheduler {
	return &wateringScheduler{
		completions: completions,
		logger:      logger,
	}
}

// Next returns the due date for the plant's next watering. The prediction is
// accepted only when it parses and lies strictly after the watering that
// produced it.
func (s *wateringScheduler) Next(ctx context.Context, plant *entity.Plant, region *entity.Region, watering *entity.Watering, todayEvents []entity.Event) time.Time {
	fallback := watering.WateredAt.Add(fallbackWateringInterval)

	raw, err := s.completions.Complete(ctx, service.CompletionRequest{
		SystemPrompt: schedulerSystemPrompt,
		UserPrompt:   s.buildPrompt(plant, region, watering, todayEvents),
		MaxTokens:    64,
		Temperature:  0,
	})
	if err != nil {
		s.logger.Warn("Watering prediction failed, using fallback",
			slog.Any("plantID", plant.ID),
			slog.Any("error", err),
		)

		return fallback
	}

	predicted, ok := parsePredictedTime(raw)
	if !ok {
		s.logger.Warn("Watering prediction unparseable, using fallback",
			slog.Any("plantID", plant.ID),
			slog.String("completion", raw),
		)

		return fallback
	}

	if !predicted.After(watering.WateredAt) {
		s.logger.Warn("Watering prediction not in the future, using fallback",
			slog.Any("plantID", plant.ID),
			slog.Time("predicted", predicted),
		)

		return fallback
	}

	return predicted
}

func (s *wateringScheduler) buildPrompt(plant *entity.Plant, region *entity.Region, watering *entity.Watering, todayEvents []entity.Event) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Plant: %s (%s)\n", plant.Name, plant.ScientificName)
	fmt.Fprintf(&b, "Soil type: %s\n", valueOrUnknown(region.SoilType))
	fmt.Fprintf(&b, "Climate: %s (%s)\n",
		valueOrUnknown(region.Climate.ZoneDescription),
		valueOrUnknown(region.Climate.KoppenGeigerZone),
	)
	fmt.Fprintf(&b, "Watered at: %s, amount: %.2f\n",
		watering.WateredAt.Format(time.RFC3339), watering.Amount)

	if len(todayEvents) > 0 {
		b.WriteString("Today's garden events:\n")
		for i := range todayEvents {
			fmt.Fprintf(&b, "- %s: %s\n", todayEvents[i].Type, todayEvents[i].Details)
		}
	}

	b.WriteString("When should this plant be watered next?")

	return b.String()
}

// parsePredictedTime extracts a timestamp from a completion. The first line
// is taken; surrounding quotes and code fences are stripped.
func parsePredictedTime(raw string) (time.Time, bool) {
	candidate := strings.TrimSpace(raw)
	candidate = strings.TrimSpace(strings.Trim(candidate, "`"))
	if idx := strings.IndexByte(candidate, '\n'); idx >= 0 {
		candidate = candidate[:idx]
	}
	candidate = strings.Trim(strings.TrimSpace(candidate), `"'`)

	for _, layout := range acceptedTimeLayouts {
		if t, err := time.Parse(layout, candidate); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func valueOrUnknown(v string) string {
	if v == "" {
		return "unknown"
	}

	return v
}
