package impl

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "github.com/SookX/Demeter/internal/delivery/context"
	"github.com/SookX/Demeter/internal/domain/entity"
	domainerrors "github.com/SookX/Demeter/internal/domain/errors"
	"github.com/SookX/Demeter/internal/domain/repository"
	"github.com/SookX/Demeter/internal/domain/service"
	"github.com/SookX/Demeter/internal/usecase"
)

const (
	// maxTipsPerDay caps how many Tip events a region may accumulate per
	// calendar day.
	maxTipsPerDay = 3

	// maxRemindersPerRun caps how many plants a reminder generation pass
	// covers, starting from the most urgent.
	maxRemindersPerRun = 3

	newsSystemPrompt = "You are a gardening assistant writing short weather " +
		"notices. Answer with a strict JSON array of objects with keys " +
		"\"date\" (YYYY-MM-DD), \"emoji\", \"title\" and \"description\". " +
		"At most one object per date. No other text."

	tipsSystemPrompt = "You are a gardening assistant writing short daily " +
		"care tips. Answer with a strict JSON array of objects with keys " +
		"\"emoji\", \"title\" and \"description\". No other text."
)

// newsItem is one entry of the news completion payload.
type newsItem struct {
	Date        string `json:"date"`
	Emoji       string `json:"emoji"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// tipItem is one entry of the tips completion payload.
type tipItem struct {
	Emoji       string `json:"emoji"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// eventService implements the EventUsecase interface.
type eventService struct {
	regionRepo  repository.RegionRepository
	eventRepo   repository.EventRepository
	weather     usecase.WeatherUsecase
	completions service.CompletionProvider
	now         func() time.Time
	logger      *slog.Logger
}

// EventServiceParams holds dependencies for eventService, injected by Fx.
type EventServiceParams struct {
	fx.In

	RegionRepo  repository.RegionRepository
	EventRepo   repository.EventRepository
	Weather     usecase.WeatherUsecase
	Completions service.CompletionProvider
	Logger      *slog.Logger
}

// NewEventService is the constructor for eventService.
func NewEventService(params EventServiceParams) usecase.EventUsecase {
	return &eventService{
		regionRepo:  params.RegionRepo,
		eventRepo:   params.EventRepo,
		weather:     params.Weather,
		completions: params.Completions,
		now:         time.Now,
		logger:      params.Logger,
	}
}

func (srv *eventService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListEvents returns the region's event feed in insertion order.
func (srv *eventService) ListEvents(ctx context.Context, userID uuid.UUID) (*usecase.EventsOutput, error) {
	region, err := srv.loadRegion(ctx, userID)
	if err != nil {
		return nil, err
	}

	events, err := srv.eventRepo.FindByRegion(ctx, region.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list events")
	}
	if events == nil {
		events = []entity.Event{}
	}

	return &usecase.EventsOutput{
		LastCreated: region.EventsLastCreated,
		Events:      events,
	}, nil
}

// AddEvent appends a manually created event to the feed.
func (srv *eventService) AddEvent(ctx context.Context, userID uuid.UUID, input *usecase.AddEventInput) (*entity.Event, error) {
	if !input.Type.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown event type")
	}
	if strings.TrimSpace(input.Details) == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("details are required")
	}

	region, err := srv.loadRegion(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := srv.now()
	eventDate := now
	if input.EventDate != nil {
		eventDate = *input.EventDate
	}

	events := []entity.Event{{
		Type:      input.Type,
		EventDate: eventDate,
		Details:   input.Details,
	}}

	if err := srv.appendBatch(ctx, region, events, now); err != nil {
		return nil, err
	}

	return &events[0], nil
}

// MarkRead flips the one-way read flag on an event owned by the caller's region.
func (srv *eventService) MarkRead(ctx context.Context, userID, eventID uuid.UUID) error {
	region, err := srv.loadRegion(ctx, userID)
	if err != nil {
		return err
	}

	if err := srv.eventRepo.MarkEventRead(ctx, region.ID, eventID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domainerrors.ErrEventNotFound
		}

		return errors.Wrap(err, "failed to mark event read")
	}

	return nil
}

// GenerateNews derives weather notices from the forecast, at most one per
// calendar day. A malformed completion aborts the whole pass with no partial
// insert.
func (srv *eventService) GenerateNews(ctx context.Context, userID uuid.UUID) ([]entity.Event, error) {
	region, err := srv.loadRegion(ctx, userID)
	if err != nil {
		return nil, err
	}

	forecast, err := srv.weather.Forecast(ctx, region.Latitude, region.Longitude)
	if err != nil {
		return nil, err
	}

	raw, err := srv.completions.Complete(ctx, service.CompletionRequest{
		SystemPrompt: newsSystemPrompt,
		UserPrompt:   formatForecastPrompt(forecast),
		MaxTokens:    1024,
		Temperature:  0.5,
	})
	if err != nil {
		srv.log(ctx).Error("News completion failed", slog.Any("error", err))

		return nil, err
	}

	var items []newsItem
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &items); err != nil {
		srv.log(ctx).Warn("News completion unparseable", slog.String("completion", raw))

		return nil, domainerrors.ErrCompletionParse.WrapMessage("news completion is not a JSON array")
	}

	now := srv.now()
	batch := make([]entity.Event, 0, len(items))
	seenDays := make(map[string]bool)

	for _, item := range items {
		eventDate, err := time.Parse("2006-01-02", item.Date)
		if err != nil {
			return nil, domainerrors.ErrCompletionParse.WrapMessage(fmt.Sprintf("bad news date %q", item.Date))
		}

		day := eventDate.Format("2006-01-02")
		if seenDays[day] || hasEventOfTypeOn(region.Events, entity.EventTypeNews, eventDate) {
			continue
		}
		seenDays[day] = true

		batch = append(batch, entity.Event{
			Type:      entity.EventTypeNews,
			EventDate: eventDate,
			Details:   renderDetails(item.Emoji, item.Title, item.Description),
		})
	}

	if err := srv.appendBatch(ctx, region, batch, now); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("News generated", slog.Any("regionID", region.ID), slog.Int("count", len(batch)))

	return batch, nil
}

// GenerateReminders creates watering reminders for the most urgent plants.
// Plants whose reminder line already exists today are skipped.
func (srv *eventService) GenerateReminders(ctx context.Context, userID uuid.UUID) ([]entity.Event, error) {
	region, err := srv.loadRegion(ctx, userID)
	if err != nil {
		return nil, err
	}

	plants := make([]entity.Plant, len(region.Plants))
	copy(plants, region.Plants)
	sortByUrgency(plants)

	if len(plants) > maxRemindersPerRun {
		plants = plants[:maxRemindersPerRun]
	}

	now := srv.now()
	today := eventsOn(region.Events, now)

	batch := make([]entity.Event, 0, len(plants))
	for i := range plants {
		line := reminderDetails(plants[i].Name)
		if hasEventWithDetails(today, line) {
			continue
		}

		batch = append(batch, entity.Event{
			Type:      entity.EventTypeReminder,
			EventDate: now,
			Details:   line,
		})
	}

	if err := srv.appendBatch(ctx, region, batch, now); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Reminders generated", slog.Any("regionID", region.ID), slog.Int("count", len(batch)))

	return batch, nil
}

// GenerateTips tops the current day up to three care tips.
func (srv *eventService) GenerateTips(ctx context.Context, userID uuid.UUID) ([]entity.Event, error) {
	region, err := srv.loadRegion(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := srv.now()

	existing := 0
	for i := range region.Events {
		if region.Events[i].Type == entity.EventTypeTip && region.Events[i].OccursOn(now) {
			existing++
		}
	}

	needed := maxTipsPerDay - existing
	if needed <= 0 {
		return []entity.Event{}, nil
	}

	raw, err := srv.completions.Complete(ctx, service.CompletionRequest{
		SystemPrompt: tipsSystemPrompt,
		UserPrompt:   srv.buildTipsPrompt(region, needed),
		MaxTokens:    512,
		Temperature:  0.7,
	})
	if err != nil {
		srv.log(ctx).Error("Tips completion failed", slog.Any("error", err))

		return nil, err
	}

	var items []tipItem
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &items); err != nil {
		srv.log(ctx).Warn("Tips completion unparseable", slog.String("completion", raw))

		return nil, domainerrors.ErrCompletionParse.WrapMessage("tips completion is not a JSON array")
	}

	if len(items) > needed {
		items = items[:needed]
	}

	batch := make([]entity.Event, 0, len(items))
	for _, item := range items {
		batch = append(batch, entity.Event{
			Type:      entity.EventTypeTip,
			EventDate: now,
			Details:   renderDetails(item.Emoji, item.Title, item.Description),
		})
	}

	if err := srv.appendBatch(ctx, region, batch, now); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Tips generated", slog.Any("regionID", region.ID), slog.Int("count", len(batch)))

	return batch, nil
}

func (srv *eventService) loadRegion(ctx context.Context, userID uuid.UUID) (*entity.Region, error) {
	region, err := srv.regionRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrRegionNotFound) {
			return nil, domainerrors.ErrRegionNotFound
		}

		return nil, errors.Wrap(err, "failed to load region")
	}

	return region, nil
}

// appendBatch persists a generation batch under the region's version guard.
// An empty batch still stamps the generation marker.
func (srv *eventService) appendBatch(ctx context.Context, region *entity.Region, batch []entity.Event, lastCreated time.Time) error {
	err := srv.eventRepo.AppendEvents(ctx, region.ID, region.Version, batch, lastCreated)
	if err != nil {
		if errors.Is(err, repository.ErrRegionVersionConflict) {
			return domainerrors.ErrConcurrentUpdate.WrapMessage("events changed concurrently, retry")
		}

		return errors.Wrap(err, "failed to append events")
	}

	region.Version++
	region.EventsLastCreated = &lastCreated

	return nil
}

func (srv *eventService) buildTipsPrompt(region *entity.Region, needed int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Region soil type: %s\n", valueOrUnknown(region.SoilType))
	fmt.Fprintf(&b, "Climate: %s (%s)\n",
		valueOrUnknown(region.Climate.ZoneDescription),
		valueOrUnknown(region.Climate.KoppenGeigerZone),
	)
	fmt.Fprintf(&b, "Plants: %s\n", joinOrNone(region.PlantNames()))
	fmt.Fprintf(&b, "Write exactly %d gardening tips for today.", needed)

	return b.String()
}

// formatForecastPrompt renders the forecast slots as one line each.
func formatForecastPrompt(forecast []service.ForecastEntry) string {
	var b strings.Builder

	b.WriteString("Upcoming forecast:\n")
	for _, entry := range forecast {
		fmt.Fprintf(&b, "%s: %s, temp %.1f°C, rain %.0f%%\n",
			entry.Time.Format("2006-01-02 15:04:05"),
			entry.Description,
			entry.Temp,
			entry.Pop*100,
		)
	}
	b.WriteString("Which days deserve a notice for a gardener?")

	return b.String()
}

// reminderDetails renders the canonical single-line reminder for a plant.
func reminderDetails(plantName string) string {
	return fmt.Sprintf("💧 Water your %s today.", plantName)
}

// renderDetails renders the three-line details format shared by News and Tip
// events.
func renderDetails(emoji, title, description string) string {
	return emoji + "\n" + title + "\n" + description
}

// hasEventOfTypeOn reports whether any event of the given type is dated on
// the same calendar day as t.
func hasEventOfTypeOn(events []entity.Event, eventType entity.EventType, t time.Time) bool {
	for i := range events {
		if events[i].Type == eventType && events[i].OccursOn(t) {
			return true
		}
	}

	return false
}

// hasEventWithDetails reports whether any event carries exactly the given
// details text.
func hasEventWithDetails(events []entity.Event, details string) bool {
	for i := range events {
		if events[i].Details == details {
			return true
		}
	}

	return false
}

// stripCodeFence removes a surrounding markdown code fence from a completion.
func stripCodeFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")

	return strings.TrimSpace(trimmed)
}
