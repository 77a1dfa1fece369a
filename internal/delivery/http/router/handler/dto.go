package handler

import (
	"time"

	"github.com/google/uuid"

	"github.com/SookX/Demeter/internal/domain/entity"
	"github.com/SookX/Demeter/internal/usecase"
)

// Response models returned by the handlers. Entities are never serialized
// directly; these DTOs pin the wire format.

// UserResponse is the public view of a user account.
type UserResponse struct {
	ID        uuid.UUID       `json:"id"`
	Username  string          `json:"username"`
	Email     string          `json:"email"`
	Region    *RegionResponse `json:"region,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// AuthResponse carries the user and their token pair after an auth flow.
type AuthResponse struct {
	User         *UserResponse `json:"user"`
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
}

// ClimateResponse is the Köppen-Geiger classification of a region.
type ClimateResponse struct {
	KoppenGeigerZone string `json:"koppenGeigerZone"`
	ZoneDescription  string `json:"zoneDescription"`
}

// RegionResponse is the public view of a region profile.
type RegionResponse struct {
	ID        uuid.UUID       `json:"id"`
	Latitude  float64         `json:"latitude"`
	Longitude float64         `json:"longitude"`
	SoilType  string          `json:"soilType,omitempty"`
	Climate   ClimateResponse `json:"climate"`
	Plants    []PlantResponse `json:"plants,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// WateringResponse is one irrigation record.
type WateringResponse struct {
	ID        uuid.UUID `json:"id"`
	WateredAt time.Time `json:"wateredAt"`
	Amount    float64   `json:"amount"`
	Note      string    `json:"note,omitempty"`
}

// PlantResponse is the public view of a tracked plant.
type PlantResponse struct {
	ID             uuid.UUID          `json:"id"`
	Name           string             `json:"name"`
	ScientificName string             `json:"scientificName"`
	Family         string             `json:"family,omitempty"`
	TaxonomyRefID  int                `json:"taxonomyRefId,omitempty"`
	Slug           string             `json:"slug,omitempty"`
	ImageURL       string             `json:"imageUrl,omitempty"`
	PlantedAt      time.Time          `json:"plantedAt"`
	LastWateredAt  *time.Time         `json:"lastWateredAt"`
	NextWateringAt *time.Time         `json:"nextWateringAt"`
	Waterings      []WateringResponse `json:"waterings,omitempty"`
}

// EventResponse is one feed entry.
type EventResponse struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	EventDate time.Time `json:"eventDate"`
	Details   string    `json:"details"`
	MarkRead  bool      `json:"markRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// EventFeedResponse is the region's full event feed.
type EventFeedResponse struct {
	LastCreated *time.Time      `json:"last_created"`
	Events      []EventResponse `json:"event_list"`
}

func toUserResponse(user *entity.User) *UserResponse {
	if user == nil {
		return nil
	}

	return &UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Region:    toRegionResponse(user.Region),
		CreatedAt: user.CreatedAt,
	}
}

func toAuthResponse(output *usecase.AuthOutput) *AuthResponse {
	return &AuthResponse{
		User:         toUserResponse(output.User),
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
	}
}

func toRegionResponse(region *entity.Region) *RegionResponse {
	if region == nil {
		return nil
	}

	return &RegionResponse{
		ID:        region.ID,
		Latitude:  region.Latitude,
		Longitude: region.Longitude,
		SoilType:  region.SoilType,
		Climate: ClimateResponse{
			KoppenGeigerZone: region.Climate.KoppenGeigerZone,
			ZoneDescription:  region.Climate.ZoneDescription,
		},
		Plants:    toPlantResponses(region.Plants),
		CreatedAt: region.CreatedAt,
	}
}

func toPlantResponse(plant *entity.Plant) *PlantResponse {
	waterings := make([]WateringResponse, 0, len(plant.Waterings))
	for i := range plant.Waterings {
		w := &plant.Waterings[i]
		waterings = append(waterings, WateringResponse{
			ID:        w.ID,
			WateredAt: w.WateredAt,
			Amount:    w.Amount,
			Note:      w.Note,
		})
	}

	return &PlantResponse{
		ID:             plant.ID,
		Name:           plant.Name,
		ScientificName: plant.ScientificName,
		Family:         plant.Family,
		TaxonomyRefID:  plant.TaxonomyRefID,
		Slug:           plant.Slug,
		ImageURL:       plant.ImageURL,
		PlantedAt:      plant.PlantedAt,
		LastWateredAt:  plant.LastWateredAt,
		NextWateringAt: plant.NextWateringAt,
		Waterings:      waterings,
	}
}

func toPlantResponses(plants []entity.Plant) []PlantResponse {
	out := make([]PlantResponse, 0, len(plants))
	for i := range plants {
		out = append(out, *toPlantResponse(&plants[i]))
	}

	return out
}

func toEventResponse(event *entity.Event) *EventResponse {
	return &EventResponse{
		ID:        event.ID,
		Type:      event.Type.String(),
		EventDate: event.EventDate,
		Details:   event.Details,
		MarkRead:  event.MarkRead,
		CreatedAt: event.CreatedAt,
	}
}

func toEventResponses(events []entity.Event) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for i := range events {
		out = append(out, *toEventResponse(&events[i]))
	}

	return out
}
