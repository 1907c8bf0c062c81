package dto

import (
	"time"

	"github.com/greencity/place-service/internal/domain"
	apperrors "github.com/greencity/place-service/internal/pkg/errors"
)

// LocationDto - WGS84 point of a place
type LocationDto struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lng float64 `json:"lng" validate:"min=-180,max=180"`
}

// OpeningHoursDto - one weekday interval, times as "HH:MM"
type OpeningHoursDto struct {
	WeekDay   string `json:"week_day" validate:"required,oneof=MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY SATURDAY SUNDAY"`
	OpenTime  string `json:"open_time" validate:"required,len=5"`
	CloseTime string `json:"close_time" validate:"required,len=5"`
}

// PlaceAddRequest - proposal of a new place
type PlaceAddRequest struct {
	Name       string            `json:"name" validate:"required,min=1,max=30"`
	Address    string            `json:"address" validate:"required,min=1,max=30"`
	Location   LocationDto       `json:"location"`
	CategoryID int64             `json:"category_id" validate:"required"`
	Hours      []OpeningHoursDto `json:"opening_hours" validate:"omitempty,dive"`
	// Status is optional; when present it must be PROPOSED.
	Status string `json:"status,omitempty"`
}

// PlaceUpdateRequest - content patch by the author or a moderator.
// Address, status and author are not updatable here.
type PlaceUpdateRequest struct {
	ID         int64             `json:"id" validate:"required"`
	Name       string            `json:"name" validate:"required,min=1,max=30"`
	Location   LocationDto       `json:"location"`
	CategoryID int64             `json:"category_id" validate:"required"`
	Hours      []OpeningHoursDto `json:"opening_hours" validate:"omitempty,dive"`
}

// UpdatePlaceStatusRequest - single moderation transition
type UpdatePlaceStatusRequest struct {
	ID     int64  `json:"id" validate:"required"`
	Status string `json:"status" validate:"required"`
}

// BulkUpdatePlaceStatusRequest - one target status for many places
type BulkUpdatePlaceStatusRequest struct {
	IDs    []int64 `json:"ids" validate:"required,min=1"`
	Status string  `json:"status" validate:"required"`
}

// Outcomes of a status update.
const (
	OutcomeApplied = "applied"
	OutcomeAlready = "already"
	OutcomeFailed  = "failed"
)

// UpdatePlaceStatusResponse - per-place result of a moderation sweep.
// OutcomeAlready is success with no write, not a fault.
type UpdatePlaceStatusResponse struct {
	ID      int64               `json:"id"`
	Status  string              `json:"status,omitempty"`
	Outcome string              `json:"outcome"`
	Error   *apperrors.AppError `json:"error,omitempty"`
}

// PlaceResponse - full place representation with the author principal
type PlaceResponse struct {
	ID         int64             `json:"id"`
	Name       string            `json:"name"`
	Address    string            `json:"address"`
	CategoryID int64             `json:"category_id"`
	Author     string            `json:"author"`
	Status     string            `json:"status"`
	Location   LocationDto       `json:"location"`
	Hours      []OpeningHoursDto `json:"opening_hours"`
	CreatedAt  time.Time         `json:"created_at"`
	ModifiedAt time.Time         `json:"modified_at"`
}

// PlaceAboutResponse - editable view served for the update form
type PlaceAboutResponse struct {
	ID         int64             `json:"id"`
	Name       string            `json:"name"`
	CategoryID int64             `json:"category_id"`
	Location   LocationDto       `json:"location"`
	Hours      []OpeningHoursDto `json:"opening_hours"`
}

// AdminPlacePage - one page of the moderation listing
type AdminPlacePage struct {
	Places        []*domain.AdminPlace `json:"places"`
	Page          int                  `json:"page"`
	Size          int                  `json:"size"`
	TotalElements int64                `json:"total_elements"`
	TotalPages    int                  `json:"total_pages"`
}

// PlaceByBoundsPage - one page of the filtered listing
type PlaceByBoundsPage struct {
	Places        []*domain.PlaceByBounds `json:"places"`
	Page          int                     `json:"page"`
	Size          int                     `json:"size"`
	TotalElements int64                   `json:"total_elements"`
	TotalPages    int                     `json:"total_pages"`
}

func NewPlaceResponse(place *domain.Place, authorEmail string) *PlaceResponse {
	return &PlaceResponse{
		ID:         place.ID,
		Name:       place.Name,
		Address:    place.Address,
		CategoryID: place.CategoryID,
		Author:     authorEmail,
		Status:     string(place.Status),
		Location:   LocationDto{Lat: place.Location.Lat, Lng: place.Location.Lng},
		Hours:      NewOpeningHoursDtos(place.Hours),
		CreatedAt:  place.CreatedAt,
		ModifiedAt: place.ModifiedAt,
	}
}

func NewPlaceAboutResponse(place *domain.Place) *PlaceAboutResponse {
	return &PlaceAboutResponse{
		ID:         place.ID,
		Name:       place.Name,
		CategoryID: place.CategoryID,
		Location:   LocationDto{Lat: place.Location.Lat, Lng: place.Location.Lng},
		Hours:      NewOpeningHoursDtos(place.Hours),
	}
}

func NewOpeningHoursDtos(hours []domain.OpeningHours) []OpeningHoursDto {
	result := make([]OpeningHoursDto, 0, len(hours))
	for _, h := range hours {
		result = append(result, OpeningHoursDto{
			WeekDay:   h.WeekDay,
			OpenTime:  h.OpenTime,
			CloseTime: h.CloseTime,
		})
	}
	return result
}

func (h OpeningHoursDto) ToDomain() domain.OpeningHours {
	return domain.OpeningHours{
		WeekDay:   h.WeekDay,
		OpenTime:  h.OpenTime,
		CloseTime: h.CloseTime,
	}
}
