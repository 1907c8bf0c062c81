package dto

import "github.com/greencity/place-service/internal/domain"

// MapBoundsRequest - viewport corners; swLng > neLng wraps ±180°
type MapBoundsRequest struct {
	NorthEastLat float64 `json:"north_east_lat" validate:"min=-90,max=90"`
	NorthEastLng float64 `json:"north_east_lng" validate:"min=-180,max=180"`
	SouthWestLat float64 `json:"south_west_lat" validate:"min=-90,max=90"`
	SouthWestLng float64 `json:"south_west_lng" validate:"min=-180,max=180"`
}

func (r MapBoundsRequest) ToDomain() domain.MapBounds {
	return domain.MapBounds{
		NorthEastLat: r.NorthEastLat,
		NorthEastLng: r.NorthEastLng,
		SouthWestLat: r.SouthWestLat,
		SouthWestLng: r.SouthWestLng,
	}
}

// DistanceRequest - centre point and radius in meters
type DistanceRequest struct {
	Lat          float64 `json:"lat" validate:"min=-90,max=90"`
	Lng          float64 `json:"lng" validate:"min=-180,max=180"`
	RadiusMeters float64 `json:"radius_meters" validate:"required,gt=0"`
}

// FilterPlaceRequest - conjunction of optional predicates. An absent
// status defaults to APPROVED.
type FilterPlaceRequest struct {
	Text       string            `json:"text,omitempty"`
	Status     *string           `json:"status,omitempty"`
	CategoryID *int64            `json:"category_id,omitempty"`
	Bounds     *MapBoundsRequest `json:"bounds,omitempty"`
	Distance   *DistanceRequest  `json:"distance,omitempty"`
}

// PageQuery - zero-indexed pagination read from query params
type PageQuery struct {
	Page      int    `json:"page" validate:"min=0"`
	Size      int    `json:"size" validate:"min=1,max=100"`
	SortBy    string `json:"sort_by,omitempty"`
	Direction string `json:"direction,omitempty" validate:"omitempty,oneof=asc desc"`
}

func (p PageQuery) ToDomain() domain.PageRequest {
	return domain.PageRequest{
		Page:      p.Page,
		Size:      p.Size,
		SortBy:    p.SortBy,
		Direction: p.Direction,
	}
}
