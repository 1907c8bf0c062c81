package domain

// MapBounds is an axis-aligned rectangle on the WGS84 sphere described
// by its north-east and south-west corners.
type MapBounds struct {
	NorthEastLat float64 `json:"north_east_lat"`
	NorthEastLng float64 `json:"north_east_lng"`
	SouthWestLat float64 `json:"south_west_lat"`
	SouthWestLng float64 `json:"south_west_lng"`
}

// WrapsAntimeridian reports whether the rectangle crosses the ±180°
// meridian. Such a rectangle is interpreted as two longitude ranges,
// not rejected.
func (b MapBounds) WrapsAntimeridian() bool {
	return b.SouthWestLng > b.NorthEastLng
}

// Valid checks corner ordering and coordinate ranges. A wrapping
// longitude pair is still valid.
func (b MapBounds) Valid() bool {
	if b.SouthWestLat > b.NorthEastLat {
		return false
	}
	for _, lat := range []float64{b.NorthEastLat, b.SouthWestLat} {
		if lat < -90 || lat > 90 {
			return false
		}
	}
	for _, lng := range []float64{b.NorthEastLng, b.SouthWestLng} {
		if lng < -180 || lng > 180 {
			return false
		}
	}
	return true
}

// LngRanges returns the longitude intervals covered by the rectangle.
// A wrapping rectangle splits into [swLng, 180] and [-180, neLng].
func (b MapBounds) LngRanges() [][2]float64 {
	if b.WrapsAntimeridian() {
		return [][2]float64{
			{b.SouthWestLng, 180},
			{-180, b.NorthEastLng},
		}
	}
	return [][2]float64{{b.SouthWestLng, b.NorthEastLng}}
}

// Contains reports whether the point lies inside the rectangle,
// honouring the antimeridian wrap.
func (b MapBounds) Contains(lat, lng float64) bool {
	if lat < b.SouthWestLat || lat > b.NorthEastLat {
		return false
	}
	for _, r := range b.LngRanges() {
		if lng >= r[0] && lng <= r[1] {
			return true
		}
	}
	return false
}

// DistanceFilter keeps places within RadiusMeters of the centre point,
// measured by great-circle distance.
type DistanceFilter struct {
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	RadiusMeters float64 `json:"radius_meters"`
}

// FilterPlace is a conjunction of optional predicates over places.
// An absent status defaults to APPROVED at planning time.
type FilterPlace struct {
	Text       string          `json:"text,omitempty"`
	Status     *PlaceStatus    `json:"status,omitempty"`
	CategoryID *int64          `json:"category_id,omitempty"`
	Bounds     *MapBounds      `json:"bounds,omitempty"`
	Distance   *DistanceFilter `json:"distance,omitempty"`
}

// Sort directions accepted by PageRequest.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// PageRequest describes zero-indexed pagination with an optional sort.
type PageRequest struct {
	Page      int    `json:"page"`
	Size      int    `json:"size"`
	SortBy    string `json:"sort_by,omitempty"`
	Direction string `json:"direction,omitempty"`
}

func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Normalize clamps the request to sane values.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size < 1 {
		p.Size = 20
	}
	if p.Direction != SortAsc && p.Direction != SortDesc {
		p.Direction = SortDesc
	}
	return p
}
