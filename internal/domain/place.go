package domain

import "time"

// Place is the central entity of the directory: a physical location
// proposed by a user and curated by moderators.
type Place struct {
	ID         int64       `json:"id" db:"id"`
	Name       string      `json:"name" db:"name"`
	Address    string      `json:"address" db:"address"`
	CategoryID int64       `json:"category_id" db:"category_id"`
	AuthorID   int64       `json:"author_id" db:"author_id"`
	Status     PlaceStatus `json:"status" db:"status"`
	Location   Location    `json:"location"`
	Hours      []OpeningHours
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	ModifiedAt time.Time `json:"modified_at" db:"modified_at"`
}

// Location is owned by its Place; the row carries the parent id.
type Location struct {
	PlaceID int64   `json:"-" db:"place_id"`
	Lat     float64 `json:"lat" db:"lat"`
	Lng     float64 `json:"lng" db:"lng"`
}

// OpeningHours describes one weekday interval of a Place.
// CloseTime must be after OpenTime within the same day.
type OpeningHours struct {
	ID        int64  `json:"id" db:"id"`
	PlaceID   int64  `json:"-" db:"place_id"`
	WeekDay   string `json:"week_day" db:"week_day"`
	OpenTime  string `json:"open_time" db:"open_time"`
	CloseTime string `json:"close_time" db:"close_time"`
}

type Category struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type User struct {
	ID    int64  `json:"id" db:"id"`
	Email string `json:"email" db:"email"`
	Name  string `json:"name" db:"name"`
	Role  string `json:"role" db:"role"`
}

// User roles.
const (
	RoleUser      = "USER"
	RoleModerator = "MODERATOR"
	RoleAdmin     = "ADMIN"
)

// IsModerator reports whether the user may change place statuses and
// edit places authored by others.
func (u *User) IsModerator() bool {
	return u.Role == RoleModerator || u.Role == RoleAdmin
}

// FavoritePlace is a user's bookmark of a place under a custom name.
type FavoritePlace struct {
	ID      int64  `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	PlaceID int64  `json:"place_id" db:"place_id"`
	UserID  int64  `json:"user_id" db:"user_id"`
}

// PlaceInfo is the read-optimised projection for the public info page.
type PlaceInfo struct {
	ID           int64          `json:"id"`
	Name         string         `json:"name"`
	Address      string         `json:"address"`
	CategoryName string         `json:"category"`
	AuthorEmail  string         `json:"author"`
	Status       PlaceStatus    `json:"status"`
	Location     Location       `json:"location"`
	Hours        []OpeningHours `json:"opening_hours"`
}

// AdminPlace is the projection used by moderation listings.
type AdminPlace struct {
	ID           int64       `json:"id"`
	Name         string      `json:"name"`
	Address      string      `json:"address"`
	CategoryName string      `json:"category"`
	AuthorEmail  string      `json:"author"`
	Status       PlaceStatus `json:"status"`
	ModifiedAt   time.Time   `json:"modified_at"`
}

// PlaceByBounds is the slim projection returned for map viewports.
type PlaceByBounds struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Address  string   `json:"address"`
	Location Location `json:"location"`
}
