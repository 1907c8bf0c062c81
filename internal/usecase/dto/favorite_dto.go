package dto

import "github.com/greencity/place-service/internal/domain"

// FavoritePlaceRequest - bookmark a place under a custom name
type FavoritePlaceRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=30"`
	PlaceID int64  `json:"place_id" validate:"required"`
}

// FavoritePlaceResponse - stored bookmark
type FavoritePlaceResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	PlaceID int64  `json:"place_id"`
}

func NewFavoritePlaceResponse(favorite *domain.FavoritePlace) *FavoritePlaceResponse {
	return &FavoritePlaceResponse{
		ID:      favorite.ID,
		Name:    favorite.Name,
		PlaceID: favorite.PlaceID,
	}
}

func NewFavoritePlaceResponses(favorites []*domain.FavoritePlace) []*FavoritePlaceResponse {
	result := make([]*FavoritePlaceResponse, 0, len(favorites))
	for _, f := range favorites {
		result = append(result, NewFavoritePlaceResponse(f))
	}
	return result
}
