package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/greencity/place-service/internal/delivery/http/middleware"
	apperrors "github.com/greencity/place-service/internal/pkg/errors"
	"github.com/greencity/place-service/internal/pkg/utils"
	"github.com/greencity/place-service/internal/pkg/validator"
	"github.com/greencity/place-service/internal/usecase"
	"github.com/greencity/place-service/internal/usecase/dto"
)

// FavoriteHandler - favorite place bookmark endpoints
type FavoriteHandler struct {
	favoriteUC *usecase.FavoriteUseCase
	logger     *zap.Logger
}

func NewFavoriteHandler(favoriteUC *usecase.FavoriteUseCase, logger *zap.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteUC: favoriteUC,
		logger:     logger,
	}
}

// Save - POST /place/save/favorite
func (h *FavoriteHandler) Save(c *fiber.Ctx) error {
	var req dto.FavoritePlaceRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	favorite, err := h.favoriteUC.Save(c.Context(), req, middleware.Principal(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, favorite, nil)
}

// GetInfo - GET /place/info/favorite/:id
func (h *FavoriteHandler) GetInfo(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	info, err := h.favoriteUC.GetInfo(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, info, nil)
}

// List - GET /place/favorite
func (h *FavoriteHandler) List(c *fiber.Ctx) error {
	favorites, err := h.favoriteUC.List(c.Context(), middleware.Principal(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, favorites, &utils.Meta{Total: len(favorites)})
}

// Delete - DELETE /place/favorite/:id
func (h *FavoriteHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.favoriteUC.Delete(c.Context(), id, middleware.Principal(c)); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"deleted": id}, nil)
}
