package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/greencity/place-service/internal/delivery/http/middleware"
	"github.com/greencity/place-service/internal/domain"
	apperrors "github.com/greencity/place-service/internal/pkg/errors"
	"github.com/greencity/place-service/internal/pkg/utils"
	"github.com/greencity/place-service/internal/pkg/validator"
	"github.com/greencity/place-service/internal/usecase"
	"github.com/greencity/place-service/internal/usecase/dto"
)

// PlaceHandler - place lifecycle and listing endpoints
type PlaceHandler struct {
	placeUC  *usecase.PlaceUseCase
	filterUC *usecase.FilterUseCase
	logger   *zap.Logger
}

func NewPlaceHandler(placeUC *usecase.PlaceUseCase, filterUC *usecase.FilterUseCase, logger *zap.Logger) *PlaceHandler {
	return &PlaceHandler{
		placeUC:  placeUC,
		filterUC: filterUC,
		logger:   logger,
	}
}

// Propose - POST /place/propose
func (h *PlaceHandler) Propose(c *fiber.Ctx) error {
	var req dto.PlaceAddRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidProposal.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	place, err := h.placeUC.Propose(c.Context(), req, middleware.Principal(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, place)
}

// Update - PUT /place/update
func (h *PlaceHandler) Update(c *fiber.Ctx) error {
	var req dto.PlaceUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidProposal.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	place, err := h.placeUC.Update(c.Context(), req, middleware.Principal(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, place, nil)
}

// GetInfo - GET /place/info/:id
func (h *PlaceHandler) GetInfo(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	info, err := h.placeUC.GetInfo(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, info, nil)
}

// GetAbout - GET /place/about/:id
func (h *PlaceHandler) GetAbout(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	about, err := h.placeUC.GetAbout(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, about, nil)
}

// GetByMapBounds - POST /place/getListPlaceLocationByMapsBounds
func (h *PlaceHandler) GetByMapBounds(c *fiber.Ctx) error {
	var req dto.MapBoundsRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidFilter.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	places, err := h.filterUC.FindByMapBounds(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, places, &utils.Meta{Total: len(places)})
}

// GetByStatus - GET /place/:status
// The status segment matches the enumeration case-insensitively;
// unknown values answer 400, never 500.
func (h *PlaceHandler) GetByStatus(c *fiber.Ctx) error {
	status, ok := domain.ParsePlaceStatus(c.Params("status"))
	if !ok {
		return utils.SendError(c, apperrors.ErrInvalidStatus.WithDetails(map[string]interface{}{
			"status": c.Params("status"),
		}))
	}

	page, err := parsePageQuery(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.filterUC.FindByStatus(c.Context(), status, page)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result.Places, &utils.Meta{
		Total:      int(result.TotalElements),
		Page:       result.Page,
		Size:       result.Size,
		TotalPages: result.TotalPages,
	})
}

// Filter - POST /place/filter
func (h *PlaceHandler) Filter(c *fiber.Ctx) error {
	var req dto.FilterPlaceRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	places, err := h.filterUC.FilterList(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, places, &utils.Meta{Total: len(places)})
}

// FilterPredicate - POST /place/filter/predicate
func (h *PlaceHandler) FilterPredicate(c *fiber.Ctx) error {
	var req dto.FilterPlaceRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	page, err := parsePageQuery(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.filterUC.FilterPage(c.Context(), req, page)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result.Places, &utils.Meta{
		Total:      int(result.TotalElements),
		Page:       result.Page,
		Size:       result.Size,
		TotalPages: result.TotalPages,
	})
}

// UpdateStatus - PATCH /place/status
func (h *PlaceHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdatePlaceStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	result, err := h.placeUC.UpdateStatus(c.Context(), req.ID, req.Status)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}

// UpdateStatuses - PATCH /place/statuses
// The sweep never aborts: per-id outcomes come back under HTTP 200.
func (h *PlaceHandler) UpdateStatuses(c *fiber.Ctx) error {
	var req dto.BulkUpdatePlaceStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	results, err := h.placeUC.UpdateStatuses(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, results, &utils.Meta{Total: len(results)})
}

// ListStatuses - GET /place/statuses
func (h *PlaceHandler) ListStatuses(c *fiber.Ctx) error {
	statuses := h.placeUC.ListStatuses()
	return utils.SendSuccess(c, statuses, &utils.Meta{Total: len(statuses)})
}

// Delete - DELETE /place/:id
func (h *PlaceHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.placeUC.Delete(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}

// BulkDelete - DELETE /place?ids=1,2,3
func (h *PlaceHandler) BulkDelete(c *fiber.Ctx) error {
	ids, err := parseIDList(c.Query("ids"))
	if err != nil {
		return utils.SendError(c, err)
	}

	results, err := h.placeUC.BulkDelete(c.Context(), ids)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, results, &utils.Meta{Total: len(results)})
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, apperrors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"id": raw,
		})
	}
	return id, nil
}

// parseIDList parses a comma-separated id list. Empty segments are
// rejected; duplicates survive here and are de-duplicated downstream.
func parseIDList(raw string) ([]int64, error) {
	if raw == "" {
		return nil, apperrors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"ids": raw,
		})
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, apperrors.ErrInvalidRequest.WithDetails(map[string]interface{}{
				"ids":     raw,
				"segment": part,
			})
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parsePageQuery(c *fiber.Ctx) (dto.PageQuery, error) {
	page := dto.PageQuery{
		Page: c.QueryInt("page", 0),
		Size: c.QueryInt("size", 20),
	}

	// sort=modified_at,desc
	if sort := c.Query("sort"); sort != "" {
		parts := strings.SplitN(sort, ",", 2)
		page.SortBy = parts[0]
		if len(parts) == 2 {
			page.Direction = strings.ToLower(parts[1])
		}
	}

	if err := validator.Validate(&page); err != nil {
		return dto.PageQuery{}, apperrors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		})
	}
	return page, nil
}
