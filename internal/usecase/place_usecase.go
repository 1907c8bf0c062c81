package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/greencity/place-service/internal/domain"
	"github.com/greencity/place-service/internal/domain/repository"
	apperrors "github.com/greencity/place-service/internal/pkg/errors"
	"github.com/greencity/place-service/internal/pkg/utils"
	"github.com/greencity/place-service/internal/usecase/dto"
)

// PlaceUseCase drives the place lifecycle: proposals, content updates
// and the moderation state machine.
type PlaceUseCase struct {
	placeRepo    repository.PlaceRepository
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
	cacheRepo    repository.CacheRepository
	streamRepo   repository.StreamRepository
	logger       *zap.Logger
	infoTTL      time.Duration
	now          func() time.Time
}

func NewPlaceUseCase(
	placeRepo repository.PlaceRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
	cacheRepo repository.CacheRepository,
	streamRepo repository.StreamRepository,
	logger *zap.Logger,
	infoTTL time.Duration,
) *PlaceUseCase {
	return &PlaceUseCase{
		placeRepo:    placeRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		cacheRepo:    cacheRepo,
		streamRepo:   streamRepo,
		logger:       logger,
		infoTTL:      infoTTL,
		now:          time.Now,
	}
}

// Propose stores a new place on behalf of the authenticated principal.
// The initial status must be PROPOSED.
func (uc *PlaceUseCase) Propose(ctx context.Context, req dto.PlaceAddRequest, principal string) (*dto.PlaceResponse, error) {
	if req.Status != "" {
		status, ok := domain.ParsePlaceStatus(req.Status)
		if !ok || status != domain.StatusProposed {
			return nil, apperrors.ErrInvalidProposal.WithDetails(map[string]interface{}{
				"status": req.Status,
				"reason": "initial status must be PROPOSED",
			})
		}
	}
	if err := validateProposalAttributes(req.Location, req.Hours); err != nil {
		return nil, err
	}

	author, err := uc.userRepo.GetByEmail(ctx, principal)
	if err != nil {
		return nil, err
	}

	if _, err := uc.categoryRepo.GetByID(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	existing, err := uc.placeRepo.GetByAddress(ctx, req.Address)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrDuplicateAddress.WithDetails(map[string]interface{}{
			"address": req.Address,
		})
	}

	place := &domain.Place{
		Name:       req.Name,
		Address:    req.Address,
		CategoryID: req.CategoryID,
		AuthorID:   author.ID,
		Status:     domain.StatusProposed,
		Location:   domain.Location{Lat: req.Location.Lat, Lng: req.Location.Lng},
		Hours:      hoursToDomain(req.Hours),
	}

	saved, err := uc.placeRepo.Save(ctx, place)
	if err != nil {
		uc.logger.Error("Failed to save place proposal",
			zap.String("address", req.Address),
			zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Place proposed",
		zap.Int64("place_id", saved.ID),
		zap.String("author", principal))
	return dto.NewPlaceResponse(saved, author.Email), nil
}

// Update replaces name, location, category and opening hours. Only the
// author or a moderator may edit, and never a deleted place.
func (uc *PlaceUseCase) Update(ctx context.Context, req dto.PlaceUpdateRequest, principal string) (*dto.PlaceResponse, error) {
	if err := validateProposalAttributes(req.Location, req.Hours); err != nil {
		return nil, err
	}

	caller, err := uc.userRepo.GetByEmail(ctx, principal)
	if err != nil {
		return nil, err
	}

	current, err := uc.placeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if current.Status == domain.StatusDeleted {
		return nil, apperrors.ErrPlaceDeleted
	}
	if current.AuthorID != caller.ID && !caller.IsModerator() {
		return nil, apperrors.ErrForbidden
	}

	if _, err := uc.categoryRepo.GetByID(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	updated, err := uc.placeRepo.Update(ctx, &domain.Place{
		ID:         req.ID,
		Name:       req.Name,
		CategoryID: req.CategoryID,
		Location:   domain.Location{Lat: req.Location.Lat, Lng: req.Location.Lng},
		Hours:      hoursToDomain(req.Hours),
	})
	if err != nil {
		return nil, err
	}

	uc.invalidate(ctx, req.ID)

	author, err := uc.userRepo.GetByID(ctx, updated.AuthorID)
	if err != nil {
		return nil, err
	}
	return dto.NewPlaceResponse(updated, author.Email), nil
}

// GetInfo serves the read projection, cache first.
func (uc *PlaceUseCase) GetInfo(ctx context.Context, id int64) (*domain.PlaceInfo, error) {
	if cached, err := uc.cacheRepo.GetPlaceInfo(ctx, id); err == nil && cached != nil {
		return cached, nil
	}

	info, err := uc.placeRepo.GetInfoByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := uc.cacheRepo.SetPlaceInfo(ctx, info, uc.infoTTL); err != nil {
		uc.logger.Warn("Failed to cache place info", zap.Int64("id", id), zap.Error(err))
	}
	return info, nil
}

// GetAbout serves the editable view for the update form.
func (uc *PlaceUseCase) GetAbout(ctx context.Context, id int64) (*dto.PlaceAboutResponse, error) {
	place, err := uc.placeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewPlaceAboutResponse(place), nil
}

// UpdateStatus applies one moderation transition. Reaching the target
// state without a write is reported as OutcomeAlready, not as a fault.
func (uc *PlaceUseCase) UpdateStatus(ctx context.Context, id int64, status string) (*dto.UpdatePlaceStatusResponse, error) {
	target, ok := domain.ParsePlaceStatus(status)
	if !ok {
		return nil, apperrors.ErrInvalidStatus.WithDetails(map[string]interface{}{
			"status": status,
		})
	}

	result := uc.applyStatus(ctx, id, target)
	if result.Error != nil && result.Outcome == dto.OutcomeFailed {
		return nil, result.Error
	}
	return result, nil
}

// UpdateStatuses runs the administrative sweep: each id is evaluated
// independently, results come back in input order, and nothing rolls
// back on a per-id failure.
func (uc *PlaceUseCase) UpdateStatuses(ctx context.Context, req dto.BulkUpdatePlaceStatusRequest) ([]*dto.UpdatePlaceStatusResponse, error) {
	target, ok := domain.ParsePlaceStatus(req.Status)
	if !ok {
		return nil, apperrors.ErrInvalidStatus.WithDetails(map[string]interface{}{
			"status": req.Status,
		})
	}

	// One response entry per input id, in input order. Duplicate ids
	// are evaluated again; the repeat comes back as a noop.
	results := make([]*dto.UpdatePlaceStatusResponse, 0, len(req.IDs))
	for _, id := range req.IDs {
		results = append(results, uc.applyStatus(ctx, id, target))
	}
	return results, nil
}

// Delete soft-deletes one place via the state machine.
func (uc *PlaceUseCase) Delete(ctx context.Context, id int64) (*dto.UpdatePlaceStatusResponse, error) {
	return uc.UpdateStatus(ctx, id, string(domain.StatusDeleted))
}

// BulkDelete soft-deletes many places, best-effort. Duplicate ids in
// the query string collapse to one entry, first occurrence wins.
func (uc *PlaceUseCase) BulkDelete(ctx context.Context, ids []int64) ([]*dto.UpdatePlaceStatusResponse, error) {
	return uc.UpdateStatuses(ctx, dto.BulkUpdatePlaceStatusRequest{
		IDs:    dedupeIDs(ids),
		Status: string(domain.StatusDeleted),
	})
}

// ListStatuses returns the status enumeration.
func (uc *PlaceUseCase) ListStatuses() []domain.PlaceStatus {
	return domain.PlaceStatuses()
}

func (uc *PlaceUseCase) applyStatus(ctx context.Context, id int64, target domain.PlaceStatus) *dto.UpdatePlaceStatusResponse {
	place, result, err := uc.placeRepo.UpdateStatus(ctx, id, target)

	response := &dto.UpdatePlaceStatusResponse{ID: id}
	switch {
	case err != nil && result == domain.TransitionIllegal && place != nil:
		response.Outcome = dto.OutcomeFailed
		response.Status = string(place.Status)
		response.Error = toAppError(err)

	case err != nil:
		response.Outcome = dto.OutcomeFailed
		response.Error = toAppError(err)

	case result == domain.TransitionNoop:
		response.Outcome = dto.OutcomeAlready
		response.Status = string(place.Status)

	default:
		response.Outcome = dto.OutcomeApplied
		response.Status = string(place.Status)
		uc.invalidate(ctx, id)
		uc.publishStatusEvent(ctx, place, target)
	}
	return response
}

func (uc *PlaceUseCase) publishStatusEvent(ctx context.Context, place *domain.Place, target domain.PlaceStatus) {
	if uc.streamRepo == nil {
		return
	}

	author, err := uc.userRepo.GetByID(ctx, place.AuthorID)
	if err != nil {
		uc.logger.Warn("Failed to resolve author for status event",
			zap.Int64("place_id", place.ID),
			zap.Error(err))
		return
	}

	event := domain.PlaceStatusEvent{
		EventID:     uuid.New(),
		PlaceID:     place.ID,
		PlaceName:   place.Name,
		NewStatus:   target,
		AuthorEmail: author.Email,
		OccurredAt:  uc.now().UTC(),
	}

	if err := uc.streamRepo.PublishToStream(ctx, domain.StreamPlaceStatus, event); err != nil {
		// Notification is best-effort; the transition is already durable.
		uc.logger.Warn("Failed to publish status event",
			zap.Int64("place_id", place.ID),
			zap.Error(err))
	}
}

func (uc *PlaceUseCase) invalidate(ctx context.Context, id int64) {
	if err := uc.cacheRepo.InvalidatePlace(ctx, id); err != nil {
		uc.logger.Warn("Failed to invalidate place cache", zap.Int64("id", id), zap.Error(err))
	}
}

// validateProposalAttributes enforces the attribute-level invariants
// the struct tags cannot express.
func validateProposalAttributes(location dto.LocationDto, hours []dto.OpeningHoursDto) error {
	if !utils.ValidateCoordinates(location.Lat, location.Lng) {
		return apperrors.ErrInvalidProposal.WithDetails(map[string]interface{}{
			"reason": "coordinates out of range",
		})
	}
	for _, h := range hours {
		if h.CloseTime <= h.OpenTime {
			return apperrors.ErrInvalidProposal.WithDetails(map[string]interface{}{
				"reason":   "close time must be after open time",
				"week_day": h.WeekDay,
			})
		}
	}
	return nil
}

func hoursToDomain(hours []dto.OpeningHoursDto) []domain.OpeningHours {
	result := make([]domain.OpeningHours, 0, len(hours))
	for _, h := range hours {
		result = append(result, h.ToDomain())
	}
	return result
}

// dedupeIDs drops repeated ids, keeping first-occurrence order.
func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

func toAppError(err error) *apperrors.AppError {
	if appErr, ok := err.(*apperrors.AppError); ok {
		return appErr
	}
	return apperrors.ErrInternalServer
}
