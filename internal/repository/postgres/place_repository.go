package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/greencity/place-service/internal/domain"
	"github.com/greencity/place-service/internal/domain/repository"
	apperrors "github.com/greencity/place-service/internal/pkg/errors"
)

type placeRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
	now    func() time.Time
}

func NewPlaceRepository(db *DB) repository.PlaceRepository {
	return &placeRepository{
		db:     db.DB,
		logger: db.logger,
		now:    time.Now,
	}
}

// NewPlaceRepositoryWithClock fixes the clock for tests.
func NewPlaceRepositoryWithClock(db *DB, now func() time.Time) repository.PlaceRepository {
	return &placeRepository{
		db:     db.DB,
		logger: db.logger,
		now:    now,
	}
}

func (r *placeRepository) Save(ctx context.Context, place *domain.Place) (*domain.Place, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return nil, storeError(ctx, err)
	}
	defer tx.Rollback()

	now := r.now().UTC()

	query := `
		INSERT INTO places (name, address, category_id, author_id, status, created_at, modified_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id
	`

	var id int64
	err = tx.QueryRowContext(ctx, query,
		place.Name, place.Address, place.CategoryID, place.AuthorID, place.Status, now,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrDuplicateAddress
		}
		if isForeignKeyViolation(err, "places_category_id_fkey") {
			return nil, apperrors.ErrUnknownCategory
		}
		if isForeignKeyViolation(err, "places_author_id_fkey") {
			return nil, apperrors.ErrUnknownUser
		}
		r.logger.Error("Failed to insert place", zap.String("address", place.Address), zap.Error(err))
		return nil, storeError(ctx, err)
	}

	if err := insertLocation(ctx, tx, id, place.Location); err != nil {
		r.logger.Error("Failed to insert location", zap.Int64("place_id", id), zap.Error(err))
		return nil, storeError(ctx, err)
	}

	hours, err := insertHours(ctx, tx, id, place.Hours)
	if err != nil {
		r.logger.Error("Failed to insert opening hours", zap.Int64("place_id", id), zap.Error(err))
		return nil, storeError(ctx, err)
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit place", zap.Int64("place_id", id), zap.Error(err))
		return nil, storeError(ctx, err)
	}

	saved := *place
	saved.ID = id
	saved.CreatedAt = now
	saved.ModifiedAt = now
	saved.Location.PlaceID = id
	saved.Hours = hours
	return &saved, nil
}

func (r *placeRepository) Update(ctx context.Context, place *domain.Place) (*domain.Place, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return nil, storeError(ctx, err)
	}
	defer tx.Rollback()

	now := r.now().UTC()

	// Status and author stay untouched on content updates.
	query := `
		UPDATE places
		SET name = $2, category_id = $3, modified_at = $4
		WHERE id = $1
		RETURNING address, author_id, status, created_at
	`

	updated := domain.Place{
		ID:         place.ID,
		Name:       place.Name,
		CategoryID: place.CategoryID,
		ModifiedAt: now,
	}
	err = tx.QueryRowContext(ctx, query, place.ID, place.Name, place.CategoryID, now).
		Scan(&updated.Address, &updated.AuthorID, &updated.Status, &updated.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrPlaceNotFound
	}
	if err != nil {
		if isForeignKeyViolation(err, "places_category_id_fkey") {
			return nil, apperrors.ErrUnknownCategory
		}
		r.logger.Error("Failed to update place", zap.Int64("place_id", place.ID), zap.Error(err))
		return nil, storeError(ctx, err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE locations SET lat = $2, lng = $3 WHERE place_id = $1`,
		place.ID, place.Location.Lat, place.Location.Lng,
	); err != nil {
		r.logger.Error("Failed to update location", zap.Int64("place_id", place.ID), zap.Error(err))
		return nil, storeError(ctx, err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM opening_hours WHERE place_id = $1`, place.ID,
	); err != nil {
		r.logger.Error("Failed to clear opening hours", zap.Int64("place_id", place.ID), zap.Error(err))
		return nil, storeError(ctx, err)
	}

	hours, err := insertHours(ctx, tx, place.ID, place.Hours)
	if err != nil {
		r.logger.Error("Failed to insert opening hours", zap.Int64("place_id", place.ID), zap.Error(err))
		return nil, storeError(ctx, err)
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit place update", zap.Int64("place_id", place.ID), zap.Error(err))
		return nil, storeError(ctx, err)
	}

	updated.Location = domain.Location{PlaceID: place.ID, Lat: place.Location.Lat, Lng: place.Location.Lng}
	updated.Hours = hours
	return &updated, nil
}

func (r *placeRepository) GetByID(ctx context.Context, id int64) (*domain.Place, error) {
	query := `
		SELECT p.id, p.name, p.address, p.category_id, p.author_id, p.status,
			p.created_at, p.modified_at, l.lat, l.lng
		FROM places p
		JOIN locations l ON l.place_id = p.id
		WHERE p.id = $1
	`

	var place domain.Place
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&place.ID, &place.Name, &place.Address, &place.CategoryID, &place.AuthorID,
		&place.Status, &place.CreatedAt, &place.ModifiedAt,
		&place.Location.Lat, &place.Location.Lng,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrPlaceNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get place by ID", zap.Int64("id", id), zap.Error(err))
		return nil, storeError(ctx, err)
	}
	place.Location.PlaceID = place.ID

	place.Hours, err = r.hoursByPlace(ctx, id)
	if err != nil {
		return nil, err
	}

	return &place, nil
}

func (r *placeRepository) GetInfoByID(ctx context.Context, id int64) (*domain.PlaceInfo, error) {
	query := `
		SELECT p.id, p.name, p.address, c.name, u.email, p.status, l.lat, l.lng
		FROM places p
		JOIN categories c ON c.id = p.category_id
		JOIN users u ON u.id = p.author_id
		JOIN locations l ON l.place_id = p.id
		WHERE p.id = $1
	`

	var info domain.PlaceInfo
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&info.ID, &info.Name, &info.Address, &info.CategoryName, &info.AuthorEmail,
		&info.Status, &info.Location.Lat, &info.Location.Lng,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrPlaceNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get place info", zap.Int64("id", id), zap.Error(err))
		return nil, storeError(ctx, err)
	}
	info.Location.PlaceID = info.ID

	info.Hours, err = r.hoursByPlace(ctx, id)
	if err != nil {
		return nil, err
	}

	return &info, nil
}

func (r *placeRepository) GetByAddress(ctx context.Context, address string) (*domain.Place, error) {
	query := `
		SELECT p.id, p.name, p.address, p.category_id, p.author_id, p.status,
			p.created_at, p.modified_at, l.lat, l.lng
		FROM places p
		JOIN locations l ON l.place_id = p.id
		WHERE p.address = $1 AND p.status <> $2
	`

	var place domain.Place
	err := r.db.QueryRowContext(ctx, query, address, domain.StatusDeleted).Scan(
		&place.ID, &place.Name, &place.Address, &place.CategoryID, &place.AuthorID,
		&place.Status, &place.CreatedAt, &place.ModifiedAt,
		&place.Location.Lat, &place.Location.Lng,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get place by address", zap.String("address", address), zap.Error(err))
		return nil, storeError(ctx, err)
	}
	place.Location.PlaceID = place.ID

	return &place, nil
}

func (r *placeRepository) FindByMapBounds(ctx context.Context, bounds domain.MapBounds) ([]*domain.PlaceByBounds, error) {
	query := `
		SELECT p.id, p.name, p.address, l.lat, l.lng
		FROM places p
		JOIN locations l ON l.place_id = p.id
		WHERE p.status = $1 AND l.lat BETWEEN $2 AND $3
	`
	args := []interface{}{domain.StatusApproved, bounds.SouthWestLat, bounds.NorthEastLat}

	// A rectangle wrapping the antimeridian covers two longitude ranges.
	ranges := bounds.LngRanges()
	if len(ranges) == 2 {
		query += " AND (l.lng BETWEEN $4 AND $5 OR l.lng BETWEEN $6 AND $7)"
		args = append(args,
			ranges[0][0], ranges[0][1],
			ranges[1][0], ranges[1][1],
		)
	} else {
		query += " AND l.lng BETWEEN $4 AND $5"
		args = append(args, ranges[0][0], ranges[0][1])
	}

	query += " ORDER BY p.id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to find places by map bounds", zap.Error(err))
		return nil, storeError(ctx, err)
	}
	defer rows.Close()

	return scanPlacesByBounds(rows)
}

func (r *placeRepository) FindByStatus(ctx context.Context, status domain.PlaceStatus, page domain.PageRequest) ([]*domain.AdminPlace, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM places WHERE status = $1`, status,
	).Scan(&total); err != nil {
		r.logger.Error("Failed to count places by status", zap.String("status", string(status)), zap.Error(err))
		return nil, 0, storeError(ctx, err)
	}

	page = page.Normalize()
	query := fmt.Sprintf(`
		SELECT p.id, p.name, p.address, c.name, u.email, p.status, p.modified_at
		FROM places p
		JOIN categories c ON c.id = p.category_id
		JOIN users u ON u.id = p.author_id
		WHERE p.status = $1
		ORDER BY %s LIMIT $2 OFFSET $3
	`, orderClause(page))

	rows, err := r.db.QueryContext(ctx, query, status, page.Size, page.Offset())
	if err != nil {
		r.logger.Error("Failed to find places by status", zap.String("status", string(status)), zap.Error(err))
		return nil, 0, storeError(ctx, err)
	}
	defer rows.Close()

	var places []*domain.AdminPlace
	for rows.Next() {
		var p domain.AdminPlace
		if err := rows.Scan(&p.ID, &p.Name, &p.Address, &p.CategoryName, &p.AuthorEmail, &p.Status, &p.ModifiedAt); err != nil {
			r.logger.Error("Failed to scan admin place", zap.Error(err))
			continue
		}
		places = append(places, &p)
	}

	return places, total, nil
}

func (r *placeRepository) FindByFilter(ctx context.Context, filter domain.FilterPlace, page *domain.PageRequest) ([]*domain.PlaceByBounds, int64, error) {
	where, args := buildFilterWhere(filter)

	var total int64
	countQuery := `
		SELECT COUNT(*)
		FROM places p
		JOIN locations l ON l.place_id = p.id
	` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		r.logger.Error("Failed to count filtered places", zap.Error(err))
		return nil, 0, storeError(ctx, err)
	}

	query := `
		SELECT p.id, p.name, p.address, l.lat, l.lng
		FROM places p
		JOIN locations l ON l.place_id = p.id
	` + where

	if page != nil {
		normalized := page.Normalize()
		query += fmt.Sprintf(" ORDER BY %s LIMIT $%d OFFSET $%d",
			orderClause(normalized), len(args)+1, len(args)+2)
		args = append(args, normalized.Size, normalized.Offset())
	} else {
		query += " ORDER BY p.modified_at DESC, p.id ASC"
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to find places by filter", zap.Error(err))
		return nil, 0, storeError(ctx, err)
	}
	defer rows.Close()

	places, err := scanPlacesByBounds(rows)
	if err != nil {
		return nil, 0, err
	}
	return places, total, nil
}

func (r *placeRepository) UpdateStatus(ctx context.Context, id int64, target domain.PlaceStatus) (*domain.Place, domain.TransitionResult, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return nil, domain.TransitionIllegal, storeError(ctx, err)
	}
	defer tx.Rollback()

	// Row lock serialises concurrent transitions on the same place.
	query := `
		SELECT id, name, address, category_id, author_id, status, created_at, modified_at
		FROM places
		WHERE id = $1
		FOR UPDATE
	`

	var place domain.Place
	err = tx.QueryRowContext(ctx, query, id).Scan(
		&place.ID, &place.Name, &place.Address, &place.CategoryID, &place.AuthorID,
		&place.Status, &place.CreatedAt, &place.ModifiedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.TransitionIllegal, apperrors.ErrPlaceNotFound
	}
	if err != nil {
		r.logger.Error("Failed to lock place for status update", zap.Int64("id", id), zap.Error(err))
		return nil, domain.TransitionIllegal, storeError(ctx, err)
	}

	switch domain.CheckTransition(place.Status, target) {
	case domain.TransitionNoop:
		if err := tx.Commit(); err != nil {
			return nil, domain.TransitionNoop, storeError(ctx, err)
		}
		return &place, domain.TransitionNoop, nil

	case domain.TransitionIllegal:
		return &place, domain.TransitionIllegal, apperrors.ErrIllegalTransition.WithDetails(map[string]interface{}{
			"place_id": id,
			"from":     place.Status,
			"to":       target,
		})
	}

	now := r.now().UTC()
	if _, err := tx.ExecContext(ctx,
		`UPDATE places SET status = $2, modified_at = $3 WHERE id = $1`,
		id, target, now,
	); err != nil {
		r.logger.Error("Failed to update place status", zap.Int64("id", id), zap.Error(err))
		return nil, domain.TransitionIllegal, storeError(ctx, err)
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit status update", zap.Int64("id", id), zap.Error(err))
		return nil, domain.TransitionIllegal, storeError(ctx, err)
	}

	place.Status = target
	place.ModifiedAt = now
	return &place, domain.TransitionAllowed, nil
}

func (r *placeRepository) hoursByPlace(ctx context.Context, placeID int64) ([]domain.OpeningHours, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, place_id, week_day, open_time, close_time
		 FROM opening_hours WHERE place_id = $1 ORDER BY id`, placeID)
	if err != nil {
		r.logger.Error("Failed to get opening hours", zap.Int64("place_id", placeID), zap.Error(err))
		return nil, storeError(ctx, err)
	}
	defer rows.Close()

	var hours []domain.OpeningHours
	for rows.Next() {
		var h domain.OpeningHours
		if err := rows.Scan(&h.ID, &h.PlaceID, &h.WeekDay, &h.OpenTime, &h.CloseTime); err != nil {
			continue
		}
		hours = append(hours, h)
	}
	return hours, nil
}

func insertLocation(ctx context.Context, tx *sqlx.Tx, placeID int64, loc domain.Location) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO locations (place_id, lat, lng) VALUES ($1, $2, $3)`,
		placeID, loc.Lat, loc.Lng,
	)
	return err
}

func insertHours(ctx context.Context, tx *sqlx.Tx, placeID int64, hours []domain.OpeningHours) ([]domain.OpeningHours, error) {
	inserted := make([]domain.OpeningHours, 0, len(hours))
	for _, h := range hours {
		var id int64
		err := tx.QueryRowContext(ctx,
			`INSERT INTO opening_hours (place_id, week_day, open_time, close_time)
			 VALUES ($1, $2, $3, $4) RETURNING id`,
			placeID, h.WeekDay, h.OpenTime, h.CloseTime,
		).Scan(&id)
		if err != nil {
			return nil, err
		}
		h.ID = id
		h.PlaceID = placeID
		inserted = append(inserted, h)
	}
	return inserted, nil
}

func scanPlacesByBounds(rows *sql.Rows) ([]*domain.PlaceByBounds, error) {
	var places []*domain.PlaceByBounds
	for rows.Next() {
		var p domain.PlaceByBounds
		if err := rows.Scan(&p.ID, &p.Name, &p.Address, &p.Location.Lat, &p.Location.Lng); err != nil {
			continue
		}
		p.Location.PlaceID = p.ID
		places = append(places, &p)
	}
	if err := rows.Err(); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrDatabaseError
	}
	return places, nil
}

// buildFilterWhere translates the predicate conjunction into SQL. The
// status predicate is always present: an absent status means APPROVED.
func buildFilterWhere(filter domain.FilterPlace) (string, []interface{}) {
	status := domain.StatusApproved
	if filter.Status != nil {
		status = *filter.Status
	}

	where := " WHERE p.status = $1"
	args := []interface{}{status}

	if filter.Text != "" {
		args = append(args, "%"+escapeLike(filter.Text)+"%")
		where += fmt.Sprintf(" AND p.name ILIKE $%d", len(args))
	}

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		where += fmt.Sprintf(" AND p.category_id = $%d", len(args))
	}

	if filter.Bounds != nil {
		b := *filter.Bounds
		args = append(args, b.SouthWestLat, b.NorthEastLat)
		where += fmt.Sprintf(" AND l.lat BETWEEN $%d AND $%d", len(args)-1, len(args))

		ranges := b.LngRanges()
		if len(ranges) == 2 {
			args = append(args, ranges[0][0], ranges[0][1], ranges[1][0], ranges[1][1])
			where += fmt.Sprintf(" AND (l.lng BETWEEN $%d AND $%d OR l.lng BETWEEN $%d AND $%d)",
				len(args)-3, len(args)-2, len(args)-1, len(args))
		} else {
			args = append(args, ranges[0][0], ranges[0][1])
			where += fmt.Sprintf(" AND l.lng BETWEEN $%d AND $%d", len(args)-1, len(args))
		}
	}

	if filter.Distance != nil {
		// Great-circle distance on the sphere; planar math is wrong at
		// this scale.
		d := *filter.Distance
		args = append(args, d.Lat, d.Lng, d.RadiusMeters)
		latArg := len(args) - 2
		lngArg := len(args) - 1
		radiusArg := len(args)
		where += fmt.Sprintf(
			" AND (2 * 6371000 * asin(sqrt("+
				"power(sin(radians(l.lat - $%d) / 2), 2) + "+
				"cos(radians($%d)) * cos(radians(l.lat)) * "+
				"power(sin(radians(l.lng - $%d) / 2), 2)))) <= $%d",
			latArg, latArg, lngArg, radiusArg)
	}

	return where, args
}

// orderClause whitelists sort keys; anything else falls back to the
// default moderation ordering.
func orderClause(page domain.PageRequest) string {
	direction := "DESC"
	if page.Direction == domain.SortAsc {
		direction = "ASC"
	}

	switch page.SortBy {
	case "name":
		return fmt.Sprintf("p.name %s, p.id ASC", direction)
	case "created_at":
		return fmt.Sprintf("p.created_at %s, p.id ASC", direction)
	case "id":
		return fmt.Sprintf("p.id %s", direction)
	default:
		return fmt.Sprintf("p.modified_at %s, p.id ASC", direction)
	}
}
