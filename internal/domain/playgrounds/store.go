package playgrounds

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

const baseColumns = `
	id, name, description, address, city, postal_code,
	latitude, longitude, age_range, status, rejection_reason,
	COALESCE(submitted_by, 0), created_at, updated_at`

func scanRaw(row pgx.Row) (*Raw, error) {
	var r Raw
	err := row.Scan(
		&r.ID,
		&r.Name,
		&r.Description,
		&r.Address,
		&r.City,
		&r.PostalCode,
		&r.Latitude,
		&r.Longitude,
		&r.AgeRange,
		&r.Status,
		&r.Rejection,
		&r.SubmittedBy,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListApproved returns every approved playground with its nested images and
// equipment-id list, oldest first.
func (s *Repository) ListApproved(ctx context.Context) ([]Raw, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, `
		SELECT `+baseColumns+`
		FROM playgrounds
		WHERE status = 'approved'
		ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list approved playgrounds: %w", err)
	}
	defer rows.Close()

	raws, err := collectRaws(rows)
	if err != nil {
		return nil, err
	}

	if err := s.attachNested(ctx, raws); err != nil {
		return nil, err
	}
	return raws, nil
}

// ListBySubmitter returns every playground submitted by the given user,
// newest first, regardless of moderation status.
func (s *Repository) ListBySubmitter(ctx context.Context, userID int64) ([]Raw, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, `
		SELECT `+baseColumns+`
		FROM playgrounds
		WHERE submitted_by = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list playgrounds by submitter: %w", err)
	}
	defer rows.Close()

	raws, err := collectRaws(rows)
	if err != nil {
		return nil, err
	}

	if err := s.attachNested(ctx, raws); err != nil {
		return nil, err
	}
	return raws, nil
}

// List returns playgrounds matching the filter plus the unfiltered total,
// for the admin review listing.
func (s *Repository) List(ctx context.Context, filter ListFilter) ([]Raw, int, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	where := ""
	args := []any{}
	if filter.Status != nil {
		where = "WHERE status = $1"
		args = append(args, string(*filter.Status))
	}

	var total int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM playgrounds `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count playgrounds: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM playgrounds
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, baseColumns, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list playgrounds: %w", err)
	}
	defer rows.Close()

	raws, err := collectRaws(rows)
	if err != nil {
		return nil, 0, err
	}

	if err := s.attachNested(ctx, raws); err != nil {
		return nil, 0, err
	}
	return raws, total, nil
}

func (s *Repository) GetByID(ctx context.Context, id int64) (*Raw, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	raw, err := scanRaw(s.db.QueryRow(ctx, `
		SELECT `+baseColumns+`
		FROM playgrounds
		WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get playground: %w", err)
	}

	list := []Raw{*raw}
	if err := s.attachNested(ctx, list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

// Create inserts the base playground row inside the caller's transaction.
// Images and equipment associations are added through AddImages and
// ReplaceEquipments on the same transaction so a submission is atomic.
func (s *Repository) Create(ctx context.Context, tx pgx.Tx, in *CreateInput) (*Raw, error) {
	raw := &Raw{
		Name:         in.Name,
		Description:  in.Description,
		Address:      in.Address,
		City:         in.City,
		PostalCode:   in.PostalCode,
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
		AgeRange:     in.AgeRange,
		SubmittedBy:  in.SubmittedBy,
		EquipmentIDs: in.EquipmentIDs,
	}

	err := tx.QueryRow(ctx, `
		INSERT INTO playgrounds
			(name, description, address, city, postal_code, latitude, longitude, age_range, submitted_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, status, created_at, updated_at`,
		in.Name,
		in.Description,
		in.Address,
		in.City,
		in.PostalCode,
		in.Latitude,
		in.Longitude,
		in.AgeRange,
		in.SubmittedBy,
	).Scan(&raw.ID, &raw.Status, &raw.CreatedAt, &raw.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create playground: %w", err)
	}
	return raw, nil
}

func (s *Repository) AddImages(ctx context.Context, tx pgx.Tx, playgroundID int64, urls []string) error {
	for _, u := range urls {
		if _, err := tx.Exec(ctx, `
			INSERT INTO playground_images (playground_id, url, status)
			VALUES ($1, $2, 'pending')`, playgroundID, u); err != nil {
			return fmt.Errorf("add playground image: %w", err)
		}
	}
	return nil
}

// ReplaceEquipments swaps the full association set: delete-then-insert, not
// an incremental diff.
func (s *Repository) ReplaceEquipments(ctx context.Context, tx pgx.Tx, playgroundID int64, equipmentIDs []string) error {
	if _, err := tx.Exec(ctx, `
		DELETE FROM playground_equipments WHERE playground_id = $1`, playgroundID); err != nil {
		return fmt.Errorf("clear playground equipments: %w", err)
	}
	for _, eq := range equipmentIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO playground_equipments (playground_id, equipment_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, playgroundID, eq); err != nil {
			return fmt.Errorf("add playground equipment: %w", err)
		}
	}
	return nil
}

// Update patches the base fields that are set in the input. Equipment
// replacement runs in its own short transaction when EquipmentIDs is
// non-nil.
func (s *Repository) Update(ctx context.Context, id int64, in *UpdateInput) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	sets := []string{}
	args := []any{}
	add := func(col string, v any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)+1))
		args = append(args, v)
	}

	if in.Name != nil {
		add("name", *in.Name)
	}
	if in.Description != nil {
		add("description", *in.Description)
	}
	if in.Address != nil {
		add("address", *in.Address)
	}
	if in.City != nil {
		add("city", *in.City)
	}
	if in.PostalCode != nil {
		add("postal_code", *in.PostalCode)
	}
	if in.Latitude != nil {
		add("latitude", *in.Latitude)
	}
	if in.Longitude != nil {
		add("longitude", *in.Longitude)
	}
	if in.AgeRange != nil {
		add("age_range", *in.AgeRange)
	}

	if len(sets) > 0 {
		sets = append(sets, "updated_at = NOW()")
		query := fmt.Sprintf("UPDATE playgrounds SET %s WHERE id = $%d",
			strings.Join(sets, ", "), len(args)+1)
		args = append(args, id)

		tag, err := s.db.Exec(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("update playground: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
	}

	if in.EquipmentIDs != nil {
		tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(ctx) }()

		if err := s.ReplaceEquipments(ctx, tx, id, in.EquipmentIDs); err != nil {
			return err
		}
		return tx.Commit(ctx)
	}
	return nil
}

// UpdateStatus overwrites the moderation status. The reason is persisted on
// rejection and cleared otherwise.
func (s *Repository) UpdateStatus(ctx context.Context, id int64, status Status, reason *string) error {
	if !status.Valid() {
		return ErrInvalidTransition
	}
	if status != StatusRejected {
		reason = nil
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := s.db.Exec(ctx, `
		UPDATE playgrounds
		SET status = $1, rejection_reason = $2, updated_at = NOW()
		WHERE id = $3`, string(status), reason, id)
	if err != nil {
		return fmt.Errorf("update playground status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the playground. Images, equipment associations, comments
// and favorites cascade at the schema level.
func (s *Repository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := s.db.Exec(ctx, `DELETE FROM playgrounds WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete playground: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Repository) IsSubmitter(ctx context.Context, id, userID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var submittedBy int64
	err := s.db.QueryRow(ctx, `SELECT COALESCE(submitted_by, 0) FROM playgrounds WHERE id = $1`, id).Scan(&submittedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, ErrNotFound
		}
		return false, err
	}
	return submittedBy == userID, nil
}

func collectRaws(rows pgx.Rows) ([]Raw, error) {
	var raws []Raw
	for rows.Next() {
		raw, err := scanRaw(rows)
		if err != nil {
			return nil, err
		}
		raws = append(raws, *raw)
	}
	return raws, rows.Err()
}

// attachNested loads the joined image and equipment collections for the
// given rows in two batch queries.
func (s *Repository) attachNested(ctx context.Context, raws []Raw) error {
	if len(raws) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(raws))
	index := make(map[int64]*Raw, len(raws))
	for i := range raws {
		ids = append(ids, raws[i].ID)
		index[raws[i].ID] = &raws[i]
		raws[i].Images = []RawImage{}
		raws[i].EquipmentIDs = []string{}
	}

	imgRows, err := s.db.Query(ctx, `
		SELECT id, playground_id, url, status, created_at
		FROM playground_images
		WHERE playground_id = ANY($1)
		ORDER BY position ASC, created_at ASC`, ids)
	if err != nil {
		return fmt.Errorf("load playground images: %w", err)
	}
	defer imgRows.Close()

	for imgRows.Next() {
		var (
			img  RawImage
			pgID int64
		)
		if err := imgRows.Scan(&img.ID, &pgID, &img.URL, &img.Status, &img.CreatedAt); err != nil {
			return err
		}
		if raw, ok := index[pgID]; ok {
			raw.Images = append(raw.Images, img)
		}
	}
	if err := imgRows.Err(); err != nil {
		return err
	}

	eqRows, err := s.db.Query(ctx, `
		SELECT playground_id, equipment_id
		FROM playground_equipments
		WHERE playground_id = ANY($1)
		ORDER BY equipment_id ASC`, ids)
	if err != nil {
		return fmt.Errorf("load playground equipments: %w", err)
	}
	defer eqRows.Close()

	for eqRows.Next() {
		var (
			pgID int64
			eqID string
		)
		if err := eqRows.Scan(&pgID, &eqID); err != nil {
			return err
		}
		if raw, ok := index[pgID]; ok {
			raw.EquipmentIDs = append(raw.EquipmentIDs, eqID)
		}
	}
	return eqRows.Err()
}
