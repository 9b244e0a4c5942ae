package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Lucas-Nascimentto/projeto-fan/internal/domain/entity"
	"github.com/Lucas-Nascimentto/projeto-fan/internal/domain/repository"
)

const donationColumns = `id, owner_id, title, description, category, location, city, state, photo_url, created_at, updated_at`

type DonationRepository struct {
	pool *pgxpool.Pool
}

func NewDonationRepository(pool *pgxpool.Pool) *DonationRepository {
	return &DonationRepository{pool: pool}
}

func (r *DonationRepository) Create(ctx context.Context, d *entity.Donation) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO doacoes (owner_id, title, description, category, location, city, state, photo_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, d.OwnerID, d.Title, d.Description, d.Category, d.Location, d.City, d.State, d.PhotoURL)

	return row.Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
}

func (r *DonationRepository) GetByID(ctx context.Context, id string) (*entity.Donation, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+donationColumns+` FROM doacoes WHERE id = $1`, id)

	d, err := scanDonation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

func (r *DonationRepository) Update(ctx context.Context, d *entity.Donation) error {
	d.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE doacoes
		SET title = $1, description = $2, category = $3, location = $4, city = $5, state = $6,
		    photo_url = $7, updated_at = $8
		WHERE id = $9
	`, d.Title, d.Description, d.Category, d.Location, d.City, d.State, d.PhotoURL, d.UpdatedAt, d.ID)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *DonationRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM doacoes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *DonationRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Donation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+donationColumns+` FROM doacoes
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDonations(rows)
}

func (r *DonationRepository) ListExcludingOwner(ctx context.Context, ownerID string, f repository.DonationFilter) ([]*entity.Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM doacoes WHERE owner_id <> $1`
	args := []any{ownerID}

	for _, cond := range []struct {
		column string
		value  string
	}{
		{"category", f.Category},
		{"city", f.City},
		{"state", f.State},
	} {
		if cond.value == "" {
			continue
		}
		args = append(args, cond.value)
		query += fmt.Sprintf(" AND %s = $%d", cond.column, len(args))
	}

	switch f.Sort {
	case repository.SortRecent:
		query += " ORDER BY created_at DESC"
	case repository.SortOldest:
		query += " ORDER BY created_at ASC"
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDonations(rows)
}

func (r *DonationRepository) IDsByOwner(ctx context.Context, ownerID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM doacoes WHERE owner_id = $1`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanDonation(row pgx.Row) (*entity.Donation, error) {
	d := &entity.Donation{}
	if err := row.Scan(&d.ID, &d.OwnerID, &d.Title, &d.Description, &d.Category,
		&d.Location, &d.City, &d.State, &d.PhotoURL, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	return d, nil
}

func collectDonations(rows pgx.Rows) ([]*entity.Donation, error) {
	var out []*entity.Donation
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

var _ repository.DonationRepository = (*DonationRepository)(nil)
