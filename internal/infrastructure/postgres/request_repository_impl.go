package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Lucas-Nascimentto/projeto-fan/internal/domain/entity"
	"github.com/Lucas-Nascimentto/projeto-fan/internal/domain/repository"
)

const requestColumns = `id, donation_id, requester_id, reason, status, created_at, updated_at`

type RequestRepository struct {
	pool *pgxpool.Pool
}

func NewRequestRepository(pool *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{pool: pool}
}

func (r *RequestRepository) Create(ctx context.Context, req *entity.DonationRequest) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO solicitacoes (donation_id, requester_id, reason, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, req.DonationID, req.RequesterID, req.Reason, string(req.Status))

	return row.Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
}

func (r *RequestRepository) GetByID(ctx context.Context, id string) (*entity.DonationRequest, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+requestColumns+` FROM solicitacoes WHERE id = $1`, id)

	req, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

func (r *RequestRepository) UpdateStatus(ctx context.Context, id string, status entity.RequestStatus) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE solicitacoes SET status = $1, updated_at = $2 WHERE id = $3
	`, string(status), time.Now(), id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *RequestRepository) ListByRequester(ctx context.Context, requesterID string) ([]*entity.DonationRequest, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+requestColumns+` FROM solicitacoes
		WHERE requester_id = $1
		ORDER BY created_at DESC
	`, requesterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRequests(rows)
}

func (r *RequestRepository) ListByDonations(ctx context.Context, donationIDs []string) ([]*entity.DonationRequest, error) {
	if len(donationIDs) == 0 {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+requestColumns+` FROM solicitacoes
		WHERE donation_id = ANY($1)
		ORDER BY created_at DESC
	`, donationIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRequests(rows)
}

func scanRequest(row pgx.Row) (*entity.DonationRequest, error) {
	req := &entity.DonationRequest{}
	if err := row.Scan(&req.ID, &req.DonationID, &req.RequesterID, &req.Reason,
		&req.Status, &req.CreatedAt, &req.UpdatedAt); err != nil {
		return nil, err
	}
	return req, nil
}

func collectRequests(rows pgx.Rows) ([]*entity.DonationRequest, error) {
	var out []*entity.DonationRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

var _ repository.RequestRepository = (*RequestRepository)(nil)
