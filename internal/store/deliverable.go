package store

import (
	"context"
	"fmt"
	"time"

	"quillworks/internal/utils"
	"quillworks/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const deliverableTableName = "quillworks.deliverables"

var deliverableColumns = utils.StructTagValues(types.Deliverable{})

type DeliverableRepository struct {
	pool *pgxpool.Pool
}

func NewDeliverableRepository(pool *pgxpool.Pool) *DeliverableRepository {
	return &DeliverableRepository{pool: pool}
}

func (r *DeliverableRepository) CreateDeliverable(ctx context.Context, deliverable *types.Deliverable) error {
	now := time.Now()
	deliverable.ID = uuid.NewString()
	deliverable.CreatedAt = now
	deliverable.UpdatedAt = now

	query, args, err := psql().
		Insert(deliverableTableName).
		SetMap(utils.StructToMap(deliverable)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert deliverable query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to insert deliverable")
}

func (r *DeliverableRepository) Deliverable(ctx context.Context, id string) (*types.Deliverable, error) {
	query, args, err := psql().
		Select(deliverableColumns...).
		From(deliverableTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate deliverable query: %w", err)
	}

	var deliverable types.Deliverable
	err = pgxscan.Get(ctx, r.pool, &deliverable, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrDeliverableNotFound
		}
		return nil, fmt.Errorf("failed to fetch deliverable: %w", err)
	}

	return &deliverable, nil
}

// DeliverableForUser scopes the fetch to the owning user so one customer can
// never address another customer's files.
func (r *DeliverableRepository) DeliverableForUser(ctx context.Context, id, userID string) (*types.Deliverable, error) {
	query, args, err := psql().
		Select(deliverableColumns...).
		From(deliverableTableName).
		Where(sq.Eq{"id": id, "user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate deliverable query: %w", err)
	}

	var deliverable types.Deliverable
	err = pgxscan.Get(ctx, r.pool, &deliverable, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrDeliverableNotFound
		}
		return nil, fmt.Errorf("failed to fetch deliverable: %w", err)
	}

	return &deliverable, nil
}

func (r *DeliverableRepository) DeliverablesByUser(ctx context.Context, userID string) ([]*types.Deliverable, error) {
	query, args, err := psql().
		Select(deliverableColumns...).
		From(deliverableTableName).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate deliverables query: %w", err)
	}

	deliverables := make([]*types.Deliverable, 0)
	err = pgxscan.Select(ctx, r.pool, &deliverables, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch deliverables: %w", err)
	}

	return deliverables, nil
}

func (r *DeliverableRepository) AllDeliverables(ctx context.Context) ([]*types.Deliverable, error) {
	query, args, err := psql().
		Select(deliverableColumns...).
		From(deliverableTableName).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate deliverables query: %w", err)
	}

	deliverables := make([]*types.Deliverable, 0)
	err = pgxscan.Select(ctx, r.pool, &deliverables, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch deliverables: %w", err)
	}

	return deliverables, nil
}

func (r *DeliverableRepository) UpdateDeliverableStatus(ctx context.Context, id string, status types.DeliverableStatus, notes *string) error {
	setMap := map[string]any{
		"status":     status,
		"updated_at": time.Now(),
	}
	if notes != nil {
		setMap["delivery_notes"] = *notes
	}

	query, args, err := psql().
		Update(deliverableTableName).
		SetMap(setMap).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update deliverable query for %s: %w", id, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update deliverable status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrDeliverableNotFound
	}

	return nil
}
