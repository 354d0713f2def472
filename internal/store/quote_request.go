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

const quoteRequestTableName = "quillworks.quote_requests"

var quoteRequestColumns = utils.StructTagValues(types.QuoteRequest{})

type QuoteRequestRepository struct {
	pool *pgxpool.Pool
}

func NewQuoteRequestRepository(pool *pgxpool.Pool) *QuoteRequestRepository {
	return &QuoteRequestRepository{pool: pool}
}

func (r *QuoteRequestRepository) CreateQuoteRequest(ctx context.Context, quote *types.QuoteRequest) error {
	quote.ID = uuid.NewString()
	quote.CreatedAt = time.Now()

	query, args, err := psql().
		Insert(quoteRequestTableName).
		SetMap(utils.StructToMap(quote)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert quote request query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to insert quote request")
}

func (r *QuoteRequestRepository) QuoteRequest(ctx context.Context, id string) (*types.QuoteRequest, error) {
	query, args, err := psql().
		Select(quoteRequestColumns...).
		From(quoteRequestTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate quote request query: %w", err)
	}

	var quote types.QuoteRequest
	err = pgxscan.Get(ctx, r.pool, &quote, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrQuoteNotFound
		}
		return nil, fmt.Errorf("failed to fetch quote request: %w", err)
	}

	return &quote, nil
}

func (r *QuoteRequestRepository) AllQuoteRequests(ctx context.Context) ([]*types.QuoteRequest, error) {
	query, args, err := psql().
		Select(quoteRequestColumns...).
		From(quoteRequestTableName).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate quote requests query: %w", err)
	}

	quotes := make([]*types.QuoteRequest, 0)
	err = pgxscan.Select(ctx, r.pool, &quotes, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quote requests: %w", err)
	}

	return quotes, nil
}
