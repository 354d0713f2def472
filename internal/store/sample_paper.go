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

const samplePaperTableName = "quillworks.sample_papers"

var samplePaperColumns = utils.StructTagValues(types.SamplePaper{})

type SamplePaperRepository struct {
	pool *pgxpool.Pool
}

func NewSamplePaperRepository(pool *pgxpool.Pool) *SamplePaperRepository {
	return &SamplePaperRepository{pool: pool}
}

func (r *SamplePaperRepository) PublishedSamples(ctx context.Context) ([]*types.SamplePaper, error) {
	query, args, err := psql().
		Select(samplePaperColumns...).
		From(samplePaperTableName).
		Where(sq.Eq{"published": true}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate samples query: %w", err)
	}

	samples := make([]*types.SamplePaper, 0)
	err = pgxscan.Select(ctx, r.pool, &samples, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sample papers: %w", err)
	}

	return samples, nil
}

func (r *SamplePaperRepository) AllSamples(ctx context.Context) ([]*types.SamplePaper, error) {
	query, args, err := psql().
		Select(samplePaperColumns...).
		From(samplePaperTableName).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate samples query: %w", err)
	}

	samples := make([]*types.SamplePaper, 0)
	err = pgxscan.Select(ctx, r.pool, &samples, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sample papers: %w", err)
	}

	return samples, nil
}

func (r *SamplePaperRepository) CreateSample(ctx context.Context, sample *types.SamplePaper) error {
	sample.ID = uuid.NewString()
	sample.CreatedAt = time.Now()

	query, args, err := psql().
		Insert(samplePaperTableName).
		SetMap(utils.StructToMap(sample)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert sample query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to insert sample paper")
}

func (r *SamplePaperRepository) DeleteSample(ctx context.Context, id string) error {
	query, args, err := psql().
		Delete(samplePaperTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete sample query for %s: %w", id, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete sample paper: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrSampleNotFound
	}

	return nil
}
