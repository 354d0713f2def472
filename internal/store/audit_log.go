package store

import (
	"context"
	"fmt"
	"time"

	"quillworks/internal/utils"
	"quillworks/pkg/types"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const auditLogTableName = "quillworks.audit_logs"

// BulkSelectRecordID marks audit rows for reads that span the whole table
// rather than one record.
var BulkSelectRecordID = uuid.Nil.String()

type AuditLogRepository struct {
	pool *pgxpool.Pool
}

func NewAuditLogRepository(pool *pgxpool.Pool) *AuditLogRepository {
	return &AuditLogRepository{pool: pool}
}

func (r *AuditLogRepository) RecordAccess(ctx context.Context, entry *types.AuditLog) error {
	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now()

	query, args, err := psql().
		Insert(auditLogTableName).
		SetMap(utils.StructToMap(entry)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert audit log query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to insert audit log")
}
