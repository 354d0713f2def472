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

const supportTicketTableName = "quillworks.support_tickets"

var supportTicketColumns = utils.StructTagValues(types.SupportTicket{})

type SupportTicketRepository struct {
	pool *pgxpool.Pool
}

func NewSupportTicketRepository(pool *pgxpool.Pool) *SupportTicketRepository {
	return &SupportTicketRepository{pool: pool}
}

func (r *SupportTicketRepository) CreateTicket(ctx context.Context, ticket *types.SupportTicket) error {
	now := time.Now()
	ticket.ID = uuid.NewString()
	ticket.Reference = utils.TicketReference()
	ticket.Status = types.TicketStatusOpen
	ticket.CreatedAt = now
	ticket.UpdatedAt = now

	query, args, err := psql().
		Insert(supportTicketTableName).
		SetMap(utils.StructToMap(ticket)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert ticket query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to insert support ticket")
}

func (r *SupportTicketRepository) TicketsByUser(ctx context.Context, userID string) ([]*types.SupportTicket, error) {
	query, args, err := psql().
		Select(supportTicketColumns...).
		From(supportTicketTableName).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate tickets query: %w", err)
	}

	tickets := make([]*types.SupportTicket, 0)
	err = pgxscan.Select(ctx, r.pool, &tickets, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch support tickets: %w", err)
	}

	return tickets, nil
}

func (r *SupportTicketRepository) AllTickets(ctx context.Context) ([]*types.SupportTicket, error) {
	query, args, err := psql().
		Select(supportTicketColumns...).
		From(supportTicketTableName).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate tickets query: %w", err)
	}

	tickets := make([]*types.SupportTicket, 0)
	err = pgxscan.Select(ctx, r.pool, &tickets, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch support tickets: %w", err)
	}

	return tickets, nil
}

func (r *SupportTicketRepository) UpdateTicket(ctx context.Context, id string, status types.TicketStatus, assignedTo *string) error {
	setMap := map[string]any{
		"status":     status,
		"updated_at": time.Now(),
	}
	if assignedTo != nil {
		setMap["assigned_to"] = nullable(*assignedTo)
	}

	query, args, err := psql().
		Update(supportTicketTableName).
		SetMap(setMap).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update ticket query for %s: %w", id, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update support ticket: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrTicketNotFound
	}

	return nil
}
