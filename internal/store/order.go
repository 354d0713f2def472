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

const orderTableName = "quillworks.orders"

var orderColumns = utils.StructTagValues(types.Order{})

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

func (r *OrderRepository) CreateOrder(ctx context.Context, order *types.Order) error {
	now := time.Now()
	order.ID = uuid.NewString()
	order.CreatedAt = now
	order.UpdatedAt = now

	query, args, err := psql().
		Insert(orderTableName).
		SetMap(utils.StructToMap(order)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert order query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to insert order")
}

func (r *OrderRepository) Order(ctx context.Context, id string) (*types.Order, error) {
	query, args, err := psql().
		Select(orderColumns...).
		From(orderTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate order query: %w", err)
	}

	var order types.Order
	err = pgxscan.Get(ctx, r.pool, &order, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}

	return &order, nil
}

func (r *OrderRepository) OrdersByUser(ctx context.Context, userID string) ([]*types.Order, error) {
	query, args, err := psql().
		Select(orderColumns...).
		From(orderTableName).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate orders query: %w", err)
	}

	orders := make([]*types.Order, 0)
	err = pgxscan.Select(ctx, r.pool, &orders, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	return orders, nil
}

func (r *OrderRepository) AllOrders(ctx context.Context) ([]*types.Order, error) {
	query, args, err := psql().
		Select(orderColumns...).
		From(orderTableName).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate orders query: %w", err)
	}

	orders := make([]*types.Order, 0)
	err = pgxscan.Select(ctx, r.pool, &orders, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	return orders, nil
}

func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, id string, status types.OrderStatus) error {
	query, args, err := psql().
		Update(orderTableName).
		Set("status", status).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update order query for %s: %w", id, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrOrderNotFound
	}

	return nil
}
