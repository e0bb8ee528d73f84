package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/foodorder-api/internal/domain"
	"github.com/jhoicas/foodorder-api/internal/domain/entity"
	"github.com/jhoicas/foodorder-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, user_id, status, delivery_mode, payment_method, subtotal, delivery_fee, total,
		COALESCE(delivery_address, ''), COALESCE(customer_notes, ''), estimated_delivery_time,
		created_at, updated_at`

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de pedidos.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la cabecera del pedido.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (id, user_id, status, delivery_mode, payment_method, subtotal, delivery_fee, total,
			delivery_address, customer_notes, estimated_delivery_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.UserID, o.Status, o.DeliveryMode, o.PaymentMethod, o.Subtotal, o.DeliveryFee, o.Total,
		nullIfEmpty(o.DeliveryAddress), nullIfEmpty(o.CustomerNotes), o.EstimatedDeliveryTime,
		o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// CreateItem persiste una línea con su snapshot de personalizaciones (jsonb).
func (r *OrderRepo) CreateItem(ctx context.Context, item *entity.OrderItem) error {
	customizations := item.Customizations
	if customizations == nil {
		customizations = []entity.CustomizationSnapshot{}
	}
	query := `
		INSERT INTO order_items (id, order_id, menu_item_id, menu_item_name, variant_id, variant_name,
			customizations, quantity, unit_price, total_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.OrderID, item.MenuItemID, item.MenuItemName, nullIfEmpty(item.VariantID), item.VariantName,
		customizations, item.Quantity, item.UnitPrice, item.TotalPrice,
	)
	if err != nil {
		if isBadReference(err) {
			return fmt.Errorf("%w: plato o variante inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

// GetByID pedido con sus líneas.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	if !validUUID(id) {
		return nil, nil
	}
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil || o == nil {
		return nil, err
	}
	if err := r.loadItems(ctx, []*entity.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// GetForUpdate cabecera del pedido con la fila bloqueada (sin líneas).
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	if !validUUID(id) {
		return nil, nil
	}
	return scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id))
}

// ListByUser pedidos del usuario, más recientes primero.
func (r *OrderRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Order, error) {
	if !validUUID(userID) {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()
	if err := r.loadItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateStatus cambia el estado del pedido.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`, id, status, updatedAt)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// loadItems carga las líneas de los pedidos con imagen y categoría actuales del plato.
func (r *OrderRepo) loadItems(ctx context.Context, orders []*entity.Order) error {
	if len(orders) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Order, len(orders))
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}
	query := `
		SELECT oi.id, oi.order_id, oi.menu_item_id, oi.menu_item_name,
		       COALESCE(mi.image, ''), COALESCE(mc.name, ''),
		       COALESCE(oi.variant_id::text, ''), oi.variant_name, oi.customizations,
		       oi.quantity, oi.unit_price, oi.total_price
		FROM order_items oi
		LEFT JOIN menu_items mi ON mi.id = oi.menu_item_id
		LEFT JOIN menu_categories mc ON mc.id = mi.category_id
		WHERE oi.order_id = ANY($1::uuid[])
		ORDER BY oi.created_at, oi.id`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(
			&it.ID, &it.OrderID, &it.MenuItemID, &it.MenuItemName,
			&it.MenuItemImage, &it.CategoryName,
			&it.VariantID, &it.VariantName, &it.Customizations,
			&it.Quantity, &it.UnitPrice, &it.TotalPrice,
		); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		o := byID[it.OrderID]
		o.Items = append(o.Items, it)
	}
	return rows.Err()
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(
		&o.ID, &o.UserID, &o.Status, &o.DeliveryMode, &o.PaymentMethod, &o.Subtotal, &o.DeliveryFee, &o.Total,
		&o.DeliveryAddress, &o.CustomerNotes, &o.EstimatedDeliveryTime,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}
	return &o, nil
}
