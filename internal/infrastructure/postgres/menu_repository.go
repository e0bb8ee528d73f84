package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/foodorder-api/internal/domain/entity"
	"github.com/jhoicas/foodorder-api/internal/domain/repository"
)

var _ repository.MenuRepository = (*MenuRepo)(nil)

// MenuRepo lectura del catálogo. Solo expone filas activas.
type MenuRepo struct {
	q Querier
}

// NewMenuRepository construye el adaptador del catálogo.
func NewMenuRepository(q Querier) *MenuRepo {
	return &MenuRepo{q: q}
}

// ListCategories categorías activas por display_order.
func (r *MenuRepo) ListCategories(ctx context.Context) ([]*entity.MenuCategory, error) {
	query := `
		SELECT id, name, COALESCE(icon, ''), display_order, is_active, created_at
		FROM menu_categories
		WHERE is_active
		ORDER BY display_order, name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.MenuCategory
	for rows.Next() {
		var c entity.MenuCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.DisplayOrder, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

const itemSelect = `
		SELECT i.id, i.name, COALESCE(i.description, ''), i.category_id, i.base_price,
		       COALESCE(i.image, ''), i.in_stock, i.rating, i.preparation_time, i.is_active,
		       i.created_at, i.updated_at,
		       c.id, c.name, COALESCE(c.icon, ''), c.display_order, c.is_active, c.created_at
		FROM menu_items i
		JOIN menu_categories c ON c.id = i.category_id`

// ListItems platos activos con variantes y personalizaciones activas.
// Search compara con ILIKE sobre el nombre, con los comodines del término escapados.
func (r *MenuRepo) ListItems(ctx context.Context, filter repository.MenuFilter) ([]*entity.MenuItem, error) {
	var (
		where = []string{"i.is_active"}
		args  []any
	)
	if filter.CategoryID != "" {
		if !validUUID(filter.CategoryID) {
			return nil, nil
		}
		args = append(args, filter.CategoryID)
		where = append(where, fmt.Sprintf("i.category_id = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, containsPattern(filter.Search))
		where = append(where, fmt.Sprintf(`i.name ILIKE $%d ESCAPE '\'`, len(args)))
	}
	query := itemSelect + `
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY c.display_order, i.name`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	defer rows.Close()
	var list []*entity.MenuItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()
	if err := r.loadOptions(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// GetItem plato activo por ID; (nil, nil) si no existe o está inactivo.
func (r *MenuRepo) GetItem(ctx context.Context, id string) (*entity.MenuItem, error) {
	if !validUUID(id) {
		return nil, nil
	}
	row := r.q.QueryRow(ctx, itemSelect+` WHERE i.id = $1 AND i.is_active`, id)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := r.loadOptions(ctx, []*entity.MenuItem{item}); err != nil {
		return nil, err
	}
	return item, nil
}

// loadOptions carga variantes y personalizaciones activas de todos los platos en dos consultas.
func (r *MenuRepo) loadOptions(ctx context.Context, items []*entity.MenuItem) error {
	if len(items) == 0 {
		return nil
	}
	byID := make(map[string]*entity.MenuItem, len(items))
	ids := make([]string, 0, len(items))
	for _, it := range items {
		byID[it.ID] = it
		ids = append(ids, it.ID)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, menu_item_id, name, price, is_default, is_active
		FROM menu_variants
		WHERE menu_item_id = ANY($1::uuid[]) AND is_active
		ORDER BY is_default DESC, price, name`, ids)
	if err != nil {
		return fmt.Errorf("list variants: %w", err)
	}
	for rows.Next() {
		var v entity.MenuVariant
		if err := rows.Scan(&v.ID, &v.MenuItemID, &v.Name, &v.Price, &v.IsDefault, &v.IsActive); err != nil {
			rows.Close()
			return fmt.Errorf("scan variant: %w", err)
		}
		byID[v.MenuItemID].Variants = append(byID[v.MenuItemID].Variants, v)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.q.Query(ctx, `
		SELECT id, menu_item_id, name, price, is_free, category, is_active
		FROM menu_customizations
		WHERE menu_item_id = ANY($1::uuid[]) AND is_active
		ORDER BY category, name`, ids)
	if err != nil {
		return fmt.Errorf("list customizations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c entity.MenuCustomization
		if err := rows.Scan(&c.ID, &c.MenuItemID, &c.Name, &c.Price, &c.IsFree, &c.Category, &c.IsActive); err != nil {
			return fmt.Errorf("scan customization: %w", err)
		}
		byID[c.MenuItemID].Customizations = append(byID[c.MenuItemID].Customizations, c)
	}
	return rows.Err()
}

func scanItem(row pgx.Row) (*entity.MenuItem, error) {
	var (
		it  entity.MenuItem
		cat entity.MenuCategory
	)
	err := row.Scan(
		&it.ID, &it.Name, &it.Description, &it.CategoryID, &it.BasePrice,
		&it.Image, &it.InStock, &it.Rating, &it.PreparationTime, &it.IsActive,
		&it.CreatedAt, &it.UpdatedAt,
		&cat.ID, &cat.Name, &cat.Icon, &cat.DisplayOrder, &cat.IsActive, &cat.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan menu item: %w", err)
	}
	it.Category = &cat
	return &it, nil
}
