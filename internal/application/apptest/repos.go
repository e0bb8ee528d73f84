package apptest

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/foodorder-api/internal/domain"
	"github.com/jhoicas/foodorder-api/internal/domain/entity"
	"github.com/jhoicas/foodorder-api/internal/domain/repository"
)

var (
	_ repository.UserRepository              = (*userRepo)(nil)
	_ repository.MenuRepository              = (*menuRepo)(nil)
	_ repository.OrderRepository             = (*orderRepo)(nil)
	_ repository.PointsTransactionRepository = (*pointsRepo)(nil)
	_ repository.RewardRepository            = (*rewardRepo)(nil)
	_ repository.CartRepository              = (*cartRepo)(nil)
	_ repository.IdempotencyRepository       = (*keyRepo)(nil)
)

// ─── Usuarios ────────────────────────────────────────────────────────────────

type userRepo struct {
	s    *Store
	inTx bool
}

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	defer r.s.lock(r.inTx)()
	if err := r.s.failure(FailUserCreate); err != nil {
		return err
	}
	for _, existing := range r.s.st.users {
		if existing.Phone == u.Phone {
			return domain.ErrPhoneAlreadyExists
		}
	}
	cp := *u
	r.s.st.users[u.ID] = &cp
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	defer r.s.lock(r.inTx)()
	u, ok := r.s.st.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *userRepo) GetByPhone(_ context.Context, phone string) (*entity.User, error) {
	defer r.s.lock(r.inTx)()
	for _, u := range r.s.st.users {
		if u.Phone == phone {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// GetForUpdate la transacción ya tiene el mutex: equivale a GetByID.
func (r *userRepo) GetForUpdate(ctx context.Context, id string) (*entity.User, error) {
	return r.GetByID(ctx, id)
}

func (r *userRepo) AddPoints(_ context.Context, id string, delta int) (int, error) {
	defer r.s.lock(r.inTx)()
	u, ok := r.s.st.users[id]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	if u.Points+delta < 0 {
		return 0, domain.ErrInsufficientPoints
	}
	u.Points += delta
	u.UpdatedAt = time.Now()
	return u.Points, nil
}

// ─── Menú ────────────────────────────────────────────────────────────────────

type menuRepo struct {
	s *Store
}

func (r *menuRepo) ListCategories(_ context.Context) ([]*entity.MenuCategory, error) {
	defer r.s.lock(false)()
	out := make([]*entity.MenuCategory, 0, len(r.s.st.categories))
	for _, c := range r.s.st.categories {
		if c.IsActive {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *menuRepo) ListItems(_ context.Context, filter repository.MenuFilter) ([]*entity.MenuItem, error) {
	defer r.s.lock(false)()
	term := strings.ToLower(filter.Search)
	out := make([]*entity.MenuItem, 0)
	for _, it := range r.s.st.items {
		if !it.IsActive {
			continue
		}
		if filter.CategoryID != "" && it.CategoryID != filter.CategoryID {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(it.Name), term) {
			continue
		}
		out = append(out, r.active(it))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *menuRepo) GetItem(_ context.Context, id string) (*entity.MenuItem, error) {
	defer r.s.lock(false)()
	it, ok := r.s.st.items[id]
	if !ok || !it.IsActive {
		return nil, nil
	}
	return r.active(it), nil
}

// active copia el plato con su categoría y solo variantes/personalizaciones activas.
func (r *menuRepo) active(it *entity.MenuItem) *entity.MenuItem {
	cp := cloneItem(it)
	cp.Variants = cp.Variants[:0]
	for _, v := range it.Variants {
		if v.IsActive {
			cp.Variants = append(cp.Variants, v)
		}
	}
	cp.Customizations = cp.Customizations[:0]
	for _, c := range it.Customizations {
		if c.IsActive {
			cp.Customizations = append(cp.Customizations, c)
		}
	}
	if c, ok := r.s.st.categories[it.CategoryID]; ok {
		cat := *c
		cp.Category = &cat
	}
	return cp
}

// ─── Pedidos ─────────────────────────────────────────────────────────────────

type orderRepo struct {
	s    *Store
	inTx bool
}

func (r *orderRepo) Create(_ context.Context, o *entity.Order) error {
	defer r.s.lock(r.inTx)()
	if err := r.s.failure(FailOrderCreate); err != nil {
		return err
	}
	cp := cloneOrder(o)
	cp.Items = nil
	r.s.st.orders[o.ID] = cp
	r.s.st.orderSeq[o.ID] = len(r.s.st.orderSeq)
	return nil
}

func (r *orderRepo) CreateItem(_ context.Context, item *entity.OrderItem) error {
	defer r.s.lock(r.inTx)()
	if err := r.s.failure(FailOrderItem); err != nil {
		return err
	}
	o, ok := r.s.st.orders[item.OrderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	it := *item
	it.Customizations = append([]entity.CustomizationSnapshot(nil), item.Customizations...)
	o.Items = append(o.Items, it)
	return nil
}

func (r *orderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	defer r.s.lock(r.inTx)()
	o, ok := r.s.st.orders[id]
	if !ok {
		return nil, nil
	}
	return r.withCatalog(o), nil
}

func (r *orderRepo) GetForUpdate(_ context.Context, id string) (*entity.Order, error) {
	defer r.s.lock(r.inTx)()
	o, ok := r.s.st.orders[id]
	if !ok {
		return nil, nil
	}
	cp := cloneOrder(o)
	cp.Items = nil
	return cp, nil
}

func (r *orderRepo) ListByUser(_ context.Context, userID string) ([]*entity.Order, error) {
	defer r.s.lock(r.inTx)()
	out := make([]*entity.Order, 0)
	for _, o := range r.s.st.orders {
		if o.UserID == userID {
			out = append(out, r.withCatalog(o))
		}
	}
	seq := r.s.st.orderSeq
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return seq[out[i].ID] > seq[out[j].ID]
	})
	return out, nil
}

func (r *orderRepo) UpdateStatus(_ context.Context, id, status string, updatedAt time.Time) error {
	defer r.s.lock(r.inTx)()
	o, ok := r.s.st.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.Status = status
	o.UpdatedAt = updatedAt
	return nil
}

// withCatalog completa imagen y categoría desde el menú, como el JOIN de Postgres.
func (r *orderRepo) withCatalog(o *entity.Order) *entity.Order {
	cp := cloneOrder(o)
	for i := range cp.Items {
		if it, ok := r.s.st.items[cp.Items[i].MenuItemID]; ok {
			cp.Items[i].MenuItemImage = it.Image
			if c, ok := r.s.st.categories[it.CategoryID]; ok {
				cp.Items[i].CategoryName = c.Name
			}
		}
	}
	return cp
}

// ─── Libro de puntos ─────────────────────────────────────────────────────────

type pointsRepo struct {
	s    *Store
	inTx bool
}

func (r *pointsRepo) Append(_ context.Context, t *entity.PointsTransaction) error {
	defer r.s.lock(r.inTx)()
	if err := r.s.failure(FailPointsAppend); err != nil {
		return err
	}
	cp := *t
	r.s.st.points = append(r.s.st.points, &cp)
	return nil
}

func (r *pointsRepo) ListByUser(_ context.Context, userID string, limit int) ([]*entity.PointsTransaction, error) {
	defer r.s.lock(r.inTx)()
	out := make([]*entity.PointsTransaction, 0)
	for i := len(r.s.st.points) - 1; i >= 0; i-- {
		t := r.s.st.points[i]
		if t.UserID != userID {
			continue
		}
		cp := *t
		out = append(out, &cp)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// ─── Recompensas ─────────────────────────────────────────────────────────────

type rewardRepo struct {
	s    *Store
	inTx bool
}

func (r *rewardRepo) ListActive(_ context.Context) ([]*entity.LoyaltyReward, error) {
	defer r.s.lock(r.inTx)()
	out := make([]*entity.LoyaltyReward, 0)
	for _, rw := range r.s.st.rewards {
		if rw.IsActive {
			cp := *rw
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PointsCost != out[j].PointsCost {
			return out[i].PointsCost < out[j].PointsCost
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *rewardRepo) GetByID(_ context.Context, id string) (*entity.LoyaltyReward, error) {
	defer r.s.lock(r.inTx)()
	rw, ok := r.s.st.rewards[id]
	if !ok {
		return nil, nil
	}
	cp := *rw
	return &cp, nil
}

// ─── Carritos ────────────────────────────────────────────────────────────────

type cartRepo struct {
	s *Store
}

func (r *cartRepo) Get(_ context.Context, sessionID string) (*entity.Cart, error) {
	defer r.s.lock(false)()
	c, ok := r.s.st.carts[sessionID]
	if !ok {
		return &entity.Cart{SessionID: sessionID, Lines: []entity.CartLine{}}, nil
	}
	return cloneCart(c), nil
}

func (r *cartRepo) Save(_ context.Context, c *entity.Cart) error {
	defer r.s.lock(false)()
	if err := r.s.failure(FailCartSave); err != nil {
		return err
	}
	r.s.st.carts[c.SessionID] = cloneCart(c)
	return nil
}

func (r *cartRepo) Delete(_ context.Context, sessionID string) error {
	defer r.s.lock(false)()
	if err := r.s.failure(FailCartDelete); err != nil {
		return err
	}
	delete(r.s.st.carts, sessionID)
	return nil
}

// ─── Claves de idempotencia ──────────────────────────────────────────────────

type keyRepo struct {
	s    *Store
	inTx bool
}

func keyID(key, userID, operation string) string {
	return userID + "|" + operation + "|" + key
}

func (r *keyRepo) Reserve(_ context.Context, key, userID, operation string) ([]byte, bool, error) {
	defer r.s.lock(r.inTx)()
	id := keyID(key, userID, operation)
	if rec, ok := r.s.st.keys[id]; ok {
		return append([]byte(nil), rec.response...), false, nil
	}
	r.s.st.keys[id] = idemRecord{}
	return nil, true, nil
}

func (r *keyRepo) Complete(_ context.Context, key, userID, operation string, response []byte) error {
	defer r.s.lock(r.inTx)()
	if err := r.s.failure(FailKeyComplete); err != nil {
		return err
	}
	r.s.st.keys[keyID(key, userID, operation)] = idemRecord{response: append([]byte(nil), response...)}
	return nil
}
