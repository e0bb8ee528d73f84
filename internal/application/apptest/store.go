// Package apptest provee un almacén en memoria que implementa los repositorios y los
// TxRunner de la aplicación, para tests de casos de uso y de handlers HTTP.
//
// Las transacciones se serializan con un único mutex y se revierten restaurando una copia
// del estado si la función devuelve error.
package apptest

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/foodorder-api/internal/domain/entity"
	"github.com/jhoicas/foodorder-api/internal/domain/repository"
)

// Puntos de falla inyectables con Store.FailOn.
const (
	FailUserCreate   = "user.create"
	FailOrderCreate  = "order.create"
	FailOrderItem    = "order.create_item"
	FailPointsAppend = "points.append"
	FailCartSave     = "cart.save"
	FailCartDelete   = "cart.delete"
	FailKeyComplete  = "key.complete"
)

// ErrInjected error devuelto por un punto de falla activado.
var ErrInjected = errors.New("apptest: falla inyectada")

type idemRecord struct {
	response []byte
}

type state struct {
	users      map[string]*entity.User
	categories map[string]*entity.MenuCategory
	items      map[string]*entity.MenuItem
	orders     map[string]*entity.Order
	orderSeq   map[string]int // orden de inserción, desempata CreatedAt
	points     []*entity.PointsTransaction
	rewards    map[string]*entity.LoyaltyReward
	carts      map[string]*entity.Cart
	keys       map[string]idemRecord
	seq        int
}

// Store almacén en memoria. El valor cero no es utilizable: usar NewStore.
type Store struct {
	mu   sync.Mutex
	st   *state
	fail map[string]error
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		st: &state{
			users:      map[string]*entity.User{},
			categories: map[string]*entity.MenuCategory{},
			items:      map[string]*entity.MenuItem{},
			orders:     map[string]*entity.Order{},
			orderSeq:   map[string]int{},
			rewards:    map[string]*entity.LoyaltyReward{},
			carts:      map[string]*entity.Cart{},
			keys:       map[string]idemRecord{},
		},
		fail: map[string]error{},
	}
}

// FailOn hace que la operación indicada devuelva ErrInjected hasta llamar Reset.
func (s *Store) FailOn(op string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[op] = ErrInjected
}

// ResetFailures desactiva todas las fallas inyectadas.
func (s *Store) ResetFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = map[string]error{}
}

// Repositorios fuera de transacción (cada llamada toma el mutex).

func (s *Store) Users() repository.UserRepository               { return &userRepo{s: s} }
func (s *Store) Menu() repository.MenuRepository                { return &menuRepo{s: s} }
func (s *Store) Orders() repository.OrderRepository             { return &orderRepo{s: s} }
func (s *Store) Points() repository.PointsTransactionRepository { return &pointsRepo{s: s} }
func (s *Store) Rewards() repository.RewardRepository           { return &rewardRepo{s: s} }
func (s *Store) Carts() repository.CartRepository               { return &cartRepo{s: s} }
func (s *Store) Keys() repository.IdempotencyRepository         { return &keyRepo{s: s} }

// run ejecuta fn con el mutex tomado; si fn falla restaura el estado previo.
func (s *Store) run(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.st.clone()
	if err := fn(); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

// RunDirectory implementa directory.TxRunner.
func (s *Store) RunDirectory(ctx context.Context, fn func(
	repository.UserRepository,
	repository.PointsTransactionRepository,
) error) error {
	return s.run(func() error {
		return fn(&userRepo{s: s, inTx: true}, &pointsRepo{s: s, inTx: true})
	})
}

// RunOrder implementa ordering.OrderTxRunner.
func (s *Store) RunOrder(ctx context.Context, fn func(
	repository.UserRepository,
	repository.OrderRepository,
	repository.PointsTransactionRepository,
	repository.IdempotencyRepository,
) error) error {
	return s.run(func() error {
		return fn(&userRepo{s: s, inTx: true}, &orderRepo{s: s, inTx: true},
			&pointsRepo{s: s, inTx: true}, &keyRepo{s: s, inTx: true})
	})
}

// RunLoyalty implementa loyalty.LoyaltyTxRunner.
func (s *Store) RunLoyalty(ctx context.Context, fn func(
	repository.UserRepository,
	repository.RewardRepository,
	repository.PointsTransactionRepository,
	repository.IdempotencyRepository,
) error) error {
	return s.run(func() error {
		return fn(&userRepo{s: s, inTx: true}, &rewardRepo{s: s, inTx: true},
			&pointsRepo{s: s, inTx: true}, &keyRepo{s: s, inTx: true})
	})
}

// lock toma el mutex salvo dentro de una transacción (que ya lo tiene).
func (s *Store) lock(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) failure(op string) error {
	return s.fail[op]
}

// ─── Datos de prueba ─────────────────────────────────────────────────────────

// SeedUser crea un usuario con saldo inicial y su asiento manual en el libro.
func (s *Store) SeedUser(name, phone string, points int) *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.st.tick()
	u := &entity.User{
		ID: uuid.New().String(), Name: name, Phone: phone, Points: points,
		IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
	s.st.users[u.ID] = u
	if points != 0 {
		s.st.points = append(s.st.points, &entity.PointsTransaction{
			ID: uuid.New().String(), UserID: u.ID, Type: entity.PointsTypeEarned,
			Points: points, Source: entity.PointsSourceManual, Description: "Saldo inicial", CreatedAt: now,
		})
	}
	cp := *u
	return &cp
}

// SeedReward crea una recompensa.
func (s *Store) SeedReward(name string, cost int, active bool) *entity.LoyaltyReward {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := &entity.LoyaltyReward{
		ID: uuid.New().String(), Name: name, PointsCost: cost,
		Type: entity.RewardTypeFood, IsActive: active, CreatedAt: s.st.tick(),
	}
	s.st.rewards[r.ID] = r
	cp := *r
	return &cp
}

// SeedCategory crea una categoría.
func (s *Store) SeedCategory(name string, order int, active bool) *entity.MenuCategory {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := &entity.MenuCategory{
		ID: uuid.New().String(), Name: name, DisplayOrder: order, IsActive: active, CreatedAt: s.st.tick(),
	}
	s.st.categories[c.ID] = c
	cp := *c
	return &cp
}

// SeedItem guarda un plato; asigna IDs vacíos del plato, variantes y personalizaciones.
func (s *Store) SeedItem(item entity.MenuItem) *entity.MenuItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	for i := range item.Variants {
		if item.Variants[i].ID == "" {
			item.Variants[i].ID = uuid.New().String()
		}
		item.Variants[i].MenuItemID = item.ID
	}
	for i := range item.Customizations {
		if item.Customizations[i].ID == "" {
			item.Customizations[i].ID = uuid.New().String()
		}
		item.Customizations[i].MenuItemID = item.ID
	}
	item.CreatedAt = s.st.tick()
	item.UpdatedAt = item.CreatedAt
	stored := cloneItem(&item)
	s.st.items[item.ID] = stored
	return cloneItem(stored)
}

// Balance saldo actual del usuario (0 si no existe).
func (s *Store) Balance(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.st.users[userID]; ok {
		return u.Points
	}
	return 0
}

// LedgerSum suma de los asientos del usuario.
func (s *Store) LedgerSum(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := 0
	for _, t := range s.st.points {
		if t.UserID == userID {
			sum += t.Points
		}
	}
	return sum
}

// Ledger asientos del usuario en orden de inserción.
func (s *Store) Ledger(userID string) []entity.PointsTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.PointsTransaction
	for _, t := range s.st.points {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out
}

// OrderCount número de pedidos guardados.
func (s *Store) OrderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.orders)
}

// UserCount número de usuarios guardados.
func (s *Store) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.users)
}

// tick devuelve un instante estrictamente creciente para ordenar por fecha de forma estable.
func (st *state) tick() time.Time {
	st.seq++
	return time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(st.seq) * time.Second)
}

func (st *state) clone() *state {
	cp := &state{
		users:      make(map[string]*entity.User, len(st.users)),
		categories: make(map[string]*entity.MenuCategory, len(st.categories)),
		items:      make(map[string]*entity.MenuItem, len(st.items)),
		orders:     make(map[string]*entity.Order, len(st.orders)),
		orderSeq:   make(map[string]int, len(st.orderSeq)),
		points:     make([]*entity.PointsTransaction, 0, len(st.points)),
		rewards:    make(map[string]*entity.LoyaltyReward, len(st.rewards)),
		carts:      make(map[string]*entity.Cart, len(st.carts)),
		keys:       make(map[string]idemRecord, len(st.keys)),
		seq:        st.seq,
	}
	for k, v := range st.users {
		u := *v
		cp.users[k] = &u
	}
	for k, v := range st.categories {
		c := *v
		cp.categories[k] = &c
	}
	for k, v := range st.items {
		cp.items[k] = cloneItem(v)
	}
	for k, v := range st.orders {
		cp.orders[k] = cloneOrder(v)
	}
	for k, v := range st.orderSeq {
		cp.orderSeq[k] = v
	}
	for _, t := range st.points {
		pt := *t
		cp.points = append(cp.points, &pt)
	}
	for k, v := range st.rewards {
		r := *v
		cp.rewards[k] = &r
	}
	for k, v := range st.carts {
		cp.carts[k] = cloneCart(v)
	}
	for k, v := range st.keys {
		cp.keys[k] = v
	}
	return cp
}

func cloneItem(m *entity.MenuItem) *entity.MenuItem {
	cp := *m
	cp.Variants = append([]entity.MenuVariant(nil), m.Variants...)
	cp.Customizations = append([]entity.MenuCustomization(nil), m.Customizations...)
	if m.Category != nil {
		c := *m.Category
		cp.Category = &c
	}
	return &cp
}

func cloneOrder(o *entity.Order) *entity.Order {
	cp := *o
	cp.Items = make([]entity.OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		it.Customizations = append([]entity.CustomizationSnapshot(nil), it.Customizations...)
		cp.Items = append(cp.Items, it)
	}
	return &cp
}

func cloneCart(c *entity.Cart) *entity.Cart {
	cp := *c
	cp.Lines = make([]entity.CartLine, 0, len(c.Lines))
	for _, l := range c.Lines {
		l.Customizations = append([]entity.CustomizationSnapshot(nil), l.Customizations...)
		cp.Lines = append(cp.Lines, l)
	}
	return &cp
}

// Price atajo para construir decimales en tests.
func Price(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}
