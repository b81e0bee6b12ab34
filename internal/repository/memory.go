package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopkart/commerce-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repositories backing tests and local development. They mirror
// the semantics of the mongo implementations, including the ascending
// price sort and the soft-delete visibility rules.

type memoryProductRepository struct {
	products map[primitive.ObjectID]*domain.Product
	mutex    sync.RWMutex
}

func NewMemoryProductRepository() ProductRepository {
	return &memoryProductRepository{
		products: make(map[primitive.ObjectID]*domain.Product),
	}
}

func (r *memoryProductRepository) Insert(ctx context.Context, p *domain.Product) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	stored := *p
	stored.AvailableSizes = append([]string(nil), p.AvailableSizes...)
	r.products[p.ID] = &stored
	return nil
}

func (r *memoryProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return copyProduct(p), nil
}

func (r *memoryProductRepository) FindByTitle(ctx context.Context, title string) (*domain.Product, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, p := range r.products {
		if !p.IsDeleted && p.Title == title {
			return copyProduct(p), nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (r *memoryProductRepository) Find(ctx context.Context, filter domain.ProductFilter) (domain.Products, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var out domain.Products
	for _, p := range r.products {
		if filter.Matches(p) {
			out = append(out, copyProduct(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	return out, nil
}

func (r *memoryProductRepository) Update(ctx context.Context, id primitive.ObjectID, u domain.ProductUpdate) (*domain.Product, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	u.Apply(p)
	p.UpdatedAt = time.Now()
	return copyProduct(p), nil
}

func (r *memoryProductRepository) SoftDelete(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	p, ok := r.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.IsDeleted = true
	p.DeletedAt = &at
	p.UpdatedAt = at
	return nil
}

func copyProduct(p *domain.Product) *domain.Product {
	cp := *p
	cp.AvailableSizes = append([]string(nil), p.AvailableSizes...)
	return &cp
}

type memoryCartRepository struct {
	carts map[primitive.ObjectID]*domain.Cart
	mutex sync.RWMutex
}

func NewMemoryCartRepository() CartRepository {
	return &memoryCartRepository{carts: make(map[primitive.ObjectID]*domain.Cart)}
}

func (r *memoryCartRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Cart, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	c, ok := r.carts[id]
	if !ok {
		return nil, domain.ErrCartNotFound
	}
	return copyCart(c), nil
}

func (r *memoryCartRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) (*domain.Cart, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, c := range r.carts {
		if c.UserID == userID {
			return copyCart(c), nil
		}
	}
	return nil, domain.ErrCartNotFound
}

func (r *memoryCartRepository) Upsert(ctx context.Context, c *domain.Cart) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	r.carts[c.ID] = copyCart(c)
	return nil
}

func (r *memoryCartRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.carts[id]; !ok {
		return domain.ErrCartNotFound
	}
	delete(r.carts, id)
	return nil
}

func copyCart(c *domain.Cart) *domain.Cart {
	cp := *c
	cp.Items = append([]domain.CartItem(nil), c.Items...)
	return &cp
}

type memoryOrderRepository struct {
	orders map[primitive.ObjectID]*domain.Order
	mutex  sync.RWMutex
}

func NewMemoryOrderRepository() OrderRepository {
	return &memoryOrderRepository{orders: make(map[primitive.ObjectID]*domain.Order)}
}

func (r *memoryOrderRepository) Insert(ctx context.Context, o *domain.Order) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	r.orders[o.ID] = copyOrder(o)
	return nil
}

func (r *memoryOrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return copyOrder(o), nil
}

func (r *memoryOrderRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status string, cancellable bool) (*domain.Order, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	o.Status = status
	o.Cancellable = cancellable
	o.UpdatedAt = time.Now()
	return copyOrder(o), nil
}

func copyOrder(o *domain.Order) *domain.Order {
	cp := *o
	cp.Items = append([]domain.CartItem(nil), o.Items...)
	return &cp
}

type memoryUserRepository struct {
	users map[primitive.ObjectID]*domain.User
	mutex sync.RWMutex
}

func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{users: make(map[primitive.ObjectID]*domain.User)}
}

func (r *memoryUserRepository) Insert(ctx context.Context, u *domain.User) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	stored := *u
	r.users[u.ID] = &stored
	return nil
}

func (r *memoryUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memoryUserRepository) Update(ctx context.Context, id primitive.ObjectID, u domain.UserUpdate) (*domain.User, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	stored, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if u.Name != nil {
		stored.Name = *u.Name
	}
	if u.Email != nil {
		stored.Email = *u.Email
	}
	if u.Phone != nil {
		stored.Phone = *u.Phone
	}
	if u.Password != nil {
		stored.Password = *u.Password
	}
	if u.Address != nil {
		stored.Address = *u.Address
	}
	cp := *stored
	return &cp, nil
}

func (r *memoryUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}
