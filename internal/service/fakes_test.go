package service

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

type fakeProductRepo struct {
	products map[int64]domain.Product
	nextID   int64
	err      error
}

func newFakeProductRepo(products ...domain.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[int64]domain.Product), nextID: 1}
	for _, p := range products {
		repo.products[p.ID] = p
		if p.ID >= repo.nextID {
			repo.nextID = p.ID + 1
		}
	}
	return repo
}

func (r *fakeProductRepo) Init(context.Context) error { return nil }

func (r *fakeProductRepo) Create(_ context.Context, product *domain.Product) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	product.ID = r.nextID
	r.nextID++
	r.products[product.ID] = *product
	return product.ID, nil
}

func (r *fakeProductRepo) Get(_ context.Context, id int64) (*domain.Product, error) {
	if r.err != nil {
		return nil, r.err
	}
	product, ok := r.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &product, nil
}

func (r *fakeProductRepo) List(_ context.Context, _ repository.ProductFilter) ([]domain.Product, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeProductRepo) ListByIDs(_ context.Context, ids []int64) ([]domain.Product, error) {
	if r.err != nil {
		return nil, r.err
	}
	seen := make(map[int64]struct{})
	var out []domain.Product
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if p, ok := r.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Update(_ context.Context, product *domain.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return repository.ErrNotFound
	}
	r.products[product.ID] = *product
	return nil
}

func (r *fakeProductRepo) Patch(_ context.Context, id int64, patch repository.ProductPatch) (*domain.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.About != nil {
		product.About = *patch.About
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	r.products[id] = product
	return &product, nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id int64) (*domain.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(r.products, id)
	return &product, nil
}

type fakeUserRepo struct {
	users  map[int64]domain.User
	nextID int64
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[int64]domain.User), nextID: 1}
	for _, u := range users {
		repo.users[u.ID] = u
		if u.ID >= repo.nextID {
			repo.nextID = u.ID + 1
		}
	}
	return repo
}

func (r *fakeUserRepo) Init(context.Context) error { return nil }

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (int64, error) {
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return 0, repository.ErrDuplicate
		}
	}
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = *user
	return user.ID, nil
}

func (r *fakeUserRepo) Get(_ context.Context, id int64) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Patch(_ context.Context, id int64, patch repository.UserPatch) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if patch.Username != nil {
		user.Username = *patch.Username
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.PasswordHash != nil {
		user.PasswordHash = *patch.PasswordHash
	}
	r.users[id] = user
	return &user, nil
}

type createdOrder struct {
	order      domain.Order
	productIDs []int64
}

type fakeOrderRepo struct {
	created []createdOrder
	details map[int64]domain.OrderDetail
	nextID  int64
	err     error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{details: make(map[int64]domain.OrderDetail), nextID: 1}
}

func (r *fakeOrderRepo) Init(context.Context) error { return nil }

func (r *fakeOrderRepo) CreateWithLines(_ context.Context, order *domain.Order, productIDs []int64) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	order.ID = r.nextID
	r.nextID++
	ids := append([]int64(nil), productIDs...)
	r.created = append(r.created, createdOrder{order: *order, productIDs: ids})
	return order.ID, nil
}

func (r *fakeOrderRepo) Get(_ context.Context, id int64) (*domain.OrderDetail, error) {
	detail, ok := r.details[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &detail, nil
}

func (r *fakeOrderRepo) List(_ context.Context) ([]domain.OrderDetail, error) {
	out := make([]domain.OrderDetail, 0, len(r.details))
	for _, d := range r.details {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type fakeCatalogRepo struct {
	products   map[primitive.ObjectID]domain.CatalogProduct
	categories map[primitive.ObjectID]domain.Category
	insertErr  error
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		products:   make(map[primitive.ObjectID]domain.CatalogProduct),
		categories: make(map[primitive.ObjectID]domain.Category),
	}
}

func (r *fakeCatalogRepo) InsertProduct(_ context.Context, product *domain.CatalogProduct) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	product.ID = primitive.NewObjectID()
	r.products[product.ID] = *product
	return nil
}

func (r *fakeCatalogRepo) ListProducts(_ context.Context) ([]domain.CatalogProduct, error) {
	out := make([]domain.CatalogProduct, 0, len(r.products))
	for _, p := range r.products {
		for _, catID := range p.CategoryIDs {
			if cat, ok := r.categories[catID]; ok {
				p.Categories = append(p.Categories, cat)
			}
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeCatalogRepo) DeleteProduct(_ context.Context, id primitive.ObjectID) (*domain.CatalogProduct, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(r.products, id)
	return &product, nil
}

func (r *fakeCatalogRepo) InsertCategory(_ context.Context, category *domain.Category) error {
	category.ID = primitive.NewObjectID()
	r.categories[category.ID] = *category
	return nil
}

func (r *fakeCatalogRepo) ListCategories(_ context.Context) ([]domain.Category, error) {
	out := make([]domain.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, c)
	}
	return out, nil
}

type publishedEvent struct {
	event   string
	payload any
}

type capturePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *capturePublisher) Publish(event string, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{event: event, payload: payload})
}

func (p *capturePublisher) all() []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]publishedEvent(nil), p.events...)
}

type fakeAnalyticsRepo struct {
	views   []domain.View
	actions []domain.Action
	goals   map[primitive.ObjectID]domain.Goal
}

func newFakeAnalyticsRepo() *fakeAnalyticsRepo {
	return &fakeAnalyticsRepo{goals: make(map[primitive.ObjectID]domain.Goal)}
}

func (r *fakeAnalyticsRepo) InsertView(_ context.Context, view *domain.View) error {
	view.ID = primitive.NewObjectID()
	r.views = append(r.views, *view)
	return nil
}

func (r *fakeAnalyticsRepo) ListViews(_ context.Context) ([]domain.View, error) {
	return append([]domain.View(nil), r.views...), nil
}

func (r *fakeAnalyticsRepo) ListViewsByVisitor(_ context.Context, visitor string) ([]domain.View, error) {
	var out []domain.View
	for _, v := range r.views {
		if v.Visitor == visitor {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeAnalyticsRepo) InsertAction(_ context.Context, action *domain.Action) error {
	action.ID = primitive.NewObjectID()
	r.actions = append(r.actions, *action)
	return nil
}

func (r *fakeAnalyticsRepo) ListActions(_ context.Context) ([]domain.Action, error) {
	return append([]domain.Action(nil), r.actions...), nil
}

func (r *fakeAnalyticsRepo) ListActionsByVisitor(_ context.Context, visitor string) ([]domain.Action, error) {
	var out []domain.Action
	for _, a := range r.actions {
		if a.Visitor == visitor {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAnalyticsRepo) InsertGoal(_ context.Context, goal *domain.Goal) error {
	goal.ID = primitive.NewObjectID()
	r.goals[goal.ID] = *goal
	return nil
}

func (r *fakeAnalyticsRepo) ListGoals(_ context.Context) ([]domain.Goal, error) {
	out := make([]domain.Goal, 0, len(r.goals))
	for _, g := range r.goals {
		out = append(out, g)
	}
	return out, nil
}

func (r *fakeAnalyticsRepo) GetGoal(_ context.Context, id primitive.ObjectID) (*domain.Goal, error) {
	goal, ok := r.goals[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &goal, nil
}
