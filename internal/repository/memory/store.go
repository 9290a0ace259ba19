// Package memory fournit une implémentation en mémoire des dépôts,
// utilisée par les tests de services à la place de Postgres. Elle reproduit
// la même sémantique : upsert d'adresse, recalcul de note transactionnel,
// décrément de stock sans plancher.
package memory

import (
	"context"
	"sync"

	"velora_back_end/internal/models"
	"velora_back_end/internal/repository"
)

// Store porte les données partagées ; chaque dépôt est une vue typée dessus.
type Store struct {
	mu        sync.Mutex
	users     []models.User
	addresses map[string]models.UserAddress
	products  []models.Product
	reviews   []models.Review
	orders    []models.Order
}

func NewStore() *Store {
	return &Store{addresses: make(map[string]models.UserAddress)}
}

func (s *Store) Users() repository.UserRepository { return &userRepo{s} }
func (s *Store) Addresses() repository.AddressRepository { return &addressRepo{s} }
func (s *Store) Products() repository.ProductRepository { return &productRepo{s} }
func (s *Store) Reviews() repository.ReviewRepository { return &reviewRepo{s} }
func (s *Store) Orders() repository.OrderRepository { return &orderRepo{s} }

// --- UserRepository ---

type userRepo struct{ s *Store }

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	r.s.users = append(r.s.users, *u)
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.ID == id {
			copied := u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepo) List(ctx context.Context) ([]models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]models.User(nil), r.s.users...), nil
}

func (r *userRepo) Update(ctx context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.users {
		if r.s.users[i].ID == u.ID {
			r.s.users[i] = *u
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.users {
		if r.s.users[i].ID == id {
			r.s.users = append(r.s.users[:i], r.s.users[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// --- AddressRepository ---

type addressRepo struct{ s *Store }

func (r *addressRepo) GetByUser(ctx context.Context, userID string) (*models.UserAddress, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.addresses[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := a
	return &copied, nil
}

func (r *addressRepo) Upsert(ctx context.Context, a *models.UserAddress) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.addresses[a.UserID] = *a
	return nil
}
