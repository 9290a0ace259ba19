package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"velora_back_end/internal/models"
	"velora_back_end/internal/repository"
)

// --- ProductRepository ---

type productRepo struct{ s *Store }

func (r *productRepo) Create(ctx context.Context, p *models.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.products = append(r.s.products, *p)
	return nil
}

func (s *Store) productLocked(id string) (*models.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			copied := p
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *productRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.productLocked(id)
}

func (r *productRepo) Update(ctx context.Context, p *models.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.products {
		if r.s.products[i].ID == p.ID {
			r.s.products[i] = *p
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *productRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.products {
		if r.s.products[i].ID == id {
			r.s.products = append(r.s.products[:i], r.s.products[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *Store) matchActiveLocked(keyword string) []models.Product {
	var out []models.Product
	for _, p := range s.products {
		if !p.Active {
			continue
		}
		if keyword != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(keyword)) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (r *productRepo) ListActive(ctx context.Context, keyword string, limit, offset int) ([]models.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	matched := r.s.matchActiveLocked(keyword)
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return append([]models.Product(nil), matched[offset:end]...), nil
}

func (r *productRepo) CountActive(ctx context.Context, keyword string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.matchActiveLocked(keyword)), nil
}

func (r *productRepo) Top(ctx context.Context, minRating float64, limit int) ([]models.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Product
	for _, p := range r.s.products {
		if p.Active && p.Rating >= minRating {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *productRepo) ListAll(ctx context.Context, inactiveOnly bool) ([]models.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Product
	for _, p := range r.s.products {
		if inactiveOnly && p.Active {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *productRepo) Search(ctx context.Context, query string) ([]models.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q := strings.ToLower(query)
	var out []models.Product
	for _, p := range r.s.products {
		if !p.Active {
			continue
		}
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(p.Brand), q) {
			out = append(out, p)
		}
	}
	return out, nil
}

// --- ReviewRepository ---

type reviewRepo struct{ s *Store }

func (r *reviewRepo) Create(ctx context.Context, rev *models.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	product, err := r.s.productLocked(rev.ProductID)
	if err != nil {
		return err
	}

	r.s.reviews = append(r.s.reviews, *rev)

	var sum, count int
	for _, existing := range r.s.reviews {
		if existing.ProductID == rev.ProductID {
			sum += existing.Rating
			count++
		}
	}
	product.Rating = float64(sum) / float64(count)
	product.NumReviews = count
	for i := range r.s.products {
		if r.s.products[i].ID == product.ID {
			r.s.products[i] = *product
		}
	}
	return nil
}

func (r *reviewRepo) GetByUserAndProduct(ctx context.Context, userID, productID string) (*models.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rev := range r.s.reviews {
		if rev.UserID == userID && rev.ProductID == productID {
			copied := rev
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *reviewRepo) ListByProduct(ctx context.Context, productID string) ([]models.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Review
	for _, rev := range r.s.reviews {
		if rev.ProductID == productID {
			out = append(out, rev)
		}
	}
	return out, nil
}

// --- OrderRepository ---

type orderRepo struct{ s *Store }

func (r *orderRepo) Place(ctx context.Context, o *models.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	// Tout ou rien : vérifie d'abord que chaque produit existe.
	for _, item := range o.Items {
		if _, err := r.s.productLocked(item.ProductID); err != nil {
			return err
		}
	}

	for _, item := range o.Items {
		for i := range r.s.products {
			if r.s.products[i].ID == item.ProductID {
				r.s.products[i].CountInStock -= item.Qty
			}
		}
	}
	r.s.orders = append(r.s.orders, *o)
	return nil
}

func (r *orderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.orders {
		if o.ID == id {
			copied := o
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *orderRepo) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Order
	for _, o := range r.s.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *orderRepo) ListAll(ctx context.Context) ([]models.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]models.Order(nil), r.s.orders...), nil
}

func (r *orderRepo) MarkPaid(ctx context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.orders {
		if r.s.orders[i].ID == id {
			r.s.orders[i].IsPaid = true
			r.s.orders[i].PaidAt = &at
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *orderRepo) MarkDelivered(ctx context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.orders {
		if r.s.orders[i].ID == id {
			r.s.orders[i].IsDelivered = true
			r.s.orders[i].DeliveredAt = &at
			return nil
		}
	}
	return repository.ErrNotFound
}
