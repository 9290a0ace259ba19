package services

import (
	"context"
	"errors"
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	"velora_back_end/internal/models"
	"velora_back_end/internal/repository"
)

type OrderService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	mailer   *Mailer // optionnel
}

func NewOrderService(orders repository.OrderRepository, products repository.ProductRepository, mailer *Mailer) *OrderService {
	return &OrderService{orders: orders, products: products, mailer: mailer}
}

type OrderItemInput struct {
	ProductID string  `json:"product"`
	Qty       int     `json:"qty"`
	Price     float64 `json:"price"`
}

type ShippingAddressInput struct {
	Address string `json:"address"`
	City    string `json:"city"`
	ZipCode string `json:"zipCode"`
}

type PlaceOrderInput struct {
	Items           []OrderItemInput     `json:"orderItems"`
	ShippingAddress ShippingAddressInput `json:"shippingAddress"`
	PaymentMethod   string               `json:"paymentMethod"`
	ShippingPrice   float64              `json:"shippingPrice"`
	TotalPrice      float64              `json:"totalPrice"`
}

// Place valide la commande, fige un instantané de chaque produit dans ses
// lignes et persiste le tout en une seule transaction, stock décrémenté
// compris. Les montants restent fournis par le client ; un écart avec la
// somme des lignes est seulement loggé.
func (s *OrderService) Place(ctx context.Context, userID, userEmail string, input PlaceOrderInput) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, Validation("Aucun article dans la commande")
	}
	if input.TotalPrice < 0 || input.ShippingPrice < 0 {
		return nil, Validation("Montant invalide")
	}

	orderID := uuid.NewString()
	now := time.Now()

	var items []models.OrderItem
	var itemsTotal float64
	for _, in := range input.Items {
		if in.Qty <= 0 {
			return nil, Validation("Quantité invalide")
		}

		product, err := s.products.GetByID(ctx, in.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, NotFound("Produit introuvable : " + in.ProductID)
			}
			return nil, Internal("erreur lecture produit", err)
		}

		// Instantané : les modifications ultérieures du produit ne
		// toucheront pas cette ligne.
		items = append(items, models.OrderItem{
			ID:        uuid.NewString(),
			OrderID:   orderID,
			ProductID: product.ID,
			Name:      product.Name,
			Qty:       in.Qty,
			Price:     in.Price,
			Image:     product.Image,
		})
		itemsTotal += in.Price * float64(in.Qty)
	}

	if math.Abs(itemsTotal+input.ShippingPrice-input.TotalPrice) > 0.01 {
		log.Printf("⚠️ Commande %s : total client %.2f ≠ somme des lignes %.2f + livraison %.2f",
			orderID, input.TotalPrice, itemsTotal, input.ShippingPrice)
	}

	order := &models.Order{
		ID:            orderID,
		UserID:        userID,
		PaymentMethod: input.PaymentMethod,
		ShippingPrice: input.ShippingPrice,
		TotalPrice:    input.TotalPrice,
		CreatedAt:     now,
		Items:         items,
		ShippingAddress: &models.ShippingAddress{
			OrderID: orderID,
			Address: input.ShippingAddress.Address,
			City:    input.ShippingAddress.City,
			ZipCode: input.ShippingAddress.ZipCode,
		},
	}

	if err := s.orders.Place(ctx, order); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound("Produit introuvable")
		}
		return nil, Internal("erreur création commande", err)
	}

	s.mailer.SendOrderConfirmation(userEmail, order)
	return order, nil
}

// Get applique la règle de propriété : admin ou propriétaire. Commande
// inconnue et commande d'autrui donnent la même réponse, pour ne pas
// révéler l'existence d'une commande à un tiers.
func (s *OrderService) Get(ctx context.Context, userID string, isAdmin bool, orderID string) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound("Commande introuvable ou non autorisée")
		}
		return nil, Internal("erreur lecture commande", err)
	}
	if !isAdmin && order.UserID != userID {
		return nil, NotFound("Commande introuvable ou non autorisée")
	}
	return order, nil
}

func (s *OrderService) MyOrders(ctx context.Context, userID string) ([]models.Order, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, Internal("erreur liste commandes", err)
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

func (s *OrderService) All(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, Internal("erreur liste commandes", err)
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

// MarkPaid suit la même règle de propriété que Get. Idempotent : re-marquer
// une commande déjà payée réécrit le même état.
func (s *OrderService) MarkPaid(ctx context.Context, userID string, isAdmin bool, orderID string) error {
	if _, err := s.Get(ctx, userID, isAdmin, orderID); err != nil {
		return err
	}
	if err := s.orders.MarkPaid(ctx, orderID, time.Now()); err != nil {
		return Internal("erreur mise à jour commande", err)
	}
	return nil
}

// MarkDelivered est réservé aux admins (contrôle au niveau des routes).
func (s *OrderService) MarkDelivered(ctx context.Context, orderID string) error {
	if err := s.orders.MarkDelivered(ctx, orderID, time.Now()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFound("Commande introuvable")
		}
		return Internal("erreur mise à jour commande", err)
	}
	return nil
}
