package models

import "time"

type Order struct {
	ID              string           `json:"id"`
	UserID          string           `json:"userId"`
	PaymentMethod   string           `json:"paymentMethod"`
	ShippingPrice   float64          `json:"shippingPrice"`
	TotalPrice      float64          `json:"totalPrice"`
	IsPaid          bool             `json:"isPaid"`
	PaidAt          *time.Time       `json:"paidAt,omitempty"`
	IsDelivered     bool             `json:"isDelivered"`
	DeliveredAt     *time.Time       `json:"deliveredAt,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	Items           []OrderItem      `json:"orderItems"`
	ShippingAddress *ShippingAddress `json:"shippingAddress,omitempty"`
}

// OrderItem fige nom, prix et image du produit au moment de l'achat :
// les modifications ultérieures du produit ne touchent pas l'historique.
type OrderItem struct {
	ID        string  `json:"id"`
	OrderID   string  `json:"orderId"`
	ProductID string  `json:"product"`
	Name      string  `json:"name"`
	Qty       int     `json:"qty"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
}

// ShippingAddress est liée 1-1 à sa commande.
type ShippingAddress struct {
	OrderID string `json:"orderId"`
	Address string `json:"address"`
	City    string `json:"city"`
	ZipCode string `json:"zipCode"`
}
