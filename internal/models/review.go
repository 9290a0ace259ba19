package models

import "time"

// Review est immuable une fois créée : pas de route de mise à jour.
type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"` // nom de l'utilisateur figé à la création
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}
