package models

import "time"

type Product struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"` // admin créateur
	Name         string    `json:"name"`
	Image        string    `json:"image"`
	Brand        string    `json:"brand"`
	Category     string    `json:"category"`
	Description  string    `json:"description"`
	Rating       float64   `json:"rating"`
	NumReviews   int       `json:"numReviews"`
	Price        float64   `json:"price"`
	CountInStock int       `json:"countInStock"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ProductPage est la réponse paginée du catalogue public.
type ProductPage struct {
	Products []Product `json:"products"`
	Page     int       `json:"page"`
	Pages    int       `json:"pages"`
}
