package models

// UserAddress est l'adresse par défaut réutilisable d'un utilisateur,
// une seule par compte (upsert).
type UserAddress struct {
	UserID  string `json:"userId"`
	Address string `json:"address"`
	City    string `json:"city"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}
