package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"velora_back_end/internal/models"
	"velora_back_end/internal/repository"
	"velora_back_end/internal/utils"
)

const MinPasswordLength = 8

type UserService struct {
	users     repository.UserRepository
	addresses repository.AddressRepository
}

func NewUserService(users repository.UserRepository, addresses repository.AddressRepository) *UserService {
	return &UserService{users: users, addresses: addresses}
}

// Register crée un compte local. Le login (username) est l'email.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	if !utils.IsValidEmail(email) {
		return nil, Validation("Adresse email invalide")
	}
	if len(password) < MinPasswordLength {
		return nil, Validation("Mot de passe trop court")
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, Internal("erreur hashage mot de passe", err)
	}

	user := &models.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Username:  email,
		Password:  hashed,
		IsAdmin:   false,
		CreatedAt: time.Now(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, Conflict("Un compte avec cet email existe déjà")
		}
		return nil, Internal("erreur création utilisateur", err)
	}
	return user, nil
}

// Authenticate vérifie les identifiants et renvoie l'utilisateur.
// Email inconnu et mot de passe erroné donnent la même réponse.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, Unauthorized("Email ou mot de passe incorrect")
	}
	ok, err := utils.VerifyPassword(password, user.Password)
	if err != nil || !ok {
		return nil, Unauthorized("Email ou mot de passe incorrect")
	}
	return user, nil
}

func (s *UserService) Profile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound("Utilisateur introuvable")
		}
		return nil, Internal("erreur lecture profil", err)
	}
	return user, nil
}

// UpdateProfile écrase nom, email et login ; le mot de passe n'est
// remplacé que s'il est fourni non vide.
func (s *UserService) UpdateProfile(ctx context.Context, userID, name, email, password string) (*models.User, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !utils.IsValidEmail(email) {
		return nil, Validation("Adresse email invalide")
	}

	user.Name = name
	user.Email = email
	user.Username = email

	if password != "" {
		if len(password) < MinPasswordLength {
			return nil, Validation("Mot de passe trop court")
		}
		hashed, err := utils.HashPassword(password)
		if err != nil {
			return nil, Internal("erreur hashage mot de passe", err)
		}
		user.Password = hashed
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, Conflict("Un compte avec cet email existe déjà")
		}
		return nil, Internal("erreur mise à jour profil", err)
	}
	return user, nil
}

func (s *UserService) Address(ctx context.Context, userID string) (*models.UserAddress, error) {
	addr, err := s.addresses.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound("Aucune adresse enregistrée")
		}
		return nil, Internal("erreur lecture adresse", err)
	}
	return addr, nil
}

// SaveAddress crée ou remplace l'adresse par défaut de l'utilisateur.
func (s *UserService) SaveAddress(ctx context.Context, addr *models.UserAddress) error {
	if err := s.addresses.Upsert(ctx, addr); err != nil {
		return Internal("erreur enregistrement adresse", err)
	}
	return nil
}

// --- Administration ---

type UserUpdate struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	IsAdmin *bool   `json:"isAdmin"`
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, Internal("erreur liste utilisateurs", err)
	}
	return users, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.Profile(ctx, id)
}

// UpdateUser applique une mise à jour partielle : tout champ absent
// conserve la valeur stockée.
func (s *UserService) UpdateUser(ctx context.Context, id string, update UserUpdate) (*models.User, error) {
	user, err := s.Profile(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Email != nil {
		if !utils.IsValidEmail(*update.Email) {
			return nil, Validation("Adresse email invalide")
		}
		user.Email = *update.Email
		user.Username = *update.Email
	}
	if update.IsAdmin != nil {
		user.IsAdmin = *update.IsAdmin
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, Conflict("Un compte avec cet email existe déjà")
		}
		return nil, Internal("erreur mise à jour utilisateur", err)
	}
	return user, nil
}

// DeleteUser refuse l'auto-suppression de l'admin qui agit.
func (s *UserService) DeleteUser(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return Validation("Opération non autorisée")
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFound("Utilisateur introuvable")
		}
		return Internal("erreur suppression utilisateur", err)
	}
	return nil
}
