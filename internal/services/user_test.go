package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velora_back_end/internal/repository/memory"
	"velora_back_end/internal/services"
)

func newUserService() *services.UserService {
	store := memory.NewStore()
	return services.NewUserService(store.Users(), store.Addresses())
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc := newUserService()

	user, err := svc.Register(ctx, "Alice", "alice@example.com", "motdepasse")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "alice@example.com", user.Username)
	assert.False(t, user.IsAdmin)
	assert.NotEqual(t, "motdepasse", user.Password)
}

func TestRegisterRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	svc := newUserService()

	_, err := svc.Register(ctx, "Alice", "pas-un-email", "motdepasse")
	assert.Equal(t, services.KindValidation, services.KindOf(err))

	_, err = svc.Register(ctx, "Alice", "alice@example.com", "court")
	assert.Equal(t, services.KindValidation, services.KindOf(err))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newUserService()

	_, err := svc.Register(ctx, "Alice", "alice@example.com", "motdepasse")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Autre Alice", "alice@example.com", "motdepasse2")
	assert.Equal(t, services.KindConflict, services.KindOf(err))
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc := newUserService()

	registered, err := svc.Register(ctx, "Alice", "alice@example.com", "motdepasse")
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, "alice@example.com", "motdepasse")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	// Email inconnu et mot de passe erroné doivent être indiscernables.
	_, errWrongPass := svc.Authenticate(ctx, "alice@example.com", "mauvais-mdp")
	_, errUnknown := svc.Authenticate(ctx, "bob@example.com", "motdepasse")
	assert.Equal(t, services.KindUnauthorized, services.KindOf(errWrongPass))
	assert.Equal(t, errWrongPass.Error(), errUnknown.Error())
}

func TestUpdateProfileKeepsPasswordWhenEmpty(t *testing.T) {
	ctx := context.Background()
	svc := newUserService()

	user, err := svc.Register(ctx, "Alice", "alice@example.com", "motdepasse")
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, user.ID, "Alice B", "aliceb@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, "Alice B", updated.Name)
	assert.Equal(t, "aliceb@example.com", updated.Username)

	// L'ancien mot de passe doit toujours fonctionner.
	_, err = svc.Authenticate(ctx, "aliceb@example.com", "motdepasse")
	assert.NoError(t, err)
}

func TestUpdateUserPartial(t *testing.T) {
	ctx := context.Background()
	svc := newUserService()

	user, err := svc.Register(ctx, "Alice", "alice@example.com", "motdepasse")
	require.NoError(t, err)

	isAdmin := true
	updated, err := svc.UpdateUser(ctx, user.ID, services.UserUpdate{IsAdmin: &isAdmin})
	require.NoError(t, err)
	assert.True(t, updated.IsAdmin)
	assert.Equal(t, "Alice", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email)
}

func TestDeleteUserRefusesSelf(t *testing.T) {
	ctx := context.Background()
	svc := newUserService()

	admin, err := svc.Register(ctx, "Admin", "admin@example.com", "motdepasse")
	require.NoError(t, err)
	other, err := svc.Register(ctx, "Bob", "bob@example.com", "motdepasse")
	require.NoError(t, err)

	err = svc.DeleteUser(ctx, admin.ID, admin.ID)
	assert.Equal(t, services.KindValidation, services.KindOf(err))

	require.NoError(t, svc.DeleteUser(ctx, admin.ID, other.ID))
	_, err = svc.GetUser(ctx, other.ID)
	assert.Equal(t, services.KindNotFound, services.KindOf(err))
}

func TestAddressUpsert(t *testing.T) {
	ctx := context.Background()
	svc := newUserService()

	user, err := svc.Register(ctx, "Alice", "alice@example.com", "motdepasse")
	require.NoError(t, err)

	_, err = svc.Address(ctx, user.ID)
	assert.Equal(t, services.KindNotFound, services.KindOf(err))

	first := addr(user.ID, "1 rue de la Paix", "Paris")
	require.NoError(t, svc.SaveAddress(ctx, first))

	// Un second enregistrement remplace le premier : une seule adresse
	// par compte.
	second := addr(user.ID, "2 avenue des Arts", "Bruxelles")
	require.NoError(t, svc.SaveAddress(ctx, second))

	got, err := svc.Address(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "2 avenue des Arts", got.Address)
	assert.Equal(t, "Bruxelles", got.City)
}
