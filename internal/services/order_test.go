package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velora_back_end/internal/repository/memory"
	"velora_back_end/internal/services"
)

func newOrderService(store *memory.Store) *services.OrderService {
	return services.NewOrderService(store.Orders(), store.Products(), nil)
}

func orderInput(items ...services.OrderItemInput) services.PlaceOrderInput {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Qty)
	}
	return services.PlaceOrderInput{
		Items: items,
		ShippingAddress: services.ShippingAddressInput{
			Address: "1 rue de la Paix",
			City:    "Paris",
			ZipCode: "75000",
		},
		PaymentMethod: "carte",
		ShippingPrice: 0,
		TotalPrice:    total,
	}
}

func TestPlaceOrderDecrementsStock(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newOrderService(store)

	product := seedProduct(t, store, "Clavier", 89, 10)

	_, err := svc.Place(ctx, "user-1", "alice@example.com",
		orderInput(services.OrderItemInput{ProductID: product.ID, Qty: 1, Price: 89}))
	require.NoError(t, err)

	_, err = svc.Place(ctx, "user-2", "bob@example.com",
		orderInput(services.OrderItemInput{ProductID: product.ID, Qty: 3, Price: 89}))
	require.NoError(t, err)

	got, err := store.Products().GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, got.CountInStock)
}

func TestPlaceOrderAllowsNegativeStock(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newOrderService(store)

	product := seedProduct(t, store, "Clavier", 89, 2)

	// Pas de plancher : la commande passe et le stock devient négatif.
	_, err := svc.Place(ctx, "user-1", "alice@example.com",
		orderInput(services.OrderItemInput{ProductID: product.ID, Qty: 5, Price: 89}))
	require.NoError(t, err)

	got, err := store.Products().GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, -3, got.CountInStock)
}

func TestPlaceOrderRejectsEmptyItems(t *testing.T) {
	svc := newOrderService(memory.NewStore())
	_, err := svc.Place(context.Background(), "user-1", "alice@example.com", orderInput())
	assert.Equal(t, services.KindValidation, services.KindOf(err))
}

func TestPlaceOrderRejectsBadQuantity(t *testing.T) {
	store := memory.NewStore()
	svc := newOrderService(store)

	product := seedProduct(t, store, "Clavier", 89, 10)
	_, err := svc.Place(context.Background(), "user-1", "alice@example.com",
		orderInput(services.OrderItemInput{ProductID: product.ID, Qty: 0, Price: 89}))
	assert.Equal(t, services.KindValidation, services.KindOf(err))
}

func TestPlaceOrderUnknownProduct(t *testing.T) {
	svc := newOrderService(memory.NewStore())
	_, err := svc.Place(context.Background(), "user-1", "alice@example.com",
		orderInput(services.OrderItemInput{ProductID: "inconnu", Qty: 1, Price: 10}))
	assert.Equal(t, services.KindNotFound, services.KindOf(err))
}

func TestPlaceOrderSnapshotsProduct(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newOrderService(store)

	product := seedProduct(t, store, "Clavier", 89, 10)

	order, err := svc.Place(ctx, "user-1", "alice@example.com",
		orderInput(services.OrderItemInput{ProductID: product.ID, Qty: 1, Price: 89}))
	require.NoError(t, err)

	// Renommer le produit après coup ne touche pas la ligne de commande.
	product.Name = "Clavier v2"
	require.NoError(t, store.Products().Update(ctx, product))

	got, err := svc.Get(ctx, "user-1", false, order.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Clavier", got.Items[0].Name)
	assert.Equal(t, 89.0, got.Items[0].Price)
	require.NotNil(t, got.ShippingAddress)
	assert.Equal(t, "Paris", got.ShippingAddress.City)
}

func TestGetOrderOwnership(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newOrderService(store)

	product := seedProduct(t, store, "Clavier", 89, 10)
	order, err := svc.Place(ctx, "user-1", "alice@example.com",
		orderInput(services.OrderItemInput{ProductID: product.ID, Qty: 1, Price: 89}))
	require.NoError(t, err)

	// Commande d'autrui et commande inexistante : réponse identique, pour
	// ne pas révéler l'existence d'une commande à un tiers.
	_, errForeign := svc.Get(ctx, "user-2", false, order.ID)
	_, errUnknown := svc.Get(ctx, "user-2", false, "inconnu")
	assert.Equal(t, services.KindNotFound, services.KindOf(errForeign))
	assert.Equal(t, errForeign.Error(), errUnknown.Error())

	// L'admin voit tout.
	got, err := svc.Get(ctx, "user-2", true, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
}

func TestMarkPaid(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newOrderService(store)

	product := seedProduct(t, store, "Clavier", 89, 10)
	order, err := svc.Place(ctx, "user-1", "alice@example.com",
		orderInput(services.OrderItemInput{ProductID: product.ID, Qty: 1, Price: 89}))
	require.NoError(t, err)

	// Un tiers non admin suit la même règle de propriété que Get.
	err = svc.MarkPaid(ctx, "user-2", false, order.ID)
	assert.Equal(t, services.KindNotFound, services.KindOf(err))

	require.NoError(t, svc.MarkPaid(ctx, "user-1", false, order.ID))

	got, err := svc.Get(ctx, "user-1", false, order.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPaid)
	require.NotNil(t, got.PaidAt)

	// Idempotent : re-marquer réécrit le même état.
	require.NoError(t, svc.MarkPaid(ctx, "user-1", false, order.ID))
}

func TestMarkDelivered(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newOrderService(store)

	product := seedProduct(t, store, "Clavier", 89, 10)
	order, err := svc.Place(ctx, "user-1", "alice@example.com",
		orderInput(services.OrderItemInput{ProductID: product.ID, Qty: 1, Price: 89}))
	require.NoError(t, err)

	require.NoError(t, svc.MarkDelivered(ctx, order.ID))
	got, err := svc.Get(ctx, "user-1", false, order.ID)
	require.NoError(t, err)
	assert.True(t, got.IsDelivered)
	require.NotNil(t, got.DeliveredAt)

	err = svc.MarkDelivered(ctx, "inconnu")
	assert.Equal(t, services.KindNotFound, services.KindOf(err))
}

func TestMyOrders(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newOrderService(store)

	orders, err := svc.MyOrders(ctx, "user-1")
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)

	product := seedProduct(t, store, "Clavier", 89, 10)
	_, err = svc.Place(ctx, "user-1", "alice@example.com",
		orderInput(services.OrderItemInput{ProductID: product.ID, Qty: 1, Price: 89}))
	require.NoError(t, err)
	_, err = svc.Place(ctx, "user-2", "bob@example.com",
		orderInput(services.OrderItemInput{ProductID: product.ID, Qty: 2, Price: 89}))
	require.NoError(t, err)

	orders, err = svc.MyOrders(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "user-1", orders[0].UserID)

	all, err := svc.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
