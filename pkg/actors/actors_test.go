package actors

import (
	"context"
	"testing"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/example/aseertime/pkg/cart"
	"github.com/example/aseertime/pkg/catalog"
	"github.com/example/aseertime/pkg/models"
	"github.com/example/aseertime/pkg/money"
	"github.com/example/aseertime/pkg/orders"
	"github.com/example/aseertime/pkg/repository"
	"github.com/example/aseertime/pkg/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seededStore(t *testing.T) *catalog.Store {
	t.Helper()
	store := catalog.NewStore(catalog.NewMemoryRepositories(), catalog.Options{
		Defaults: cart.Defaults{DeliveryFee: money.MustParse("0.5"), MinimumOrder: money.MustParse("5")},
	}, zap.NewNop())
	require.NoError(t, store.Load(context.Background(), seed.Default()))
	return store
}

func newHub(t *testing.T, sessions SessionStore) (*CartHub, *actor.ActorSystem) {
	t.Helper()
	return hubOn(t, seededStore(t), sessions)
}

func hubOn(t *testing.T, store *catalog.Store, sessions SessionStore) (*CartHub, *actor.ActorSystem) {
	t.Helper()
	system := actor.NewActorSystem()
	t.Cleanup(system.Shutdown)
	hub := NewCartHub(system, store, sessions, 2*time.Second, zap.NewNop())
	t.Cleanup(hub.Stop)
	return hub, system
}

func TestCartHubPricesAndMerges(t *testing.T) {
	hub, _ := newHub(t, repository.NewMemorySessions())
	sel := cart.Selection{VariantID: "1-2", AddonIDs: []string{"1-addon-1"}, Quantity: 1}

	_, err := hub.Add("s1", "1", sel)
	require.NoError(t, err)
	reply, err := hub.Add("s1", "1", sel)
	require.NoError(t, err)

	require.Len(t, reply.Snapshot.Items, 1)
	assert.Equal(t, 2, reply.Item.Quantity)
	assert.Equal(t, "7.000", reply.Snapshot.Subtotal.String())

	reply, err = hub.UpdateQuantity("s1", reply.Item.ID, 3)
	require.NoError(t, err)
	assert.True(t, reply.Found)
	assert.Equal(t, "10.500", reply.Item.TotalPrice.String())
	assert.Equal(t, "0.500", reply.Quote.DeliveryFee.String())
	assert.True(t, reply.Quote.CanCheckout)
}

func TestCartLineKeepsPriceAfterCatalogEdit(t *testing.T) {
	store := seededStore(t)
	hub, _ := hubOn(t, store, repository.NewMemorySessions())
	ctx := context.Background()

	reply, err := hub.Add("s1", "1", cart.Selection{})
	require.NoError(t, err)
	assert.Equal(t, "3.000", reply.Item.TotalPrice.String())

	p, err := store.Product(ctx, "1")
	require.NoError(t, err)
	form := catalog.ProductFormFrom(p)
	form.Price = "9.000"
	updated, err := catalog.NewAdmin(store, nil, zap.NewNop()).UpdateProduct(ctx, "1", form)
	require.NoError(t, err)
	def, _ := updated.DefaultVariant()
	assert.Equal(t, "9.000", def.Price.String())

	reply, err = hub.UpdateQuantity("s1", reply.Item.ID, 3)
	require.NoError(t, err)
	require.True(t, reply.Found)
	assert.Equal(t, "3.000", reply.Item.Variant.Price.String())
	assert.Equal(t, "9.000", reply.Item.TotalPrice.String())
	assert.Equal(t, "9.000", reply.Snapshot.Subtotal.String())
}

func TestCartHubSessionsAreIsolated(t *testing.T) {
	hub, _ := newHub(t, repository.NewMemorySessions())

	_, err := hub.Add("a", "3", cart.Selection{})
	require.NoError(t, err)

	reply, err := hub.Get("b")
	require.NoError(t, err)
	assert.Empty(t, reply.Snapshot.Items)

	_, err = hub.Get("../etc")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestCartHubUnknownItemAndProduct(t *testing.T) {
	hub, _ := newHub(t, repository.NewMemorySessions())

	reply, err := hub.Remove("s", "missing")
	require.NoError(t, err)
	assert.False(t, reply.Found)

	_, err = hub.Add("s", "404", cart.Selection{})
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	_, err = hub.Add("s", "1", cart.Selection{VariantID: "9-9"})
	assert.ErrorIs(t, err, cart.ErrVariantNotFound)
}

func TestCartHubZoneQuote(t *testing.T) {
	hub, _ := newHub(t, repository.NewMemorySessions())

	_, err := hub.Add("z", "4", cart.Selection{Quantity: 2})
	require.NoError(t, err)

	reply, err := hub.SelectZone("z", "2", "2")
	require.NoError(t, err)
	assert.Equal(t, "2", reply.Snapshot.ZoneID)
	assert.Equal(t, "8.000", reply.Quote.MinimumOrder.String())
	assert.False(t, reply.Quote.CanCheckout)
	assert.Equal(t, "6.300", reply.Quote.Shortfall.String())

	_, err = hub.SelectZone("z", "1", "2")
	assert.ErrorIs(t, err, ErrZoneMismatch)
}

func TestCartSurvivesActorRestart(t *testing.T) {
	sessions := repository.NewMemorySessions()
	hub, _ := newHub(t, sessions)

	_, err := hub.Add("keep", "5", cart.Selection{})
	require.NoError(t, err)
	hub.Stop()

	snap, ok, err := sessions.Load(context.Background(), "keep")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, snap.Items, 1)

	reply, err := hub.Get("keep")
	require.NoError(t, err)
	assert.Len(t, reply.Snapshot.Items, 1)

	reply, err = hub.Clear("keep")
	require.NoError(t, err)
	assert.Empty(t, reply.Snapshot.Items)
	_, ok, _ = sessions.Load(context.Background(), "keep")
	assert.False(t, ok)
}

func TestNotifier(t *testing.T) {
	system := actor.NewActorSystem()
	t.Cleanup(system.Shutdown)

	n, err := SpawnNotifier(system, time.Second, zap.NewNop())
	require.NoError(t, err)

	repo := repository.NewMemory[models.Order]()
	require.NoError(t, repo.ReplaceAll(context.Background(), seed.Default().Orders))
	board := orders.NewBoard(repo, n, zap.NewNop())

	ctx := context.Background()
	require.NoError(t, board.BulkStatus(ctx, []string{"001", "002"}, models.OrderReady))
	_, err = board.Apply(ctx)
	require.NoError(t, err)

	recent, err := n.Recent()
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "001", recent[0].OrderID)
	assert.Equal(t, models.OrderPending, recent[0].From)
	assert.Equal(t, models.OrderReady, recent[1].To)
}
