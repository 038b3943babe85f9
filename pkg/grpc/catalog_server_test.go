package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/example/aseertime/pkg/cart"
	"github.com/example/aseertime/pkg/catalog"
	"github.com/example/aseertime/pkg/config"
	"github.com/example/aseertime/pkg/discovery"
	"github.com/example/aseertime/pkg/money"
	"github.com/example/aseertime/pkg/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

func startServer(t *testing.T) *CatalogClient {
	t.Helper()
	store := catalog.NewStore(catalog.NewMemoryRepositories(), catalog.Options{
		Defaults: cart.Defaults{DeliveryFee: money.MustParse("0.5"), MinimumOrder: money.MustParse("5")},
	}, zap.NewNop())
	require.NoError(t, store.Load(context.Background(), seed.Default()))

	srv := NewCatalogServer(&config.Config{}, store, zap.NewNop())
	srv.now = func() time.Time { return time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC) }

	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	client, err := NewCatalogClient("passthrough:///bufnet", zap.NewNop(),
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestCatalogOverGRPC(t *testing.T) {
	client := startServer(t)
	ctx := context.Background()

	require.NoError(t, client.Ping(ctx))

	cats, err := client.ActiveCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 6)
	assert.Equal(t, "Strawberry", cats[0].Name)
	assert.Equal(t, 6, cats[5].SortOrder)

	products, err := client.CategoryProducts(ctx, "5")
	require.NoError(t, err)
	assert.Len(t, products, 6)

	p, err := client.Product(ctx, "1")
	require.NoError(t, err)
	v, ok := p.DefaultVariant()
	require.True(t, ok)
	assert.Equal(t, money.MustParse("3.000"), v.Price)
	assert.Len(t, p.Addons, 2)
}

func TestCatalogNotFound(t *testing.T) {
	client := startServer(t)

	_, err := client.Product(context.Background(), "missing")
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	_, err = client.CategoryProducts(context.Background(), "missing")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestBranchStatusOverGRPC(t *testing.T) {
	client := startServer(t)
	ctx := context.Background()

	b, err := client.Branch(ctx, "1", time.Date(2024, 1, 15, 23, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "AseerTime - Khairan", b.Name)
	assert.False(t, b.Open)
	assert.Equal(t, "23:00", b.Today.Window.Close)

	branches, err := client.Branches(ctx, time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, branches, 2)
	assert.True(t, branches[1].Open)
}

func TestInvalidArguments(t *testing.T) {
	client := startServer(t)

	_, err := client.invoke(context.Background(), "GetProduct", map[string]any{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = client.invoke(context.Background(), "BranchStatus", map[string]any{"at": "yesterday"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

type staticDiscovery []*discovery.ServiceInstance

func (s staticDiscovery) Discover(context.Context, string) ([]*discovery.ServiceInstance, error) {
	return s, nil
}

func TestResolveCatalog(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	assert.Equal(t, "localhost:50051", ResolveCatalog(ctx, nil, "catalog-service", "localhost:50051", logger))
	assert.Equal(t, "localhost:50051", ResolveCatalog(ctx, staticDiscovery{}, "catalog-service", "localhost:50051", logger))

	found := staticDiscovery{{Name: "catalog-service", Host: "10.0.0.7", Port: 6000}}
	assert.Equal(t, "10.0.0.7:6000", ResolveCatalog(ctx, found, "catalog-service", "localhost:50051", logger))
}

func TestToStructWrapsLists(t *testing.T) {
	s, err := toStruct([]string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, s.AsMap()["items"])

	var out []string
	require.NoError(t, fromStruct(s, true, &out))
	assert.Equal(t, []string{"a", "b"}, out)

	_, err = structpb.NewStruct(map[string]any{"bad": make(chan int)})
	assert.Error(t, err)
}
