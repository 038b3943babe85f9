package grpc

import (
	"context"
	"fmt"
	"time"

	"github.com/example/aseertime/pkg/catalog"
	"github.com/example/aseertime/pkg/discovery"
	"github.com/example/aseertime/pkg/models"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// Discoverer finds service instances, e.g. *discovery.ServiceDiscovery.
type Discoverer interface {
	Discover(ctx context.Context, serviceName string) ([]*discovery.ServiceInstance, error)
}

// CatalogClient reads the menu from a remote catalog service.
type CatalogClient struct {
	conn   *grpc.ClientConn
	logger *zap.Logger
}

// ResolveCatalog returns the address of a registered catalog instance, or
// fallback when discovery is nil or finds nothing.
func ResolveCatalog(ctx context.Context, disc Discoverer, serviceName, fallback string, logger *zap.Logger) string {
	if disc == nil {
		return fallback
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	instances, err := disc.Discover(ctx, serviceName)
	if err != nil || len(instances) == 0 {
		logger.Info("Using default address for catalog service", zap.String("address", fallback), zap.Error(err))
		return fallback
	}
	target := instances[0].Address()
	logger.Info("Discovered catalog service", zap.String("address", target))
	return target
}

// NewCatalogClient connects lazily to target. Extra options are appended to
// the insecure transport default.
func NewCatalogClient(target string, logger *zap.Logger, opts ...grpc.DialOption) (*CatalogClient, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to catalog service: %w", err)
	}
	logger.Info("Catalog client created", zap.String("target", target))
	return &CatalogClient{conn: conn, logger: logger}, nil
}

func (c *CatalogClient) invoke(ctx context.Context, name string, in map[string]any) (*structpb.Struct, error) {
	req, err := structpb.NewStruct(in)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, fullMethod(name), req, out); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("%s: %w", status.Convert(err).Message(), catalog.ErrNotFound)
		}
		return nil, fmt.Errorf("%s failed: %w", name, err)
	}
	return out, nil
}

func (c *CatalogClient) ActiveCategories(ctx context.Context) ([]models.Category, error) {
	out, err := c.invoke(ctx, "ListCategories", nil)
	if err != nil {
		return nil, err
	}
	var cats []models.Category
	if err := fromStruct(out, true, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

func (c *CatalogClient) CategoryProducts(ctx context.Context, categoryID string) ([]models.Product, error) {
	out, err := c.invoke(ctx, "ListProducts", map[string]any{"categoryId": categoryID})
	if err != nil {
		return nil, err
	}
	var products []models.Product
	if err := fromStruct(out, true, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *CatalogClient) Product(ctx context.Context, id string) (models.Product, error) {
	var p models.Product
	out, err := c.invoke(ctx, "GetProduct", map[string]any{"id": id})
	if err != nil {
		return p, err
	}
	err = fromStruct(out, false, &p)
	return p, err
}

func (c *CatalogClient) Branches(ctx context.Context, at time.Time) ([]catalog.BranchStatus, error) {
	out, err := c.invoke(ctx, "BranchStatus", map[string]any{"at": at.Format(time.RFC3339)})
	if err != nil {
		return nil, err
	}
	var branches []catalog.BranchStatus
	if err := fromStruct(out, true, &branches); err != nil {
		return nil, err
	}
	return branches, nil
}

func (c *CatalogClient) Branch(ctx context.Context, id string, at time.Time) (catalog.BranchStatus, error) {
	var b catalog.BranchStatus
	out, err := c.invoke(ctx, "BranchStatus", map[string]any{"id": id, "at": at.Format(time.RFC3339)})
	if err != nil {
		return b, err
	}
	err = fromStruct(out, false, &b)
	return b, err
}

// Ping checks the catalog service health.
func (c *CatalogClient) Ping(ctx context.Context) error {
	resp, err := healthpb.NewHealthClient(c.conn).Check(ctx, &healthpb.HealthCheckRequest{Service: CatalogServiceName})
	if err != nil {
		return err
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("catalog service is %s", resp.GetStatus())
	}
	return nil
}

func (c *CatalogClient) Close() error {
	return c.conn.Close()
}
