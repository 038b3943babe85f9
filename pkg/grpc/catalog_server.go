package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/example/aseertime/pkg/catalog"
	"github.com/example/aseertime/pkg/config"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

type CatalogServer struct {
	store  *catalog.Store
	logger *zap.Logger
	config *config.Config
	health *health.Server
	server *grpc.Server
	now    func() time.Time
}

func NewCatalogServer(cfg *config.Config, store *catalog.Store, logger *zap.Logger) *CatalogServer {
	s := &CatalogServer{
		store:  store,
		logger: logger,
		config: cfg,
		health: health.NewServer(),
		now:    time.Now,
	}
	s.server = grpc.NewServer(grpc.UnaryInterceptor(s.logRequests))
	RegisterCatalogService(s.server, s)
	healthpb.RegisterHealthServer(s.server, s.health)
	reflection.Register(s.server)
	s.health.SetServingStatus(CatalogServiceName, healthpb.HealthCheckResponse_SERVING)
	return s
}

func (s *CatalogServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	s.logger.Info("Catalog service started", zap.String("address", addr))
	return s.Serve(lis)
}

func (s *CatalogServer) Serve(lis net.Listener) error {
	return s.server.Serve(lis)
}

// Stop marks the service not serving and drains in-flight calls.
func (s *CatalogServer) Stop() {
	s.health.Shutdown()
	s.server.GracefulStop()
}

func (s *CatalogServer) logRequests(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	s.logger.Info("gRPC request",
		zap.String("method", info.FullMethod),
		zap.String("code", status.Code(err).String()),
		zap.Duration("latency", time.Since(start)))
	return resp, err
}

func toStatus(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, catalog.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func reply(v any, err error) (*structpb.Struct, error) {
	if err != nil {
		return nil, toStatus(err)
	}
	out, err := toStruct(v)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func field(in *structpb.Struct, name string) string {
	return in.GetFields()[name].GetStringValue()
}

func (s *CatalogServer) ListCategories(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return reply(s.store.ActiveCategories(ctx))
}

func (s *CatalogServer) ListProducts(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	id := field(in, "categoryId")
	if id == "" {
		return nil, status.Error(codes.InvalidArgument, "categoryId is required")
	}
	return reply(s.store.CategoryProducts(ctx, id))
}

func (s *CatalogServer) GetProduct(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	id := field(in, "id")
	if id == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}
	return reply(s.store.Product(ctx, id))
}

// BranchStatus reports one branch when "id" is set, else every active branch.
// "at" is an RFC 3339 time and defaults to now.
func (s *CatalogServer) BranchStatus(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	at := s.now()
	if raw := field(in, "at"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid at: %v", err)
		}
		at = t
	}
	if id := field(in, "id"); id != "" {
		return reply(s.store.Branch(ctx, id, at))
	}
	return reply(s.store.Branches(ctx, at))
}
