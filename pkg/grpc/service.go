package grpc

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// CatalogServiceName is the fully qualified gRPC service name.
const CatalogServiceName = "aseertime.catalog.v1.Catalog"

// CatalogService is the server side of the catalog API. Requests and replies
// are google.protobuf.Struct values shaped like the storefront JSON.
type CatalogService interface {
	ListCategories(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	ListProducts(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	GetProduct(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	BranchStatus(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(CatalogService, context.Context, *structpb.Struct) (*structpb.Struct, error)

func method(name string, call unaryCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(CatalogService), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod(name),
			}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(srv.(CatalogService), ctx, req.(*structpb.Struct))
			})
		},
	}
}

func fullMethod(name string) string {
	return "/" + CatalogServiceName + "/" + name
}

var catalogServiceDesc = grpc.ServiceDesc{
	ServiceName: CatalogServiceName,
	HandlerType: (*CatalogService)(nil),
	Methods: []grpc.MethodDesc{
		method("ListCategories", CatalogService.ListCategories),
		method("ListProducts", CatalogService.ListProducts),
		method("GetProduct", CatalogService.GetProduct),
		method("BranchStatus", CatalogService.BranchStatus),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "aseertime/catalog/v1/catalog.proto",
}

// RegisterCatalogService registers impl on s.
func RegisterCatalogService(s grpc.ServiceRegistrar, impl CatalogService) {
	s.RegisterService(&catalogServiceDesc, impl)
}

// toStruct converts v through its JSON form. Non-object values are wrapped
// under "items".
func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode reply: %w", err)
	}
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("failed to encode reply: %w", err)
	}
	m, ok := decoded.(map[string]any)
	if !ok {
		m = map[string]any{"items": decoded}
	}
	return structpb.NewStruct(m)
}

// fromStruct decodes s, or its "items" field when items is set, into out.
func fromStruct(s *structpb.Struct, items bool, out any) error {
	var v any = s.AsMap()
	if items {
		v = s.AsMap()["items"]
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
