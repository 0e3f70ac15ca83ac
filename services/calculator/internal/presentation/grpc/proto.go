package grpc

// proto.go defines the gRPC server interface derived from
// crest/calculator/v1/calculator.proto. This file serves as a stand-in for
// buf-generated code. Once `buf generate` is run, replace this file with the
// import from github.com/crestbank/crest/api/gen/go/crest/calculator/v1.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// CalculatorServiceServer is the server API for CalculatorService.
type CalculatorServiceServer interface {
	Calculate(context.Context, *CalculateRequest) (*CalculateResponse, error)
	CalculateWithProduct(context.Context, *CalculateWithProductRequest) (*CalculateResponse, error)
	CompareScenarios(context.Context, *CompareScenariosRequest) (*CompareScenariosResponse, error)
	ListProducts(context.Context, *ListProductsRequest) (*ListProductsResponse, error)
	GetProduct(context.Context, *GetProductRequest) (*GetProductResponse, error)
	mustEmbedUnimplementedCalculatorServiceServer()
}

// UnimplementedCalculatorServiceServer provides forward-compatible default implementations.
type UnimplementedCalculatorServiceServer struct{}

func (UnimplementedCalculatorServiceServer) Calculate(context.Context, *CalculateRequest) (*CalculateResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Calculate not implemented")
}
func (UnimplementedCalculatorServiceServer) CalculateWithProduct(context.Context, *CalculateWithProductRequest) (*CalculateResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CalculateWithProduct not implemented")
}
func (UnimplementedCalculatorServiceServer) CompareScenarios(context.Context, *CompareScenariosRequest) (*CompareScenariosResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CompareScenarios not implemented")
}
func (UnimplementedCalculatorServiceServer) ListProducts(context.Context, *ListProductsRequest) (*ListProductsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListProducts not implemented")
}
func (UnimplementedCalculatorServiceServer) GetProduct(context.Context, *GetProductRequest) (*GetProductResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetProduct not implemented")
}
func (UnimplementedCalculatorServiceServer) mustEmbedUnimplementedCalculatorServiceServer() {}

// RegisterCalculatorServiceServer registers the CalculatorServiceServer with the gRPC server.
func RegisterCalculatorServiceServer(s *grpclib.Server, srv CalculatorServiceServer) {
	s.RegisterService(&_CalculatorService_serviceDesc, srv)
}

var _CalculatorService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "crest.calculator.v1.CalculatorService",
	HandlerType: (*CalculatorServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "Calculate", Handler: _CalculatorService_Calculate_Handler},
		{MethodName: "CalculateWithProduct", Handler: _CalculatorService_CalculateWithProduct_Handler},
		{MethodName: "CompareScenarios", Handler: _CalculatorService_CompareScenarios_Handler},
		{MethodName: "ListProducts", Handler: _CalculatorService_ListProducts_Handler},
		{MethodName: "GetProduct", Handler: _CalculatorService_GetProduct_Handler},
	},
	Streams: []grpclib.StreamDesc{},
}

func _CalculatorService_Calculate_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(CalculateRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(CalculatorServiceServer).Calculate(ctx, req)
}

func _CalculatorService_CalculateWithProduct_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(CalculateWithProductRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(CalculatorServiceServer).CalculateWithProduct(ctx, req)
}

func _CalculatorService_CompareScenarios_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(CompareScenariosRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(CalculatorServiceServer).CompareScenarios(ctx, req)
}

func _CalculatorService_ListProducts_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(ListProductsRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(CalculatorServiceServer).ListProducts(ctx, req)
}

func _CalculatorService_GetProduct_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetProductRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(CalculatorServiceServer).GetProduct(ctx, req)
}
