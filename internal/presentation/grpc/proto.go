package grpc

// proto.go defines the gRPC server interface for bib.decision.v1.CreditDecisionService.
// It stands in for buf-generated code; messages travel through the JSON codec.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// CreditDecisionServiceName is the fully-qualified service name.
const CreditDecisionServiceName = "bib.decision.v1.CreditDecisionService"

// CreditDecisionServiceServer is the server API for CreditDecisionService.
type CreditDecisionServiceServer interface {
	EvaluateExistingClient(context.Context, *EvaluateExistingClientRequest) (*EvaluationReply, error)
	EvaluateNewApplicant(context.Context, *EvaluateNewApplicantRequest) (*EvaluationReply, error)
	RefreshReferenceData(context.Context, *RefreshReferenceDataRequest) (*RefreshReferenceDataReply, error)
	mustEmbedUnimplementedCreditDecisionServiceServer()
}

// UnimplementedCreditDecisionServiceServer provides forward-compatible default implementations.
type UnimplementedCreditDecisionServiceServer struct{}

func (UnimplementedCreditDecisionServiceServer) EvaluateExistingClient(context.Context, *EvaluateExistingClientRequest) (*EvaluationReply, error) {
	return nil, status.Errorf(codes.Unimplemented, "method EvaluateExistingClient not implemented")
}
func (UnimplementedCreditDecisionServiceServer) EvaluateNewApplicant(context.Context, *EvaluateNewApplicantRequest) (*EvaluationReply, error) {
	return nil, status.Errorf(codes.Unimplemented, "method EvaluateNewApplicant not implemented")
}
func (UnimplementedCreditDecisionServiceServer) RefreshReferenceData(context.Context, *RefreshReferenceDataRequest) (*RefreshReferenceDataReply, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RefreshReferenceData not implemented")
}
func (UnimplementedCreditDecisionServiceServer) mustEmbedUnimplementedCreditDecisionServiceServer() {}

// RegisterCreditDecisionServiceServer registers the server with the gRPC server.
func RegisterCreditDecisionServiceServer(s grpclib.ServiceRegistrar, srv CreditDecisionServiceServer) {
	s.RegisterService(&_CreditDecisionService_serviceDesc, srv)
}

var _CreditDecisionService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: CreditDecisionServiceName,
	HandlerType: (*CreditDecisionServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "EvaluateExistingClient", Handler: _CreditDecisionService_EvaluateExistingClient_Handler},
		{MethodName: "EvaluateNewApplicant", Handler: _CreditDecisionService_EvaluateNewApplicant_Handler},
		{MethodName: "RefreshReferenceData", Handler: _CreditDecisionService_RefreshReferenceData_Handler},
	},
	Streams: []grpclib.StreamDesc{},
}

func _CreditDecisionService_EvaluateExistingClient_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(EvaluateExistingClientRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditDecisionServiceServer).EvaluateExistingClient(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/" + CreditDecisionServiceName + "/EvaluateExistingClient"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditDecisionServiceServer).EvaluateExistingClient(ctx, req.(*EvaluateExistingClientRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func _CreditDecisionService_EvaluateNewApplicant_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(EvaluateNewApplicantRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditDecisionServiceServer).EvaluateNewApplicant(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/" + CreditDecisionServiceName + "/EvaluateNewApplicant"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditDecisionServiceServer).EvaluateNewApplicant(ctx, req.(*EvaluateNewApplicantRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func _CreditDecisionService_RefreshReferenceData_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(RefreshReferenceDataRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditDecisionServiceServer).RefreshReferenceData(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/" + CreditDecisionServiceName + "/RefreshReferenceData"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditDecisionServiceServer).RefreshReferenceData(ctx, req.(*RefreshReferenceDataRequest))
	}
	return interceptor(ctx, req, info, handler)
}
