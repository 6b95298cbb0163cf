package grpc

// proto.go defines the gRPC server interface derived from
// finserv/v1/fieldloan.proto. This file serves as a stand-in for
// buf-generated code; once `buf generate` is run, replace it with the
// generated import.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FieldLoanServiceServer is the server API for FieldLoanService.
// It mirrors the proto-generated interface from finserv.v1.FieldLoanService.
type FieldLoanServiceServer interface {
	CreateLoanDraft(context.Context, *CreateLoanDraftRequest) (*CreateLoanDraftResponse, error)
	ApproveLoan(context.Context, *ApproveLoanRequest) (*ApproveLoanResponse, error)
	ActivateLoan(context.Context, *ActivateLoanRequest) (*ActivateLoanResponse, error)
	GetLoan(context.Context, *GetLoanRequest) (*GetLoanResponse, error)
	SubmitCollection(context.Context, *SubmitCollectionRequest) (*SubmitCollectionResponse, error)
	ReviewCollection(context.Context, *ReviewCollectionRequest) (*ReviewCollectionResponse, error)
	ForecloseLoan(context.Context, *ForecloseLoanRequest) (*ForecloseLoanResponse, error)
	ListPendingCollections(context.Context, *ListPendingCollectionsRequest) (*ListPendingCollectionsResponse, error)
	DeleteLoan(context.Context, *DeleteLoanRequest) (*DeleteLoanResponse, error)
	GetLoanAudit(context.Context, *GetLoanAuditRequest) (*GetLoanAuditResponse, error)
	mustEmbedUnimplementedFieldLoanServiceServer()
}

// UnimplementedFieldLoanServiceServer provides forward-compatible default implementations.
type UnimplementedFieldLoanServiceServer struct{}

func (UnimplementedFieldLoanServiceServer) CreateLoanDraft(context.Context, *CreateLoanDraftRequest) (*CreateLoanDraftResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateLoanDraft not implemented")
}
func (UnimplementedFieldLoanServiceServer) ApproveLoan(context.Context, *ApproveLoanRequest) (*ApproveLoanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ApproveLoan not implemented")
}
func (UnimplementedFieldLoanServiceServer) ActivateLoan(context.Context, *ActivateLoanRequest) (*ActivateLoanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ActivateLoan not implemented")
}
func (UnimplementedFieldLoanServiceServer) GetLoan(context.Context, *GetLoanRequest) (*GetLoanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetLoan not implemented")
}
func (UnimplementedFieldLoanServiceServer) SubmitCollection(context.Context, *SubmitCollectionRequest) (*SubmitCollectionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SubmitCollection not implemented")
}
func (UnimplementedFieldLoanServiceServer) ReviewCollection(context.Context, *ReviewCollectionRequest) (*ReviewCollectionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ReviewCollection not implemented")
}
func (UnimplementedFieldLoanServiceServer) ForecloseLoan(context.Context, *ForecloseLoanRequest) (*ForecloseLoanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ForecloseLoan not implemented")
}
func (UnimplementedFieldLoanServiceServer) ListPendingCollections(context.Context, *ListPendingCollectionsRequest) (*ListPendingCollectionsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListPendingCollections not implemented")
}
func (UnimplementedFieldLoanServiceServer) DeleteLoan(context.Context, *DeleteLoanRequest) (*DeleteLoanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DeleteLoan not implemented")
}
func (UnimplementedFieldLoanServiceServer) GetLoanAudit(context.Context, *GetLoanAuditRequest) (*GetLoanAuditResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetLoanAudit not implemented")
}
func (UnimplementedFieldLoanServiceServer) mustEmbedUnimplementedFieldLoanServiceServer() {}

// RegisterFieldLoanServiceServer registers the FieldLoanServiceServer with the gRPC server.
func RegisterFieldLoanServiceServer(s *grpclib.Server, srv FieldLoanServiceServer) {
	s.RegisterService(&_FieldLoanService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _FieldLoanService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "finserv.v1.FieldLoanService",
	HandlerType: (*FieldLoanServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "CreateLoanDraft", Handler: _FieldLoanService_CreateLoanDraft_Handler},               //nolint:revive // gRPC handler registration
		{MethodName: "ApproveLoan", Handler: _FieldLoanService_ApproveLoan_Handler},                       //nolint:revive // gRPC handler registration
		{MethodName: "ActivateLoan", Handler: _FieldLoanService_ActivateLoan_Handler},                     //nolint:revive // gRPC handler registration
		{MethodName: "GetLoan", Handler: _FieldLoanService_GetLoan_Handler},                               //nolint:revive // gRPC handler registration
		{MethodName: "SubmitCollection", Handler: _FieldLoanService_SubmitCollection_Handler},             //nolint:revive // gRPC handler registration
		{MethodName: "ReviewCollection", Handler: _FieldLoanService_ReviewCollection_Handler},             //nolint:revive // gRPC handler registration
		{MethodName: "ForecloseLoan", Handler: _FieldLoanService_ForecloseLoan_Handler},                   //nolint:revive // gRPC handler registration
		{MethodName: "ListPendingCollections", Handler: _FieldLoanService_ListPendingCollections_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "DeleteLoan", Handler: _FieldLoanService_DeleteLoan_Handler},                         //nolint:revive // gRPC handler registration
		{MethodName: "GetLoanAudit", Handler: _FieldLoanService_GetLoanAudit_Handler},                     //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _FieldLoanService_CreateLoanDraft_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(CreateLoanDraftRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FieldLoanServiceServer).CreateLoanDraft(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/finserv.v1.FieldLoanService/CreateLoanDraft",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FieldLoanServiceServer).CreateLoanDraft(ctx, req.(*CreateLoanDraftRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _FieldLoanService_ApproveLoan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ApproveLoanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FieldLoanServiceServer).ApproveLoan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/finserv.v1.FieldLoanService/ApproveLoan",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FieldLoanServiceServer).ApproveLoan(ctx, req.(*ApproveLoanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _FieldLoanService_ActivateLoan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ActivateLoanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FieldLoanServiceServer).ActivateLoan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/finserv.v1.FieldLoanService/ActivateLoan",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FieldLoanServiceServer).ActivateLoan(ctx, req.(*ActivateLoanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _FieldLoanService_GetLoan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetLoanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FieldLoanServiceServer).GetLoan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/finserv.v1.FieldLoanService/GetLoan",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FieldLoanServiceServer).GetLoan(ctx, req.(*GetLoanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _FieldLoanService_SubmitCollection_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(SubmitCollectionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FieldLoanServiceServer).SubmitCollection(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/finserv.v1.FieldLoanService/SubmitCollection",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FieldLoanServiceServer).SubmitCollection(ctx, req.(*SubmitCollectionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _FieldLoanService_ReviewCollection_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ReviewCollectionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FieldLoanServiceServer).ReviewCollection(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/finserv.v1.FieldLoanService/ReviewCollection",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FieldLoanServiceServer).ReviewCollection(ctx, req.(*ReviewCollectionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _FieldLoanService_ForecloseLoan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ForecloseLoanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FieldLoanServiceServer).ForecloseLoan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/finserv.v1.FieldLoanService/ForecloseLoan",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FieldLoanServiceServer).ForecloseLoan(ctx, req.(*ForecloseLoanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _FieldLoanService_ListPendingCollections_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListPendingCollectionsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FieldLoanServiceServer).ListPendingCollections(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/finserv.v1.FieldLoanService/ListPendingCollections",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FieldLoanServiceServer).ListPendingCollections(ctx, req.(*ListPendingCollectionsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _FieldLoanService_DeleteLoan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(DeleteLoanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FieldLoanServiceServer).DeleteLoan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/finserv.v1.FieldLoanService/DeleteLoan",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FieldLoanServiceServer).DeleteLoan(ctx, req.(*DeleteLoanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _FieldLoanService_GetLoanAudit_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetLoanAuditRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FieldLoanServiceServer).GetLoanAudit(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/finserv.v1.FieldLoanService/GetLoanAudit",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FieldLoanServiceServer).GetLoanAudit(ctx, req.(*GetLoanAuditRequest))
	}
	return interceptor(ctx, in, info, handler)
}
