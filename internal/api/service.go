// Package api describes the doctrack gRPC service: its messages, the
// service descriptor used by the server and a typed client. Messages travel
// as JSON (see CodecName).
package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "doctrack.v1.DocTrack"

const (
	FullMethodRegister       = "/" + ServiceName + "/Register"
	FullMethodLogin          = "/" + ServiceName + "/Login"
	FullMethodMe             = "/" + ServiceName + "/Me"
	FullMethodListUsers      = "/" + ServiceName + "/ListUsers"
	FullMethodUpdateUserRole = "/" + ServiceName + "/UpdateUserRole"
	FullMethodCreateDocument = "/" + ServiceName + "/CreateDocument"
	FullMethodListDocuments  = "/" + ServiceName + "/ListDocuments"
	FullMethodGetDocument    = "/" + ServiceName + "/GetDocument"
	FullMethodUpdateDocument = "/" + ServiceName + "/UpdateDocument"
	FullMethodDeleteDocument = "/" + ServiceName + "/DeleteDocument"
	FullMethodGetDownloadURL = "/" + ServiceName + "/GetDownloadURL"
)

// DocTrackServer is implemented by the server side of the service.
type DocTrackServer interface {
	Register(context.Context, *CredentialsRequest) (*SessionResponse, error)
	Login(context.Context, *CredentialsRequest) (*SessionResponse, error)
	Me(context.Context, *Empty) (*UserResponse, error)
	ListUsers(context.Context, *Empty) (*ListUsersResponse, error)
	UpdateUserRole(context.Context, *UpdateUserRoleRequest) (*UserResponse, error)
	CreateDocument(context.Context, *CreateDocumentRequest) (*CreateDocumentResponse, error)
	ListDocuments(context.Context, *Empty) (*ListDocumentsResponse, error)
	GetDocument(context.Context, *DocumentRequest) (*DocumentResponse, error)
	UpdateDocument(context.Context, *UpdateDocumentRequest) (*DocumentResponse, error)
	DeleteDocument(context.Context, *DocumentRequest) (*Empty, error)
	GetDownloadURL(context.Context, *DocumentRequest) (*URLResponse, error)
}

// UnimplementedDocTrackServer answers every method with codes.Unimplemented.
type UnimplementedDocTrackServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedDocTrackServer) Register(context.Context, *CredentialsRequest) (*SessionResponse, error) {
	return nil, unimplemented("Register")
}
func (UnimplementedDocTrackServer) Login(context.Context, *CredentialsRequest) (*SessionResponse, error) {
	return nil, unimplemented("Login")
}
func (UnimplementedDocTrackServer) Me(context.Context, *Empty) (*UserResponse, error) {
	return nil, unimplemented("Me")
}
func (UnimplementedDocTrackServer) ListUsers(context.Context, *Empty) (*ListUsersResponse, error) {
	return nil, unimplemented("ListUsers")
}
func (UnimplementedDocTrackServer) UpdateUserRole(context.Context, *UpdateUserRoleRequest) (*UserResponse, error) {
	return nil, unimplemented("UpdateUserRole")
}
func (UnimplementedDocTrackServer) CreateDocument(context.Context, *CreateDocumentRequest) (*CreateDocumentResponse, error) {
	return nil, unimplemented("CreateDocument")
}
func (UnimplementedDocTrackServer) ListDocuments(context.Context, *Empty) (*ListDocumentsResponse, error) {
	return nil, unimplemented("ListDocuments")
}
func (UnimplementedDocTrackServer) GetDocument(context.Context, *DocumentRequest) (*DocumentResponse, error) {
	return nil, unimplemented("GetDocument")
}
func (UnimplementedDocTrackServer) UpdateDocument(context.Context, *UpdateDocumentRequest) (*DocumentResponse, error) {
	return nil, unimplemented("UpdateDocument")
}
func (UnimplementedDocTrackServer) DeleteDocument(context.Context, *DocumentRequest) (*Empty, error) {
	return nil, unimplemented("DeleteDocument")
}
func (UnimplementedDocTrackServer) GetDownloadURL(context.Context, *DocumentRequest) (*URLResponse, error) {
	return nil, unimplemented("GetDownloadURL")
}

// unary adapts a DocTrackServer method expression to a grpc.MethodDesc.
func unary[Req, Resp any](name string, call func(DocTrackServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + ServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(DocTrackServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(DocTrackServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var DocTrack_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DocTrackServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Register", DocTrackServer.Register),
		unary("Login", DocTrackServer.Login),
		unary("Me", DocTrackServer.Me),
		unary("ListUsers", DocTrackServer.ListUsers),
		unary("UpdateUserRole", DocTrackServer.UpdateUserRole),
		unary("CreateDocument", DocTrackServer.CreateDocument),
		unary("ListDocuments", DocTrackServer.ListDocuments),
		unary("GetDocument", DocTrackServer.GetDocument),
		unary("UpdateDocument", DocTrackServer.UpdateDocument),
		unary("DeleteDocument", DocTrackServer.DeleteDocument),
		unary("GetDownloadURL", DocTrackServer.GetDownloadURL),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "doctrack/v1/doctrack",
}

func RegisterDocTrackServer(s grpc.ServiceRegistrar, srv DocTrackServer) {
	s.RegisterService(&DocTrack_ServiceDesc, srv)
}
