package api

import (
	"context"

	"google.golang.org/grpc"
)

// DocTrackClient is the typed client of the doctrack service.
type DocTrackClient interface {
	Register(ctx context.Context, in *CredentialsRequest, opts ...grpc.CallOption) (*SessionResponse, error)
	Login(ctx context.Context, in *CredentialsRequest, opts ...grpc.CallOption) (*SessionResponse, error)
	Me(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*UserResponse, error)
	ListUsers(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListUsersResponse, error)
	UpdateUserRole(ctx context.Context, in *UpdateUserRoleRequest, opts ...grpc.CallOption) (*UserResponse, error)
	CreateDocument(ctx context.Context, in *CreateDocumentRequest, opts ...grpc.CallOption) (*CreateDocumentResponse, error)
	ListDocuments(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListDocumentsResponse, error)
	GetDocument(ctx context.Context, in *DocumentRequest, opts ...grpc.CallOption) (*DocumentResponse, error)
	UpdateDocument(ctx context.Context, in *UpdateDocumentRequest, opts ...grpc.CallOption) (*DocumentResponse, error)
	DeleteDocument(ctx context.Context, in *DocumentRequest, opts ...grpc.CallOption) (*Empty, error)
	GetDownloadURL(ctx context.Context, in *DocumentRequest, opts ...grpc.CallOption) (*URLResponse, error)
}

type docTrackClient struct {
	cc grpc.ClientConnInterface
}

// NewDocTrackClient wraps cc. Every call is sent with the JSON codec.
func NewDocTrackClient(cc grpc.ClientConnInterface) DocTrackClient {
	return &docTrackClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *docTrackClient) Register(ctx context.Context, in *CredentialsRequest, opts ...grpc.CallOption) (*SessionResponse, error) {
	return invoke[SessionResponse](ctx, c.cc, FullMethodRegister, in, opts)
}

func (c *docTrackClient) Login(ctx context.Context, in *CredentialsRequest, opts ...grpc.CallOption) (*SessionResponse, error) {
	return invoke[SessionResponse](ctx, c.cc, FullMethodLogin, in, opts)
}

func (c *docTrackClient) Me(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c.cc, FullMethodMe, in, opts)
}

func (c *docTrackClient) ListUsers(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListUsersResponse, error) {
	return invoke[ListUsersResponse](ctx, c.cc, FullMethodListUsers, in, opts)
}

func (c *docTrackClient) UpdateUserRole(ctx context.Context, in *UpdateUserRoleRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c.cc, FullMethodUpdateUserRole, in, opts)
}

func (c *docTrackClient) CreateDocument(ctx context.Context, in *CreateDocumentRequest, opts ...grpc.CallOption) (*CreateDocumentResponse, error) {
	return invoke[CreateDocumentResponse](ctx, c.cc, FullMethodCreateDocument, in, opts)
}

func (c *docTrackClient) ListDocuments(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListDocumentsResponse, error) {
	return invoke[ListDocumentsResponse](ctx, c.cc, FullMethodListDocuments, in, opts)
}

func (c *docTrackClient) GetDocument(ctx context.Context, in *DocumentRequest, opts ...grpc.CallOption) (*DocumentResponse, error) {
	return invoke[DocumentResponse](ctx, c.cc, FullMethodGetDocument, in, opts)
}

func (c *docTrackClient) UpdateDocument(ctx context.Context, in *UpdateDocumentRequest, opts ...grpc.CallOption) (*DocumentResponse, error) {
	return invoke[DocumentResponse](ctx, c.cc, FullMethodUpdateDocument, in, opts)
}

func (c *docTrackClient) DeleteDocument(ctx context.Context, in *DocumentRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, FullMethodDeleteDocument, in, opts)
}

func (c *docTrackClient) GetDownloadURL(ctx context.Context, in *DocumentRequest, opts ...grpc.CallOption) (*URLResponse, error) {
	return invoke[URLResponse](ctx, c.cc, FullMethodGetDownloadURL, in, opts)
}
