package client

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/doctrack/internal/api"
	"github.com/dmitrijs2005/doctrack/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn
	client      api.DocTrackClient
	health      healthpb.HealthClient
	accessToken string
	user        *api.User
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if s.accessToken != "" {
		ctx = withAccessToken(ctx, s.accessToken)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewDocTrackClient prepares a lazy connection to endpointURL. Each call is
// bounded by timeout.
func NewDocTrackClient(endpointURL string, timeout time.Duration) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}

	conn, err := grpc.NewClient(c.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	)
	if err != nil {
		return nil, err
	}

	c.conn = conn
	c.client = api.NewDocTrackClient(conn)
	c.health = healthpb.NewHealthClient(conn)
	return c, nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.Unauthenticated:
		if st.Message() == common.ErrTokenExpired.Error() {
			s.accessToken = ""
			s.user = nil
			return ErrSessionExpired
		}
		return ErrUnauthorized
	case codes.PermissionDenied:
		return ErrForbidden
	case codes.NotFound:
		return ErrNotFound
	case codes.AlreadyExists:
		return ErrConflict
	case codes.InvalidArgument, codes.FailedPrecondition:
		return fmt.Errorf("%w: %s", ErrRejected, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

// LoggedIn reports whether a session token is held.
func (s *GRPCClient) LoggedIn() bool {
	return s.accessToken != ""
}

// User is the profile returned by the last login or registration.
func (s *GRPCClient) User() *api.User {
	return s.user
}

func (s *GRPCClient) startSession(resp *api.SessionResponse) *api.User {
	s.accessToken = resp.AccessToken
	u := resp.User
	s.user = &u
	return s.user
}

func (s *GRPCClient) Register(ctx context.Context, email string, password []byte) (*api.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Register(ctx, &api.CredentialsRequest{Email: email, Password: string(password)})
	if err != nil {
		return nil, s.mapError(err)
	}
	return s.startSession(resp), nil
}

func (s *GRPCClient) Login(ctx context.Context, email string, password []byte) (*api.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Login(ctx, &api.CredentialsRequest{Email: email, Password: string(password)})
	if err != nil {
		return nil, s.mapError(err)
	}
	return s.startSession(resp), nil
}

// Logout forgets the session token. Tokens are stateless, so nothing is
// sent to the server.
func (s *GRPCClient) Logout() {
	s.accessToken = ""
	s.user = nil
}

func (s *GRPCClient) Me(ctx context.Context) (*api.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Me(ctx, &api.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.User, nil
}

func (s *GRPCClient) ListUsers(ctx context.Context) ([]api.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.ListUsers(ctx, &api.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Users, nil
}

func (s *GRPCClient) UpdateUserRole(ctx context.Context, id int64, role string) (*api.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.UpdateUserRole(ctx, &api.UpdateUserRoleRequest{ID: id, Role: role})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.User, nil
}

// CreateDocument registers filename and returns the record together with
// the URL its content must be PUT to.
func (s *GRPCClient) CreateDocument(ctx context.Context, filename string) (*api.Document, string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.CreateDocument(ctx, &api.CreateDocumentRequest{Filename: filename})
	if err != nil {
		return nil, "", s.mapError(err)
	}
	return &resp.Document, resp.UploadURL, nil
}

func (s *GRPCClient) ListDocuments(ctx context.Context) ([]api.Document, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.ListDocuments(ctx, &api.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Documents, nil
}

func (s *GRPCClient) GetDocument(ctx context.Context, id int64) (*api.Document, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.GetDocument(ctx, &api.DocumentRequest{ID: id})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.Document, nil
}

func (s *GRPCClient) UpdateDocument(ctx context.Context, req *api.UpdateDocumentRequest) (*api.Document, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.UpdateDocument(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.Document, nil
}

func (s *GRPCClient) DeleteDocument(ctx context.Context, id int64) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.client.DeleteDocument(ctx, &api.DocumentRequest{ID: id}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) DownloadURL(ctx context.Context, id int64) (string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.GetDownloadURL(ctx, &api.DocumentRequest{ID: id})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.URL, nil
}

// Ping asks the standard health service whether doctrack is serving.
func (s *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.health.Check(ctx, &healthpb.HealthCheckRequest{Service: api.ServiceName})
	if err != nil {
		return s.mapError(err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return ErrUnavailable
	}
	return nil
}
