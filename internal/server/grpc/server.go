package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/doctrack/internal/api"
	"github.com/dmitrijs2005/doctrack/internal/logging"
	"github.com/dmitrijs2005/doctrack/internal/server/auth"
	"github.com/dmitrijs2005/doctrack/internal/server/models"
	"github.com/dmitrijs2005/doctrack/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type authSvc interface {
	Register(ctx context.Context, email, password string) (*services.Session, error)
	Login(ctx context.Context, email, password string) (*services.Session, error)
	Profile(ctx context.Context, id int64) (*models.Profile, error)
}

type userSvc interface {
	List(ctx context.Context) ([]*models.User, error)
	UpdateRole(ctx context.Context, id int64, role models.Role) (*models.User, error)
}

type documentSvc interface {
	Create(ctx context.Context, filename string, uploaderID int64) (*models.Document, error)
	List(ctx context.Context) ([]*models.Document, error)
	Get(ctx context.Context, id int64) (*models.Document, error)
	Update(ctx context.Context, id int64, patch models.DocumentPatch) (*models.Document, error)
	Delete(ctx context.Context, id int64) error
	UploadURL(ctx context.Context, id int64) (string, error)
	DownloadURL(ctx context.Context, id int64) (string, error)
}

type tokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// GRPCServer serves api.DocTrackServer.
type GRPCServer struct {
	api.UnimplementedDocTrackServer
	address   string
	auth      authSvc
	users     userSvc
	documents documentSvc
	verifier  tokenVerifier
	logger    logging.Logger
}

func NewGRPCServer(address string, l logging.Logger, as authSvc, us userSvc, ds documentSvc, v tokenVerifier) *GRPCServer {
	return &GRPCServer{
		address:   address,
		logger:    l.With("module", "grpc_server"),
		auth:      as,
		users:     us,
		documents: ds,
		verifier:  v,
	}
}

func (s *GRPCServer) newServer() (*grpc.Server, *health.Server) {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))

	api.RegisterDocTrackServer(srv, s)

	hs := health.NewServer()
	hs.SetServingStatus(api.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	return srv, hs
}

// Run serves until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.serve(ctx, listen)
}

func (s *GRPCServer) serve(ctx context.Context, listen net.Listener) error {
	srv, hs := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		hs.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
