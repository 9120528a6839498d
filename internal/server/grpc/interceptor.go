package grpc

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/doctrack/internal/api"
	"github.com/dmitrijs2005/doctrack/internal/common"
	"github.com/dmitrijs2005/doctrack/internal/server/auth"
	"github.com/dmitrijs2005/doctrack/internal/server/models"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const healthPrefix = "/grpc.health.v1.Health/"

type rule struct {
	public bool
	role   models.Role
}

// methodPolicy lists every callable DocTrack method. Methods missing from
// the table are refused.
var methodPolicy = map[string]rule{
	api.FullMethodRegister:       {public: true},
	api.FullMethodLogin:          {public: true},
	api.FullMethodMe:             {role: auth.AnyRole},
	api.FullMethodListUsers:      {role: models.RoleAdmin},
	api.FullMethodUpdateUserRole: {role: models.RoleAdmin},
	api.FullMethodCreateDocument: {role: auth.AnyRole},
	api.FullMethodListDocuments:  {role: auth.AnyRole},
	api.FullMethodGetDocument:    {role: auth.AnyRole},
	api.FullMethodUpdateDocument: {role: auth.AnyRole},
	api.FullMethodDeleteDocument: {role: auth.AnyRole},
	api.FullMethodGetDownloadURL: {role: auth.AnyRole},
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	requestID := uuid.NewString()

	resp, err := handler(ctx, req)

	code := status.Code(err)
	args := []any{"request_id", requestID, "method", info.FullMethod, "code", code.String(), "duration", time.Since(start)}
	switch code {
	case codes.OK:
		s.logger.Info(ctx, "request", args...)
	case codes.Internal, codes.Unavailable, codes.Unknown:
		s.logger.Error(ctx, "request failed", append(args, "error", err)...)
	default:
		s.logger.Warn(ctx, "request rejected", append(args, "error", status.Convert(err).Message())...)
	}

	return resp, err
}

func tokenFromMetadata(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if values := md.Get(common.AccessTokenHeaderName); len(values) > 0 && values[0] != "" {
		return values[0]
	}
	for _, v := range md.Get(common.AuthorizationHeaderName) {
		if len(v) > len(common.BearerPrefix) && strings.EqualFold(v[:len(common.BearerPrefix)], common.BearerPrefix) {
			return strings.TrimSpace(v[len(common.BearerPrefix):])
		}
	}
	return ""
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {

	if strings.HasPrefix(info.FullMethod, healthPrefix) {
		return handler(ctx, req)
	}

	r, ok := methodPolicy[info.FullMethod]
	if !ok {
		return nil, status.Error(codes.PermissionDenied, "method not allowed")
	}
	if r.public {
		return handler(ctx, req)
	}

	accessToken := tokenFromMetadata(ctx)
	if accessToken == "" {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	claims, err := s.verifier.Verify(accessToken)
	if err != nil {
		return nil, toStatus(err)
	}

	if err := auth.Authorize(claims, r.role); err != nil {
		return nil, toStatus(err)
	}

	return handler(auth.WithClaims(ctx, claims), req)
}
