package grpc

import (
	"errors"

	"github.com/dmitrijs2005/doctrack/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps service errors to gRPC status errors. Internal and
// unavailable failures are not echoed to the caller.
func toStatus(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, common.ErrorNotFound.Error())
	case errors.Is(err, common.ErrorConflict):
		return status.Error(codes.AlreadyExists, common.ErrorConflict.Error())
	case errors.Is(err, common.ErrorForbidden):
		return status.Error(codes.PermissionDenied, common.ErrorForbidden.Error())
	case errors.Is(err, common.ErrTokenExpired):
		return status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
	case errors.Is(err, common.ErrInvalidToken):
		return status.Error(codes.Unauthenticated, common.ErrInvalidToken.Error())
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, common.ErrorUnauthorized.Error())
	case errors.Is(err, common.ErrorValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrInvalidTransition):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, common.ErrorUnavailable):
		return status.Error(codes.Unavailable, common.ErrorUnavailable.Error())
	default:
		return status.Error(codes.Internal, common.ErrorInternal.Error())
	}
}
