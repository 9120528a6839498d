package grpc

import (
	"context"

	"github.com/dmitrijs2005/doctrack/internal/api"
	"github.com/dmitrijs2005/doctrack/internal/common"
	"github.com/dmitrijs2005/doctrack/internal/server/auth"
	"github.com/dmitrijs2005/doctrack/internal/server/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func userToAPI(u *models.User) api.User {
	return api.User{ID: u.ID, Email: u.Email, Role: string(u.Role), CreatedAt: u.CreatedAt}
}

func profileToAPI(p models.Profile) api.User {
	return api.User{ID: p.ID, Email: p.Email, Role: string(p.Role)}
}

func documentToAPI(d *models.Document) api.Document {
	return api.Document{
		ID:           d.ID,
		Filename:     d.Filename,
		UploaderID:   d.UploaderID,
		Status:       string(d.Status),
		ErrorMessage: d.ErrorMessage,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func claimsFrom(ctx context.Context) (*auth.Claims, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, common.ErrorUnauthorized.Error())
	}
	return claims, nil
}

func (s *GRPCServer) Register(ctx context.Context, req *api.CredentialsRequest) (*api.SessionResponse, error) {
	sess, err := s.auth.Register(ctx, req.Email, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "Registered", "user_id", sess.Profile.ID)
	return &api.SessionResponse{AccessToken: sess.AccessToken, User: profileToAPI(sess.Profile)}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.CredentialsRequest) (*api.SessionResponse, error) {
	sess, err := s.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.SessionResponse{AccessToken: sess.AccessToken, User: profileToAPI(sess.Profile)}, nil
}

// Me reports the stored profile, which may differ from the role in the
// caller's token after a role change.
func (s *GRPCServer) Me(ctx context.Context, _ *api.Empty) (*api.UserResponse, error) {
	claims, err := claimsFrom(ctx)
	if err != nil {
		return nil, err
	}

	p, err := s.auth.Profile(ctx, claims.UserID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.UserResponse{User: profileToAPI(*p)}, nil
}

func (s *GRPCServer) ListUsers(ctx context.Context, _ *api.Empty) (*api.ListUsersResponse, error) {
	list, err := s.users.List(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	out := make([]api.User, 0, len(list))
	for _, u := range list {
		out = append(out, userToAPI(u))
	}
	return &api.ListUsersResponse{Users: out}, nil
}

func (s *GRPCServer) UpdateUserRole(ctx context.Context, req *api.UpdateUserRoleRequest) (*api.UserResponse, error) {
	u, err := s.users.UpdateRole(ctx, req.ID, models.Role(req.Role))
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.UserResponse{User: userToAPI(u)}, nil
}

func (s *GRPCServer) CreateDocument(ctx context.Context, req *api.CreateDocumentRequest) (*api.CreateDocumentResponse, error) {
	claims, err := claimsFrom(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := s.documents.Create(ctx, req.Filename, claims.UserID)
	if err != nil {
		return nil, toStatus(err)
	}

	url, err := s.documents.UploadURL(ctx, doc.ID)
	if err != nil {
		s.logger.Error(ctx, "presign upload failed", "id", doc.ID, "error", err)
		// the id never reached the caller; drop the pending record
		if derr := s.documents.Delete(ctx, doc.ID); derr != nil {
			s.logger.Error(ctx, "orphaned document cleanup failed", "id", doc.ID, "error", derr)
		}
		return nil, toStatus(err)
	}

	return &api.CreateDocumentResponse{Document: documentToAPI(doc), UploadURL: url}, nil
}

func (s *GRPCServer) ListDocuments(ctx context.Context, _ *api.Empty) (*api.ListDocumentsResponse, error) {
	docs, err := s.documents.List(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	out := make([]api.Document, 0, len(docs))
	for _, d := range docs {
		out = append(out, documentToAPI(d))
	}
	return &api.ListDocumentsResponse{Documents: out}, nil
}

func (s *GRPCServer) GetDocument(ctx context.Context, req *api.DocumentRequest) (*api.DocumentResponse, error) {
	doc, err := s.documents.Get(ctx, req.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.DocumentResponse{Document: documentToAPI(doc)}, nil
}

func (s *GRPCServer) UpdateDocument(ctx context.Context, req *api.UpdateDocumentRequest) (*api.DocumentResponse, error) {
	patch := models.DocumentPatch{
		Filename:     req.Filename,
		ErrorMessage: req.ErrorMessage,
	}
	if req.Status != nil {
		st := models.DocumentStatus(*req.Status)
		patch.Status = &st
	}

	doc, err := s.documents.Update(ctx, req.ID, patch)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.DocumentResponse{Document: documentToAPI(doc)}, nil
}

func (s *GRPCServer) DeleteDocument(ctx context.Context, req *api.DocumentRequest) (*api.Empty, error) {
	if err := s.documents.Delete(ctx, req.ID); err != nil {
		return nil, toStatus(err)
	}
	return &api.Empty{}, nil
}

func (s *GRPCServer) GetDownloadURL(ctx context.Context, req *api.DocumentRequest) (*api.URLResponse, error) {
	url, err := s.documents.DownloadURL(ctx, req.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.URLResponse{URL: url}, nil
}
