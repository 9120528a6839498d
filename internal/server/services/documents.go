package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/doctrack/internal/common"
	"github.com/dmitrijs2005/doctrack/internal/dbx"
	"github.com/dmitrijs2005/doctrack/internal/logging"
	"github.com/dmitrijs2005/doctrack/internal/server/models"
	"github.com/dmitrijs2005/doctrack/internal/server/repositories/documents"
	"github.com/dmitrijs2005/doctrack/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/doctrack/internal/server/storage"
)

// DocumentService tracks document metadata and its processing status.
//
// In lenient mode any valid status may replace any other. In strict mode
// status only moves forward (pending, processing, then complete or failed)
// and the check runs under a row lock.
type DocumentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	storage     storage.ObjectStorage
	strict      bool
	logger      logging.Logger
	now         func() time.Time
}

func NewDocumentService(db *sql.DB, m repomanager.RepositoryManager, store storage.ObjectStorage, strict bool, logger logging.Logger) *DocumentService {
	return &DocumentService{
		db:          db,
		repomanager: m,
		storage:     store,
		strict:      strict,
		logger:      logger.With("module", "documents"),
		now:         time.Now,
	}
}

// Create records a pending document uploaded by uploaderID.
func (s *DocumentService) Create(ctx context.Context, filename string, uploaderID int64) (*models.Document, error) {
	if err := validateFilename(filename); err != nil {
		return nil, err
	}

	doc := &models.Document{
		Filename:   filename,
		UploaderID: uploaderID,
		StorageKey: storage.NewKey(uploaderID, s.now()),
		Status:     models.StatusPending,
	}

	doc, err := s.repomanager.Documents(s.db).Create(ctx, doc)
	if err != nil {
		return nil, unavailable("create document", err)
	}

	s.logger.Info(ctx, "document created", "id", doc.ID, "uploader_id", uploaderID)
	return doc, nil
}

func (s *DocumentService) List(ctx context.Context) ([]*models.Document, error) {
	docs, err := s.repomanager.Documents(s.db).FindAll(ctx)
	if err != nil {
		return nil, unavailable("list documents", err)
	}
	return docs, nil
}

func (s *DocumentService) Get(ctx context.Context, id int64) (*models.Document, error) {
	doc, err := s.repomanager.Documents(s.db).Find(ctx, id)
	if err != nil {
		return nil, storeErr("find document", err)
	}
	return doc, nil
}

// normalizePatch enforces that an error message accompanies exactly the
// failed status. Other statuses clear any stored message.
func normalizePatch(p models.DocumentPatch) (models.DocumentPatch, error) {
	p.ClearErrorMessage = false
	if p.IsEmpty() {
		return p, invalid("nothing to update")
	}

	if p.Filename != nil {
		if err := validateFilename(*p.Filename); err != nil {
			return p, err
		}
	}

	if p.Status == nil {
		if p.ErrorMessage != nil {
			return p, invalid("error message can only be set together with status %q", models.StatusFailed)
		}
		return p, nil
	}

	if !p.Status.IsValid() {
		return p, invalid("unknown status %q", *p.Status)
	}

	if *p.Status == models.StatusFailed {
		if p.ErrorMessage == nil || strings.TrimSpace(*p.ErrorMessage) == "" {
			return p, invalid("status %q requires an error message", models.StatusFailed)
		}
		return p, nil
	}

	if p.ErrorMessage != nil && *p.ErrorMessage != "" {
		return p, invalid("error message is only allowed with status %q", models.StatusFailed)
	}
	p.ErrorMessage = nil
	p.ClearErrorMessage = true
	return p, nil
}

// Update applies patch to document id and returns the reloaded record.
func (s *DocumentService) Update(ctx context.Context, id int64, patch models.DocumentPatch) (*models.Document, error) {
	patch, err := normalizePatch(patch)
	if err != nil {
		return nil, err
	}

	var doc *models.Document
	if s.strict {
		doc, err = s.updateStrict(ctx, id, patch)
	} else {
		doc, err = s.apply(ctx, s.repomanager.Documents(s.db), id, patch)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "document updated", "id", id, "status", doc.Status)
	return doc, nil
}

func (s *DocumentService) apply(ctx context.Context, repo documents.Repository, id int64, patch models.DocumentPatch) (*models.Document, error) {
	n, err := repo.Update(ctx, id, patch)
	if err != nil {
		return nil, unavailable("update document", err)
	}
	if n == 0 {
		return nil, common.ErrorNotFound
	}

	doc, err := repo.Find(ctx, id)
	if err != nil {
		return nil, storeErr("reload document", err)
	}
	return doc, nil
}

func (s *DocumentService) updateStrict(ctx context.Context, id int64, patch models.DocumentPatch) (*models.Document, error) {
	var doc *models.Document

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Documents(tx)

		current, err := repo.FindForUpdate(ctx, id)
		if err != nil {
			return storeErr("lock document", err)
		}

		if patch.Status != nil && !current.Status.CanTransition(*patch.Status) {
			return fmt.Errorf("%w: %s to %s", common.ErrInvalidTransition, current.Status, *patch.Status)
		}

		doc, err = s.apply(ctx, repo, id, patch)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrInvalidTransition) || errors.Is(err, common.ErrorUnavailable) {
			return nil, err
		}
		return nil, unavailable("update document", err)
	}

	return doc, nil
}

// Delete removes document id. Deleting a missing document is
// common.ErrorNotFound, so a second delete fails.
func (s *DocumentService) Delete(ctx context.Context, id int64) error {
	n, err := s.repomanager.Documents(s.db).Delete(ctx, id)
	if err != nil {
		return unavailable("delete document", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	s.logger.Info(ctx, "document deleted", "id", id)
	return nil
}

// UploadURL presigns a PUT for the content of document id.
func (s *DocumentService) UploadURL(ctx context.Context, id int64) (string, error) {
	return s.presign(ctx, id, s.storage.PresignPut)
}

// DownloadURL presigns a GET for the content of document id.
func (s *DocumentService) DownloadURL(ctx context.Context, id int64) (string, error) {
	return s.presign(ctx, id, s.storage.PresignGet)
}

func (s *DocumentService) presign(ctx context.Context, id int64, fn func(context.Context, string) (string, error)) (string, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}

	url, err := fn(ctx, doc.StorageKey)
	if err != nil {
		return "", unavailable("presign", err)
	}
	return url, nil
}
