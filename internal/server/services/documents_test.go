package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/doctrack/internal/common"
	"github.com/dmitrijs2005/doctrack/internal/logging"
	"github.com/dmitrijs2005/doctrack/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func statusPtr(s models.DocumentStatus) *models.DocumentStatus { return &s }

func newDocumentService(t *testing.T, strict bool) (*DocumentService, *fakeRepoManager, *fakeStorage, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rm := newFakeRepoManager()
	store := &fakeStorage{}
	svc := NewDocumentService(db, rm, store, strict, logging.Discard())
	svc.now = func() time.Time { return time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC) }
	return svc, rm, store, mock
}

func TestDocumentService_Create(t *testing.T) {
	ctx := context.Background()
	svc, rm, _, _ := newDocumentService(t, false)

	doc, err := svc.Create(ctx, "report.pdf", 7)
	require.NoError(t, err)
	assert.NotZero(t, doc.ID)
	assert.Equal(t, "report.pdf", doc.Filename)
	assert.Equal(t, int64(7), doc.UploaderID)
	assert.Equal(t, models.StatusPending, doc.Status)
	assert.Nil(t, doc.ErrorMessage)
	assert.True(t, strings.HasPrefix(doc.StorageKey, "documents/7/2025/05/01/"), doc.StorageKey)

	for _, bad := range []string{"", "../etc/passwd", "a/b.pdf", `a\b.pdf`, "..", strings.Repeat("n", 256)} {
		_, err := svc.Create(ctx, bad, 7)
		assert.ErrorIs(t, err, common.ErrorValidation, bad)
	}

	rm.d.err = errBoom
	_, err = svc.Create(ctx, "x.pdf", 7)
	assert.ErrorIs(t, err, common.ErrorUnavailable)
}

func TestDocumentService_GetListDelete(t *testing.T) {
	ctx := context.Background()
	svc, rm, _, _ := newDocumentService(t, false)

	a, err := svc.Create(ctx, "a.pdf", 1)
	require.NoError(t, err)
	b, err := svc.Create(ctx, "b.pdf", 2)
	require.NoError(t, err)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, a.ID, all[0].ID)
	assert.Equal(t, b.ID, all[1].ID)

	got, err := svc.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "b.pdf", got.Filename)

	require.NoError(t, svc.Delete(ctx, a.ID))
	assert.ErrorIs(t, svc.Delete(ctx, a.ID), common.ErrorNotFound, "second delete must fail")

	_, err = svc.Get(ctx, a.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	all, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	rm.d.err = errBoom
	_, err = svc.Get(ctx, b.ID)
	assert.ErrorIs(t, err, common.ErrorUnavailable)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, b.ID), common.ErrorUnavailable)
	_, err = svc.List(ctx)
	assert.ErrorIs(t, err, common.ErrorUnavailable)
}

func TestNormalizePatch(t *testing.T) {
	tests := []struct {
		name      string
		in        models.DocumentPatch
		wantErr   error
		wantClear bool
	}{
		{name: "empty", in: models.DocumentPatch{}, wantErr: common.ErrorValidation},
		{name: "only clear flag is still empty", in: models.DocumentPatch{ClearErrorMessage: true}, wantErr: common.ErrorValidation},
		{name: "rename", in: models.DocumentPatch{Filename: strPtr("b.pdf")}},
		{name: "bad rename", in: models.DocumentPatch{Filename: strPtr("x/y")}, wantErr: common.ErrorValidation},
		{name: "processing clears message", in: models.DocumentPatch{Status: statusPtr(models.StatusProcessing)}, wantClear: true},
		{name: "complete with empty message", in: models.DocumentPatch{Status: statusPtr(models.StatusComplete), ErrorMessage: strPtr("")}, wantClear: true},
		{name: "complete with message", in: models.DocumentPatch{Status: statusPtr(models.StatusComplete), ErrorMessage: strPtr("oops")}, wantErr: common.ErrorValidation},
		{name: "failed with message", in: models.DocumentPatch{Status: statusPtr(models.StatusFailed), ErrorMessage: strPtr("bad scan")}},
		{name: "failed without message", in: models.DocumentPatch{Status: statusPtr(models.StatusFailed)}, wantErr: common.ErrorValidation},
		{name: "failed with blank message", in: models.DocumentPatch{Status: statusPtr(models.StatusFailed), ErrorMessage: strPtr("  ")}, wantErr: common.ErrorValidation},
		{name: "message alone", in: models.DocumentPatch{ErrorMessage: strPtr("x")}, wantErr: common.ErrorValidation},
		{name: "unknown status", in: models.DocumentPatch{Status: statusPtr("archived")}, wantErr: common.ErrorValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizePatch(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantClear, got.ClearErrorMessage)
			if tt.wantClear {
				assert.Nil(t, got.ErrorMessage)
			}
		})
	}
}

func TestDocumentService_Update_Lenient(t *testing.T) {
	ctx := context.Background()
	svc, rm, _, _ := newDocumentService(t, false)

	doc, err := svc.Create(ctx, "a.pdf", 1)
	require.NoError(t, err)

	failed, err := svc.Update(ctx, doc.ID, models.DocumentPatch{Status: statusPtr(models.StatusFailed), ErrorMessage: strPtr("ocr crashed")})
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, failed.Status)
	require.NotNil(t, failed.ErrorMessage)
	assert.Equal(t, "ocr crashed", *failed.ErrorMessage)

	// lenient mode allows leaving a terminal status
	back, err := svc.Update(ctx, doc.ID, models.DocumentPatch{Status: statusPtr(models.StatusPending)})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, back.Status)
	assert.Nil(t, back.ErrorMessage, "message must be cleared when leaving failed")

	renamed, err := svc.Update(ctx, doc.ID, models.DocumentPatch{Filename: strPtr("b.pdf")})
	require.NoError(t, err)
	assert.Equal(t, "b.pdf", renamed.Filename)
	assert.Equal(t, models.StatusPending, renamed.Status)

	_, err = svc.Update(ctx, 999, models.DocumentPatch{Status: statusPtr(models.StatusProcessing)})
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = svc.Update(ctx, doc.ID, models.DocumentPatch{})
	assert.ErrorIs(t, err, common.ErrorValidation)

	rm.d.updateErr = errBoom
	_, err = svc.Update(ctx, doc.ID, models.DocumentPatch{Status: statusPtr(models.StatusProcessing)})
	assert.ErrorIs(t, err, common.ErrorUnavailable)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
}

func TestDocumentService_Update_Strict(t *testing.T) {
	ctx := context.Background()

	t.Run("forward path", func(t *testing.T) {
		svc, rm, _, mock := newDocumentService(t, true)
		doc, err := svc.Create(ctx, "a.pdf", 1)
		require.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectCommit()
		mock.ExpectBegin()
		mock.ExpectCommit()

		got, err := svc.Update(ctx, doc.ID, models.DocumentPatch{Status: statusPtr(models.StatusProcessing)})
		require.NoError(t, err)
		assert.Equal(t, models.StatusProcessing, got.Status)

		got, err = svc.Update(ctx, doc.ID, models.DocumentPatch{Status: statusPtr(models.StatusComplete)})
		require.NoError(t, err)
		assert.Equal(t, models.StatusComplete, got.Status)

		assert.Equal(t, []int64{doc.ID, doc.ID}, rm.d.locked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects skipping and leaving terminal states", func(t *testing.T) {
		svc, rm, _, mock := newDocumentService(t, true)
		doc, err := svc.Create(ctx, "a.pdf", 1)
		require.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectRollback()
		_, err = svc.Update(ctx, doc.ID, models.DocumentPatch{Status: statusPtr(models.StatusComplete)})
		assert.ErrorIs(t, err, common.ErrInvalidTransition)

		stored, _ := rm.d.Find(ctx, doc.ID)
		assert.Equal(t, models.StatusPending, stored.Status)

		rm.d.byID[doc.ID].Status = models.StatusFailed
		rm.d.byID[doc.ID].ErrorMessage = strPtr("x")

		mock.ExpectBegin()
		mock.ExpectRollback()
		_, err = svc.Update(ctx, doc.ID, models.DocumentPatch{Status: statusPtr(models.StatusProcessing)})
		assert.ErrorIs(t, err, common.ErrInvalidTransition)

		mock.ExpectBegin()
		mock.ExpectCommit()
		got, err := svc.Update(ctx, doc.ID, models.DocumentPatch{Status: statusPtr(models.StatusFailed), ErrorMessage: strPtr("retry failed")})
		require.NoError(t, err, "staying in the same status is allowed")
		assert.Equal(t, "retry failed", *got.ErrorMessage)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing document", func(t *testing.T) {
		svc, _, _, mock := newDocumentService(t, true)

		mock.ExpectBegin()
		mock.ExpectRollback()
		_, err := svc.Update(ctx, 42, models.DocumentPatch{Status: statusPtr(models.StatusProcessing)})
		assert.ErrorIs(t, err, common.ErrorNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure", func(t *testing.T) {
		svc, _, _, mock := newDocumentService(t, true)

		mock.ExpectBegin().WillReturnError(errBoom)
		_, err := svc.Update(ctx, 1, models.DocumentPatch{Status: statusPtr(models.StatusProcessing)})
		assert.ErrorIs(t, err, common.ErrorUnavailable)
	})

	t.Run("validation happens before the transaction", func(t *testing.T) {
		svc, _, _, mock := newDocumentService(t, true)

		_, err := svc.Update(ctx, 1, models.DocumentPatch{Status: statusPtr(models.StatusFailed)})
		assert.ErrorIs(t, err, common.ErrorValidation)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDocumentService_PresignedURLs(t *testing.T) {
	ctx := context.Background()
	svc, _, store, _ := newDocumentService(t, false)

	doc, err := svc.Create(ctx, "a.pdf", 3)
	require.NoError(t, err)

	up, err := svc.UploadURL(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://s3.local/put/"+doc.StorageKey, up)

	down, err := svc.DownloadURL(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://s3.local/get/"+doc.StorageKey, down)
	assert.Equal(t, []string{doc.StorageKey}, store.getKeys)

	_, err = svc.UploadURL(ctx, 999)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	store.err = errBoom
	_, err = svc.DownloadURL(ctx, doc.ID)
	assert.ErrorIs(t, err, common.ErrorUnavailable)
}
