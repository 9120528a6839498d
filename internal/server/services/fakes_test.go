package services

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/doctrack/internal/common"
	"github.com/dmitrijs2005/doctrack/internal/dbx"
	"github.com/dmitrijs2005/doctrack/internal/server/models"
	"github.com/dmitrijs2005/doctrack/internal/server/repositories/documents"
	"github.com/dmitrijs2005/doctrack/internal/server/repositories/users"
)

var errBoom = errors.New("boom")

// memUsers is an in-memory credential store.
type memUsers struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*models.User
	err    error
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[int64]*models.User{}}
}

func (m *memUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.byID {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (m *memUsers) FindByID(ctx context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *u
	return &c, nil
}

func (m *memUsers) Create(ctx context.Context, email, hash string, role models.Role) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.byID {
		if u.Email == email {
			return nil, common.ErrorConflict
		}
	}
	m.nextID++
	u := &models.User{ID: m.nextID, Email: email, PasswordHash: hash, Role: role, CreatedAt: time.Now()}
	m.byID[u.ID] = u
	c := *u
	return &c, nil
}

func (m *memUsers) Save(ctx context.Context, user *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if _, ok := m.byID[user.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	c := *user
	m.byID[user.ID] = &c
	return user, nil
}

func (m *memUsers) List(ctx context.Context) ([]*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*models.User, 0, len(m.byID))
	for _, u := range m.byID {
		c := *u
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// memDocuments is an in-memory document store.
type memDocuments struct {
	mu        sync.Mutex
	nextID    int64
	byID      map[int64]*models.Document
	err       error
	updateErr error
	locked    []int64
}

func newMemDocuments() *memDocuments {
	return &memDocuments{byID: map[int64]*models.Document{}}
}

func copyDoc(d *models.Document) *models.Document {
	c := *d
	if d.ErrorMessage != nil {
		m := *d.ErrorMessage
		c.ErrorMessage = &m
	}
	return &c
}

func (m *memDocuments) Create(ctx context.Context, doc *models.Document) (*models.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.nextID++
	doc.ID = m.nextID
	doc.CreatedAt = time.Now()
	doc.UpdatedAt = doc.CreatedAt
	m.byID[doc.ID] = copyDoc(doc)
	return doc, nil
}

func (m *memDocuments) Find(ctx context.Context, id int64) (*models.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	d, ok := m.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return copyDoc(d), nil
}

func (m *memDocuments) FindForUpdate(ctx context.Context, id int64) (*models.Document, error) {
	m.mu.Lock()
	m.locked = append(m.locked, id)
	m.mu.Unlock()
	return m.Find(ctx, id)
}

func (m *memDocuments) FindAll(ctx context.Context) ([]*models.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*models.Document, 0, len(m.byID))
	for _, d := range m.byID {
		out = append(out, copyDoc(d))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memDocuments) Update(ctx context.Context, id int64, p models.DocumentPatch) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	if m.updateErr != nil {
		return 0, m.updateErr
	}
	d, ok := m.byID[id]
	if !ok {
		return 0, nil
	}
	if p.Filename != nil {
		d.Filename = *p.Filename
	}
	if p.Status != nil {
		d.Status = *p.Status
	}
	switch {
	case p.ClearErrorMessage:
		d.ErrorMessage = nil
	case p.ErrorMessage != nil:
		msg := *p.ErrorMessage
		d.ErrorMessage = &msg
	}
	d.UpdatedAt = time.Now()
	return 1, nil
}

func (m *memDocuments) Delete(ctx context.Context, id int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	if _, ok := m.byID[id]; !ok {
		return 0, nil
	}
	delete(m.byID, id)
	return 1, nil
}

type fakeRepoManager struct {
	u *memUsers
	d *memDocuments
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{u: newMemUsers(), d: newMemDocuments()}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository           { return m.u }
func (m *fakeRepoManager) Documents(db dbx.DBTX) documents.Repository   { return m.d }

type fakeStorage struct {
	putKeys []string
	getKeys []string
	err     error
}

func (f *fakeStorage) PresignPut(ctx context.Context, key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.putKeys = append(f.putKeys, key)
	return "https://s3.local/put/" + key, nil
}

func (f *fakeStorage) PresignGet(ctx context.Context, key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.getKeys = append(f.getKeys, key)
	return "https://s3.local/get/" + key, nil
}

// countingHasher records Hash and Verify calls.
type countingHasher struct {
	PasswordHasher
	hashes   int
	verifies int
	hashErr  error
}

func (h *countingHasher) Hash(p string) (string, error) {
	h.hashes++
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return h.PasswordHasher.Hash(p)
}

func (h *countingHasher) Verify(p, d string) bool {
	h.verifies++
	return h.PasswordHasher.Verify(p, d)
}

type failingSigner struct{}

func (failingSigner) Sign(models.Profile) (string, error) { return "", errBoom }
