package grpc

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/doctrack/internal/common"
	"github.com/dmitrijs2005/doctrack/internal/server/auth"
	"github.com/dmitrijs2005/doctrack/internal/server/models"
	"github.com/dmitrijs2005/doctrack/internal/server/services"
)

var errBoom = errors.New("boom")

// fakeBackend keeps users and documents in memory and signs real tokens.
type fakeBackend struct {
	mu        sync.Mutex
	signer    *auth.JWTSigner
	users     map[int64]*models.User
	passwords map[int64]string
	docs      map[int64]*models.Document
	nextUser  int64
	nextDoc   int64
	err       error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		signer:    auth.NewJWTSigner([]byte("grpc-test"), time.Hour),
		users:     map[int64]*models.User{},
		passwords: map[int64]string{},
		docs:      map[int64]*models.Document{},
	}
}

func (f *fakeBackend) addUser(email, password string, role models.Role) *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextUser++
	u := &models.User{ID: f.nextUser, Email: email, Role: role, CreatedAt: time.Now()}
	f.users[u.ID] = u
	f.passwords[u.ID] = password
	return u
}

func (f *fakeBackend) token(u *models.User) string {
	t, err := f.signer.Sign(u.Profile())
	if err != nil {
		panic(err)
	}
	return t
}

func (f *fakeBackend) session(u *models.User) (*services.Session, error) {
	t, err := f.signer.Sign(u.Profile())
	if err != nil {
		return nil, err
	}
	return &services.Session{AccessToken: t, Profile: u.Profile()}, nil
}

func (f *fakeBackend) Register(ctx context.Context, email, password string) (*services.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	for _, u := range f.users {
		if u.Email == email {
			f.mu.Unlock()
			return nil, common.ErrorConflict
		}
	}
	f.mu.Unlock()
	return f.session(f.addUser(email, password, models.DefaultRole))
}

func (f *fakeBackend) Login(ctx context.Context, email, password string) (*services.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, u := range f.users {
		if u.Email == email && f.passwords[id] == password {
			return f.session(u)
		}
	}
	return nil, common.ErrorUnauthorized
}

func (f *fakeBackend) Profile(ctx context.Context, id int64) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	p := u.Profile()
	return &p, nil
}

func (f *fakeBackend) List(ctx context.Context) ([]*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.User, 0, len(f.users))
	for _, u := range f.users {
		c := *u
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeBackend) UpdateRole(ctx context.Context, id int64, role models.Role) (*models.User, error) {
	if !role.IsValid() {
		return nil, common.ErrorValidation
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u.Role = role
	c := *u
	return &c, nil
}

// fakeDocuments implements documentSvc.
type fakeDocuments struct {
	b         *fakeBackend
	updateErr error
	urlErr    error
	lastPatch models.DocumentPatch
}

func (d *fakeDocuments) Create(ctx context.Context, filename string, uploaderID int64) (*models.Document, error) {
	if filename == "" {
		return nil, common.ErrorValidation
	}
	d.b.mu.Lock()
	defer d.b.mu.Unlock()
	d.b.nextDoc++
	doc := &models.Document{ID: d.b.nextDoc, Filename: filename, UploaderID: uploaderID, StorageKey: "k/" + filename, Status: models.StatusPending}
	d.b.docs[doc.ID] = doc
	c := *doc
	return &c, nil
}

func (d *fakeDocuments) List(ctx context.Context) ([]*models.Document, error) {
	d.b.mu.Lock()
	defer d.b.mu.Unlock()
	out := make([]*models.Document, 0, len(d.b.docs))
	for _, doc := range d.b.docs {
		c := *doc
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (d *fakeDocuments) Get(ctx context.Context, id int64) (*models.Document, error) {
	d.b.mu.Lock()
	defer d.b.mu.Unlock()
	doc, ok := d.b.docs[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *doc
	return &c, nil
}

func (d *fakeDocuments) Update(ctx context.Context, id int64, patch models.DocumentPatch) (*models.Document, error) {
	d.lastPatch = patch
	if d.updateErr != nil {
		return nil, d.updateErr
	}
	d.b.mu.Lock()
	doc, ok := d.b.docs[id]
	if ok {
		if patch.Filename != nil {
			doc.Filename = *patch.Filename
		}
		if patch.Status != nil {
			doc.Status = *patch.Status
		}
		doc.ErrorMessage = patch.ErrorMessage
	}
	d.b.mu.Unlock()
	if !ok {
		return nil, common.ErrorNotFound
	}
	return d.Get(ctx, id)
}

func (d *fakeDocuments) Delete(ctx context.Context, id int64) error {
	d.b.mu.Lock()
	defer d.b.mu.Unlock()
	if _, ok := d.b.docs[id]; !ok {
		return common.ErrorNotFound
	}
	delete(d.b.docs, id)
	return nil
}

func (d *fakeDocuments) UploadURL(ctx context.Context, id int64) (string, error) {
	return d.url(ctx, id, "put")
}

func (d *fakeDocuments) DownloadURL(ctx context.Context, id int64) (string, error) {
	return d.url(ctx, id, "get")
}

func (d *fakeDocuments) url(ctx context.Context, id int64, verb string) (string, error) {
	if d.urlErr != nil {
		return "", d.urlErr
	}
	doc, err := d.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return "https://s3.local/" + verb + "/" + doc.StorageKey, nil
}
