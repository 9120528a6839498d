package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/doctrack/internal/api"
	"github.com/dmitrijs2005/doctrack/internal/client/client"
	"github.com/dmitrijs2005/doctrack/internal/client/config"
)

var errBoom = errors.New("boom")

type fakeBackend struct {
	user      *api.User
	me        *api.User
	users     []api.User
	docs      map[int64]*api.Document
	nextID    int64
	lastEmail string
	lastPass  string
	lastRole  string
	lastReq   *api.UpdateDocumentRequest
	deleted   []int64
	err       error
	closed    bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{docs: map[int64]*api.Document{}}
}

func (f *fakeBackend) LoggedIn() bool  { return f.user != nil }
func (f *fakeBackend) User() *api.User { return f.user }
func (f *fakeBackend) Logout()         { f.user = nil }
func (f *fakeBackend) Close() error    { f.closed = true; return nil }

func (f *fakeBackend) Ping(ctx context.Context) error { return f.err }

func (f *fakeBackend) login(email string, password []byte) (*api.User, error) {
	f.lastEmail, f.lastPass = email, string(password)
	if f.err != nil {
		return nil, f.err
	}
	f.user = &api.User{ID: 1, Email: email, Role: "viewer"}
	return f.user, nil
}

func (f *fakeBackend) Register(ctx context.Context, email string, password []byte) (*api.User, error) {
	return f.login(email, password)
}

func (f *fakeBackend) Login(ctx context.Context, email string, password []byte) (*api.User, error) {
	return f.login(email, password)
}

func (f *fakeBackend) Me(ctx context.Context) (*api.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.me != nil {
		return f.me, nil
	}
	return f.user, nil
}

func (f *fakeBackend) ListUsers(ctx context.Context) ([]api.User, error) {
	return f.users, f.err
}

func (f *fakeBackend) UpdateUserRole(ctx context.Context, id int64, role string) (*api.User, error) {
	f.lastRole = role
	if f.err != nil {
		return nil, f.err
	}
	return &api.User{ID: id, Email: "x@example.com", Role: role}, nil
}

func (f *fakeBackend) CreateDocument(ctx context.Context, filename string) (*api.Document, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	f.nextID++
	d := &api.Document{ID: f.nextID, Filename: filename, Status: "pending", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	f.docs[d.ID] = d
	return d, "https://s3/put/" + filename, nil
}

func (f *fakeBackend) ListDocuments(ctx context.Context) ([]api.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]api.Document, 0, len(f.docs))
	for id := int64(1); id <= f.nextID; id++ {
		if d, ok := f.docs[id]; ok {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (f *fakeBackend) GetDocument(ctx context.Context, id int64) (*api.Document, error) {
	d, ok := f.docs[id]
	if !ok {
		return nil, client.ErrNotFound
	}
	c := *d
	return &c, nil
}

func (f *fakeBackend) UpdateDocument(ctx context.Context, req *api.UpdateDocumentRequest) (*api.Document, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	d, ok := f.docs[req.ID]
	if !ok {
		return nil, client.ErrNotFound
	}
	if req.Filename != nil {
		d.Filename = *req.Filename
	}
	if req.Status != nil {
		d.Status = *req.Status
	}
	d.ErrorMessage = req.ErrorMessage
	c := *d
	return &c, nil
}

func (f *fakeBackend) DeleteDocument(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	if _, ok := f.docs[id]; !ok {
		return client.ErrNotFound
	}
	delete(f.docs, id)
	return nil
}

func (f *fakeBackend) DownloadURL(ctx context.Context, id int64) (string, error) {
	if _, ok := f.docs[id]; !ok {
		return "", client.ErrNotFound
	}
	return "https://s3/get/" + f.docs[id].Filename, nil
}

func newTestApp(b *fakeBackend, input string, downloadDir string) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	cfg := &config.Config{}
	cfg.LoadDefaults()
	if downloadDir != "" {
		cfg.DownloadDir = downloadDir
	}
	return &App{
		config: cfg,
		client: b,
		reader: bufio.NewReader(strings.NewReader(input)),
		out:    out,
	}, out
}
