package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/doctrack/internal/api"
	"github.com/dmitrijs2005/doctrack/internal/client/client"
	"github.com/dmitrijs2005/doctrack/internal/client/config"
)

// backend is the part of client.GRPCClient the commands use.
type backend interface {
	LoggedIn() bool
	User() *api.User
	Register(ctx context.Context, email string, password []byte) (*api.User, error)
	Login(ctx context.Context, email string, password []byte) (*api.User, error)
	Logout()
	Me(ctx context.Context) (*api.User, error)
	ListUsers(ctx context.Context) ([]api.User, error)
	UpdateUserRole(ctx context.Context, id int64, role string) (*api.User, error)
	CreateDocument(ctx context.Context, filename string) (*api.Document, string, error)
	ListDocuments(ctx context.Context) ([]api.Document, error)
	GetDocument(ctx context.Context, id int64) (*api.Document, error)
	UpdateDocument(ctx context.Context, req *api.UpdateDocumentRequest) (*api.Document, error)
	DeleteDocument(ctx context.Context, id int64) error
	DownloadURL(ctx context.Context, id int64) (string, error)
	Ping(ctx context.Context) error
	Close() error
}

type App struct {
	config *config.Config
	client backend
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := client.NewDocTrackClient(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	return &App{config: c, client: apiClient, reader: bufio.NewReader(os.Stdin), out: os.Stdout}, nil
}

func (a *App) isLoggedIn() bool {
	return a.client.LoggedIn()
}

func (a *App) getStatus() string {
	u := a.client.User()
	if u == nil {
		return ""
	}
	return fmt.Sprintf("(%s %s)", u.Email, u.Role)
}

// Run blocks until the user exits or stdin is closed.
func (a *App) Run(ctx context.Context) {
	defer a.client.Close()

	fmt.Fprintln(a.out, "Welcome to doctrack CLI (type 'help' for commands)")
	if err := a.client.Ping(ctx); err != nil {
		fmt.Fprintf(a.out, "Warning: server at %s is not reachable: %v\n", a.config.ServerEndpointAddr, err)
	}

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}
