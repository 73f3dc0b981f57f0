package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dmitrijs2005/dogcatalog/internal/client/client"
	"github.com/dmitrijs2005/dogcatalog/internal/client/config"
)

// API is the part of client.Client the commands use.
type API interface {
	Register(ctx context.Context, username string, password []byte) error
	Login(ctx context.Context, username string, password []byte) error
	SetToken(token string)
	HasCredentials() bool
	List(ctx context.Context) ([]client.Dog, error)
	Get(ctx context.Context, id string) (*client.Dog, error)
	GetByName(ctx context.Context, name string) (*client.Dog, error)
	Create(ctx context.Context, in client.DogInput) (string, error)
	Update(ctx context.Context, id string, in client.DogInput) (*client.Dog, error)
	Delete(ctx context.Context, id string) error
}

type App struct {
	config   *config.Config
	api      API
	userName string
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(c *config.Config) *App {
	var opts []client.Option
	opts = append(opts, client.WithHTTPClient(&http.Client{Timeout: c.RequestTimeout}))
	if c.APIKey != "" {
		opts = append(opts, client.WithAPIKey(c.APIKey))
	}

	return &App{
		config: c,
		api:    client.New(c.ServerURL, opts...),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

func (a *App) Run(ctx context.Context) {
	fmt.Fprintf(a.out, "Connected to %s. Type help for commands.\n", a.config.ServerURL)
	runREPL(ctx, a, a.status, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) status() string {
	if a.isLoggedIn() {
		return a.userName
	}
	if a.config.APIKey != "" {
		return "api-key"
	}
	return "anonymous"
}
