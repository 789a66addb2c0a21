package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"

	"github.com/argentbank/argentctl/internal/client/api"
	"github.com/argentbank/argentctl/internal/client/config"
	"github.com/argentbank/argentctl/internal/client/session"
	"github.com/argentbank/argentctl/internal/client/tokenstore"
	"github.com/argentbank/argentctl/internal/logging"

	_ "modernc.org/sqlite"
)

// App wires the CLI together: config, local credential database, API client,
// and the session manager the commands operate on.
type App struct {
	config  *config.Config
	session *session.Manager
	tokens  tokenstore.Repository
	client  api.Client
	db      *sql.DB
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	tokens, db, err := tokenstore.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, err
	}

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	apiClient := api.NewHTTPClient(c.APIBaseURL, tokens, c.RequestTimeout)
	mgr := session.NewManager(apiClient, tokens, log)

	return &App{
		config:  c,
		session: mgr,
		tokens:  tokens,
		client:  apiClient,
		db:      db,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// Run starts the REPL and blocks until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.Close()
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.statusLine, scanner)
}

// Close releases the API client and the local database.
func (a *App) Close() {
	_ = a.client.Close()
	_ = a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.session.Current().Authenticated
}

// statusLine renders the prompt fragment from the session projection.
func (a *App) statusLine() string {
	s := a.session.Current()
	switch {
	case s.Authenticated && s.DisplayName() != "":
		return s.DisplayName()
	case s.Authenticated:
		return "authenticated"
	case s.Status == session.StatusAuthError:
		return "login failed"
	default:
		return "anonymous"
	}
}
