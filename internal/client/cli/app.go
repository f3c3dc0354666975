package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dmitrijs2005/hotelbook/internal/client/client"
	"github.com/dmitrijs2005/hotelbook/internal/client/config"
	"github.com/dmitrijs2005/hotelbook/internal/client/session"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config  *config.Config
	api     client.Client
	db      *sql.DB
	session *session.Store
	Mode    Mode
	reader  *bufio.Reader
	out     io.Writer
}

// newClient picks the transport named by c.Transport.
func newClient(c *config.Config) (client.Client, error) {
	switch c.Transport {
	case config.TransportHTTP, "":
		return client.NewHTTPClient(c.ServerEndpointAddr, c.RequestTimeout), nil
	case config.TransportGRPC:
		return client.NewGRPCClient(c.ServerEndpointAddrGRPC)
	default:
		return nil, fmt.Errorf("unknown transport %q", c.Transport)
	}
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	db, err := client.InitDatabase(ctx, c.StoragePath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	api, err := newClient(c)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	store, err := session.New(ctx, api, db)
	if err != nil {
		_ = api.Close()
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:  c,
		api:     api,
		db:      db,
		session: store,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

// trackMode flips to offline when err says the server is unreachable and to
// online after any answer from it.
func (a *App) trackMode(err error) {
	if errors.Is(err, client.ErrUnavailable) {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

// withTimeout bounds a single API call by the configured request timeout.
func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config == nil || a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) getStatus() string {
	s := ""
	if u := a.session.User(); u != nil {
		s = u.Email + " "
	} else if a.session.IsAuthenticated() {
		s = "signed in "
	}
	if a.Mode != "" {
		s = s + string(a.Mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Run starts the REPL on stdin and releases the API client and database
// when it returns.
func (a *App) Run(ctx context.Context) {
	defer func() {
		_ = a.api.Close()
		_ = a.db.Close()
	}()

	fmt.Fprintln(a.out, "Welcome to Intelligent Hotel CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}
