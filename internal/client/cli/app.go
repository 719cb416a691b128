// Package cli provides the interactive nutrilog command-line client.
//
// It wires configuration, the device key-value store, the REST API client,
// and the session resolver into a small REPL. On start the app runs the
// cold-start resolution once and then executes user commands until exit.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/nutrilog/client-go/internal/client/api"
	"github.com/nutrilog/client-go/internal/client/config"
	"github.com/nutrilog/client-go/internal/client/session"
	"github.com/nutrilog/client-go/internal/client/storage"
	"github.com/nutrilog/client-go/internal/cryptox"
	"github.com/nutrilog/client-go/internal/logging"
)

// sealSalt is fixed: the seal key must be re-derivable across cold starts
// from the device secret alone.
var sealSalt = []byte("nutrilog-seal-v1")

// sessionResolver is the slice of session.Resolver the CLI depends on.
type sessionResolver interface {
	Resolve(ctx context.Context) session.State
	SignIn(ctx context.Context, email string, password []byte) (session.State, error)
	SignOut(ctx context.Context) session.State
	FinalizeOnboarding(ctx context.Context) (session.State, error)
	Current() session.State
}

// test seams
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

type App struct {
	config   *config.Config
	resolver sessionResolver
	log      logging.Logger
	reader   *bufio.Reader
	out      io.Writer
	closer   io.Closer
}

// NewApp builds the storage backend, API client, and resolver per cfg.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	if log == nil {
		log = logging.Nop()
	}

	store, closer, err := openStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	var sealKey []byte
	if cfg.DeviceSecret != "" {
		sealKey = cryptox.DeriveSealKey([]byte(cfg.DeviceSecret), sealSalt)
	}

	creds := session.NewCredentialStore(store, log, sealKey)
	apiClient := api.NewHTTPClient(cfg.APIBaseURL, &http.Client{Timeout: cfg.RequestTimeout})
	resolver := session.NewResolver(creds, apiClient, log, cfg.RequestTimeout)

	return &App{
		config:   cfg,
		resolver: resolver,
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		closer:   closer,
	}, nil
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Store, io.Closer, error) {
	switch cfg.StorageBackend {
	case config.BackendSQLite:
		s, err := storage.OpenSQLite(ctx, cfg.StorageDSN)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case config.BackendRedis:
		s, err := storage.ConnectRedis(ctx, storage.RedisConfig{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case config.BackendMemory:
		return storage.NewMemory(), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// Run performs cold-start resolution and enters the REPL. Blocks until the
// user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	state := a.resolver.Resolve(ctx)
	a.printState(state)

	return a.repl(ctx)
}

func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

func (a *App) printState(state session.State) {
	if !state.Authenticated() {
		fmt.Fprintln(a.out, "Not signed in.")
		return
	}
	fmt.Fprintf(a.out, "Signed in as %s (%d/%d onboarding steps done)\n",
		state.Identity, len(state.CompletedSteps), len(session.Steps))
}
