package session

import (
	"context"
	"sync"
	"time"

	"github.com/nutrilog/client-go/internal/authx"
	"github.com/nutrilog/client-go/internal/client/api"
	"github.com/nutrilog/client-go/internal/client/models"
	"github.com/nutrilog/client-go/internal/common"
	"github.com/nutrilog/client-go/internal/logging"
)

// Status is the resolver's position in its state machine.
type Status int

const (
	StatusIdle Status = iota
	StatusValidating
	StatusRestoring
	StatusAuthenticated
	StatusUnauthenticated
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusValidating:
		return "validating"
	case StatusRestoring:
		return "restoring"
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// State is the published session state. It is produced fresh by Resolve and
// SignIn and mutated only through resolver transitions; consumers receive it
// by value.
type State struct {
	Status         Status
	Identity       string
	Profile        *models.Profile
	CompletedSteps []Step
}

// Authenticated reports whether the state carries a fully resolved identity.
func (s State) Authenticated() bool { return s.Status == StatusAuthenticated }

const defaultRequestTimeout = 10 * time.Second

// Resolver orchestrates cold-start session recovery: credential discovery,
// local token validation, profile fetch, onboarding evaluation, flag
// reconciliation, and persistence of the reconciled result.
//
// Every failure between credential discovery and profile fetch converges on
// the same sink — clear all cached credentials, publish Unauthenticated — so
// no caller can ever observe a half-authenticated session.
type Resolver struct {
	creds      *CredentialStore
	api        api.Client
	reconciler *Reconciler
	log        logging.Logger
	timeout    time.Duration

	// test seams, in the style of package-level function vars
	now           func() time.Time
	validateToken func(token string, now time.Time) error

	mu    sync.Mutex
	state State
	token string
}

// NewResolver wires the resolver. timeout bounds each validation/fetch call;
// zero means the default. log may be nil.
func NewResolver(creds *CredentialStore, apiClient api.Client, log logging.Logger, timeout time.Duration) *Resolver {
	if log == nil {
		log = logging.Nop()
	}
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Resolver{
		creds:         creds,
		api:           apiClient,
		reconciler:    NewReconciler(apiClient, log),
		log:           log,
		timeout:       timeout,
		now:           time.Now,
		validateToken: authx.ValidateShape,
		state:         State{Status: StatusIdle},
	}
}

// Current returns the last published session state.
func (r *Resolver) Current() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Resolve runs the cold-start algorithm and returns the resulting state.
// It never returns a partially authenticated result: any failure clears the
// credential cache and lands on Unauthenticated.
func (r *Resolver) Resolve(ctx context.Context) State {
	r.publish(State{Status: StatusValidating})

	cred := r.creds.FindBestToken(ctx)
	if cred == nil {
		r.log.Info(ctx, "no cached credential found")
		return r.failClosed(ctx)
	}

	if err := r.validateToken(cred.Token, r.now()); err != nil {
		r.log.Info(ctx, "cached token failed local validation", "error", err)
		return r.failClosed(ctx)
	}

	r.publish(State{Status: StatusRestoring})

	fetchCtx, cancel := context.WithTimeout(ctx, r.timeout)
	profile, err := r.api.CurrentUser(fetchCtx, cred.Token)
	cancel()
	if err != nil {
		r.log.Warn(ctx, "profile fetch failed", "error", err)
		return r.failClosed(ctx)
	}

	identity := NormalizeIdentity(profile.Email)
	if identity == "" {
		// The server is authoritative for the identity; a token that maps to
		// no identity is not trustworthy.
		identity = cred.Identity
	}
	if identity == "" {
		r.log.Warn(ctx, "resolved profile carries no identity")
		return r.failClosed(ctx)
	}

	return r.establish(ctx, identity, cred.Token, profile)
}

// SignIn authenticates explicitly and establishes a session through the same
// evaluate/reconcile/persist tail as Resolve.
func (r *Resolver) SignIn(ctx context.Context, email string, password []byte) (State, error) {
	r.publish(State{Status: StatusValidating})

	loginCtx, cancel := context.WithTimeout(ctx, r.timeout)
	token, profile, err := r.api.Login(loginCtx, email, password)
	cancel()
	if err != nil {
		return r.failClosed(ctx), err
	}

	if profile == nil {
		fetchCtx, cancel := context.WithTimeout(ctx, r.timeout)
		profile, err = r.api.CurrentUser(fetchCtx, token)
		cancel()
		if err != nil {
			return r.failClosed(ctx), err
		}
	}

	identity := NormalizeIdentity(profile.Email)
	if identity == "" {
		identity = NormalizeIdentity(email)
	}

	return r.establish(ctx, identity, token, profile), nil
}

// SignOut clears all cached credentials and publishes Unauthenticated.
// Usable from any state.
func (r *Resolver) SignOut(ctx context.Context) State {
	return r.failClosed(ctx)
}

// FinalizeOnboarding raises the server completion flag for the current
// session and republishes state with the updated profile. Only valid while
// authenticated.
func (r *Resolver) FinalizeOnboarding(ctx context.Context) (State, error) {
	r.mu.Lock()
	current, token := r.state, r.token
	r.mu.Unlock()

	if !current.Authenticated() {
		return current, common.ErrUnauthorized
	}

	finCtx, cancel := context.WithTimeout(ctx, r.timeout)
	updated, err := r.reconciler.FinalizeOnboarding(finCtx, token, current.Profile)
	cancel()
	if err != nil {
		return current, err
	}

	return r.establish(ctx, current.Identity, token, updated), nil
}

// establish runs the shared tail: evaluate, reconcile, persist, publish.
func (r *Resolver) establish(ctx context.Context, identity, token string, profile *models.Profile) State {
	verdict := Evaluate(profile)

	reconCtx, cancel := context.WithTimeout(ctx, r.timeout)
	profile = r.reconciler.Reconcile(reconCtx, token, profile, verdict)
	cancel()

	if err := r.creds.Persist(ctx, identity, token, profile); err != nil {
		// The session is already validated; a failed cache write costs a
		// re-authentication on the next cold start, nothing more.
		r.log.Warn(ctx, "failed to persist credential cache", "error", err)
	}

	state := State{
		Status:         StatusAuthenticated,
		Identity:       identity,
		Profile:        profile,
		CompletedSteps: verdict.CompletedSteps,
	}
	r.mu.Lock()
	r.state = state
	r.token = token
	r.mu.Unlock()

	last := "none"
	if step, ok := verdict.LastCompleted(); ok {
		last = step.String()
	}
	r.log.Info(ctx, "session resolved", "identity", identity, "last_completed_step", last)
	return state
}

// failClosed is the single failure sink: purge the cache, publish
// Unauthenticated.
func (r *Resolver) failClosed(ctx context.Context) State {
	if err := r.creds.ClearAll(ctx); err != nil {
		r.log.Warn(ctx, "credential cache purge incomplete", "error", err)
	}
	state := State{Status: StatusUnauthenticated}
	r.mu.Lock()
	r.state = state
	r.token = ""
	r.mu.Unlock()
	return state
}

func (r *Resolver) publish(state State) {
	r.mu.Lock()
	r.state = state
	r.mu.Unlock()
}
