package store

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Arohance-KV/RoopJewelersAdmin/internal/apiclient"
	"github.com/Arohance-KV/RoopJewelersAdmin/internal/events"
	"github.com/Arohance-KV/RoopJewelersAdmin/internal/models"
	"github.com/Arohance-KV/RoopJewelersAdmin/internal/security"
	"github.com/Arohance-KV/RoopJewelersAdmin/internal/tokenstore"
)

type Phase string

const (
	PhaseUnauthenticated Phase = "unauthenticated"
	PhaseAuthenticating  Phase = "authenticating"
	PhaseAuthenticated   Phase = "authenticated"
	PhaseValidating      Phase = "validating"
)

var ErrMissingToken = errors.New("response carried no access token")

// SessionState never exposes the token itself; use Session.Token.
type SessionState struct {
	Profile         *models.Admin `json:"profile"`
	IsAuthenticated bool          `json:"isAuthenticated"`
	Loading         bool          `json:"loading"`
	Error           string        `json:"error,omitempty"`
	Phase           Phase         `json:"phase"`
}

// Session owns the access token and the signed-in admin's profile.
// IsAuthenticated is true exactly when a token is held.
type Session struct {
	mu      sync.Mutex
	api     *apiclient.Client
	tokens  tokenstore.Store
	bus     *events.Bus
	log     zerolog.Logger
	token   string
	profile *models.Admin
	phase   Phase
	loading bool
	err     string

	bootstrap    sync.Once
	bootstrapErr error
}

// NewSession rehydrates the token persisted by an earlier process.
func NewSession(ctx context.Context, api *apiclient.Client, tokens tokenstore.Store, bus *events.Bus, log zerolog.Logger) (*Session, error) {
	token, err := tokens.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}

	s := &Session{
		api:    api,
		tokens: tokens,
		bus:    bus,
		log:    log.With().Str("store", "session").Logger(),
		token:  token,
		phase:  PhaseUnauthenticated,
	}
	if token != "" {
		s.phase = PhaseAuthenticated
	}
	return s, nil
}

func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	var profile *models.Admin
	if s.profile != nil {
		p := *s.profile
		profile = &p
	}
	return SessionState{
		Profile:         profile,
		IsAuthenticated: s.token != "",
		Loading:         s.loading,
		Error:           s.err,
		Phase:           s.phase,
	}
}

func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Session) IsAuthenticated() bool {
	return s.Token() != ""
}

// Claims decodes the held token for display. It says nothing about whether
// the backend still accepts the token.
func (s *Session) Claims() (*security.AccessClaims, error) {
	token := s.Token()
	if token == "" {
		return nil, ErrMissingToken
	}
	return security.InspectAccessToken(token)
}

func (s *Session) Login(ctx context.Context, creds models.Credentials) error {
	return s.authenticate(ctx, apiclient.PathLogin, creds, "Login failed")
}

func (s *Session) Signup(ctx context.Context, reg models.Registration) error {
	return s.authenticate(ctx, apiclient.PathSignup, reg, "Signup failed")
}

func (s *Session) authenticate(ctx context.Context, path string, body any, fallback string) error {
	s.mu.Lock()
	s.phase = PhaseAuthenticating
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	var result models.AuthResult
	err := s.api.Do(ctx, apiclient.Request{Method: http.MethodPost, Path: path, JSON: body}, &result)
	if err == nil && result.AccessToken == "" {
		err = ErrMissingToken
	}
	if err == nil {
		if setErr := s.tokens.Set(ctx, result.AccessToken); setErr != nil {
			err = fmt.Errorf("persist token: %w", setErr)
		}
	}
	if err != nil {
		msg := apiclient.Message(err, fallback)
		if errors.Is(err, ErrMissingToken) {
			msg = fallback
		}
		s.mu.Lock()
		s.loading = false
		s.err = msg
		s.phase = s.restingPhase()
		s.mu.Unlock()
		s.log.Warn().Err(err).Str("path", path).Msg(msg)
		return err
	}

	s.mu.Lock()
	s.token = result.AccessToken
	if !result.Admin.IsZero() {
		profile := result.Admin
		s.profile = &profile
	}
	s.loading = false
	s.err = ""
	s.phase = PhaseAuthenticated
	s.mu.Unlock()

	s.log.Info().Str("path", path).Msg("admin authenticated")
	s.bus.Publish(events.TopicSessionAuthenticated, events.SessionEvent{})
	return nil
}

// FetchProfile is the only check of a persisted token. Any failure, not
// just a 401, discards the token so the admin has to sign in again.
func (s *Session) FetchProfile(ctx context.Context) error {
	s.mu.Lock()
	s.phase = PhaseValidating
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	var profile models.Admin
	err := s.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: apiclient.PathProfile}, &profile)
	if err != nil {
		msg := apiclient.Message(err, "Failed to fetch profile")
		if rmErr := s.tokens.Remove(ctx); rmErr != nil {
			s.log.Error().Err(rmErr).Msg("remove persisted token")
		}

		s.mu.Lock()
		s.token = ""
		s.profile = nil
		s.loading = false
		s.err = msg
		s.phase = PhaseUnauthenticated
		s.mu.Unlock()

		expired := errors.Is(err, apiclient.ErrSessionExpired)
		s.log.Warn().Err(err).Bool("expired", expired).Msg("session invalidated")
		s.bus.Publish(events.TopicSessionInvalidated, events.SessionEvent{Expired: expired, Reason: msg})
		return err
	}

	s.mu.Lock()
	s.profile = &profile
	s.loading = false
	s.err = ""
	s.phase = s.restingPhase()
	s.mu.Unlock()
	return nil
}

// Bootstrap validates a rehydrated token once per Session. Its return is
// the end of the start-up loading state whatever the outcome.
func (s *Session) Bootstrap(ctx context.Context) error {
	s.bootstrap.Do(func() {
		if s.Token() == "" {
			return
		}
		s.bootstrapErr = s.FetchProfile(ctx)
	})
	return s.bootstrapErr
}

// Logout forgets the token and profile. Calling it again is harmless.
func (s *Session) Logout(ctx context.Context) error {
	err := s.tokens.Remove(ctx)

	s.mu.Lock()
	wasAuthenticated := s.token != ""
	s.token = ""
	s.profile = nil
	s.err = ""
	s.loading = false
	s.phase = PhaseUnauthenticated
	s.mu.Unlock()

	if wasAuthenticated {
		s.bus.Publish(events.TopicSessionLogout, events.SessionEvent{})
	}
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (s *Session) ClearError() {
	s.mu.Lock()
	s.err = ""
	s.mu.Unlock()
}

// restingPhase must be called with mu held.
func (s *Session) restingPhase() Phase {
	if s.token != "" {
		return PhaseAuthenticated
	}
	return PhaseUnauthenticated
}
