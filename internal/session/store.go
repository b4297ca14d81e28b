// Package session owns the answer to "who is using the application". It is a
// small state machine (Loading -> Unauthenticated <-> Authenticated) kept in
// sync with Supabase: credential checks and token issuance happen there, the
// matching profile row lives in our Postgres.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/BhupenderNayak/krishi-unnati-app/internal/domain"
)

// ErrProfileNotReady is returned when the identity authenticated but its
// profile row has not been created yet (the signup trigger is eventually
// consistent). The store stays Unauthenticated until a later attempt resolves.
var ErrProfileNotReady = errors.New("profile not available yet, try again")

// Store is the single source of truth for the current session. One instance
// is owned per running process and injected into every consumer; there is no
// ambient global. All transitions are serialized: a second auth call queues
// behind the one in flight.
type Store struct {
	gateway  domain.AuthGateway
	profiles domain.ProfileRepository
	log      *slog.Logger

	// opMu serializes sign-in/sign-up/sign-out/initialize end to end,
	// including subscriber notification. mu guards snapshot reads.
	opMu sync.Mutex
	mu   sync.RWMutex

	state    domain.SessionState
	identity *domain.Identity
	profile  *domain.Profile
	token    string

	subMu    sync.Mutex
	subs     map[int]func(domain.Session)
	nextSub  int
	syncHook func(error)
}

func NewStore(gateway domain.AuthGateway, profiles domain.ProfileRepository, log *slog.Logger) *Store {
	return &Store{
		gateway:  gateway,
		profiles: profiles,
		log:      log,
		state:    domain.SessionLoading,
		subs:     make(map[int]func(domain.Session)),
	}
}

// Current returns a snapshot of the session.
func (s *Store) Current() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Session{State: s.state, Identity: s.identity, Profile: s.profile}
}

// Token returns the access token of the authenticated session, if any.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Subscribe registers fn to be called on every state transition. The returned
// function unsubscribes.
func (s *Store) Subscribe(fn func(domain.Session)) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// OnSyncResult installs a hook observing the outcome of background profile
// syncs (currently only the language preference persist). Optional.
func (s *Store) OnSyncResult(fn func(error)) {
	s.subMu.Lock()
	s.syncHook = fn
	s.subMu.Unlock()
}

// Initialize resolves the startup session. An empty or invalid token, or an
// unreachable backend, all land in Unauthenticated: failing closed beats
// blocking the whole application on an auth hiccup.
func (s *Store) Initialize(ctx context.Context, accessToken string) domain.Session {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if accessToken == "" {
		return s.transition(domain.SessionUnauthenticated, nil, nil, "")
	}

	identity, err := s.gateway.GetUser(ctx, accessToken)
	if err != nil {
		s.log.Warn("session restore failed, treating as unauthenticated", "error", err)
		return s.transition(domain.SessionUnauthenticated, nil, nil, "")
	}

	profile, err := s.fetchProfile(ctx, identity.ID)
	if err != nil {
		s.log.Warn("profile fetch failed during restore", "user_id", identity.ID, "error", err)
		return s.transition(domain.SessionUnauthenticated, nil, nil, "")
	}

	return s.transition(domain.SessionAuthenticated, identity, profile, accessToken)
}

// SignIn delegates the credential check to the gateway. On failure the state
// is untouched and the backend's message is returned for the login screen.
func (s *Store) SignIn(ctx context.Context, email, password string) (domain.Session, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	grant, err := s.gateway.SignInWithPassword(ctx, email, password)
	if err != nil {
		return s.Current(), err
	}

	return s.adopt(ctx, grant)
}

// SignUp creates the identity; the profile row is created by a database
// trigger using the metadata, which may land a moment later.
func (s *Store) SignUp(ctx context.Context, email, password, fullName string, role domain.Role) (domain.Session, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	grant, err := s.gateway.SignUp(ctx, email, password, map[string]interface{}{
		"full_name":          fullName,
		"role":               string(role),
		"preferred_language": string(domain.LanguageEnglish),
	})
	if err != nil {
		return s.Current(), err
	}

	return s.adopt(ctx, grant)
}

// SignOut revokes the remote session best-effort and transitions to
// Unauthenticated unconditionally, even when revocation fails.
func (s *Store) SignOut(ctx context.Context) domain.Session {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if token := s.Token(); token != "" {
		if err := s.gateway.SignOut(ctx, token); err != nil {
			s.log.Warn("remote sign-out failed, clearing local session anyway", "error", err)
		}
	}

	return s.transition(domain.SessionUnauthenticated, nil, nil, "")
}

// SetPreferredLanguage updates the cached profile immediately and persists in
// the background. The returned channel delivers the persistence result for
// callers that want to react; nobody is obliged to read it. A failed persist
// is logged and reported through the sync hook, never rolled back.
func (s *Store) SetPreferredLanguage(ctx context.Context, lang domain.Language) (<-chan error, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	if s.state != domain.SessionAuthenticated || s.profile == nil {
		s.mu.Unlock()
		return nil, errors.New("no authenticated session")
	}
	updated := *s.profile
	updated.PreferredLanguage = lang
	s.profile = &updated
	snapshot := domain.Session{State: s.state, Identity: s.identity, Profile: s.profile}
	userID := s.profile.ID
	s.mu.Unlock()

	s.notify(snapshot)

	result := make(chan error, 1)
	go func() {
		err := s.profiles.UpdateLanguage(context.WithoutCancel(ctx), userID, lang)
		if err != nil {
			s.log.Error("failed to persist language preference", "user_id", userID, "error", err)
		}
		s.subMu.Lock()
		hook := s.syncHook
		s.subMu.Unlock()
		if hook != nil {
			hook(err)
		}
		result <- err
	}()

	return result, nil
}

// adopt finishes a successful grant: fetch the profile (tolerating the signup
// trigger race with one retry) and move to Authenticated.
func (s *Store) adopt(ctx context.Context, grant *domain.AuthGrant) (domain.Session, error) {
	profile, err := s.fetchProfile(ctx, grant.Identity.ID)
	if err != nil {
		s.transition(domain.SessionUnauthenticated, nil, nil, "")
		return s.Current(), ErrProfileNotReady
	}

	identity := grant.Identity
	return s.transition(domain.SessionAuthenticated, &identity, profile, grant.AccessToken), nil
}

func (s *Store) fetchProfile(ctx context.Context, id string) (*domain.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, id)
	if err == nil && profile != nil {
		return profile, nil
	}

	// The profile row is created by a trigger right after sign-up; one retry
	// covers the common case of reading before the trigger committed.
	profile, err = s.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotReady
	}
	return profile, nil
}

// transition updates the state and notifies subscribers before returning, so
// each transition fully completes before the next operation's result is
// processed.
func (s *Store) transition(state domain.SessionState, identity *domain.Identity, profile *domain.Profile, token string) domain.Session {
	s.mu.Lock()
	s.state = state
	s.identity = identity
	s.profile = profile
	s.token = token
	snapshot := domain.Session{State: state, Identity: identity, Profile: profile}
	s.mu.Unlock()

	s.notify(snapshot)
	return snapshot
}

func (s *Store) notify(snapshot domain.Session) {
	s.subMu.Lock()
	fns := make([]func(domain.Session), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snapshot)
	}
}
