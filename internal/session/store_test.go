package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/BhupenderNayak/krishi-unnati-app/internal/domain"
	"github.com/BhupenderNayak/krishi-unnati-app/internal/session"
	"github.com/BhupenderNayak/krishi-unnati-app/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) SignInWithPassword(ctx context.Context, email, password string) (*domain.AuthGrant, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthGrant), args.Error(1)
}

func (m *MockGateway) SignUp(ctx context.Context, email, password string, metadata map[string]interface{}) (*domain.AuthGrant, error) {
	args := m.Called(ctx, email, password, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthGrant), args.Error(1)
}

func (m *MockGateway) SignOut(ctx context.Context, accessToken string) error {
	return m.Called(ctx, accessToken).Error(0)
}

func (m *MockGateway) GetUser(ctx context.Context, accessToken string) (*domain.Identity, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Identity), args.Error(1)
}

type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockProfileRepo) Update(ctx context.Context, profile *domain.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockProfileRepo) UpdateLanguage(ctx context.Context, id string, lang domain.Language) error {
	return m.Called(ctx, id, lang).Error(0)
}

func (m *MockProfileRepo) List(ctx context.Context, role string, page, pageSize int) ([]domain.Profile, int64, error) {
	args := m.Called(ctx, role, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Profile), args.Get(1).(int64), args.Error(2)
}

func farmerProfile() *domain.Profile {
	return &domain.Profile{
		ID:                "user1",
		FullName:          "Ram Kumar",
		Role:              domain.RoleFarmer,
		PreferredLanguage: domain.LanguageEnglish,
	}
}

func newTestStore(gw *MockGateway, repo *MockProfileRepo) *session.Store {
	logger.Init()
	return session.NewStore(gw, repo, logger.Log)
}

func TestStoreStartsLoading(t *testing.T) {
	store := newTestStore(new(MockGateway), new(MockProfileRepo))
	assert.Equal(t, domain.SessionLoading, store.Current().State)
}

func TestInitialize(t *testing.T) {
	t.Run("empty token resolves unauthenticated", func(t *testing.T) {
		store := newTestStore(new(MockGateway), new(MockProfileRepo))
		sess := store.Initialize(context.Background(), "")
		assert.Equal(t, domain.SessionUnauthenticated, sess.State)
		assert.Nil(t, sess.Identity)
	})

	t.Run("unreachable backend fails closed, not loud", func(t *testing.T) {
		gw := new(MockGateway)
		gw.On("GetUser", mock.Anything, "tok").Return(nil, errors.New("connection refused"))

		store := newTestStore(gw, new(MockProfileRepo))
		sess := store.Initialize(context.Background(), "tok")
		assert.Equal(t, domain.SessionUnauthenticated, sess.State)
	})

	t.Run("valid token restores the session", func(t *testing.T) {
		gw := new(MockGateway)
		gw.On("GetUser", mock.Anything, "tok").Return(&domain.Identity{ID: "user1", Email: "ram@x.in"}, nil)
		repo := new(MockProfileRepo)
		repo.On("GetByID", mock.Anything, "user1").Return(farmerProfile(), nil)

		store := newTestStore(gw, repo)
		sess := store.Initialize(context.Background(), "tok")
		assert.Equal(t, domain.SessionAuthenticated, sess.State)
		assert.Equal(t, "user1", sess.Identity.ID)
		assert.Equal(t, "tok", store.Token())
	})
}

func TestSignIn(t *testing.T) {
	t.Run("failure keeps the state and surfaces the backend message", func(t *testing.T) {
		gw := new(MockGateway)
		gw.On("SignInWithPassword", mock.Anything, "ram@x.in", "bad").
			Return(nil, errors.New("Invalid login credentials"))

		store := newTestStore(gw, new(MockProfileRepo))
		store.Initialize(context.Background(), "")

		sess, err := store.SignIn(context.Background(), "ram@x.in", "bad")
		assert.EqualError(t, err, "Invalid login credentials")
		assert.Equal(t, domain.SessionUnauthenticated, sess.State)
	})

	t.Run("success transitions and notifies subscribers", func(t *testing.T) {
		gw := new(MockGateway)
		gw.On("SignInWithPassword", mock.Anything, "ram@x.in", "pw").
			Return(&domain.AuthGrant{Identity: domain.Identity{ID: "user1", Email: "ram@x.in"}, AccessToken: "tok"}, nil)
		repo := new(MockProfileRepo)
		repo.On("GetByID", mock.Anything, "user1").Return(farmerProfile(), nil)

		store := newTestStore(gw, repo)

		var seen []domain.SessionState
		unsubscribe := store.Subscribe(func(s domain.Session) {
			seen = append(seen, s.State)
		})
		defer unsubscribe()

		sess, err := store.SignIn(context.Background(), "ram@x.in", "pw")
		assert.NoError(t, err)
		assert.Equal(t, domain.SessionAuthenticated, sess.State)
		assert.Equal(t, []domain.SessionState{domain.SessionAuthenticated}, seen)
		assert.Equal(t, "tok", store.Token())
	})

	t.Run("missing profile after retry lands unauthenticated", func(t *testing.T) {
		gw := new(MockGateway)
		gw.On("SignInWithPassword", mock.Anything, "new@x.in", "pw").
			Return(&domain.AuthGrant{Identity: domain.Identity{ID: "user9"}, AccessToken: "tok"}, nil)
		repo := new(MockProfileRepo)
		repo.On("GetByID", mock.Anything, "user9").Return(nil, nil)

		store := newTestStore(gw, repo)
		sess, err := store.SignIn(context.Background(), "new@x.in", "pw")
		assert.ErrorIs(t, err, session.ErrProfileNotReady)
		assert.Equal(t, domain.SessionUnauthenticated, sess.State)
	})
}

func TestSignUp(t *testing.T) {
	gw := new(MockGateway)
	gw.On("SignUp", mock.Anything, "asha@x.in", "secret1", mock.MatchedBy(func(md map[string]interface{}) bool {
		return md["full_name"] == "Asha" && md["role"] == "farmer"
	})).Return(&domain.AuthGrant{Identity: domain.Identity{ID: "user2", Email: "asha@x.in"}, AccessToken: "tok"}, nil)

	repo := new(MockProfileRepo)
	repo.On("GetByID", mock.Anything, "user2").Return(&domain.Profile{
		ID: "user2", FullName: "Asha", Role: domain.RoleFarmer, PreferredLanguage: domain.LanguageEnglish,
	}, nil)

	store := newTestStore(gw, repo)
	sess, err := store.SignUp(context.Background(), "asha@x.in", "secret1", "Asha", domain.RoleFarmer)
	assert.NoError(t, err)
	assert.Equal(t, domain.SessionAuthenticated, sess.State)
	assert.Equal(t, domain.RoleFarmer, sess.Profile.Role)

	// A fresh farmer never sees the admin panel in the sidebar.
	assert.Len(t, domain.VisibleDestinations(sess.Profile), 9)
}

func TestSignOutIsUnconditional(t *testing.T) {
	gw := new(MockGateway)
	gw.On("GetUser", mock.Anything, "tok").Return(&domain.Identity{ID: "user1"}, nil)
	gw.On("SignOut", mock.Anything, "tok").Return(errors.New("network down"))
	repo := new(MockProfileRepo)
	repo.On("GetByID", mock.Anything, "user1").Return(farmerProfile(), nil)

	store := newTestStore(gw, repo)
	store.Initialize(context.Background(), "tok")

	sess := store.SignOut(context.Background())
	assert.Equal(t, domain.SessionUnauthenticated, sess.State)
	assert.Nil(t, sess.Profile)
	assert.Empty(t, store.Token())
	gw.AssertCalled(t, "SignOut", mock.Anything, "tok")
}

func TestSetPreferredLanguage(t *testing.T) {
	signIn := func(repo *MockProfileRepo) *session.Store {
		gw := new(MockGateway)
		gw.On("GetUser", mock.Anything, "tok").Return(&domain.Identity{ID: "user1"}, nil)
		store := newTestStore(gw, repo)
		store.Initialize(context.Background(), "tok")
		return store
	}

	t.Run("requires an authenticated session", func(t *testing.T) {
		store := newTestStore(new(MockGateway), new(MockProfileRepo))
		store.Initialize(context.Background(), "")
		_, err := store.SetPreferredLanguage(context.Background(), domain.LanguageHindi)
		assert.Error(t, err)
	})

	t.Run("applies optimistically and persists in the background", func(t *testing.T) {
		repo := new(MockProfileRepo)
		repo.On("GetByID", mock.Anything, "user1").Return(farmerProfile(), nil)
		repo.On("UpdateLanguage", mock.Anything, "user1", domain.LanguageHindi).Return(nil)

		store := signIn(repo)
		result, err := store.SetPreferredLanguage(context.Background(), domain.LanguageHindi)
		assert.NoError(t, err)

		// Cached profile reflects the change before the persist resolves.
		assert.Equal(t, domain.LanguageHindi, store.Current().Profile.PreferredLanguage)
		assert.NoError(t, <-result)
	})

	t.Run("persist failure is reported but never rolled back", func(t *testing.T) {
		repo := new(MockProfileRepo)
		repo.On("GetByID", mock.Anything, "user1").Return(farmerProfile(), nil)
		repo.On("UpdateLanguage", mock.Anything, "user1", domain.LanguageHindi).
			Return(errors.New("db timeout"))

		store := signIn(repo)

		var hookErr error
		var hookDone = make(chan struct{})
		store.OnSyncResult(func(err error) {
			hookErr = err
			close(hookDone)
		})

		result, err := store.SetPreferredLanguage(context.Background(), domain.LanguageHindi)
		assert.NoError(t, err)
		assert.Error(t, <-result)

		select {
		case <-hookDone:
			assert.EqualError(t, hookErr, "db timeout")
		case <-time.After(time.Second):
			t.Fatal("sync hook was not invoked")
		}

		assert.Equal(t, domain.LanguageHindi, store.Current().Profile.PreferredLanguage)
	})
}

// Two auth calls racing must serialize: each transition completes, including
// notification, before the next operation's result is processed.
func TestOperationsQueue(t *testing.T) {
	gw := new(MockGateway)
	gw.On("SignInWithPassword", mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.AuthGrant{Identity: domain.Identity{ID: "user1"}, AccessToken: "tok"}, nil).
		After(20 * time.Millisecond)
	repo := new(MockProfileRepo)
	repo.On("GetByID", mock.Anything, "user1").Return(farmerProfile(), nil)

	store := newTestStore(gw, repo)

	var mu sync.Mutex
	inFlight := 0
	maxInFlight := 0
	store.Subscribe(func(domain.Session) {
		mu.Lock()
		inFlight++
		if inFlight > maxInFlight {
			maxInFlight = inFlight
		}
		mu.Unlock()

		time.Sleep(5 * time.Millisecond)

		mu.Lock()
		inFlight--
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.SignIn(context.Background(), "ram@x.in", "pw")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxInFlight, "transitions must not overlap")
	assert.Equal(t, domain.SessionAuthenticated, store.Current().State)
}
