package domain

import "context"

// SessionState is the lifecycle of the current sign-in:
// Loading -> Unauthenticated <-> Authenticated.
type SessionState string

const (
	SessionLoading         SessionState = "loading"
	SessionUnauthenticated SessionState = "unauthenticated"
	SessionAuthenticated   SessionState = "authenticated"
)

// Identity is the authentication record issued by Supabase.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is an immutable snapshot of the session store. Identity and Profile
// are only set when State is SessionAuthenticated.
type Session struct {
	State    SessionState `json:"state"`
	Identity *Identity    `json:"identity,omitempty"`
	Profile  *Profile     `json:"profile,omitempty"`
}

func (s Session) Authenticated() bool {
	return s.State == SessionAuthenticated
}

// AuthGrant is what the auth backend hands out on successful sign-in/sign-up.
type AuthGrant struct {
	Identity    Identity
	AccessToken string
}

// AuthGateway abstracts the hosted auth service (Supabase GoTrue).
// Credential checks, token issuance and session revocation all live there.
type AuthGateway interface {
	SignInWithPassword(ctx context.Context, email, password string) (*AuthGrant, error)
	SignUp(ctx context.Context, email, password string, metadata map[string]interface{}) (*AuthGrant, error)
	SignOut(ctx context.Context, accessToken string) error
	GetUser(ctx context.Context, accessToken string) (*Identity, error)
}
