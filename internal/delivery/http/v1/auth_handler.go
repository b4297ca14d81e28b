package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/BhupenderNayak/krishi-unnati-app/internal/delivery/http/response"
	"github.com/BhupenderNayak/krishi-unnati-app/internal/domain"
	"github.com/BhupenderNayak/krishi-unnati-app/internal/gateway/supabase"
	"github.com/BhupenderNayak/krishi-unnati-app/internal/i18n"
	"github.com/BhupenderNayak/krishi-unnati-app/internal/session"
	"github.com/BhupenderNayak/krishi-unnati-app/internal/view"
	"github.com/BhupenderNayak/krishi-unnati-app/pkg/apperror"
	"github.com/BhupenderNayak/krishi-unnati-app/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AuthHandler fronts the session lifecycle. Each request gets its own session
// store: the store models one client's session, and HTTP is stateless, so a
// store lives exactly as long as the request that needs it.
type AuthHandler struct {
	gateway  domain.AuthGateway
	profiles domain.ProfileRepository
}

func NewAuthHandler(public *gin.RouterGroup, protected *gin.RouterGroup, gateway domain.AuthGateway, profiles domain.ProfileRepository) {
	handler := &AuthHandler{gateway: gateway, profiles: profiles}

	publicAuth := public.Group("/auth")
	{
		publicAuth.POST("/login", handler.Login)
		publicAuth.POST("/register", handler.Register)
		publicAuth.GET("/session", handler.Session)
	}

	protectedAuth := protected.Group("/auth")
	{
		protectedAuth.POST("/logout", handler.Logout)
		protectedAuth.GET("/me", handler.Me)
	}
}

func (h *AuthHandler) newStore() *session.Store {
	return session.NewStore(h.gateway, h.profiles, logger.Log)
}

// sessionPayload is what the client needs to boot its UI after any
// session-changing call.
type sessionPayload struct {
	Stage        view.Stage           `json:"stage"`
	State        domain.SessionState  `json:"state"`
	Identity     *domain.Identity     `json:"identity,omitempty"`
	Profile      *domain.Profile      `json:"profile,omitempty"`
	Locale       domain.Language      `json:"locale"`
	Destinations []domain.Destination `json:"destinations"`
	AccessToken  string               `json:"access_token,omitempty"`
}

func buildSessionPayload(sess domain.Session, token string) sessionPayload {
	return sessionPayload{
		Stage:        view.StageFor(sess),
		State:        sess.State,
		Identity:     sess.Identity,
		Profile:      sess.Profile,
		Locale:       i18n.LocaleFor(sess),
		Destinations: domain.VisibleDestinations(sess.Profile),
		AccessToken:  token,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"required,min=2,max=120"`
	Role     string `json:"role" binding:"omitempty,oneof=farmer admin"`
}

// Login godoc
// @Summary      Sign in with email and password
// @Description  Verifies credentials with Supabase and returns the session snapshot.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login  body      LoginRequest  true  "Credentials"
// @Success      200    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	store := h.newStore()
	sess, err := store.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.authError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", buildSessionPayload(sess, store.Token()))
}

// Register godoc
// @Summary      Sign up a new farmer account
// @Description  Creates the Supabase identity; the profile row follows via trigger.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        register  body      RegisterRequest  true  "Registration details"
// @Success      201    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	role := domain.RoleFarmer
	if req.Role == string(domain.RoleAdmin) {
		role = domain.RoleAdmin
	}

	store := h.newStore()
	sess, err := store.SignUp(c.Request.Context(), req.Email, req.Password, req.FullName, role)
	if err != nil {
		if errors.Is(err, session.ErrProfileNotReady) {
			// Identity exists; the client retries login once the trigger lands.
			response.Success(c, http.StatusAccepted, "Account created, please sign in", nil)
			return
		}
		h.authError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Registration successful", buildSessionPayload(sess, store.Token()))
}

// Session godoc
// @Summary      Restore the session from a stored token
// @Description  Resolves the startup session. Invalid or missing tokens come back unauthenticated, never an error.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")

	store := h.newStore()
	sess := store.Initialize(c.Request.Context(), token)

	response.Success(c, http.StatusOK, "Session resolved", buildSessionPayload(sess, store.Token()))
}

// Logout godoc
// @Summary      Sign out
// @Description  Revokes the Supabase session best-effort; always succeeds locally.
// @Tags         auth
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")

	store := h.newStore()
	store.Initialize(c.Request.Context(), token)
	sess := store.SignOut(c.Request.Context())

	response.Success(c, http.StatusOK, "Logged out", buildSessionPayload(sess, ""))
}

// Me godoc
// @Summary      Current user's profile
// @Tags         auth
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, _ := c.Get(string(domain.KeyUserID))
	id, _ := userID.(string)

	profile, err := h.profiles.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	if profile == nil {
		c.Error(apperror.NotFound("Profile not found"))
		return
	}

	response.Success(c, http.StatusOK, "Profile fetched", profile)
}

// authError maps gateway failures onto the envelope, keeping the GoTrue
// message intact so the login form can show it.
func (h *AuthHandler) authError(c *gin.Context, err error) {
	var authErr *supabase.AuthError
	if errors.As(err, &authErr) {
		code := http.StatusUnauthorized
		if authErr.Status >= 400 && authErr.Status < 500 {
			code = authErr.Status
		}
		c.Error(apperror.New(code, authErr.Message, err))
		return
	}
	c.Error(apperror.Internal(err))
}
