package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/secondchance/apiserver/internal/auth"
	"github.com/secondchance/apiserver/internal/services"
	"go.uber.org/zap"
)

// AuthTokenHeader carries the identity token on guarded requests.
const AuthTokenHeader = "x-auth-token"

// AuthHandler provides registration, login and current-user endpoints.
type AuthHandler struct {
	userService *services.UserService
	logger      *zap.SugaredLogger
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(userService *services.UserService, logger *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{userService: userService, logger: logger}
}

// AuthRouter registers auth routes on the given router.
func AuthRouter(r chi.Router, userService *services.UserService, tokens *auth.TokenService, logger *zap.SugaredLogger) {
	handler := NewAuthHandler(userService, logger)

	r.Post("/register", handler.Register)
	r.Post("/login", handler.Login)
	r.With(RequireAuth(tokens)).Get("/user", handler.CurrentUser)
}

// RequireAuth extracts and verifies the token header and injects the
// resolved user id into the request context. Missing, malformed, expired
// and badly signed tokens all produce the same generic 401; the specific
// failure is never leaked to the client.
func RequireAuth(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimSpace(r.Header.Get(AuthTokenHeader))
			if token == "" {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			userID, err := tokens.Verify(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			ctx := context.WithValue(r.Context(), contextUserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse carries the minted token back to a new user.
type RegisterResponse struct {
	AuthToken string `json:"authtoken"`
	Email     string `json:"email"`
}

// LoginResponse additionally echoes the profile fields.
type LoginResponse struct {
	AuthToken string `json:"authtoken"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Register creates a new account and returns an auth token.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	token, err := h.userService.Register(r.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		h.logger.Errorw("registration failed", "email", req.Email, "error", err)
		writeServiceError(w, err)
		return
	}

	h.logger.Infow("user registered", "email", req.Email)
	writeJSON(w, http.StatusCreated, RegisterResponse{AuthToken: token, Email: req.Email})
}

// Login verifies credentials and returns an auth token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	token, user, err := h.userService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Warnw("login failed", "email", req.Email)
		writeServiceError(w, err)
		return
	}

	h.logger.Infow("user logged in", "email", user.Email)
	writeJSON(w, http.StatusOK, LoginResponse{
		AuthToken: token,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
}

// CurrentUser returns the authenticated user's record, without the
// password hash.
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		h.logger.Warnw("current user lookup failed", "user_id", userID, "error", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
