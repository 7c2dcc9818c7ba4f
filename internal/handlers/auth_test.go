package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/secondchance/apiserver/internal/auth"
	"github.com/secondchance/apiserver/internal/services"
	"github.com/secondchance/apiserver/internal/store"
	"github.com/secondchance/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

const testJWTSecret = "handler-test-secret"

type fakeUserRepo struct {
	byEmail map[string]types.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]types.User)}
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (types.User, error) {
	for _, user := range r.byEmail {
		if user.ID.Hex() == id {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (types.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user types.User) (types.User, error) {
	if _, exists := r.byEmail[user.Email]; exists {
		return types.User{}, store.ErrDuplicateEmail
	}
	user.ID = bson.NewObjectID()
	user.CreatedAt = time.Now()
	r.byEmail[user.Email] = user
	return user, nil
}

func newAuthTestRouter(repo *fakeUserRepo) (chi.Router, *auth.TokenService) {
	tokens := auth.NewTokenService(testJWTSecret, time.Hour)
	userService := services.NewUserService(repo, tokens)

	r := chi.NewRouter()
	AuthRouter(r, userService, tokens, zap.NewNop().Sugar())
	return r, tokens
}

func doJSON(t *testing.T, router chi.Router, method, path string, body any, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for key, value := range header {
		req.Header.Set(key, value)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRegister(t *testing.T) {
	router, tokens := newAuthTestRouter(newFakeUserRepo())

	rec := doJSON(t, router, http.MethodPost, "/register", RegisterRequest{
		Email:     "kim@example.com",
		Password:  "pa55word",
		FirstName: "Kim",
		LastName:  "Lee",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp RegisterResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "kim@example.com", resp.Email)

	userID, err := tokens.Verify(resp.AuthToken)
	require.NoError(t, err)
	assert.NotEmpty(t, userID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router, _ := newAuthTestRouter(newFakeUserRepo())

	req := RegisterRequest{Email: "kim@example.com", Password: "pa55word"}
	rec := doJSON(t, router, http.MethodPost, "/register", req, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/register", req, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "email id already exists", resp.Error)
}

func TestRegisterMissingFields(t *testing.T) {
	router, _ := newAuthTestRouter(newFakeUserRepo())

	for _, tc := range []struct {
		name string
		req  RegisterRequest
	}{
		{"missing email", RegisterRequest{Password: "pa55word"}},
		{"missing password", RegisterRequest{Email: "kim@example.com"}},
		{"blank email", RegisterRequest{Email: "   ", Password: "pa55word"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/register", tc.req, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "email and password are required", resp.Error)
		})
	}
}

func TestLogin(t *testing.T) {
	router, _ := newAuthTestRouter(newFakeUserRepo())

	rec := doJSON(t, router, http.MethodPost, "/register", RegisterRequest{
		Email:     "kim@example.com",
		Password:  "pa55word",
		FirstName: "Kim",
		LastName:  "Lee",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/login", LoginRequest{
		Email:    "kim@example.com",
		Password: "pa55word",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AuthToken)
	assert.Equal(t, "Kim", resp.FirstName)
	assert.Equal(t, "Lee", resp.LastName)
}

func TestLoginFailureBodiesAreIdentical(t *testing.T) {
	router, _ := newAuthTestRouter(newFakeUserRepo())

	rec := doJSON(t, router, http.MethodPost, "/register", RegisterRequest{
		Email:    "kim@example.com",
		Password: "pa55word",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	unknown := doJSON(t, router, http.MethodPost, "/login", LoginRequest{
		Email:    "nobody@example.com",
		Password: "pa55word",
	}, nil)
	wrong := doJSON(t, router, http.MethodPost, "/login", LoginRequest{
		Email:    "kim@example.com",
		Password: "wrong",
	}, nil)

	assert.Equal(t, http.StatusBadRequest, unknown.Code)
	assert.Equal(t, http.StatusBadRequest, wrong.Code)
	assert.Equal(t, unknown.Body.String(), wrong.Body.String())
}

func TestCurrentUser(t *testing.T) {
	repo := newFakeUserRepo()
	router, _ := newAuthTestRouter(repo)

	rec := doJSON(t, router, http.MethodPost, "/register", RegisterRequest{
		Email:     "kim@example.com",
		Password:  "pa55word",
		FirstName: "Kim",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var registered RegisterResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))

	rec = doJSON(t, router, http.MethodGet, "/user", nil, map[string]string{
		AuthTokenHeader: registered.AuthToken,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var profile map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, "kim@example.com", profile["email"])
	assert.Equal(t, "Kim", profile["firstName"])
	assert.NotContains(t, profile, "password")
	assert.NotContains(t, profile, "passwordHash")
}

func TestCurrentUserGoneAfterRemoval(t *testing.T) {
	repo := newFakeUserRepo()
	router, _ := newAuthTestRouter(repo)

	rec := doJSON(t, router, http.MethodPost, "/register", RegisterRequest{
		Email:    "kim@example.com",
		Password: "pa55word",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var registered RegisterResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))

	delete(repo.byEmail, "kim@example.com")

	rec = doJSON(t, router, http.MethodGet, "/user", nil, map[string]string{
		AuthTokenHeader: registered.AuthToken,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRequireAuthRejections(t *testing.T) {
	router, _ := newAuthTestRouter(newFakeUserRepo())

	expired := issueExpiredToken(t)
	otherKey, err := auth.NewTokenService("some-other-secret", time.Hour).Issue("user-1")
	require.NoError(t, err)

	for _, tc := range []struct {
		name   string
		header map[string]string
	}{
		{"missing token", nil},
		{"blank token", map[string]string{AuthTokenHeader: "   "}},
		{"garbage token", map[string]string{AuthTokenHeader: "not-a-jwt"}},
		{"expired token", map[string]string{AuthTokenHeader: expired}},
		{"wrong signing key", map[string]string{AuthTokenHeader: otherKey}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodGet, "/user", nil, tc.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "authentication required", resp.Error)
		})
	}
}

// issueExpiredToken signs a claim set that expired an hour ago with the
// test secret, bypassing TokenService which never issues expired tokens.
func issueExpiredToken(t *testing.T) string {
	t.Helper()

	claims := jwt.RegisteredClaims{
		Subject:   "user-1",
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	require.True(t, strings.Count(signed, ".") == 2)
	return signed
}
