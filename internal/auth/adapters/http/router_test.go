package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	authhttp "authgate/internal/auth/adapters/http"
	"authgate/internal/auth/adapters/http/middleware"
	"authgate/internal/auth/adapters/services"
	"authgate/internal/auth/app"
	"authgate/internal/auth/config"
	"authgate/internal/auth/domain/entities"
)

type memoryUsers struct {
	mu    sync.Mutex
	users []*entities.User
}

func (r *memoryUsers) Create(_ context.Context, user *entities.User) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, entities.ErrUsernameTaken
		}
		if u.Email == user.Email {
			return nil, entities.ErrEmailTaken
		}
	}

	created := *user
	created.ID = uuid.NewString()
	created.CreatedAt = time.Now().UTC()
	created.UpdatedAt = created.CreatedAt
	r.users = append(r.users, &created)
	return &created, nil
}

func (r *memoryUsers) find(match func(*entities.User) bool) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if match(u) {
			found := *u
			return &found, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

func (r *memoryUsers) FindByID(_ context.Context, id string) (*entities.User, error) {
	return r.find(func(u *entities.User) bool { return u.ID == id })
}

func (r *memoryUsers) FindByUsername(_ context.Context, username string) (*entities.User, error) {
	return r.find(func(u *entities.User) bool { return u.Username == username })
}

func (r *memoryUsers) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	return r.find(func(u *entities.User) bool { return u.Email == email })
}

func (r *memoryUsers) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

type memoryProfiles struct {
	profiles map[string]*entities.Profile
}

func (r *memoryProfiles) FindByUserID(_ context.Context, userID string) (*entities.Profile, error) {
	return r.profiles[userID], nil
}

type pinger struct {
	err error
}

func (p pinger) Ping(context.Context) error { return p.err }

type testServer struct {
	app      *fiber.App
	users    *memoryUsers
	profiles *memoryProfiles
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	users := &memoryUsers{}
	profiles := &memoryProfiles{profiles: map[string]*entities.Profile{}}
	factory := services.NewServiceFactory("test-secret", time.Hour, bcrypt.MinCost)

	fiberApp := fiber.New()
	authhttp.SetupRouter(fiberApp, authhttp.Dependencies{
		AuthUseCase:  app.NewAuthUseCase(users, factory.PasswordService(), factory.TokenService()),
		UserUseCase:  app.NewUserUseCase(users, profiles),
		TokenService: factory.TokenService(),
		DB:           pinger{},
		CORS:         config.CORSConfig{AllowOrigins: []string{"*"}},
	})

	return &testServer{app: fiberApp, users: users, profiles: profiles}
}

type response struct {
	status int
	header http.Header
	body   map[string]any
}

func (s *testServer) do(t *testing.T, method, path, body string, headers map[string]string) response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	decoded := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), string(raw))
	}

	return response{status: resp.StatusCode, header: resp.Header, body: decoded}
}

func (s *testServer) post(t *testing.T, path, body string) response {
	t.Helper()
	return s.do(t, http.MethodPost, path, body, nil)
}

func TestSignup_Success(t *testing.T) {
	s := newTestServer(t)

	resp := s.post(t, "/api/signup", `{"username":" alice ","email":" A@B.com ","password":"password1"}`)

	require.Equal(t, http.StatusCreated, resp.status)
	assert.Equal(t, "Account created successfully.", resp.body["message"])
	assert.NotEmpty(t, resp.body["token"])

	user, ok := resp.body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "a@b.com", user["email"])
	assert.NotEmpty(t, user["id"])
	assert.NotEmpty(t, user["created_at"])
	assert.NotContains(t, user, "password_hash")
	assert.NotContains(t, user, "password")
}

func TestSignup_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"empty body", ``, "Username is required."},
		{"malformed json", `{"username":`, "Username is required."},
		{"array body", `["alice"]`, "Username is required."},
		{"whitespace username", `{"username":"   ","email":"a@b.com","password":"password1"}`, "Username is required."},
		{"non-string username", `{"username":123,"email":"a@b.com","password":"password1"}`, "Username is required."},
		{"short username", `{"username":"al","email":"a@b.com","password":"password1"}`, "Username must be at least 3 characters."},
		{"missing email", `{"username":"alice","password":"password1"}`, "A valid email is required."},
		{"email without at", `{"username":"alice","email":"ab.com","password":"password1"}`, "A valid email is required."},
		{"missing password", `{"username":"alice","email":"a@b.com"}`, "Password is required."},
		{"short password", `{"username":"alice","email":"a@b.com","password":"1234567"}`, "Password must be at least 8 characters."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)

			resp := s.post(t, "/api/signup", tt.body)

			assert.Equal(t, http.StatusBadRequest, resp.status)
			assert.Equal(t, tt.message, resp.body["message"])
			assert.Zero(t, s.users.count())
		})
	}
}

func TestSignup_Conflicts(t *testing.T) {
	s := newTestServer(t)

	require.Equal(t, http.StatusCreated, s.post(t, "/api/signup", `{"username":"alice","email":"a@b.com","password":"password1"}`).status)

	resp := s.post(t, "/api/signup", `{"username":"alice","email":"other@b.com","password":"password1"}`)
	assert.Equal(t, http.StatusConflict, resp.status)
	assert.Equal(t, "Username already taken.", resp.body["message"])

	resp = s.post(t, "/api/signup", `{"username":"bob","email":"A@B.COM","password":"password1"}`)
	assert.Equal(t, http.StatusConflict, resp.status)
	assert.Equal(t, "Email already registered.", resp.body["message"])

	assert.Equal(t, 1, s.users.count())
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusCreated, s.post(t, "/api/signup", `{"username":"alice","email":"a@b.com","password":"password1"}`).status)

	tests := []struct {
		name    string
		body    string
		status  int
		message string
	}{
		{"by username", `{"username":"alice","password":"password1"}`, http.StatusOK, "Logged in successfully."},
		{"by email", `{"email":"a@b.com","password":"password1"}`, http.StatusOK, "Logged in successfully."},
		{"email in username field", `{"username":"A@B.com","password":"password1"}`, http.StatusOK, "Logged in successfully."},
		{"username wins over email", `{"username":"alice","email":"nobody@b.com","password":"password1"}`, http.StatusOK, "Logged in successfully."},
		{"missing identifier", `{"password":"password1"}`, http.StatusBadRequest, "Username or email is required."},
		{"whitespace username hides email", `{"username":"   ","email":"a@b.com","password":"password1"}`, http.StatusBadRequest, "Username or email is required."},
		{"missing password", `{"username":"alice"}`, http.StatusBadRequest, "Password is required."},
		{"malformed body", `not json`, http.StatusBadRequest, "Username or email is required."},
		{"wrong password", `{"username":"alice","password":"password2"}`, http.StatusUnauthorized, "Invalid credentials."},
		{"unknown user", `{"username":"mallory","password":"password1"}`, http.StatusUnauthorized, "Invalid credentials."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := s.post(t, "/api/login", tt.body)

			assert.Equal(t, tt.status, resp.status)
			assert.Equal(t, tt.message, resp.body["message"])
			if tt.status == http.StatusOK {
				assert.NotEmpty(t, resp.body["token"])
				user := resp.body["user"].(map[string]any)
				assert.Equal(t, "alice", user["username"])
			} else {
				assert.NotContains(t, resp.body, "token")
			}
		})
	}
}

func TestMe(t *testing.T) {
	s := newTestServer(t)
	signup := s.post(t, "/api/signup", `{"username":"alice","email":"a@b.com","password":"password1"}`)
	require.Equal(t, http.StatusCreated, signup.status)
	token := signup.body["token"].(string)
	userID := signup.body["user"].(map[string]any)["id"].(string)

	t.Run("without profile", func(t *testing.T) {
		resp := s.do(t, http.MethodGet, "/api/me", "", map[string]string{"Authorization": "Bearer " + token})

		require.Equal(t, http.StatusOK, resp.status)
		assert.Equal(t, userID, resp.body["user"].(map[string]any)["id"])
		profile := resp.body["profile"].(map[string]any)
		assert.Nil(t, profile["bio"])
		assert.NotContains(t, profile, "id")
	})

	t.Run("with profile", func(t *testing.T) {
		bio := "hello"
		s.profiles.profiles[userID] = &entities.Profile{ID: "p-1", UserID: userID, Bio: &bio, CreatedAt: time.Now()}

		resp := s.do(t, http.MethodGet, "/api/me", "", map[string]string{"Authorization": "Bearer " + token})

		require.Equal(t, http.StatusOK, resp.status)
		profile := resp.body["profile"].(map[string]any)
		assert.Equal(t, "p-1", profile["id"])
		assert.Equal(t, "hello", profile["bio"])
	})

	t.Run("missing token", func(t *testing.T) {
		resp := s.do(t, http.MethodGet, "/api/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.status)
		assert.Equal(t, middleware.MessageAuthRequired, resp.body["message"])
	})

	t.Run("wrong scheme", func(t *testing.T) {
		resp := s.do(t, http.MethodGet, "/api/me", "", map[string]string{"Authorization": "Basic " + token})
		assert.Equal(t, http.StatusUnauthorized, resp.status)
	})

	t.Run("invalid token", func(t *testing.T) {
		resp := s.do(t, http.MethodGet, "/api/me", "", map[string]string{"Authorization": "Bearer not-a-token"})
		assert.Equal(t, http.StatusUnauthorized, resp.status)
		assert.Equal(t, middleware.MessageInvalidToken, resp.body["message"])
	})

	t.Run("token of unknown user", func(t *testing.T) {
		other, _, err := services.NewJWT("test-secret", time.Hour).GenerateAccessToken(context.Background(), uuid.NewString())
		require.NoError(t, err)

		resp := s.do(t, http.MethodGet, "/api/me", "", map[string]string{"Authorization": "Bearer " + other})
		assert.Equal(t, http.StatusNotFound, resp.status)
		assert.Equal(t, "User not found.", resp.body["message"])
	})
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.status)
	assert.Equal(t, "ok", resp.body["status"])

	down := fiber.New()
	authhttp.SetupRouter(down, authhttp.Dependencies{DB: pinger{err: errors.New("connection refused")}})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	httpResp, err := down.Test(req)
	require.NoError(t, err)
	defer httpResp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, httpResp.StatusCode)
}

func TestNotFoundAndRequestID(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodGet, "/api/unknown", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.status)
	assert.Equal(t, authhttp.MessageRouteNotFound, resp.body["message"])
	assert.NotEmpty(t, resp.header.Get(middleware.HeaderRequestID))

	resp = s.do(t, http.MethodGet, "/nowhere", "", map[string]string{middleware.HeaderRequestID: "req-42"})
	assert.Equal(t, http.StatusNotFound, resp.status)
	assert.Equal(t, "req-42", resp.header.Get(middleware.HeaderRequestID))
}

func TestCORS(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodPost, "/api/login", `{}`, map[string]string{"Origin": "http://localhost:3000"})
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.Equal(t, "*", resp.header.Get("Access-Control-Allow-Origin"))

	req := httptest.NewRequest(http.MethodOptions, "/api/signup", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	preflight, err := s.app.Test(req)
	require.NoError(t, err)
	defer preflight.Body.Close()
	assert.Equal(t, http.StatusNoContent, preflight.StatusCode)
	assert.Equal(t, "*", preflight.Header.Get("Access-Control-Allow-Origin"))
}

func TestSignupAndLogin_LongCredentials(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
	}{
		{"100 byte password", "alice", strings.Repeat("p", 100)},
		{"80 byte multibyte password", "bob", strings.Repeat("é", 40)},
		{"300 rune username", strings.Repeat("u", 300), "password1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)

			body, err := json.Marshal(map[string]string{
				"username": tt.username,
				"email":    tt.username + "@example.com",
				"password": tt.password,
			})
			require.NoError(t, err)

			signup := s.post(t, "/api/signup", string(body))
			require.Equal(t, http.StatusCreated, signup.status, signup.body)

			login, err := json.Marshal(map[string]string{"username": tt.username, "password": tt.password})
			require.NoError(t, err)

			resp := s.post(t, "/api/login", string(login))
			assert.Equal(t, http.StatusOK, resp.status)
			assert.Equal(t, "Logged in successfully.", resp.body["message"])
		})
	}
}
