package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/accountsapi/accounts-service/internal/api/handler"
	"github.com/accountsapi/accounts-service/internal/core/ports"
	"github.com/accountsapi/accounts-service/internal/core/service"
	"github.com/accountsapi/accounts-service/internal/testutil"
)

const testSecret = "test-secret"

type testServer struct {
	e     *echo.Echo
	store *testutil.MemStore
	users ports.UserService
}

func newTestServer(t *testing.T, checks map[string]handler.DependencyCheck) *testServer {
	t.Helper()
	log := zerolog.Nop()
	store := testutil.NewMemStore()
	users := service.NewUserService(store, store, nil, log)
	auth := service.NewAuthService(store, testSecret, time.Hour, time.Hour, log)

	reg := prometheus.NewRegistry()
	e := NewRouter(Dependencies{
		UserService: users,
		AuthService: auth,
		JWTSecret:   testSecret,
		Logger:      log,
		Checks:      checks,
		Registerer:  reg,
		Gatherer:    reg,
	})
	return &testServer{e: e, store: store, users: users}
}

func (s *testServer) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) signIn(t *testing.T, username, password string) (access, refresh string) {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/auth/sign-in", `{"username":"`+username+`","password":"`+password+`"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("sign in %s: expected 200, got %d: %s", username, rec.Code, rec.Body.String())
	}
	var resp struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp.Access, resp.Refresh
}

type listBody struct {
	TotalUser string `json:"total_user"`
	Users     []struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
		Nickname string `json:"nickname"`
		UserRole *struct {
			ID          *int64 `json:"id"`
			Name        string `json:"name"`
			Description string `json:"description"`
		} `json:"user_role"`
	} `json:"users"`
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) listBody {
	t.Helper()
	var body listBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return body
}

func TestRouter_RegisterAndListBusiness(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/user/create_user",
		`{"username":"biz1","nickname":"B","password":"pw","user_role":"business"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var created map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	role, ok := created["user_role"].(map[string]any)
	if !ok || role["name"] != "Business" || role["description"] != "Business User Account" {
		t.Fatalf("unexpected created user: %+v", created)
	}
	if _, leaked := created["password"]; leaked {
		t.Fatal("password must not be serialised")
	}

	access, _ := s.signIn(t, "biz1", "pw")

	rec = s.do(t, http.MethodGet, "/user?user_type=business", "", access)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeList(t, rec)
	if body.TotalUser != "Total business users: 1" {
		t.Errorf("unexpected total: %q", body.TotalUser)
	}
	if len(body.Users) != 1 || body.Users[0].Username != "biz1" {
		t.Fatalf("unexpected users: %+v", body.Users)
	}
	if body.Users[0].UserRole == nil || body.Users[0].UserRole.Name != "Business" {
		t.Fatalf("unexpected role: %+v", body.Users[0].UserRole)
	}
}

func TestRouter_ListAllIncludesSuperuser(t *testing.T) {
	s := newTestServer(t, nil)

	if err := s.users.EnsureAdmin(context.Background(), "root", "toor"); err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	s.do(t, http.MethodPost, "/user/create_user", `{"username":"cli1","password":"pw","user_role":"client"}`, "")

	access, _ := s.signIn(t, "root", "toor")

	for _, path := range []string{"/user", "/user?user_type=all", "/user?user_type=unknown"} {
		rec := s.do(t, http.MethodGet, path, "", access)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
		body := decodeList(t, rec)
		if body.TotalUser != "Total users[Business/Client]: 2" {
			t.Errorf("%s: unexpected total %q", path, body.TotalUser)
		}
		if len(body.Users) != 2 {
			t.Fatalf("%s: expected 2 users, got %d", path, len(body.Users))
		}
		admin := body.Users[0]
		if admin.Username != "root" || admin.UserRole == nil {
			t.Fatalf("%s: expected root first with synthetic role, got %+v", path, admin)
		}
		if admin.UserRole.ID != nil || admin.UserRole.Name != "Superuser" || admin.UserRole.Description != "Superuser Account" {
			t.Errorf("%s: unexpected superuser role: %+v", path, admin.UserRole)
		}
	}

	// id must be serialised as JSON null, not omitted.
	rec := s.do(t, http.MethodGet, "/user", "", access)
	if !strings.Contains(rec.Body.String(), `"id":null`) {
		t.Errorf("expected null role id in %s", rec.Body.String())
	}
}

func TestRouter_Register_InvalidRole(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/user/create_user", `{"username":"v","password":"pw","user_role":"vendor"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if len(s.store.Users()) != 0 || len(s.store.Roles()) != 0 {
		t.Fatal("invalid role must not persist anything")
	}
}

func TestRouter_Register_ValidationFailure(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/user/create_user", `{"nickname":"this nickname is far too long","user_role":"client"}`, "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !strings.Contains(resp.Error, "username is required") || !strings.Contains(resp.Error, "nickname must be at most 20") {
		t.Errorf("unexpected message: %q", resp.Error)
	}
}

func TestRouter_Register_InvalidPayload(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/user/create_user", `not-json`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRouter_Register_Duplicate(t *testing.T) {
	s := newTestServer(t, nil)

	body := `{"username":"dup","password":"pw","user_role":"client"}`
	if rec := s.do(t, http.MethodPost, "/user/create_user", body, ""); rec.Code != http.StatusOK {
		t.Fatalf("first register: expected 200, got %d", rec.Code)
	}
	if rec := s.do(t, http.MethodPost, "/user/create_user", body, ""); rec.Code != http.StatusConflict {
		t.Fatalf("second register: expected 409, got %d", rec.Code)
	}
}

func TestRouter_List_RequiresAccessToken(t *testing.T) {
	s := newTestServer(t, nil)
	s.do(t, http.MethodPost, "/user/create_user", `{"username":"cli1","password":"pw","user_role":"client"}`, "")

	if rec := s.do(t, http.MethodGet, "/user", "", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: expected 401, got %d", rec.Code)
	}

	_, refresh := s.signIn(t, "cli1", "pw")
	if rec := s.do(t, http.MethodGet, "/user", "", refresh); rec.Code != http.StatusUnauthorized {
		t.Fatalf("refresh token: expected 401, got %d", rec.Code)
	}
}

func TestRouter_SignIn_InvalidCredentials(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/auth/sign-in", `{"username":"ghost","password":"pw"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRouter_TokenRefresh(t *testing.T) {
	s := newTestServer(t, nil)
	s.do(t, http.MethodPost, "/user/create_user", `{"username":"cli1","password":"pw","user_role":"client"}`, "")
	_, refresh := s.signIn(t, "cli1", "pw")

	rec := s.do(t, http.MethodPost, "/auth/token-refresh", `{"refresh":"`+refresh+`"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Access string `json:"access"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Access == "" {
		t.Fatalf("expected access token, got %s", rec.Body.String())
	}

	if rec := s.do(t, http.MethodGet, "/user?user_type=client", "", resp.Access); rec.Code != http.StatusOK {
		t.Fatalf("refreshed access token rejected: %d", rec.Code)
	}

	if rec := s.do(t, http.MethodPost, "/auth/token-refresh", `{"refresh":"garbage"}`, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("garbage refresh: expected 401, got %d", rec.Code)
	}
}

func TestRouter_Health(t *testing.T) {
	s := newTestServer(t, map[string]handler.DependencyCheck{
		"mongodb": func(context.Context) error { return nil },
	})

	if rec := s.do(t, http.MethodGet, "/health", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("liveness: expected 200, got %d", rec.Code)
	}
	if rec := s.do(t, http.MethodGet, "/health/ready", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("readiness: expected 200, got %d", rec.Code)
	}
}

func TestRouter_ReadinessDegraded(t *testing.T) {
	s := newTestServer(t, map[string]handler.DependencyCheck{
		"mongodb": func(context.Context) error { return nil },
		"redis":   func(context.Context) error { return errors.New("connection refused") },
	})

	rec := s.do(t, http.MethodGet, "/health/ready", "", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	var resp struct {
		Status       string                       `json:"status"`
		Dependencies map[string]map[string]string `json:"dependencies"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Status != "degraded" || resp.Dependencies["redis"]["status"] != "unhealthy" || resp.Dependencies["mongodb"]["status"] != "ok" {
		t.Fatalf("unexpected readiness body: %+v", resp)
	}
}

func TestRouter_Metrics(t *testing.T) {
	s := newTestServer(t, nil)
	s.do(t, http.MethodGet, "/health", "", "")

	rec := s.do(t, http.MethodGet, "/metrics", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "requests_total") {
		t.Errorf("expected request metrics in exposition")
	}
}
