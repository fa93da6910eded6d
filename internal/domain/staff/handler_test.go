package staff

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clinica/clinica/internal/platform/auth"
)

func setupHandler(t *testing.T) (*Handler, *Service) {
	t.Helper()
	svc := NewService(newMockRepo())
	sessions := auth.NewSessions("test-secret", time.Hour)
	return NewHandler(svc, sessions), svc
}

func postJSON(e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandlerRegister(t *testing.T) {
	h, _ := setupHandler(t)
	e := echo.New()

	c, rec := postJSON(e, "/auth/register",
		`{"name":"Ana Perez","email":"ana@clinica.test","password":"s3cret","role":"admin"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "s3cret") {
		t.Errorf("response leaks the password: %s", rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "password_hash") {
		t.Errorf("response leaks the hash: %s", rec.Body.String())
	}
}

func TestHandlerRegister_MissingCredentials(t *testing.T) {
	h, _ := setupHandler(t)
	e := echo.New()

	c, _ := postJSON(e, "/auth/register", `{"name":"Ana"}`)
	err := h.Register(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandlerLogin(t *testing.T) {
	h, svc := setupHandler(t)
	e := echo.New()

	if _, err := svc.Register(context.Background(), "Ana", "ana@clinica.test", "s3cret", "admin"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c, rec := postJSON(e, "/auth/login", `{"email":"ana@clinica.test","password":"s3cret"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Token string `json:"token"`
		User  *User  `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Token == "" {
		t.Errorf("expected a session token")
	}
	if resp.User == nil || resp.User.Email != "ana@clinica.test" {
		t.Errorf("unexpected user in response: %v", resp.User)
	}
}

func TestHandlerLogin_BadCredentials(t *testing.T) {
	h, svc := setupHandler(t)
	e := echo.New()

	if _, err := svc.Register(context.Background(), "Ana", "ana@clinica.test", "s3cret", "admin"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, body := range []string{
		`{"email":"ana@clinica.test","password":"wrong"}`,
		`{"email":"nadie@clinica.test","password":"s3cret"}`,
	} {
		c, _ := postJSON(e, "/auth/login", body)
		err := h.Login(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusUnauthorized {
			t.Errorf("body %s: expected 401, got %v", body, err)
		}
	}
}

func TestHandlerMe(t *testing.T) {
	h, svc := setupHandler(t)
	e := echo.New()

	u, err := svc.Register(context.Background(), "Ana", "ana@clinica.test", "s3cret", "admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	ctx := context.WithValue(req.Context(), auth.StaffIDKey, u.ID)
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Me(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got User
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("expected the session's user, got %v", got)
	}
}
