package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"Ampere/internal/repo"

	"github.com/golang-jwt/jwt/v5"
)

type mockUserStore struct {
	users map[string]mockUser
	next  int
}

type mockUser struct {
	id   int
	hash string
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: map[string]mockUser{}}
}

func (m *mockUserStore) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	if _, exists := m.users[login]; exists {
		return 0, errors.New("duplicate login")
	}
	m.next++
	m.users[login] = mockUser{id: m.next, hash: password}
	return m.next, nil
}

func (m *mockUserStore) GetByLogin(ctx context.Context, login string) (int, string, error) {
	u, ok := m.users[login]
	if !ok {
		return 0, "", repo.ErrNotFound
	}
	return u.id, u.hash, nil
}

func newTestEnv() *Authenv {
	return &Authenv{JWTkey: []byte("test-key"), Repo: newMockUserStore()}
}

func do(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == cookieName {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv()

	rec := do(env.RegisterHandler, `{"login":"ivan","email":"ivan@example.com","password":"secret1"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body = %s", rec.Code, rec.Body)
	}
	sessionCookie(t, rec)

	if rec := do(env.RegisterHandler, `{"login":"ivan","email":"x@example.com","password":"secret1"}`); rec.Code != http.StatusConflict {
		t.Errorf("duplicate register status = %d", rec.Code)
	}

	rec = do(env.AuthHandler, `{"login":"ivan","password":"secret1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d", rec.Code)
	}
	s, err := env.parseToken(sessionCookie(t, rec).Value)
	if err != nil || s.UserID != 1 || s.Login != "ivan" {
		t.Errorf("session = %+v, err = %v", s, err)
	}

	if rec := do(env.AuthHandler, `{"login":"ivan","password":"wrong!"}`); rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong password status = %d", rec.Code)
	}
	if rec := do(env.AuthHandler, `{"login":"nobody","password":"secret1"}`); rec.Code != http.StatusUnauthorized {
		t.Errorf("unknown login status = %d", rec.Code)
	}
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv()
	tests := map[string]string{
		"bad json":       `{`,
		"missing email":  `{"login":"a","password":"secret1"}`,
		"short password": `{"login":"a","email":"a@b.c","password":"123"}`,
	}
	for name, body := range tests {
		if rec := do(env.RegisterHandler, body); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", name, rec.Code)
		}
	}
}

func TestAuthMiddleware(t *testing.T) {
	env := newTestEnv()
	var gotID int
	protected := env.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	serve := func(cookie *http.Cookie) int {
		req := httptest.NewRequest(http.MethodGet, "/api/user/projects", nil)
		if cookie != nil {
			req.AddCookie(cookie)
		}
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		return rec.Code
	}

	valid, err := env.issueToken(Session{UserID: 7, Login: "olga"}, time.Now())
	if err != nil {
		t.Fatalf("issueToken: %v", err)
	}
	if code := serve(&http.Cookie{Name: cookieName, Value: valid}); code != http.StatusOK || gotID != 7 {
		t.Errorf("valid token: status = %d, user = %d", code, gotID)
	}

	if code := serve(nil); code != http.StatusUnauthorized {
		t.Errorf("no cookie: status = %d", code)
	}

	other := &Authenv{JWTkey: []byte("other-key")}
	forged, _ := other.issueToken(Session{UserID: 7, Login: "olga"}, time.Now())
	if code := serve(&http.Cookie{Name: cookieName, Value: forged}); code != http.StatusUnauthorized {
		t.Errorf("forged token: status = %d", code)
	}

	expired, _ := env.issueToken(Session{UserID: 7, Login: "olga"}, time.Now().Add(-2*sessionTTL))
	if code := serve(&http.Cookie{Name: cookieName, Value: expired}); code != http.StatusUnauthorized {
		t.Errorf("expired token: status = %d", code)
	}

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{claimUserID: 7, claimLogin: "olga"})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if code := serve(&http.Cookie{Name: cookieName, Value: unsigned}); code != http.StatusUnauthorized {
		t.Errorf("unsigned token: status = %d", code)
	}
}

func TestUserIDWithoutSession(t *testing.T) {
	if _, ok := UserID(context.Background()); ok {
		t.Error("UserID reported a user for an empty context")
	}
}

func TestLogout(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestEnv().LogoutHandler(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	c := sessionCookie(t, rec)
	if c.MaxAge >= 0 {
		t.Errorf("cookie not expired: %+v", c)
	}
}

func TestLimitMiddleware(t *testing.T) {
	limiter := NewIPRateLimiter(0.001, 2)
	h := limiter.LimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	codes := []int{}
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v", codes)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:5000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("other IP throttled: %d", rec.Code)
	}
}

func TestLimiterSweep(t *testing.T) {
	limiter := NewIPRateLimiter(1, 1)
	start := time.Now()
	limiter.allow("10.0.0.1", start)
	limiter.allow("10.0.0.2", start.Add(9*time.Minute))

	if n := limiter.Sweep(5*time.Minute, start.Add(10*time.Minute)); n != 1 {
		t.Errorf("swept %d, want 1", n)
	}
	if _, ok := limiter.visitors["10.0.0.2"]; !ok {
		t.Error("recent visitor was swept")
	}
	// A forgotten IP starts with a full bucket again.
	if !limiter.allow("10.0.0.1", start.Add(10*time.Minute)) {
		t.Error("swept IP still throttled")
	}
}
