package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/ems-dash/apiserver/internal/services"
	"github.com/ems-dash/apiserver/internal/store"
	"github.com/ems-dash/apiserver/types"
	"github.com/go-chi/chi/v5"
)

var testSecret = []byte("test-secret")

var errTest = errors.New("connection refused")

type stubUserRepo struct {
	user types.User
	err  error
}

func (s stubUserRepo) GetByCredentials(ctx context.Context, userName, password string) (types.User, error) {
	if s.err != nil {
		return types.User{}, s.err
	}
	if userName == s.user.UserName && password == s.user.Password {
		return s.user, nil
	}
	return types.User{}, store.ErrNotFound
}

// failingUserRepo flags any store access as a test failure. Used to assert
// that validation rejects requests before touching the store.
type failingUserRepo struct {
	t *testing.T
}

func (s failingUserRepo) GetByCredentials(ctx context.Context, userName, password string) (types.User, error) {
	s.t.Errorf("store accessed for user %q; validation should have rejected first", userName)
	return types.User{}, store.ErrNotFound
}

type stubReportRepo struct {
	rows     []types.Report
	pingRows []types.Report
	err      error
}

func (s stubReportRepo) ListByReadingDate(ctx context.Context, order store.Order) ([]types.Report, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.rows, nil
}

func (s stubReportRepo) Ping(ctx context.Context) ([]types.Report, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.pingRows, nil
}

// newTestRouter wires the handlers the same way the server package does,
// with stub repositories in place of Postgres.
func newTestRouter(users services.UserRepository, reports services.ReportRepository) *chi.Mux {
	session := SessionConfig{Secret: testSecret}
	authHandler := NewAuthHandler(services.NewUserService(users), session)
	reportHandler := NewReportHandler(services.NewReportService(reports))

	router := chi.NewRouter()
	router.Get("/ping", reportHandler.Ping)
	router.Route("/api", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.Get("/check-auth", authHandler.CheckAuth)
		r.Get("/get-data-meter-wise", reportHandler.MeterWise)
		r.With(RequireSession(session)).Get("/ems-dashboard/data", reportHandler.Dashboard)
	})
	return router
}

func testUser() types.User {
	return types.User{UserID: 7, UserName: "alice", Password: "pw123", Role: "admin"}
}

func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}

func authCookie(r *http.Response) *http.Cookie {
	for _, c := range r.Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	return nil
}
