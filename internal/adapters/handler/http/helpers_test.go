package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-habit-ledger/internal/adapters/notes"
	"github.com/comitanigiacomo/kanso-habit-ledger/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-habit-ledger/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habit-ledger/internal/core/services"
)

var testNow = time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

type testApp struct {
	repo  *repository.InMemoryHabitRepository
	notes *notes.MemoryResolver
	habit *services.HabitService
	stats *services.StatsService
	nav   *services.NavigationService
}

func newTestApp() *testApp {
	gin.SetMode(gin.TestMode)

	repo := repository.NewInMemoryHabitRepository()
	resolver := notes.NewMemoryResolver()
	settings := domain.DefaultDateSettings()
	builder := services.NewLedgerBuilder(resolver,
		services.WithClock(func() time.Time { return testNow }),
		services.WithLocation(time.UTC),
	)

	return &testApp{
		repo:  repo,
		notes: resolver,
		habit: services.NewHabitService(repo),
		stats: services.NewStatsService(repo, builder, settings),
		nav:   services.NewNavigationService(resolver, settings),
	}
}

func (a *testApp) track(t *testing.T, inputs ...services.TrackHabitInput) {
	t.Helper()
	for _, in := range inputs {
		_, err := a.habit.Track(context.Background(), in)
		require.NoError(t, err)
	}
}

func perform(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, path, nil)
	} else {
		req, _ = http.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func ptr[T any](v T) *T { return &v }
