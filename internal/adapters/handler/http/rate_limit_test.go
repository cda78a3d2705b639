package http_test

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-habit-ledger/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/kanso-habit-ledger/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-habit-ledger/internal/core/services"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func limitedRouter(t *testing.T, rdb *redis.Client, limit int) *gin.Engine {
	t.Helper()
	app := newTestApp()
	app.track(t, services.TrackHabitInput{PropertyName: "sleep", Widget: "number", Target: ptr(8.0)})

	return adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		HabitHandler:      adapterHTTP.NewHabitHandler(app.habit),
		StatsHandler:      adapterHTTP.NewStatsHandler(app.stats, "week"),
		NavigationHandler: adapterHTTP.NewNavigationHandler(app.nav),
		Redis:             rdb,
		RateLimit:         limit,
		StartTime:         time.Now(),
	})
}

func ledgerFrom(router http.Handler, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ledger?span=week", nil)
	req.RemoteAddr = ip + ":40000"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimit_RedisDown(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	var logs bytes.Buffer
	log.SetOutput(&logs)
	defer log.SetOutput(os.Stderr)

	router := limitedRouter(t, rdb, 1)

	for i := 0; i < 3; i++ {
		w := ledgerFrom(router, "198.51.100.4")
		assert.Equal(t, http.StatusOK, w.Code, "limiter must fail open")
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	}
	assert.Contains(t, logs.String(), "[RATE] Redis error, limiter skipped")
}

func TestRateLimit_Integration(t *testing.T) {
	_ = godotenv.Load("../../../../.env")

	rdb, err := cache.NewRedisClient(
		envOr("REDIS_HOST", "localhost"),
		envOr("REDIS_PORT", "6379"),
		envOr("REDIS_PASSWORD", "secret_redis_pass_local"),
		1,
	)
	if err != nil {
		t.Skipf("Skipping Redis integration test: %v", err)
	}
	defer rdb.Close()

	ctx := context.Background()

	t.Run("Success: Ledger requests under the limit", func(t *testing.T) {
		require.NoError(t, rdb.FlushDB(ctx).Err())
		router := limitedRouter(t, rdb, 3)

		for want := 2; want >= 0; want-- {
			w := ledgerFrom(router, "192.0.2.10")
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
			assert.Equal(t, strconv.Itoa(want), w.Header().Get("X-RateLimit-Remaining"))
		}

		ttl, err := rdb.TTL(ctx, "ledger:rate_limit:192.0.2.10").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, time.Minute)
	})

	t.Run("Fail: 429 once the window is spent", func(t *testing.T) {
		require.NoError(t, rdb.FlushDB(ctx).Err())
		router := limitedRouter(t, rdb, 2)

		ledgerFrom(router, "192.0.2.11")
		ledgerFrom(router, "192.0.2.11")
		w := ledgerFrom(router, "192.0.2.11")

		require.Equal(t, http.StatusTooManyRequests, w.Code)
		body := decode[map[string]any](t, w)
		assert.Equal(t, "too many requests", body["error"])
		retry, ok := body["retry_in_s"].(float64)
		require.True(t, ok)
		assert.Greater(t, retry, 0.0)
		assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

		count, err := rdb.Get(ctx, "ledger:rate_limit:192.0.2.11").Int()
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("Success: Clients are counted apart", func(t *testing.T) {
		require.NoError(t, rdb.FlushDB(ctx).Err())
		router := limitedRouter(t, rdb, 1)

		assert.Equal(t, http.StatusOK, ledgerFrom(router, "192.0.2.20").Code)
		assert.Equal(t, http.StatusTooManyRequests, ledgerFrom(router, "192.0.2.20").Code)
		assert.Equal(t, http.StatusOK, ledgerFrom(router, "192.0.2.21").Code)
	})
}
