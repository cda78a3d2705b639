package repository

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-habit-ledger/internal/core/domain"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func setupSQLite(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := Connect(DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, NewSQLHabitRepository(db).EnsureSchema(context.Background()))
	return db
}

func setupPostgres(t *testing.T) *sqlx.DB {
	t.Helper()
	dsn := PostgresDSN(
		getEnv("DB_USER", "kanso_user"),
		getEnv("DB_PASSWORD", "secret"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "kanso_db"),
	)

	db, err := Connect(DriverPostgres, dsn)
	if err != nil {
		t.Skipf("Skipping integration tests: database connection failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := NewSQLHabitRepository(db)
	require.NoError(t, repo.EnsureSchema(context.Background()))

	cleanup := func() {
		_, err := db.Exec("TRUNCATE TABLE tracked_habits")
		require.NoError(t, err, "Failed to clean up tracked habits")
	}
	cleanup()
	t.Cleanup(cleanup)

	return db
}

func newHabit(t *testing.T, property string, widget domain.Widget, target *float64, order int) *domain.HabitConfig {
	t.Helper()
	h, err := domain.NewHabitConfig(property, "", widget, target, false)
	require.NoError(t, err)
	h.ChangePosition(order)
	return h
}

// runRepositoryContract exercises the behaviour every HabitRepository must
// share, whatever the storage.
func runRepositoryContract(t *testing.T, newRepo func(t *testing.T) domain.HabitRepository) {
	ctx := context.Background()
	eight := 8.0

	t.Run("Create and Get", func(t *testing.T) {
		repo := newRepo(t)
		h := newHabit(t, "sleep", domain.WidgetNumber, &eight, 0)
		h.IsTotal = true
		h.DisplayName = "Hours of sleep"

		require.NoError(t, repo.Create(ctx, h))

		got, err := repo.GetByProperty(ctx, "sleep")
		require.NoError(t, err)
		assert.Equal(t, h, got)
	})

	t.Run("Create without target", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Create(ctx, newHabit(t, "meditate", domain.WidgetCheckbox, nil, 0)))

		got, err := repo.GetByProperty(ctx, "meditate")
		require.NoError(t, err)
		assert.Nil(t, got.Target)
		assert.False(t, got.Ignored)
	})

	t.Run("Duplicate property", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Create(ctx, newHabit(t, "read", domain.WidgetCheckbox, nil, 0)))

		err := repo.Create(ctx, newHabit(t, "read", domain.WidgetCheckbox, nil, 1))
		assert.ErrorIs(t, err, domain.ErrHabitAlreadyTracked)
	})

	t.Run("Get unknown", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.GetByProperty(ctx, "ghost")
		assert.ErrorIs(t, err, domain.ErrHabitNotFound)
	})

	t.Run("List is sorted by order and includes ignored", func(t *testing.T) {
		repo := newRepo(t)
		c := newHabit(t, "c", domain.WidgetCheckbox, nil, 0)
		a := newHabit(t, "a", domain.WidgetCheckbox, nil, 2)
		b := newHabit(t, "b", domain.WidgetCheckbox, nil, 1)
		b.Ignored = true
		for _, h := range []*domain.HabitConfig{a, b, c} {
			require.NoError(t, repo.Create(ctx, h))
		}

		list, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "c", list[0].PropertyName)
		assert.Equal(t, "b", list[1].PropertyName)
		assert.True(t, list[1].Ignored)
		assert.Equal(t, "a", list[2].PropertyName)
	})

	t.Run("Empty list", func(t *testing.T) {
		repo := newRepo(t)
		list, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("Update", func(t *testing.T) {
		repo := newRepo(t)
		h := newHabit(t, "pages", domain.WidgetNumber, &eight, 0)
		require.NoError(t, repo.Create(ctx, h))

		require.NoError(t, h.Update("Pages", domain.WidgetMultitext, nil, false))
		h.Ignored = true
		require.NoError(t, repo.Update(ctx, h))

		got, err := repo.GetByProperty(ctx, "pages")
		require.NoError(t, err)
		assert.Equal(t, "Pages", got.DisplayName)
		assert.Equal(t, domain.WidgetMultitext, got.Widget)
		assert.Nil(t, got.Target)
		assert.True(t, got.Ignored)

		err = repo.Update(ctx, newHabit(t, "ghost", domain.WidgetCheckbox, nil, 0))
		assert.ErrorIs(t, err, domain.ErrHabitNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Create(ctx, newHabit(t, "read", domain.WidgetCheckbox, nil, 0)))

		require.NoError(t, repo.Delete(ctx, "read"))
		_, err := repo.GetByProperty(ctx, "read")
		assert.ErrorIs(t, err, domain.ErrHabitNotFound)

		assert.ErrorIs(t, repo.Delete(ctx, "read"), domain.ErrHabitNotFound)
	})

	t.Run("SaveOrder", func(t *testing.T) {
		repo := newRepo(t)
		a := newHabit(t, "a", domain.WidgetCheckbox, nil, 0)
		b := newHabit(t, "b", domain.WidgetCheckbox, nil, 1)
		require.NoError(t, repo.Create(ctx, a))
		require.NoError(t, repo.Create(ctx, b))

		a.ChangePosition(1)
		b.ChangePosition(0)
		require.NoError(t, repo.SaveOrder(ctx, []*domain.HabitConfig{a, b}))

		list, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, "b", list[0].PropertyName)
		assert.Equal(t, "a", list[1].PropertyName)
	})

	t.Run("SaveOrder with unknown habit changes nothing", func(t *testing.T) {
		repo := newRepo(t)
		a := newHabit(t, "a", domain.WidgetCheckbox, nil, 0)
		require.NoError(t, repo.Create(ctx, a))

		a.ChangePosition(5)
		ghost := newHabit(t, "ghost", domain.WidgetCheckbox, nil, 0)
		err := repo.SaveOrder(ctx, []*domain.HabitConfig{a, ghost})
		assert.ErrorIs(t, err, domain.ErrHabitNotFound)

		got, err := repo.GetByProperty(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, 0, got.Order)
	})
}

func TestInMemoryHabitRepository(t *testing.T) {
	runRepositoryContract(t, func(t *testing.T) domain.HabitRepository {
		return NewInMemoryHabitRepository()
	})

	t.Run("Stored habits are not shared", func(t *testing.T) {
		repo := NewInMemoryHabitRepository()
		ctx := context.Background()
		h := newHabit(t, "read", domain.WidgetCheckbox, nil, 0)
		require.NoError(t, repo.Create(ctx, h))

		h.DisplayName = "changed outside"
		got, err := repo.GetByProperty(ctx, "read")
		require.NoError(t, err)
		assert.Equal(t, "read", got.DisplayName)
	})

	t.Run("Concurrent access", func(t *testing.T) {
		repo := NewInMemoryHabitRepository()
		ctx := context.Background()
		require.NoError(t, repo.Create(ctx, newHabit(t, "read", domain.WidgetCheckbox, nil, 0)))

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = repo.List(ctx)
				_, _ = repo.GetByProperty(ctx, "read")
			}()
		}
		wg.Wait()
	})
}

func TestSQLHabitRepository_SQLite(t *testing.T) {
	runRepositoryContract(t, func(t *testing.T) domain.HabitRepository {
		return NewSQLHabitRepository(setupSQLite(t))
	})

	t.Run("EnsureSchema is idempotent", func(t *testing.T) {
		db := setupSQLite(t)
		assert.NoError(t, NewSQLHabitRepository(db).EnsureSchema(context.Background()))
	})
}

func TestSQLHabitRepository_Postgres_Integration(t *testing.T) {
	db := setupPostgres(t)

	runRepositoryContract(t, func(t *testing.T) domain.HabitRepository {
		_, err := db.Exec("TRUNCATE TABLE tracked_habits")
		require.NoError(t, err)
		return NewSQLHabitRepository(db)
	})
}
