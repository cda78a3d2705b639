package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/comitanigiacomo/kanso-habit-ledger/internal/core/domain"
)

var _ domain.HabitRepository = (*SQLHabitRepository)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS tracked_habits (
    property_name VARCHAR(100) PRIMARY KEY,
    display_name  VARCHAR(100) NOT NULL,
    widget        VARCHAR(16)  NOT NULL,
    target        DOUBLE PRECISION,
    is_total      BOOLEAN      NOT NULL DEFAULT FALSE,
    sort_order    INTEGER      NOT NULL,
    ignored       BOOLEAN      NOT NULL DEFAULT FALSE
)`

const selectColumns = `property_name, display_name, widget, target, is_total, sort_order, ignored`

// SQLHabitRepository stores the tracked set in Postgres or SQLite. Queries
// are written with '?' and rebound for the connected driver.
type SQLHabitRepository struct {
	db *sqlx.DB
}

func NewSQLHabitRepository(db *sqlx.DB) *SQLHabitRepository {
	return &SQLHabitRepository{db: db}
}

func (r *SQLHabitRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

type habitRow struct {
	PropertyName string          `db:"property_name"`
	DisplayName  string          `db:"display_name"`
	Widget       string          `db:"widget"`
	Target       sql.NullFloat64 `db:"target"`
	IsTotal      bool            `db:"is_total"`
	SortOrder    int             `db:"sort_order"`
	Ignored      bool            `db:"ignored"`
}

func toRow(h *domain.HabitConfig) habitRow {
	row := habitRow{
		PropertyName: h.PropertyName,
		DisplayName:  h.DisplayName,
		Widget:       string(h.Widget),
		IsTotal:      h.IsTotal,
		SortOrder:    h.Order,
		Ignored:      h.Ignored,
	}
	if h.Target != nil {
		row.Target = sql.NullFloat64{Float64: *h.Target, Valid: true}
	}
	return row
}

func (row habitRow) toDomain() *domain.HabitConfig {
	h := &domain.HabitConfig{
		PropertyName: row.PropertyName,
		DisplayName:  row.DisplayName,
		Widget:       domain.Widget(row.Widget),
		IsTotal:      row.IsTotal,
		Order:        row.SortOrder,
		Ignored:      row.Ignored,
	}
	if row.Target.Valid {
		t := row.Target.Float64
		h.Target = &t
	}
	return h
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}

	return false
}

func (r *SQLHabitRepository) Create(ctx context.Context, h *domain.HabitConfig) error {
	query := `
        INSERT INTO tracked_habits (
            property_name, display_name, widget, target, is_total, sort_order, ignored
        ) VALUES (
            :property_name, :display_name, :widget, :target, :is_total, :sort_order, :ignored
        )`

	_, err := r.db.NamedExecContext(ctx, query, toRow(h))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrHabitAlreadyTracked
		}
		return fmt.Errorf("failed to insert habit: %w", err)
	}

	return nil
}

func (r *SQLHabitRepository) GetByProperty(ctx context.Context, property string) (*domain.HabitConfig, error) {
	query := r.db.Rebind(`SELECT ` + selectColumns + ` FROM tracked_habits WHERE property_name = ?`)

	var row habitRow
	if err := r.db.GetContext(ctx, &row, query, property); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHabitNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}

	return row.toDomain(), nil
}

func (r *SQLHabitRepository) List(ctx context.Context) ([]*domain.HabitConfig, error) {
	query := `SELECT ` + selectColumns + ` FROM tracked_habits ORDER BY sort_order ASC, property_name ASC`

	var rows []habitRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	habits := make([]*domain.HabitConfig, 0, len(rows))
	for _, row := range rows {
		habits = append(habits, row.toDomain())
	}

	return habits, nil
}

func (r *SQLHabitRepository) Update(ctx context.Context, h *domain.HabitConfig) error {
	query := `
        UPDATE tracked_habits SET
            display_name = :display_name, widget = :widget, target = :target,
            is_total = :is_total, sort_order = :sort_order, ignored = :ignored
        WHERE property_name = :property_name`

	res, err := r.db.NamedExecContext(ctx, query, toRow(h))
	if err != nil {
		return fmt.Errorf("update query failed: %w", err)
	}

	return expectAffected(res)
}

func (r *SQLHabitRepository) Delete(ctx context.Context, property string) error {
	query := r.db.Rebind(`DELETE FROM tracked_habits WHERE property_name = ?`)

	res, err := r.db.ExecContext(ctx, query, property)
	if err != nil {
		return fmt.Errorf("delete query failed: %w", err)
	}

	return expectAffected(res)
}

func (r *SQLHabitRepository) SaveOrder(ctx context.Context, habits []*domain.HabitConfig) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := tx.Rebind(`UPDATE tracked_habits SET sort_order = ? WHERE property_name = ?`)
	for _, h := range habits {
		res, err := tx.ExecContext(ctx, query, h.Order, h.PropertyName)
		if err != nil {
			return fmt.Errorf("reorder query failed: %w", err)
		}
		if err := expectAffected(res); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}
	return nil
}

func expectAffected(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrHabitNotFound
	}
	return nil
}
