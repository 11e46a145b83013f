// Package storage is the relational Record Store backend, SQLite behind
// database/sql with schema owned by embedded migrations.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"disciplina/internal/core"
	"disciplina/internal/store"
)

type SQLiteRepository struct {
	db *sql.DB
}

var _ store.Store = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := migrateSchema(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) CreateHabit(ctx context.Context, h core.Habit) error {
	if err := h.Validate(); err != nil {
		return err
	}
	createdAt := h.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO habits (id, name, description, category, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			category = excluded.category,
			active = excluded.active`,
		h.ID, h.Name, h.Description, h.Category, boolToInt(h.Active), createdAt)
	if err != nil {
		return fmt.Errorf("create habit: %w", err)
	}

	slog.DebugContext(ctx, "Habit saved", "id", h.ID, "name", h.Name)
	return nil
}

func (r *SQLiteRepository) GetHabit(ctx context.Context, id string) (core.Habit, bool, error) {
	var (
		h      core.Habit
		active int
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, category, active, created_at
		FROM habits WHERE id = ?`, id).
		Scan(&h.ID, &h.Name, &h.Description, &h.Category, &active, &h.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Habit{}, false, nil
	}
	if err != nil {
		return core.Habit{}, false, fmt.Errorf("get habit: %w", err)
	}
	h.Active = active != 0
	return h, true, nil
}

func (r *SQLiteRepository) ListHabits(ctx context.Context, activeOnly bool) ([]core.Habit, error) {
	query := `SELECT id, name, description, category, active, created_at FROM habits`
	if activeOnly {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	defer rows.Close()

	var out []core.Habit
	for rows.Next() {
		var (
			h      core.Habit
			active int
		)
		if err := rows.Scan(&h.ID, &h.Name, &h.Description, &h.Category, &active, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan habit: %w", err)
		}
		h.Active = active != 0
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) DeactivateHabit(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE habits SET active = 0 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deactivate habit: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) UpsertCompletion(ctx context.Context, c core.HabitCompletion) error {
	if err := c.Validate(); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO habit_completions (habit_id, day, completed)
		VALUES (?, ?, ?)
		ON CONFLICT(habit_id, day) DO UPDATE SET completed = excluded.completed`,
		c.HabitID, string(c.Day), boolToInt(c.Completed))
	if err != nil {
		return fmt.Errorf("upsert completion: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListHabitCompletions(ctx context.Context, habitID string) ([]core.HabitCompletion, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT habit_id, day, completed FROM habit_completions
		WHERE habit_id = ? ORDER BY day`, habitID)
	if err != nil {
		return nil, fmt.Errorf("list habit completions: %w", err)
	}
	defer rows.Close()
	return scanCompletions(rows)
}

func (r *SQLiteRepository) ListCompletionsInRange(ctx context.Context, from, to core.Day) ([]core.HabitCompletion, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT habit_id, day, completed FROM habit_completions
		WHERE day >= ? AND day <= ? ORDER BY day, habit_id`,
		string(from), string(to))
	if err != nil {
		return nil, fmt.Errorf("list completions in range: %w", err)
	}
	defer rows.Close()
	return scanCompletions(rows)
}

func scanCompletions(rows *sql.Rows) ([]core.HabitCompletion, error) {
	var out []core.HabitCompletion
	for rows.Next() {
		var (
			c         core.HabitCompletion
			day       string
			completed int
		)
		if err := rows.Scan(&c.HabitID, &day, &completed); err != nil {
			return nil, fmt.Errorf("scan completion: %w", err)
		}
		c.Day = core.Day(day)
		c.Completed = completed != 0
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) UpsertCheckIn(ctx context.Context, c core.CheckIn) error {
	if err := c.Validate(); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO checkins (day, mood) VALUES (?, ?)
		ON CONFLICT(day) DO UPDATE SET mood = excluded.mood`,
		string(c.Day), string(c.Mood))
	if err != nil {
		return fmt.Errorf("upsert checkin: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetCheckIn(ctx context.Context, day core.Day) (core.CheckIn, bool, error) {
	var mood string
	err := r.db.QueryRowContext(ctx, `SELECT mood FROM checkins WHERE day = ?`, string(day)).Scan(&mood)
	if errors.Is(err, sql.ErrNoRows) {
		return core.CheckIn{}, false, nil
	}
	if err != nil {
		return core.CheckIn{}, false, fmt.Errorf("get checkin: %w", err)
	}
	return core.CheckIn{Day: day, Mood: core.Mood(mood)}, true, nil
}

func (r *SQLiteRepository) UpsertEntry(ctx context.Context, e core.JournalEntry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO journal_entries (day, content) VALUES (?, ?)
		ON CONFLICT(day) DO UPDATE SET content = excluded.content`,
		string(e.Day), e.Content)
	if err != nil {
		return fmt.Errorf("upsert journal entry: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetEntry(ctx context.Context, day core.Day) (core.JournalEntry, bool, error) {
	var content string
	err := r.db.QueryRowContext(ctx, `SELECT content FROM journal_entries WHERE day = ?`, string(day)).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return core.JournalEntry{}, false, nil
	}
	if err != nil {
		return core.JournalEntry{}, false, fmt.Errorf("get journal entry: %w", err)
	}
	return core.JournalEntry{Day: day, Content: content}, true, nil
}

func (r *SQLiteRepository) SaveTrade(ctx context.Context, t core.TradeReview) error {
	if err := t.Validate(); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO trade_reviews
			(id, day, instrument, side, entry_price, exit_price, pnl, tags,
			 emotional_state, setup, mistakes, lessons, rating, synced)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0)
		ON CONFLICT(id) DO UPDATE SET
			day = excluded.day,
			instrument = excluded.instrument,
			side = excluded.side,
			entry_price = excluded.entry_price,
			exit_price = excluded.exit_price,
			pnl = excluded.pnl,
			tags = excluded.tags,
			emotional_state = excluded.emotional_state,
			setup = excluded.setup,
			mistakes = excluded.mistakes,
			lessons = excluded.lessons,
			rating = excluded.rating,
			synced = 0`,
		t.ID, string(t.Day), t.Instrument, string(t.Side), t.EntryPrice, t.ExitPrice,
		t.PnL, joinTags(t.Tags), t.EmotionalState, t.Setup, t.Mistakes, t.Lessons, t.Rating)
	if err != nil {
		return fmt.Errorf("save trade: %w", err)
	}

	slog.DebugContext(ctx, "Trade review saved", "id", t.ID, "day", t.Day, "instrument", t.Instrument)
	return nil
}

const tradeColumns = `id, day, instrument, side, entry_price, exit_price, pnl, tags,
	emotional_state, setup, mistakes, lessons, rating`

func (r *SQLiteRepository) GetTrade(ctx context.Context, id string) (core.TradeReview, bool, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+tradeColumns+` FROM trade_reviews WHERE id = ?`, id)
	t, err := scanTrade(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.TradeReview{}, false, nil
	}
	if err != nil {
		return core.TradeReview{}, false, fmt.Errorf("get trade: %w", err)
	}
	return t, true, nil
}

func (r *SQLiteRepository) ListTradesInRange(ctx context.Context, from, to core.Day) ([]core.TradeReview, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+tradeColumns+` FROM trade_reviews
		WHERE day >= ? AND day <= ? ORDER BY day, id`,
		string(from), string(to))
	if err != nil {
		return nil, fmt.Errorf("list trades in range: %w", err)
	}
	defer rows.Close()

	var out []core.TradeReview
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("scan trade: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrade(row rowScanner) (core.TradeReview, error) {
	var (
		t    core.TradeReview
		day  string
		side string
		tags string
	)
	err := row.Scan(&t.ID, &day, &t.Instrument, &side, &t.EntryPrice, &t.ExitPrice,
		&t.PnL, &tags, &t.EmotionalState, &t.Setup, &t.Mistakes, &t.Lessons, &t.Rating)
	if err != nil {
		return core.TradeReview{}, err
	}
	t.Day = core.Day(day)
	t.Side = core.TradeSide(side)
	t.Tags = splitTags(tags)
	return t, nil
}

func (r *SQLiteRepository) SaveGoal(ctx context.Context, g core.Goal) error {
	if err := g.Validate(); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO goals (id, title, description, target, current, unit, deadline, category, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			target = excluded.target,
			current = excluded.current,
			unit = excluded.unit,
			deadline = excluded.deadline,
			category = excluded.category,
			active = excluded.active`,
		g.ID, g.Title, g.Description, g.Target, g.Current, g.Unit, string(g.Deadline), g.Category, boolToInt(g.Active))
	if err != nil {
		return fmt.Errorf("save goal: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetGoal(ctx context.Context, id string) (core.Goal, bool, error) {
	var (
		g        core.Goal
		deadline string
		active   int
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, title, description, target, current, unit, deadline, category, active
		FROM goals WHERE id = ?`, id).
		Scan(&g.ID, &g.Title, &g.Description, &g.Target, &g.Current, &g.Unit, &deadline, &g.Category, &active)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Goal{}, false, nil
	}
	if err != nil {
		return core.Goal{}, false, fmt.Errorf("get goal: %w", err)
	}
	g.Deadline = core.Day(deadline)
	g.Active = active != 0
	return g, true, nil
}

func (r *SQLiteRepository) ListGoals(ctx context.Context, activeOnly bool) ([]core.Goal, error) {
	query := `SELECT id, title, description, target, current, unit, deadline, category, active FROM goals`
	if activeOnly {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var out []core.Goal
	for rows.Next() {
		var (
			g        core.Goal
			deadline string
			active   int
		)
		if err := rows.Scan(&g.ID, &g.Title, &g.Description, &g.Target, &g.Current, &g.Unit, &deadline, &g.Category, &active); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		g.Deadline = core.Day(deadline)
		g.Active = active != 0
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) DeactivateGoal(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE goals SET active = 0 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deactivate goal: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) UpsertRiskMetrics(ctx context.Context, m core.RiskMetrics) error {
	if err := m.Validate(); err != nil {
		return err
	}
	// Field merge: an empty incoming value keeps the stored one.
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO risk_metrics (day, account_balance, drawdown, daily_risk, position_size, risk_reward)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(day) DO UPDATE SET
			account_balance = COALESCE(NULLIF(excluded.account_balance, ''), account_balance),
			drawdown = COALESCE(NULLIF(excluded.drawdown, ''), drawdown),
			daily_risk = COALESCE(NULLIF(excluded.daily_risk, ''), daily_risk),
			position_size = COALESCE(NULLIF(excluded.position_size, ''), position_size),
			risk_reward = COALESCE(NULLIF(excluded.risk_reward, ''), risk_reward)`,
		string(m.Day), m.AccountBalance, m.Drawdown, m.DailyRisk, m.PositionSize, m.RiskReward)
	if err != nil {
		return fmt.Errorf("upsert risk metrics: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetRiskMetrics(ctx context.Context, day core.Day) (core.RiskMetrics, bool, error) {
	m := core.RiskMetrics{Day: day}
	err := r.db.QueryRowContext(ctx, `
		SELECT account_balance, drawdown, daily_risk, position_size, risk_reward
		FROM risk_metrics WHERE day = ?`, string(day)).
		Scan(&m.AccountBalance, &m.Drawdown, &m.DailyRisk, &m.PositionSize, &m.RiskReward)
	if errors.Is(err, sql.ErrNoRows) {
		return core.RiskMetrics{}, false, nil
	}
	if err != nil {
		return core.RiskMetrics{}, false, fmt.Errorf("get risk metrics: %w", err)
	}
	return m, true, nil
}

// ListUnsyncedTradeIDs returns trades awaiting export, oldest day first.
// Used by the sync worker's periodic reconciliation pass.
func (r *SQLiteRepository) ListUnsyncedTradeIDs(ctx context.Context, limit int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id FROM trade_reviews WHERE synced = 0 ORDER BY day, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list unsynced trades: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan trade id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// MarkTradeSynced records that the trade reached the trading log.
func (r *SQLiteRepository) MarkTradeSynced(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE trade_reviews SET synced = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark trade synced: %w", err)
	}
	slog.DebugContext(ctx, "Trade marked as synced", "id", id)
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
