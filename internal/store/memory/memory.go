// Package memory is the map-backed Record Store, used for local runs and
// tests. All state lives behind one mutex; concurrent upserts to the same
// key are last-writer-wins.
package memory

import (
	"context"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"disciplina/internal/core"
	"disciplina/internal/store"
)

type completionKey struct {
	habitID string
	day     core.Day
}

type Memory struct {
	mu          sync.Mutex
	habits      map[string]core.Habit
	habitOrder  []string
	completions map[completionKey]core.HabitCompletion
	checkins    map[core.Day]core.CheckIn
	journal     map[core.Day]core.JournalEntry
	trades      map[string]core.TradeReview
	tradeOrder  []string
	goals       map[string]core.Goal
	goalOrder   []string
	risk        map[core.Day]core.RiskMetrics
}

var _ store.Store = (*Memory)(nil)

func New() *Memory {
	return &Memory{
		habits:      make(map[string]core.Habit),
		completions: make(map[completionKey]core.HabitCompletion),
		checkins:    make(map[core.Day]core.CheckIn),
		journal:     make(map[core.Day]core.JournalEntry),
		trades:      make(map[string]core.TradeReview),
		goals:       make(map[string]core.Goal),
		risk:        make(map[core.Day]core.RiskMetrics),
	}
}

// seedHabit is one entry of the YAML seed file.
type seedHabit struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
}

// defaultSeed mirrors the habits the sqlite migration seeds.
var defaultSeed = []seedHabit{
	{ID: "habit-premarket", Name: "Pre-market plan written", Category: "preparation"},
	{ID: "habit-journal", Name: "Journal every trade", Category: "review"},
	{ID: "habit-risk", Name: "Risk under 1% per trade", Category: "risk"},
	{ID: "habit-no-revenge", Name: "No revenge trading", Category: "discipline"},
}

// NewFromSeedFile builds a store pre-populated with habits from a YAML file.
// A missing or malformed file falls back to the built-in default set.
func NewFromSeedFile(path string) *Memory {
	m := New()
	seeds := defaultSeed
	if path != "" {
		if raw, err := os.ReadFile(path); err == nil {
			var fromFile []seedHabit
			if err := yaml.Unmarshal(raw, &fromFile); err != nil || len(fromFile) == 0 {
				slog.Warn("Seed file unusable, using default habits", "path", path, "error", err)
			} else {
				seeds = fromFile
			}
		}
	}
	now := time.Now().UTC()
	for _, s := range seeds {
		if s.ID == "" || s.Name == "" {
			continue
		}
		_ = m.CreateHabit(context.Background(), core.Habit{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
			Category:    s.Category,
			Active:      true,
			CreatedAt:   now,
		})
	}
	return m
}

func (m *Memory) CreateHabit(_ context.Context, h core.Habit) error {
	if err := h.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.habits[h.ID]; !exists {
		m.habitOrder = append(m.habitOrder, h.ID)
	}
	m.habits[h.ID] = h
	return nil
}

func (m *Memory) GetHabit(_ context.Context, id string) (core.Habit, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.habits[id]
	return h, ok, nil
}

func (m *Memory) ListHabits(_ context.Context, activeOnly bool) ([]core.Habit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]core.Habit, 0, len(m.habitOrder))
	for _, id := range m.habitOrder {
		h := m.habits[id]
		if activeOnly && !h.Active {
			continue
		}
		out = append(out, h)
	}
	return out, nil
}

func (m *Memory) DeactivateHabit(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.habits[id]
	if !ok {
		return nil
	}
	h.Active = false
	m.habits[id] = h
	return nil
}

func (m *Memory) UpsertCompletion(_ context.Context, c core.HabitCompletion) error {
	if err := c.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.completions[completionKey{c.HabitID, c.Day}] = c
	return nil
}

func (m *Memory) ListHabitCompletions(_ context.Context, habitID string) ([]core.HabitCompletion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []core.HabitCompletion
	for k, c := range m.completions {
		if k.habitID == habitID {
			out = append(out, c)
		}
	}
	sortCompletions(out)
	return out, nil
}

func (m *Memory) ListCompletionsInRange(_ context.Context, from, to core.Day) ([]core.HabitCompletion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []core.HabitCompletion
	for k, c := range m.completions {
		if k.day >= from && k.day <= to {
			out = append(out, c)
		}
	}
	sortCompletions(out)
	return out, nil
}

func sortCompletions(cs []core.HabitCompletion) {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].Day != cs[j].Day {
			return cs[i].Day < cs[j].Day
		}
		return cs[i].HabitID < cs[j].HabitID
	})
}

func (m *Memory) UpsertCheckIn(_ context.Context, c core.CheckIn) error {
	if err := c.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkins[c.Day] = c
	return nil
}

func (m *Memory) GetCheckIn(_ context.Context, day core.Day) (core.CheckIn, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.checkins[day]
	return c, ok, nil
}

func (m *Memory) UpsertEntry(_ context.Context, e core.JournalEntry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.journal[e.Day] = e
	return nil
}

func (m *Memory) GetEntry(_ context.Context, day core.Day) (core.JournalEntry, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.journal[day]
	return e, ok, nil
}

func (m *Memory) SaveTrade(_ context.Context, t core.TradeReview) error {
	if err := t.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.trades[t.ID]; !exists {
		m.tradeOrder = append(m.tradeOrder, t.ID)
	}
	m.trades[t.ID] = t
	return nil
}

func (m *Memory) GetTrade(_ context.Context, id string) (core.TradeReview, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.trades[id]
	return t, ok, nil
}

func (m *Memory) ListTradesInRange(_ context.Context, from, to core.Day) ([]core.TradeReview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []core.TradeReview
	for _, id := range m.tradeOrder {
		t := m.trades[id]
		if t.Day >= from && t.Day <= to {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}

func (m *Memory) SaveGoal(_ context.Context, g core.Goal) error {
	if err := g.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.goals[g.ID]; !exists {
		m.goalOrder = append(m.goalOrder, g.ID)
	}
	m.goals[g.ID] = g
	return nil
}

func (m *Memory) GetGoal(_ context.Context, id string) (core.Goal, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.goals[id]
	return g, ok, nil
}

func (m *Memory) ListGoals(_ context.Context, activeOnly bool) ([]core.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]core.Goal, 0, len(m.goalOrder))
	for _, id := range m.goalOrder {
		g := m.goals[id]
		if activeOnly && !g.Active {
			continue
		}
		out = append(out, g)
	}
	return out, nil
}

func (m *Memory) DeactivateGoal(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.goals[id]
	if !ok {
		return nil
	}
	g.Active = false
	m.goals[id] = g
	return nil
}

func (m *Memory) UpsertRiskMetrics(_ context.Context, r core.RiskMetrics) error {
	if err := r.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if stored, ok := m.risk[r.Day]; ok {
		r = stored.Merge(r)
	}
	m.risk[r.Day] = r
	return nil
}

func (m *Memory) GetRiskMetrics(_ context.Context, day core.Day) (core.RiskMetrics, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.risk[day]
	return r, ok, nil
}
