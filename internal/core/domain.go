package core

import (
	"errors"
	"strings"
	"time"
)

const (
	MoodExcellent Mood = "excellent"
	MoodGood      Mood = "good"
	MoodNeutral   Mood = "neutral"
	MoodStressed  Mood = "stressed"
	MoodAngry     Mood = "angry"
)

const (
	SideLong  TradeSide = "long"
	SideShort TradeSide = "short"
)

type (
	// Mood is the closed label set for daily emotional check-ins.
	Mood string

	// TradeSide is the direction of a trade.
	TradeSide string

	// Habit is a daily discipline habit. Habits are never physically
	// removed: deactivation flips Active to false, after which the habit
	// stays fetchable by id but is excluded from list-active and from
	// every aggregate.
	Habit struct {
		ID          string
		Name        string
		Description string
		Category    string
		Active      bool
		CreatedAt   time.Time
	}

	// HabitCompletion is keyed by (HabitID, Day); at most one record per
	// pair. Absence of a record for a day means "not completed".
	HabitCompletion struct {
		HabitID   string
		Day       Day
		Completed bool
	}

	// CheckIn records one mood per day. Upsert replaces the prior mood.
	CheckIn struct {
		Day  Day
		Mood Mood
	}

	// JournalEntry holds one free-text blob per day.
	JournalEntry struct {
		Day     Day
		Content string
	}

	// TradeReview is a post-trade write-up. Not day-unique: many trades
	// per day. PnL and ExitPrice are decimal strings; empty means not
	// recorded, and an unparseable PnL simply drops the trade from
	// win/loss aggregation.
	TradeReview struct {
		ID             string
		Day            Day
		Instrument     string
		Side           TradeSide
		EntryPrice     string
		ExitPrice      string
		PnL            string
		Tags           []string
		EmotionalState string
		Setup          string
		Mistakes       string
		Lessons        string
		Rating         int
	}

	// Goal tracks progress toward a target value. Soft-deleted like habits.
	Goal struct {
		ID          string
		Title       string
		Description string
		Target      string
		Current     string
		Unit        string
		Deadline    Day
		Category    string
		Active      bool
	}

	// RiskMetrics is keyed by day; all value fields are optional decimal
	// strings. Upserts merge: an empty field leaves the stored value alone.
	RiskMetrics struct {
		Day            Day
		AccountBalance string
		Drawdown       string
		DailyRisk      string
		PositionSize   string
		RiskReward     string
	}
)

var (
	ErrEmptyID         = errors.New("empty id")
	ErrEmptyName       = errors.New("empty name")
	ErrEmptyTitle      = errors.New("empty title")
	ErrEmptyInstrument = errors.New("empty instrument")
	ErrInvalidMood     = errors.New("invalid mood")
	ErrInvalidSide     = errors.New("invalid trade side")
	ErrInvalidRating   = errors.New("rating out of range")
)

func (m Mood) Validate() error {
	switch m {
	case MoodExcellent, MoodGood, MoodNeutral, MoodStressed, MoodAngry:
		return nil
	}
	return ErrInvalidMood
}

func (s TradeSide) Validate() error {
	switch s {
	case SideLong, SideShort:
		return nil
	}
	return ErrInvalidSide
}

func (h Habit) Validate() error {
	if strings.TrimSpace(h.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(h.Name) == "" {
		return ErrEmptyName
	}
	if len(h.Name) > 120 {
		return errors.New("name too long (max 120 characters)")
	}
	return nil
}

func (c HabitCompletion) Validate() error {
	if strings.TrimSpace(c.HabitID) == "" {
		return ErrEmptyID
	}
	return c.Day.Validate()
}

func (c CheckIn) Validate() error {
	if err := c.Day.Validate(); err != nil {
		return err
	}
	return c.Mood.Validate()
}

func (e JournalEntry) Validate() error {
	return e.Day.Validate()
}

func (t TradeReview) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrEmptyID
	}
	if err := t.Day.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Instrument) == "" {
		return ErrEmptyInstrument
	}
	if err := t.Side.Validate(); err != nil {
		return err
	}
	if t.Rating < 0 || t.Rating > 5 {
		return ErrInvalidRating
	}
	return nil
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(g.Title) == "" {
		return ErrEmptyTitle
	}
	if g.Deadline != "" {
		if err := g.Deadline.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (r RiskMetrics) Validate() error {
	return r.Day.Validate()
}

// Merge overlays non-empty fields of other onto r. The day key never changes.
func (r RiskMetrics) Merge(other RiskMetrics) RiskMetrics {
	if other.AccountBalance != "" {
		r.AccountBalance = other.AccountBalance
	}
	if other.Drawdown != "" {
		r.Drawdown = other.Drawdown
	}
	if other.DailyRisk != "" {
		r.DailyRisk = other.DailyRisk
	}
	if other.PositionSize != "" {
		r.PositionSize = other.PositionSize
	}
	if other.RiskReward != "" {
		r.RiskReward = other.RiskReward
	}
	return r
}
