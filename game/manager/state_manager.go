package manager

import (
	"context"
	"fmt"
	"time"

	"slither/logger"
)

const maxHistory = 50

// GameRecord is the summary of one finished (or abandoned) game.
type GameRecord struct {
	ID        string    `json:"id"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Score     int       `json:"score"`
	Length    int       `json:"length"`
	Moves     int       `json:"moves"`
	Cause     string    `json:"cause"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
}

// RecordStore persists game records.
type RecordStore interface {
	SaveRecord(ctx context.Context, rec GameRecord) error
	HighScore(ctx context.Context) (int, error)
	Recent(ctx context.Context, limit int) ([]GameRecord, error)
}

// StateManager tracks scores across games of one session. The store is
// optional; without it scores only live in memory.
type StateManager struct {
	store        RecordStore
	log          *logger.Logger
	highScore    int
	scoreHistory []int
}

func NewStateManager(ctx context.Context, store RecordStore, log *logger.Logger) *StateManager {
	sm := &StateManager{
		store:        store,
		log:          log,
		scoreHistory: make([]int, 0),
	}

	if store != nil {
		high, err := store.HighScore(ctx)
		if err != nil {
			log.Warn("could not load high score: " + err.Error())
		} else {
			sm.highScore = high
		}
	}
	return sm
}

// Record adds a finished game to the history and persists it.
// The in-memory scores are updated even if the store fails.
func (sm *StateManager) Record(ctx context.Context, rec GameRecord) error {
	if rec.Score > sm.highScore {
		sm.highScore = rec.Score
	}
	if len(sm.scoreHistory) >= maxHistory {
		sm.scoreHistory = sm.scoreHistory[1:]
	}
	sm.scoreHistory = append(sm.scoreHistory, rec.Score)

	if sm.store == nil {
		return nil
	}
	if err := sm.store.SaveRecord(ctx, rec); err != nil {
		return fmt.Errorf("save game record %s: %w", rec.ID, err)
	}
	sm.log.Event("GAME_RECORDED", rec.ID, fmt.Sprintf("score=%d length=%d cause=%s", rec.Score, rec.Length, rec.Cause))
	return nil
}

func (sm *StateManager) GetHighScore() int {
	return sm.highScore
}

// GetScoreHistory returns the most recent scores, oldest first.
func (sm *StateManager) GetScoreHistory() []int {
	out := make([]int, len(sm.scoreHistory))
	copy(out, sm.scoreHistory)
	return out
}

// AverageScore is the mean of the kept history, 0 when empty.
func (sm *StateManager) AverageScore() float64 {
	if len(sm.scoreHistory) == 0 {
		return 0
	}
	sum := 0
	for _, s := range sm.scoreHistory {
		sum += s
	}
	return float64(sum) / float64(len(sm.scoreHistory))
}
