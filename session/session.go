// Package session connects a running game to the optional side services:
// score records, metrics and the spectator stream.
package session

import (
	"context"
	"fmt"

	"slither/game"
	"slither/game/manager"
	"slither/logger"
	"slither/metrics"
	"slither/network"
)

type Session struct {
	scores  *manager.StateManager
	hub     *network.Hub
	metrics *metrics.Collector
	log     *logger.Logger
}

type Option func(*Session)

func WithHub(h *network.Hub) Option {
	return func(s *Session) { s.hub = h }
}

func WithMetrics(m *metrics.Collector) Option {
	return func(s *Session) { s.metrics = m }
}

func WithLogger(l *logger.Logger) Option {
	return func(s *Session) { s.log = l }
}

// New returns a session keeping scores in scores. A nil manager keeps them
// in memory only.
func New(scores *manager.StateManager, opts ...Option) *Session {
	s := &Session{scores: scores}
	for _, opt := range opts {
		opt(s)
	}
	if s.scores == nil {
		s.scores = manager.NewStateManager(context.Background(), nil, s.log)
	}
	if s.metrics != nil {
		s.metrics.SetHighScore(s.scores.GetHighScore())
	}
	return s
}

// Start announces a new game to spectators.
func (s *Session) Start(g *game.Game) {
	s.publish(g)
}

// Observe reports the outcome of one move.
func (s *Session) Observe(g *game.Game, outcome game.Outcome) {
	if s.metrics != nil {
		s.metrics.ObserveMove(g, outcome)
	}
	if outcome != game.AlreadyOver {
		s.publish(g)
	}
}

// Finish records g. A game still active is recorded as abandoned.
func (s *Session) Finish(ctx context.Context, g *game.Game) error {
	if s.metrics != nil && g.Over() {
		s.metrics.ObserveGameOver(g)
	}
	err := s.scores.Record(ctx, g.Record())
	if s.metrics != nil {
		s.metrics.SetHighScore(s.scores.GetHighScore())
	}
	if err != nil {
		s.log.Warn(fmt.Sprintf("game %s not persisted: %v", g.ID(), err))
	}
	return err
}

func (s *Session) publish(g *game.Game) {
	if s.hub != nil {
		s.hub.Publish(g.Snapshot())
	}
}

func (s *Session) HighScore() int { return s.scores.GetHighScore() }

func (s *Session) Scores() []int { return s.scores.GetScoreHistory() }
