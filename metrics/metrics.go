// Package metrics exposes game counters to Prometheus.
package metrics

import (
	"net/http"

	"slither/game"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "slither"

// Collector owns its registry so tests and several games in one process do
// not clash on the global one.
type Collector struct {
	registry    *prometheus.Registry
	moves       *prometheus.CounterVec
	fruits      prometheus.Counter
	games       *prometheus.CounterVec
	snakeLength prometheus.Gauge
	highScore   prometheus.Gauge
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		moves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_total",
			Help:      "Move commands processed, by outcome.",
		}, []string{"outcome"}),
		fruits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fruits_eaten_total",
			Help:      "Fruits eaten across all games.",
		}),
		games: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_finished_total",
			Help:      "Finished games, by collision cause.",
		}, []string{"cause"}),
		snakeLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "snake_length",
			Help:      "Length of the snake in the current game.",
		}),
		highScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "high_score",
			Help:      "Best score of the session.",
		}),
	}
	c.registry.MustRegister(c.moves, c.fruits, c.games, c.snakeLength, c.highScore)
	return c
}

// ObserveMove records the outcome of one Move on g.
func (c *Collector) ObserveMove(g *game.Game, outcome game.Outcome) {
	c.moves.WithLabelValues(outcome.String()).Inc()
	if outcome == game.Ate {
		c.fruits.Inc()
	}
	c.snakeLength.Set(float64(g.SnakeLen()))
}

// ObserveGameOver counts a finished game and its cause.
func (c *Collector) ObserveGameOver(g *game.Game) {
	c.games.WithLabelValues(g.Cause().String()).Inc()
}

func (c *Collector) SetHighScore(score int) {
	c.highScore.Set(float64(score))
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
