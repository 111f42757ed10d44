package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slither/ai"
	"slither/cli"
	"slither/config"
	"slither/game"
	"slither/game/manager"
	"slither/logger"
	"slither/metrics"
	"slither/network"
	"slither/session"
	"slither/storage"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := logger.NewStderr(logger.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *logger.Logger) error {
	newGame := gameFactory(cfg, log)

	if cfg.TrainEpisodes > 0 {
		return train(ctx, cfg, newGame, log)
	}

	var store manager.RecordStore
	if cfg.DBPath != "" {
		db, err := storage.InitSQLite(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()
		store = storage.NewSQLiteRecordRepository(db)
	}
	opts := []session.Option{session.WithLogger(log)}

	if cfg.MetricsAddr != "" {
		collector := metrics.NewCollector()
		serve(ctx, cfg.MetricsAddr, collector.Handler(), log)
		opts = append(opts, session.WithMetrics(collector))
	}
	if cfg.SpectateAddr != "" {
		hub := network.NewHub(log)
		go hub.Run(ctx)
		serve(ctx, cfg.SpectateAddr, hub.Handler(), log)
		opts = append(opts, session.WithHub(hub))
	}
	sess := session.New(manager.NewStateManager(ctx, store, log), opts...)

	var agent *ai.Agent
	if cfg.Autopilot {
		agent = ai.NewAgent(nil)
		agent.Epsilon = 0
		if err := agent.LoadQTable(cfg.QTablePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	if cfg.UI == config.UIWindow {
		return runWindow(ctx, newGame, sess, agent)
	}

	g, err := newGame()
	if err != nil {
		return err
	}
	var appOpts []cli.Option
	if agent != nil {
		appOpts = append(appOpts, cli.WithAutopilot(agent, autopilotLimit(cfg)))
	}
	return cli.New(g, sess, os.Stdin, os.Stdout, appOpts...).Run(ctx)
}

func gameFactory(cfg config.Config, log *logger.Logger) func() (*game.Game, error) {
	seed := cfg.Seed
	return func() (*game.Game, error) {
		opts := []game.Option{
			game.WithSelfCollision(cfg.SelfCollision),
			game.WithLogger(log),
		}
		if seed != 0 {
			opts = append(opts, game.WithSeed(seed))
			seed++
		}
		return game.New(cfg.Width, cfg.Height, opts...)
	}
}

// autopilotLimit bounds a game the agent cannot finish on its own.
func autopilotLimit(cfg config.Config) int {
	return cfg.Width * cfg.Height * 4
}

func train(ctx context.Context, cfg config.Config, newGame func() (*game.Game, error), log *logger.Logger) error {
	agent := ai.NewAgent(nil)
	if err := agent.LoadQTable(cfg.QTablePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	start := time.Now()
	sum, err := ai.Train(ctx, agent, cfg.TrainEpisodes, autopilotLimit(cfg), newGame, log)
	if err != nil {
		return err
	}
	if err := agent.SaveQTable(cfg.QTablePath); err != nil {
		return fmt.Errorf("save q-table: %w", err)
	}

	fmt.Printf("Trained %d episodes in %s: best %d, average %.2f, %d states in %s\n",
		sum.Episodes, time.Since(start).Round(time.Millisecond), sum.BestScore, sum.AverageScore,
		len(agent.QTable), cfg.QTablePath)
	return nil
}

// serve runs an HTTP server until ctx is done.
func serve(ctx context.Context, addr string, h http.Handler, log *logger.Logger) {
	srv := &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Info("listening on " + addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server " + addr + ": " + err.Error())
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()
}
