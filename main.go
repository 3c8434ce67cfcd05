package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nstehr/vimy-dig/agent"
	"github.com/nstehr/vimy-dig/config"
	"github.com/nstehr/vimy-dig/ipc"
	"github.com/nstehr/vimy-dig/render"
	"github.com/nstehr/vimy-dig/rules"
)

const banner = `
██╗   ██╗██╗███╗   ███╗██╗   ██╗    ██████╗ ██╗ ██████╗
██║   ██║██║████╗ ████║╚██╗ ██╔╝    ██╔══██╗██║██╔════╝
██║   ██║██║██╔████╔██║ ╚████╔╝     ██║  ██║██║██║  ███╗
╚██╗ ██╔╝██║██║╚██╔╝██║  ╚██╔╝      ██║  ██║██║██║   ██║
 ╚████╔╝ ██║██║ ╚═╝ ██║   ██║       ██████╔╝██║╚██████╔╝
  ╚═══╝  ╚═╝╚═╝     ╚═╝   ╚═╝       ╚═════╝ ╚═╝ ╚═════╝

Rule-Driven Ore Digging`

func main() {
	configPath := flag.String("config", "", "path to a config file (yaml, json or toml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// stdout carries commands to the referee; everything else goes to stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Level(),
	}))
	slog.SetDefault(logger)

	fmt.Fprintln(os.Stderr, banner)

	if err := run(cfg); err != nil {
		slog.Error("bot stopped", "error", err)
		os.Exit(1)
	}
}

// teeInput records what it reads but closes the underlying input, so a
// cancelled read loop can still unblock it.
type teeInput struct {
	io.Reader
	io.Closer
}

func run(cfg config.Config) error {
	strategy := rules.DefaultStrategy()
	if cfg.StrategyFile != "" {
		s, err := rules.LoadStrategy(cfg.StrategyFile)
		if err != nil {
			return err
		}
		strategy = s
		slog.Info("strategy loaded", "name", strategy.Name, "path", cfg.StrategyFile)
	}
	if cfg.Annotate {
		strategy.Annotate = true
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	slog.Info("starting vimy-dig", "seed", seed, "strategy", strategy.Name)

	engine, err := rules.NewEngine(rules.DefaultRules(), strategy, rand.New(rand.NewPCG(seed, seed)))
	if err != nil {
		return fmt.Errorf("build rule engine: %w", err)
	}

	var in io.ReadCloser = os.Stdin
	if cfg.ReplayFile != "" {
		rc, err := ipc.OpenReplay(cfg.ReplayFile)
		if err != nil {
			return err
		}
		defer rc.Close()
		in = rc
		slog.Info("replaying match", "path", cfg.ReplayFile)
	}
	if cfg.RecordFile != "" {
		rec, err := ipc.CreateRecorder(cfg.RecordFile)
		if err != nil {
			return err
		}
		defer func() {
			if err := rec.Close(); err != nil {
				slog.Error("failed to close recording", "path", cfg.RecordFile, "error", err)
			}
		}()
		in = teeInput{Reader: rec.Tee(in), Closer: in}
		slog.Info("recording match", "path", cfg.RecordFile)
	}

	a := agent.New(engine)
	if cfg.Render {
		a.Renderer = render.NewBoardRenderer(os.Stderr)
	}

	c := ipc.NewConnection(in, os.Stdout)
	c.RegisterInit(a.HandleInit)
	c.RegisterTurn(a.HandleTurn)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = c.ReadLoop(ctx)
	if summary := a.Summary(); summary != "" {
		slog.Info("match events\n" + summary)
	}
	slog.Info("shutting down")
	return err
}
