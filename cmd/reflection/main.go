// Inner Reflection — generative installation server.
//
// Runs the 64-dimension state engine at a fixed frame rate and serves
// the control API plus the visual/audio websocket streams that drive
// the renderer and synthesizer.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/danhstorm/inner-reflection-sub001/internal/config"
	"github.com/danhstorm/inner-reflection-sub001/internal/log"
	"github.com/danhstorm/inner-reflection-sub001/pkg/session"
	"github.com/danhstorm/inner-reflection-sub001/pkg/state"
	"github.com/danhstorm/inner-reflection-sub001/pkg/web"
)

func main() {
	configPath := flag.String("config", "exhibit.yaml", "Path to exhibit config file")
	seed := flag.Int64("seed", 0, "State engine seed (0 = from config or entropy)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	log.Init(cfg.LogLevel)
	log.Info("starting installation server",
		"title", cfg.Title,
		"port", cfg.Port,
		"frame_rate", cfg.FrameRate)

	effectiveSeed := cfg.EffectiveSeed()
	engine := state.New(effectiveSeed)
	log.Info("engine seeded",
		"seed", effectiveSeed,
		"harmony", engine.Harmony().String())

	runner := session.NewRunner(engine, cfg.FrameInterval())

	server := web.NewServer(cfg.Port, runner)
	server.StartAsync()

	go runner.Run()

	// Block until SIGINT/SIGTERM
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	log.Info("shutting down", "signal", sig.String())
	runner.Stop()
	if err := server.Shutdown(); err != nil {
		log.Error("server shutdown", "error", err)
	}
	log.Info("goodbye", "ticks", runner.TickCount())
}
