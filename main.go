package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	ball "github.com/esimov/ascii-balls/ball-solver"
	"github.com/esimov/ascii-balls/config"
	"github.com/esimov/ascii-balls/detector"
	"github.com/esimov/ascii-balls/spawner"
	"github.com/esimov/ascii-balls/terminal"
	"github.com/esimov/ascii-balls/websocket"
)

func main() {
	cfg := config.Load()
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	model, _ := ball.ParseModel(cfg.CollisionModel)
	palette, _ := ball.ParsePalette(cfg.ColorStart, cfg.ColorEnd)

	// termbox owns the screen, so the log goes to a file while it runs
	if !cfg.Headless {
		logfile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			log.Fatalf("cannot open log file: %v", err)
		}
		defer logfile.Close()
		log.SetOutput(logfile)
	}
	gin.SetMode(gin.ReleaseMode)
	gin.DefaultWriter = log.Writer()
	gin.DefaultErrorWriter = log.Writer()

	solver := ball.NewSolver(ball.Options{
		Gravity:  cfg.Gravity,
		Friction: cfg.Friction,
		Bounds:   ball.Bounds{Width: cfg.WorldWidth, Height: cfg.WorldHeight},
		Model:    model,
		Palette:  palette,
	})
	sp := spawner.New(solver, spawner.Options{
		PerSpawn:   cfg.BallsPerSpawn,
		Rate:       cfg.SpawnRate,
		Radius:     cfg.BallRadius,
		Jitter:     cfg.SpawnJitter,
		Speed:      cfg.SpawnSpeed,
		ColorSpeed: cfg.ColorSpeed,
	}, nil)
	hub := websocket.NewHub(cfg.BroadcastEvery)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var det websocket.FaceDetector
	if cfg.Cascade != "" {
		p := detector.DefaultParams
		p.MinSize, p.MaxSize = cfg.FaceMinSize, cfg.FaceMaxSize

		d, err := detector.Load(cfg.Cascade, p)
		if err != nil {
			log.Fatalf("[FACE] %v", err)
		}
		det = d
		log.Printf("[FACE] webcam spawning enabled with cascade %s", cfg.Cascade)
	}

	if cfg.Address != "" {
		srv, err := websocket.NewServer(websocket.HttpParams{
			Address: cfg.Address,
			Prefix:  cfg.Prefix,
			Root:    cfg.Root,
		}, hub, sp, solver, det, cfg.MirrorWebcam)
		if err != nil {
			log.Fatalf("[HTTP] %v", err)
		}
		go func() {
			if err := srv.Run(ctx); err != nil {
				log.Printf("[HTTP] server stopped: %v", err)
			}
		}()
	}

	log.Printf("[SIM] gravity=%v friction=%v model=%s fps=%d", cfg.Gravity, cfg.Friction, model, cfg.FPS)
	if cfg.Headless {
		err := ball.Run(ctx, cfg.FPS, solver, hub.Publish)
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Fatalf("[SIM] %v", err)
		}
		return
	}

	term := terminal.New(solver, sp, terminal.Scale{X: cfg.CellWidth, Y: cfg.CellHeight}, cfg.FPS, hub.Publish)
	if err := term.Render(ctx); err != nil {
		log.Fatalf("[TTY] %v", err)
	}
}
