package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	ball "github.com/esimov/ascii-balls/ball-solver"
)

type Config struct {
	// Physics
	Gravity        float64
	Friction       float64
	CollisionModel string

	// Spawning
	BallRadius    float64
	BallsPerSpawn int
	SpawnRate     time.Duration
	SpawnJitter   float64
	SpawnSpeed    float64

	// Colours
	ColorStart string
	ColorEnd   string
	ColorSpeed float64

	// Rendering
	FPS         int
	CellWidth   float64
	CellHeight  float64
	Headless    bool
	WorldWidth  float64
	WorldHeight float64

	// Server
	Address        string
	Prefix         string
	Root           string
	BroadcastEvery int

	// Webcam face spawning
	Cascade      string
	FaceMinSize  int
	FaceMaxSize  int
	MirrorWebcam bool

	LogFile string
}

// Load reads the configuration from the environment, after loading a .env file if present.
func Load() *Config {
	godotenv.Load()

	return &Config{
		Gravity:        getEnvFloat("BALLS_GRAVITY", ball.DefaultGravity),
		Friction:       getEnvFloat("BALLS_FRICTION", ball.DefaultFriction),
		CollisionModel: getEnv("BALLS_COLLISION_MODEL", "shared"),

		BallRadius:    getEnvFloat("BALLS_RADIUS", 10),
		BallsPerSpawn: getEnvInt("BALLS_PER_SPAWN", 3),
		SpawnRate:     getEnvDuration("BALLS_SPAWN_RATE", 100*time.Millisecond),
		SpawnJitter:   getEnvFloat("BALLS_SPAWN_JITTER", 20),
		SpawnSpeed:    getEnvFloat("BALLS_SPAWN_SPEED", 10),

		ColorStart: getEnv("BALLS_COLOR_START", "#ff0000"),
		ColorEnd:   getEnv("BALLS_COLOR_END", "#0000ff"),
		ColorSpeed: getEnvFloat("BALLS_COLOR_SPEED", ball.DefaultColorSpeed),

		FPS:         getEnvInt("BALLS_FPS", 60),
		CellWidth:   getEnvFloat("BALLS_CELL_WIDTH", 4),
		CellHeight:  getEnvFloat("BALLS_CELL_HEIGHT", 8),
		Headless:    getEnvBool("BALLS_HEADLESS", false),
		WorldWidth:  getEnvFloat("BALLS_WORLD_WIDTH", 800),
		WorldHeight: getEnvFloat("BALLS_WORLD_HEIGHT", 600),

		Address:        getEnv("BALLS_ADDR", ":5000"),
		Prefix:         getEnv("BALLS_PREFIX", "/"),
		Root:           getEnv("BALLS_ROOT", "./web"),
		BroadcastEvery: getEnvInt("BALLS_BROADCAST_EVERY", 2),

		Cascade:      getEnv("BALLS_CASCADE", ""),
		FaceMinSize:  getEnvInt("BALLS_FACE_MIN", 100),
		FaceMaxSize:  getEnvInt("BALLS_FACE_MAX", 1200),
		MirrorWebcam: getEnvBool("BALLS_MIRROR_WEBCAM", true),

		LogFile: getEnv("BALLS_LOG_FILE", "debug.log"),
	}
}

// RegisterFlags binds the command line flags on top of the loaded values.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Address, "a", c.Address, "address to serve(host:port), empty disables the server")
	fs.StringVar(&c.Prefix, "p", c.Prefix, "prefix path under")
	fs.StringVar(&c.Root, "r", c.Root, "root path to serve")

	fs.Float64Var(&c.Gravity, "gravity", c.Gravity, "downward acceleration per frame")
	fs.Float64Var(&c.Friction, "friction", c.Friction, "horizontal damping factor in (0, 1)")
	fs.StringVar(&c.CollisionModel, "model", c.CollisionModel, "collision model: shared or elastic")
	fs.Float64Var(&c.BallRadius, "radius", c.BallRadius, "radius of spawned balls")
	fs.IntVar(&c.BallsPerSpawn, "per-spawn", c.BallsPerSpawn, "balls spawned per burst")
	fs.DurationVar(&c.SpawnRate, "spawn-rate", c.SpawnRate, "interval between bursts while the mouse is held")
	fs.IntVar(&c.FPS, "fps", c.FPS, "frames per second")
	fs.BoolVar(&c.Headless, "headless", c.Headless, "run without the terminal renderer")
	fs.StringVar(&c.Cascade, "cascade", c.Cascade, "pigo facefinder cascade file for webcam spawning")
	fs.StringVar(&c.LogFile, "log", c.LogFile, "log file used while the terminal is active")
}

// Validate checks the values the simulation cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Friction <= 0 || c.Friction >= 1 {
		errs = append(errs, fmt.Errorf("friction %v must be within (0, 1)", c.Friction))
	}
	if c.Gravity < 0 {
		errs = append(errs, fmt.Errorf("gravity %v must not be negative", c.Gravity))
	}
	if c.BallRadius <= 0 {
		errs = append(errs, fmt.Errorf("ball radius %v must be positive", c.BallRadius))
	}
	if c.BallsPerSpawn <= 0 {
		errs = append(errs, fmt.Errorf("balls per spawn %d must be positive", c.BallsPerSpawn))
	}
	if c.SpawnRate <= 0 {
		errs = append(errs, fmt.Errorf("spawn rate %v must be positive", c.SpawnRate))
	}
	if c.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps %d must be positive", c.FPS))
	}
	if c.CellWidth <= 0 || c.CellHeight <= 0 {
		errs = append(errs, fmt.Errorf("cell size %vx%v must be positive", c.CellWidth, c.CellHeight))
	}
	if c.Headless && (c.WorldWidth <= 0 || c.WorldHeight <= 0) {
		errs = append(errs, fmt.Errorf("world size %vx%v must be positive", c.WorldWidth, c.WorldHeight))
	}
	if c.BroadcastEvery <= 0 {
		errs = append(errs, fmt.Errorf("broadcast interval %d must be positive", c.BroadcastEvery))
	}
	if _, err := ball.ParseModel(c.CollisionModel); err != nil {
		errs = append(errs, err)
	}
	if _, err := ball.ParsePalette(c.ColorStart, c.ColorEnd); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
