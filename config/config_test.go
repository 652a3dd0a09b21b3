package config

import (
	"flag"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	c := Load()
	if c.Gravity != 0.2 || c.Friction != 0.99 {
		t.Errorf("physics defaults = %v/%v, want 0.2/0.99", c.Gravity, c.Friction)
	}
	if c.BallRadius != 10 || c.BallsPerSpawn != 3 || c.SpawnRate != 100*time.Millisecond {
		t.Errorf("spawn defaults = %v/%d/%v", c.BallRadius, c.BallsPerSpawn, c.SpawnRate)
	}
	if c.ColorStart != "#ff0000" || c.ColorEnd != "#0000ff" {
		t.Errorf("colour defaults = %s -> %s", c.ColorStart, c.ColorEnd)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BALLS_GRAVITY", "0.5")
	t.Setenv("BALLS_PER_SPAWN", "7")
	t.Setenv("BALLS_SPAWN_RATE", "250ms")
	t.Setenv("BALLS_HEADLESS", "true")
	t.Setenv("BALLS_COLLISION_MODEL", "elastic")
	t.Setenv("BALLS_FPS", "not-a-number")

	c := Load()
	if c.Gravity != 0.5 {
		t.Errorf("gravity = %v, want 0.5", c.Gravity)
	}
	if c.BallsPerSpawn != 7 {
		t.Errorf("per spawn = %d, want 7", c.BallsPerSpawn)
	}
	if c.SpawnRate != 250*time.Millisecond {
		t.Errorf("spawn rate = %v, want 250ms", c.SpawnRate)
	}
	if !c.Headless {
		t.Error("headless not read from env")
	}
	if c.CollisionModel != "elastic" {
		t.Errorf("model = %q, want elastic", c.CollisionModel)
	}
	if c.FPS != 60 {
		t.Errorf("unparsable fps should fall back to 60, got %d", c.FPS)
	}
}

func TestFlagsOverride(t *testing.T) {
	c := Load()
	fs := flag.NewFlagSet("balls", flag.ContinueOnError)
	c.RegisterFlags(fs)
	if err := fs.Parse([]string{"-a", ":7000", "-friction", "0.9", "-headless"}); err != nil {
		t.Fatal(err)
	}
	if c.Address != ":7000" || c.Friction != 0.9 || !c.Headless {
		t.Errorf("flags not applied: %+v", c)
	}
}

func TestValidate(t *testing.T) {
	for name, mutate := range map[string]func(*Config){
		"friction zero":   func(c *Config) { c.Friction = 0 },
		"friction one":    func(c *Config) { c.Friction = 1 },
		"negative radius": func(c *Config) { c.BallRadius = -1 },
		"zero fps":        func(c *Config) { c.FPS = 0 },
		"bad colour":      func(c *Config) { c.ColorEnd = "blue" },
		"bad model":       func(c *Config) { c.CollisionModel = "sticky" },
		"no world":        func(c *Config) { c.Headless = true; c.WorldWidth = 0 },
	} {
		c := Load()
		mutate(c)
		if err := c.Validate(); err == nil {
			t.Errorf("%s: Validate returned nil", name)
		}
	}
}
