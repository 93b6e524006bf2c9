package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"mercury-maze/game"
	"mercury-maze/game/types"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Layout names
const (
	LayoutClassic   = "classic"
	LayoutGenerated = "generated"
)

// Sensor names
const (
	SensorKeyboard  = "keyboard"
	SensorWebsocket = "websocket"
	SensorScript    = "script"
)

// Surface names
const (
	SurfaceWindow   = "window"
	SurfaceTerminal = "terminal"
)

// Config holds the startup settings. Nothing here changes while running.
type Config struct {
	Width       int           // Surface width in pixels
	Height      int           // Surface height in pixels
	Radius      float64       // Blob radius in pixels
	SpeedScale  float64       // Tilt to velocity gain
	Damping     float64       // Velocity decay per tick, in (0,1]
	TiltDivisor float64       // Raw sensor counts per unit of tilt
	StartX      float64       // Initial blob position
	StartY      float64       // Initial blob position
	Layout      string        // classic or generated
	GenRows     int           // Generated maze rooms per column
	GenCols     int           // Generated maze rooms per row
	Seed        uint64        // Generator seed, 0 picks one from the clock
	Sensor      string        // keyboard, websocket or script
	Surface     string        // window or terminal
	WSAddr      string        // Listen address for the websocket sensor
	FrameDelay  time.Duration // Sleep between frames
	DataDir     string        // Root directory for session stats
	Scale       int           // Window pixels per surface pixel
}

// Load reads a .env file when present and builds the configuration from
// environment variables, falling back to the reference hardware values.
func Load(logger *log.Logger) (Config, error) {
	if err := godotenv.Load(); err != nil && logger != nil {
		logger.Printf("[INFO] .env file not found or could not be loaded: %v", err)
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	var errs []error
	cfg := Config{
		Width:       getEnvAsInt("MAZE_WIDTH", types.DisplayWidth, &errs),
		Height:      getEnvAsInt("MAZE_HEIGHT", types.DisplayHeight, &errs),
		Radius:      getEnvAsFloat("MAZE_RADIUS", game.DefaultRadius, &errs),
		SpeedScale:  getEnvAsFloat("MAZE_SPEED", game.DefaultSpeedScale, &errs),
		Damping:     getEnvAsFloat("MAZE_DAMPING", game.DefaultDamping, &errs),
		TiltDivisor: getEnvAsFloat("MAZE_TILT_DIVISOR", game.DefaultTiltDivisor, &errs),
		StartX:      getEnvAsFloat("MAZE_START_X", game.DefaultStartX, &errs),
		StartY:      getEnvAsFloat("MAZE_START_Y", game.DefaultStartY, &errs),
		Layout:      getEnvWithDefault("MAZE_LAYOUT", LayoutClassic),
		GenRows:     getEnvAsInt("MAZE_GEN_ROWS", 5, &errs),
		GenCols:     getEnvAsInt("MAZE_GEN_COLS", 7, &errs),
		Seed:        getEnvAsUint("MAZE_SEED", 0, &errs),
		Sensor:      getEnvWithDefault("MAZE_SENSOR", SensorKeyboard),
		Surface:     getEnvWithDefault("MAZE_SURFACE", SurfaceWindow),
		WSAddr:      getEnvWithDefault("MAZE_WS_ADDR", ":8080"),
		FrameDelay:  getEnvAsDuration("MAZE_FRAME_DELAY", 10*time.Millisecond, &errs),
		DataDir:     getEnvWithDefault("MAZE_DATA_DIR", "data"),
		Scale:       getEnvAsInt("MAZE_SCALE", 2, &errs),
	}
	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the simulator or host loop cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: surface %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.Layout != LayoutClassic && c.Layout != LayoutGenerated:
		return fmt.Errorf("%w: unknown layout %q", ErrInvalidConfig, c.Layout)
	case c.Layout == LayoutGenerated && (c.GenRows < 1 || c.GenCols < 1):
		return fmt.Errorf("%w: generated maze needs at least 1x1 rooms, got %dx%d", ErrInvalidConfig, c.GenRows, c.GenCols)
	case c.Sensor != SensorKeyboard && c.Sensor != SensorWebsocket && c.Sensor != SensorScript:
		return fmt.Errorf("%w: unknown sensor %q", ErrInvalidConfig, c.Sensor)
	case c.Surface != SurfaceWindow && c.Surface != SurfaceTerminal:
		return fmt.Errorf("%w: unknown surface %q", ErrInvalidConfig, c.Surface)
	case c.FrameDelay < 0:
		return fmt.Errorf("%w: negative frame delay %s", ErrInvalidConfig, c.FrameDelay)
	case c.Scale < 1:
		return fmt.Errorf("%w: scale %d must be at least 1", ErrInvalidConfig, c.Scale)
	}
	if err := c.Tuning().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int, errs *[]error) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%w: %s must be an integer: %w", ErrInvalidConfig, key, err))
	}
	return value
}

func getEnvAsUint(key string, defaultValue uint64, errs *[]error) uint64 {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseUint(valueStr, 10, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%w: %s must be an unsigned integer: %w", ErrInvalidConfig, key, err))
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64, errs *[]error) float64 {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%w: %s must be a number: %w", ErrInvalidConfig, key, err))
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration, errs *[]error) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%w: %s must be a duration: %w", ErrInvalidConfig, key, err))
	}
	return value
}

// Tuning extracts the simulator constants.
func (c Config) Tuning() game.Tuning {
	return game.Tuning{
		Radius:      c.Radius,
		SpeedScale:  c.SpeedScale,
		Damping:     c.Damping,
		TiltDivisor: c.TiltDivisor,
	}
}

func (c Config) SurfaceSize() types.Size {
	return types.Size{Width: c.Width, Height: c.Height}
}
