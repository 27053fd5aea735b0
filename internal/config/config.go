package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// GameConfig holds the pacing knobs for the match driver. The rule engine
// never reads these; it exposes single-step operations and the driver picks
// the cadence.
type GameConfig struct {
	// TickRate is the Nakama match loop frequency in ticks per second.
	TickRate int `json:"tick_rate"`
	// DealIntervalTicks is the number of ticks between deal steps.
	DealIntervalTicks int `json:"deal_interval_ticks"`
	// AIThinkMinTicks and AIThinkMaxTicks bound the randomized delay before
	// the AI acts once the turn passes to it.
	AIThinkMinTicks int `json:"ai_think_min_ticks"`
	AIThinkMaxTicks int `json:"ai_think_max_ticks"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// DefaultGameConfig mirrors the original pacing: sub-second deal steps and a
// one-to-two second AI think delay at a 4Hz tick rate.
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		TickRate:          4,
		DealIntervalTicks: 1,
		AIThinkMinTicks:   4,
		AIThinkMaxTicks:   8,
	}
}

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}
		c := DefaultGameConfig()
		if err := json.Unmarshal(data, c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = c
	})
	return loadErr
}

// GetGameConfig returns the loaded configuration, or defaults when no file
// was loaded.
func GetGameConfig() *GameConfig {
	if cfg == nil {
		return DefaultGameConfig()
	}
	return cfg
}
