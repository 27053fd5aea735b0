package bot

import (
	"fmt"

	"crazyeights/internal/domain"
)

// NewBrain creates the strategy for the given difficulty tier.
func NewBrain(difficulty domain.Difficulty) (Brain, error) {
	switch difficulty {
	case domain.DifficultyEasy:
		return &EasyBot{}, nil
	case domain.DifficultyMedium:
		return &MediumBot{}, nil
	case domain.DifficultyHard:
		return &HardBot{}, nil
	default:
		return nil, fmt.Errorf("unknown difficulty: %q", difficulty)
	}
}
