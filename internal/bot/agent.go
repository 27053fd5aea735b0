package bot

import (
	"math/rand"

	"crazyeights/internal/domain"
)

// Agent is the scripted opponent seated across the table: an identity plus
// the strategy for its difficulty tier.
type Agent struct {
	Name        string
	AvatarIndex int
	Difficulty  domain.Difficulty
	Strategy    Brain
}

// NewAgent builds the opponent for a difficulty, resolving its display
// identity from the loaded pool.
func NewAgent(difficulty domain.Difficulty) (*Agent, error) {
	brain, err := NewBrain(difficulty)
	if err != nil {
		return nil, err
	}
	identity := GetIdentity(difficulty)
	return &Agent{
		Name:        identity.DisplayName,
		AvatarIndex: identity.AvatarIndex,
		Difficulty:  difficulty,
		Strategy:    brain,
	}, nil
}

// Play asks the agent for its move given the current state.
func (a *Agent) Play(g *domain.Game, rng *rand.Rand) (Decision, error) {
	return a.Strategy.ChooseMove(g, rng)
}
