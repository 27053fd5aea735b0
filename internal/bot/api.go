package bot

import (
	"math/rand"

	"crazyeights/internal/domain"
)

// Decision is the move a strategy selects for a single AI turn. Exactly one
// of Draw, Skip or Card is set; DeclaredSuit accompanies Card only when the
// chosen card is a wild 8.
type Decision struct {
	Draw         bool
	Skip         bool
	Card         *domain.Card
	DeclaredSuit domain.Suit
}

// Brain is the interface all difficulty strategies implement. Strategies
// read the game state and never mutate it; the state machine applies the
// returned decision. The rng carries whatever randomness the tier uses so
// runs stay reproducible under a seeded source.
type Brain interface {
	ChooseMove(g *domain.Game, rng *rand.Rand) (Decision, error)
}
