package bot

import (
	"math/rand"

	"crazyeights/internal/bot/internal"
	"crazyeights/internal/domain"
)

// EasyBot is the weakest tier: half the time it plays any playable card at
// random, otherwise it prefers the first non-8. Wild declarations are a coin
// toss among the four suits.
type EasyBot struct{}

func (b *EasyBot) ChooseMove(g *domain.Game, rng *rand.Rand) (Decision, error) {
	playable := internal.PlayableCards(g.AIHand, g.CurrentSuit, g.CurrentRank)
	if len(playable) == 0 {
		return noPlayDecision(g), nil
	}

	var card domain.Card
	if rng.Float64() > DefaultTuning.EasyRandomChance {
		card = playable[rng.Intn(len(playable))]
	} else if c, ok := internal.FirstNonWild(playable); ok {
		card = c
	} else {
		card = playable[0]
	}

	decision := Decision{Card: &card}
	if card.IsWild() {
		decision.DeclaredSuit = domain.Suits[rng.Intn(len(domain.Suits))]
	}
	return decision, nil
}
