package bot

import (
	"math/rand"

	"crazyeights/internal/bot/internal"
	"crazyeights/internal/domain"
)

// MediumBot always saves its 8s: it plays the first playable non-8 and
// reaches for a wild only when nothing else is legal.
type MediumBot struct{}

func (b *MediumBot) ChooseMove(g *domain.Game, rng *rand.Rand) (Decision, error) {
	playable := internal.PlayableCards(g.AIHand, g.CurrentSuit, g.CurrentRank)
	if len(playable) == 0 {
		return noPlayDecision(g), nil
	}

	card, ok := internal.FirstNonWild(playable)
	if !ok {
		card = playable[0]
	}

	decision := Decision{Card: &card}
	if card.IsWild() {
		decision.DeclaredSuit = declareSuitForHand(g.AIHand, card)
	}
	return decision, nil
}
