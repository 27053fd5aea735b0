package bot

import (
	"math/rand"

	"crazyeights/internal/bot/internal"
	"crazyeights/internal/domain"
)

// HardBot saves its 8s and, among the playable non-8s, leads the suit it
// holds the most of, setting up future turns. Suit counts run over the whole
// current hand; a tie keeps the card encountered first in hand order.
type HardBot struct{}

func (b *HardBot) ChooseMove(g *domain.Game, rng *rand.Rand) (Decision, error) {
	playable := internal.PlayableCards(g.AIHand, g.CurrentSuit, g.CurrentRank)
	if len(playable) == 0 {
		return noPlayDecision(g), nil
	}

	var card domain.Card
	if nonWilds := internal.NonWild(playable); len(nonWilds) > 0 {
		counts := internal.SuitCounts(g.AIHand)
		card = nonWilds[0]
		for _, c := range nonWilds[1:] {
			if counts[c.Suit] > counts[card.Suit] {
				card = c
			}
		}
	} else {
		card = playable[0]
	}

	decision := Decision{Card: &card}
	if card.IsWild() {
		decision.DeclaredSuit = declareSuitForHand(g.AIHand, card)
	}
	return decision, nil
}
