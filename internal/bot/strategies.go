package bot

import (
	"crazyeights/internal/bot/internal"
	"crazyeights/internal/domain"
)

// noPlayDecision is the shared fallback when the hand has no legal card:
// draw once if the deck allows it, otherwise skip. Either way the turn ends.
func noPlayDecision(g *domain.Game) Decision {
	if len(g.Deck) > 0 {
		return Decision{Draw: true}
	}
	return Decision{Skip: true}
}

// declareSuitForHand picks the declared suit after playing a wild: the suit
// the remaining hand holds most of, ties to the canonical suit order.
func declareSuitForHand(hand []domain.Card, played domain.Card) domain.Suit {
	remaining, _ := domain.RemoveCard(hand, played.ID)
	return internal.MostHeldSuit(remaining)
}
