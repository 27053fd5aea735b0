package internal

import "crazyeights/internal/domain"

// PlayableCards returns the subset of the hand that is legal against the
// current discard state, preserving hand order.
func PlayableCards(hand []domain.Card, suit domain.Suit, rank domain.Rank) []domain.Card {
	var out []domain.Card
	for _, c := range hand {
		if domain.IsValidMove(c, suit, rank) {
			out = append(out, c)
		}
	}
	return out
}

// FirstNonWild returns the first card that is not an 8, in hand order.
func FirstNonWild(cards []domain.Card) (domain.Card, bool) {
	for _, c := range cards {
		if !c.IsWild() {
			return c, true
		}
	}
	return domain.Card{}, false
}

// NonWild returns all cards that are not 8s, preserving order.
func NonWild(cards []domain.Card) []domain.Card {
	var out []domain.Card
	for _, c := range cards {
		if !c.IsWild() {
			out = append(out, c)
		}
	}
	return out
}

// SuitCounts tallies how many cards of each suit the hand holds.
func SuitCounts(hand []domain.Card) map[domain.Suit]int {
	counts := make(map[domain.Suit]int, len(domain.Suits))
	for _, c := range hand {
		counts[c.Suit]++
	}
	return counts
}

// MostHeldSuit returns the suit the hand holds most of. The scan follows the
// canonical suit order, so ties resolve to the earliest suit.
func MostHeldSuit(hand []domain.Card) domain.Suit {
	counts := SuitCounts(hand)
	best := domain.Suits[0]
	for _, s := range domain.Suits[1:] {
		if counts[s] > counts[best] {
			best = s
		}
	}
	return best
}
