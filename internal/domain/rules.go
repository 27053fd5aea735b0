package domain

// IsValidMove reports whether card may be played against the current discard
// state: the card is wild, or matches the governing suit, or matches the
// governing rank. Every legality check in the engine routes through this
// predicate.
func IsValidMove(card Card, currentSuit Suit, currentRank Rank) bool {
	return card.Rank == RankEight || card.Suit == currentSuit || card.Rank == currentRank
}
