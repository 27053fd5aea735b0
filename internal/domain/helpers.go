package domain

// FindCard locates a card in a hand by id.
func FindCard(hand []Card, id string) (Card, bool) {
	for _, c := range hand {
		if c.ID == id {
			return c, true
		}
	}
	return Card{}, false
}

// RemoveCard returns a copy of the hand without the card carrying the given
// id. The second return is false when the id was not present.
func RemoveCard(hand []Card, id string) ([]Card, bool) {
	out := make([]Card, 0, len(hand))
	found := false
	for _, c := range hand {
		if !found && c.ID == id {
			found = true
			continue
		}
		out = append(out, c)
	}
	return out, found
}

// CountCards returns the total number of cards across every zone. Once a
// game has been started this must always equal DeckSize.
func CountCards(g *Game) int {
	return len(g.Deck) + len(g.PlayerHand) + len(g.AIHand) + len(g.DiscardPile)
}
