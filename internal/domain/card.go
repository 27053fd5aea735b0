package domain

import (
	"math/rand"

	"github.com/google/uuid"
)

// Suit is one of the four French suits.
type Suit string

const (
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Clubs    Suit = "clubs"
	Spades   Suit = "spades"
)

// Suits is the canonical suit order. Every frequency scan iterates it, so
// ties always resolve to the earliest suit in this order.
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

// Rank is a card face value.
type Rank string

// RankEight is the wild rank: playable on anything, requires a suit
// declaration when played with cards still in hand.
const RankEight Rank = "8"

// Ranks in ascending face order.
var Ranks = []Rank{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

// DeckSize is the size of the full card universe.
const DeckSize = 52

// Card is a single playing card. ID is assigned once at deck construction
// and is the handle used to locate a card in a hand; suit+rank are never
// used for lookup.
type Card struct {
	ID   string `json:"id"`
	Suit Suit   `json:"suit"`
	Rank Rank   `json:"rank"`
}

// IsWild reports whether the card is a rank-8 wild card.
func (c Card) IsWild() bool {
	return c.Rank == RankEight
}

// NewDeck returns the ordered 52-card deck, each card tagged with a fresh id.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, s := range Suits {
		for _, r := range Ranks {
			deck = append(deck, Card{ID: uuid.NewString(), Suit: s, Rank: r})
		}
	}
	return deck
}

// ShuffleDeck returns a uniformly shuffled copy of the given deck.
func ShuffleDeck(deck []Card, rng *rand.Rand) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// ValidSuit reports whether s is one of the four suits.
func ValidSuit(s Suit) bool {
	for _, known := range Suits {
		if s == known {
			return true
		}
	}
	return false
}
