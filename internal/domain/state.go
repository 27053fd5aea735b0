package domain

// Status represents the lifecycle stage of a game.
type Status string

const (
	// StatusMenu is the idle state before a game has been started.
	StatusMenu Status = "menu"
	// StatusDealing is the initial deal, one card per step.
	StatusDealing Status = "dealing"
	// StatusPlaying is the active game state.
	StatusPlaying Status = "playing"
	// StatusWon and StatusLost are terminal; only a new game exits them.
	StatusWon  Status = "won"
	StatusLost Status = "lost"
	// StatusChoosingSuit is the sub-state after the player discards a wild 8
	// and before a governing suit has been declared.
	StatusChoosingSuit Status = "choosing_suit"
)

// Actor identifies a side of the table.
type Actor string

const (
	ActorPlayer Actor = "player"
	ActorAI     Actor = "ai"
	ActorNone   Actor = ""
)

// Difficulty selects the AI move-selection policy.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ValidDifficulty reports whether d names a known AI tier.
func ValidDifficulty(d Difficulty) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Game holds the authoritative state of a single Crazy Eights session.
// Transition operations never mutate a Game in place; they clone it and
// return the successor state, so drivers can snapshot or diff freely.
type Game struct {
	Deck        []Card `json:"deck"`
	PlayerHand  []Card `json:"player_hand"`
	AIHand      []Card `json:"ai_hand"`
	DiscardPile []Card `json:"discard_pile"` // most recent first

	// CurrentSuit and CurrentRank are the matching criteria the next play
	// must satisfy. They mirror the discard top except after a wild 8, when
	// CurrentSuit is the declared suit.
	CurrentSuit Suit `json:"current_suit"`
	CurrentRank Rank `json:"current_rank"`

	Turn       Actor      `json:"turn"`
	Status     Status     `json:"status"`
	Difficulty Difficulty `json:"difficulty"`
	Winner     Actor      `json:"winner"`
	LastActor  Actor      `json:"last_actor"`

	// HasDrawn marks that the player already drew a card this turn. A second
	// draw before playing is rejected; the flag clears whenever the turn
	// changes hands.
	HasDrawn bool `json:"has_drawn"`
}

// Clone returns a deep copy of the game state.
func (g *Game) Clone() *Game {
	out := *g
	out.Deck = append([]Card(nil), g.Deck...)
	out.PlayerHand = append([]Card(nil), g.PlayerHand...)
	out.AIHand = append([]Card(nil), g.AIHand...)
	out.DiscardPile = append([]Card(nil), g.DiscardPile...)
	return &out
}

// TopDiscard returns the most recently discarded card.
func (g *Game) TopDiscard() (Card, bool) {
	if len(g.DiscardPile) == 0 {
		return Card{}, false
	}
	return g.DiscardPile[0], true
}

// Terminal reports whether the game has concluded.
func (g *Game) Terminal() bool {
	return g.Status == StatusWon || g.Status == StatusLost
}
