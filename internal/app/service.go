package app

import (
	"errors"
	"math/rand"
	"time"

	"crazyeights/internal/bot"
	"crazyeights/internal/domain"
)

// Rejection sentinels. Each marks an operation that was refused as a no-op:
// the input state is returned unchanged and the driver may ignore the error.
// The engine is the final arbiter; a UI racing with state changes is expected
// to trip these.
var (
	ErrNotYourTurn       = errors.New("not the actor's turn")
	ErrWrongStatus       = errors.New("operation not allowed in current status")
	ErrIllegalMove       = errors.New("card is not a legal move")
	ErrAlreadyDrawn      = errors.New("already drew a card this turn")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
)

// Service is the game state machine: the sole mutator of game state. Every
// operation is a pure step from (state, input) to a new state plus the
// discrete events the transition produced.
type Service struct {
	rng *rand.Rand
}

// NewService constructs a Service with the provided rng or a time-seeded
// default. Inject a seeded rng for deterministic decks in tests.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

// NewMenuState returns a fresh idle state.
func (s *Service) NewMenuState() *domain.Game {
	return &domain.Game{
		Status:     domain.StatusMenu,
		Difficulty: domain.DifficultyMedium,
	}
}

// StartGame begins a new game at the given difficulty: builds a shuffled
// deck, removes the first non-wild card as the starting discard and enters
// the dealing phase. Allowed from any status; it discards whatever came
// before.
func (s *Service) StartGame(g *domain.Game, difficulty domain.Difficulty) (*domain.Game, []Event, error) {
	if !domain.ValidDifficulty(difficulty) {
		return g, nil, ErrUnknownDifficulty
	}

	deck := domain.ShuffleDeck(domain.NewDeck(), s.rng)

	// The game must never open on a wild card. A standard deck always has a
	// non-8 but a corrupt deck must fail loudly instead of looping.
	startIdx := -1
	for i, c := range deck {
		if !c.IsWild() {
			startIdx = i
			break
		}
	}
	if startIdx < 0 {
		return g, nil, domain.Invariantf("StartGame", "deck contains only wild cards")
	}
	starting := deck[startIdx]
	deck = append(deck[:startIdx], deck[startIdx+1:]...)

	next := &domain.Game{
		Deck:        deck,
		DiscardPile: []domain.Card{starting},
		CurrentSuit: starting.Suit,
		CurrentRank: starting.Rank,
		Turn:        domain.ActorPlayer,
		Status:      domain.StatusDealing,
		Difficulty:  difficulty,
	}

	events := []Event{{
		Kind:    EventGameStarted,
		Payload: GameStartedPayload{Difficulty: difficulty, StartingCard: starting},
	}}
	return next, events, nil
}

// DealNext performs one deal step, moving the front deck card to the player
// hand on even steps and the AI hand on odd steps. The step that completes
// both hands transitions the game to playing with the turn on the player.
// Pacing between steps belongs to the driver.
func (s *Service) DealNext(g *domain.Game) (*domain.Game, []Event, error) {
	if g.Status != domain.StatusDealing {
		return g, nil, ErrWrongStatus
	}

	dealt := len(g.PlayerHand) + len(g.AIHand)
	if dealt >= TotalDealSteps {
		return g, nil, domain.Invariantf("DealNext", "dealing status with %d cards already dealt", dealt)
	}
	if len(g.Deck) == 0 {
		return g, nil, domain.Invariantf("DealNext", "deck exhausted mid-deal")
	}

	next := g.Clone()
	card := next.Deck[0]
	next.Deck = next.Deck[1:]

	recipient := domain.ActorPlayer
	if dealt%2 == 1 {
		recipient = domain.ActorAI
	}
	if recipient == domain.ActorPlayer {
		next.PlayerHand = append(next.PlayerHand, card)
	} else {
		next.AIHand = append(next.AIHand, card)
	}

	events := []Event{{
		Kind:    EventCardDealt,
		Payload: CardDealtPayload{Recipient: recipient, Card: card, DeckSize: len(next.Deck)},
	}}

	if dealt+1 == TotalDealSteps {
		next.Status = domain.StatusPlaying
		next.Turn = domain.ActorPlayer
		events = append(events, Event{
			Kind:    EventDealingFinished,
			Payload: DealingFinishedPayload{FirstTurn: domain.ActorPlayer},
		})
	}
	return next, events, nil
}

// PlayerPlay discards the identified card from the player hand. An illegal
// card, wrong turn or wrong status is a silent rejection; a card id that is
// not in the hand at all is an invariant violation.
func (s *Service) PlayerPlay(g *domain.Game, cardID string) (*domain.Game, []Event, error) {
	if g.Status != domain.StatusPlaying {
		return g, nil, ErrWrongStatus
	}
	if g.Turn != domain.ActorPlayer {
		return g, nil, ErrNotYourTurn
	}

	card, ok := domain.FindCard(g.PlayerHand, cardID)
	if !ok {
		return g, nil, domain.Invariantf("PlayerPlay", "card %q not in player hand", cardID)
	}
	if !domain.IsValidMove(card, g.CurrentSuit, g.CurrentRank) {
		return g, nil, ErrIllegalMove
	}

	next := g.Clone()
	next.PlayerHand, _ = domain.RemoveCard(next.PlayerHand, cardID)
	next.DiscardPile = append([]domain.Card{card}, next.DiscardPile...)
	next.LastActor = domain.ActorPlayer
	next.HasDrawn = false

	events := []Event{{
		Kind:    EventCardPlayed,
		Payload: CardPlayedPayload{Actor: domain.ActorPlayer, Card: card, HandSize: len(next.PlayerHand)},
	}}

	if len(next.PlayerHand) == 0 {
		// Emptying the hand wins immediately; a final 8 never gets its suit
		// declared because the game is already over.
		next.Status = domain.StatusWon
		next.Winner = domain.ActorPlayer
		if !card.IsWild() {
			next.CurrentSuit = card.Suit
			next.CurrentRank = card.Rank
		}
		events = append(events, Event{Kind: EventGameWon, Payload: GameEndedPayload{Winner: domain.ActorPlayer}})
		return next, events, nil
	}

	if card.IsWild() {
		// Turn does not flip until the suit is declared.
		next.Status = domain.StatusChoosingSuit
		return next, events, nil
	}

	next.CurrentSuit = card.Suit
	next.CurrentRank = card.Rank
	next.Turn = domain.ActorAI
	return next, events, nil
}

// ChooseSuit declares the governing suit after the player played a wild 8.
func (s *Service) ChooseSuit(g *domain.Game, suit domain.Suit) (*domain.Game, []Event, error) {
	if g.Status != domain.StatusChoosingSuit {
		return g, nil, ErrWrongStatus
	}
	if !domain.ValidSuit(suit) {
		return g, nil, ErrIllegalMove
	}

	next := g.Clone()
	next.CurrentSuit = suit
	next.CurrentRank = domain.RankEight
	next.Status = domain.StatusPlaying
	next.Turn = domain.ActorAI
	next.HasDrawn = false

	events := []Event{{
		Kind:    EventSuitChosen,
		Payload: SuitChosenPayload{Actor: domain.ActorPlayer, Suit: suit},
	}}
	return next, events, nil
}

// PlayerDraw moves the front deck card into the player hand. Drawing a
// playable card keeps the turn with the player (who may still decline to
// play it) but a second draw in the same turn is rejected. An empty deck
// skips the turn outright.
func (s *Service) PlayerDraw(g *domain.Game) (*domain.Game, []Event, error) {
	if g.Status != domain.StatusPlaying {
		return g, nil, ErrWrongStatus
	}
	if g.Turn != domain.ActorPlayer {
		return g, nil, ErrNotYourTurn
	}
	if g.HasDrawn {
		return g, nil, ErrAlreadyDrawn
	}

	next := g.Clone()
	if len(next.Deck) == 0 {
		next.Turn = domain.ActorAI
		next.HasDrawn = false
		return next, []Event{{
			Kind:    EventTurnSkipped,
			Payload: TurnSkippedPayload{Actor: domain.ActorPlayer},
		}}, nil
	}

	card := next.Deck[0]
	next.Deck = next.Deck[1:]
	next.PlayerHand = append(next.PlayerHand, card)

	playable := domain.IsValidMove(card, next.CurrentSuit, next.CurrentRank)
	if playable {
		next.HasDrawn = true
	} else {
		next.Turn = domain.ActorAI
		next.HasDrawn = false
	}

	events := []Event{{
		Kind:    EventCardDrawn,
		Payload: CardDrawnPayload{Actor: domain.ActorPlayer, Card: card, Playable: playable, DeckSize: len(next.Deck)},
	}}
	return next, events, nil
}

// AITakeTurn asks the strategy engine for a decision and applies it through
// the same transitions a player play takes. The strategy never mutates
// state; a decision that does not hold up against the validator is a bug,
// not a game event.
func (s *Service) AITakeTurn(g *domain.Game) (*domain.Game, []Event, error) {
	if g.Status != domain.StatusPlaying {
		return g, nil, ErrWrongStatus
	}
	if g.Turn != domain.ActorAI {
		return g, nil, ErrNotYourTurn
	}

	brain, err := bot.NewBrain(g.Difficulty)
	if err != nil {
		return g, nil, domain.Invariantf("AITakeTurn", "no strategy for difficulty %q", g.Difficulty)
	}
	decision, err := brain.ChooseMove(g, s.rng)
	if err != nil {
		return g, nil, err
	}

	next := g.Clone()

	switch {
	case decision.Skip:
		next.Turn = domain.ActorPlayer
		next.HasDrawn = false
		return next, []Event{{
			Kind:    EventTurnSkipped,
			Payload: TurnSkippedPayload{Actor: domain.ActorAI},
		}}, nil

	case decision.Draw:
		if len(next.Deck) == 0 {
			return g, nil, domain.Invariantf("AITakeTurn", "strategy drew from an empty deck")
		}
		card := next.Deck[0]
		next.Deck = next.Deck[1:]
		next.AIHand = append(next.AIHand, card)
		// The AI does not replay a drawn card; its turn ends here.
		next.Turn = domain.ActorPlayer
		next.HasDrawn = false
		return next, []Event{{
			Kind:    EventCardDrawn,
			Payload: CardDrawnPayload{Actor: domain.ActorAI, Card: card, DeckSize: len(next.Deck)},
		}}, nil
	}

	if decision.Card == nil {
		return g, nil, domain.Invariantf("AITakeTurn", "strategy returned an empty decision")
	}
	card, ok := domain.FindCard(next.AIHand, decision.Card.ID)
	if !ok {
		return g, nil, domain.Invariantf("AITakeTurn", "strategy chose card %q not in AI hand", decision.Card.ID)
	}
	if !domain.IsValidMove(card, next.CurrentSuit, next.CurrentRank) {
		return g, nil, domain.Invariantf("AITakeTurn", "strategy chose illegal card %s of %s", card.Rank, card.Suit)
	}

	next.AIHand, _ = domain.RemoveCard(next.AIHand, card.ID)
	next.DiscardPile = append([]domain.Card{card}, next.DiscardPile...)
	next.LastActor = domain.ActorAI

	events := []Event{{
		Kind:    EventCardPlayed,
		Payload: CardPlayedPayload{Actor: domain.ActorAI, Card: card, HandSize: len(next.AIHand)},
	}}

	if len(next.AIHand) == 0 {
		next.Status = domain.StatusLost
		next.Winner = domain.ActorAI
		if !card.IsWild() {
			next.CurrentSuit = card.Suit
			next.CurrentRank = card.Rank
		}
		events = append(events, Event{Kind: EventGameLost, Payload: GameEndedPayload{Winner: domain.ActorAI}})
		return next, events, nil
	}

	if card.IsWild() {
		if !domain.ValidSuit(decision.DeclaredSuit) {
			return g, nil, domain.Invariantf("AITakeTurn", "strategy played a wild without declaring a suit")
		}
		next.CurrentSuit = decision.DeclaredSuit
		next.CurrentRank = domain.RankEight
		events = append(events, Event{
			Kind:    EventSuitChosen,
			Payload: SuitChosenPayload{Actor: domain.ActorAI, Suit: decision.DeclaredSuit},
		})
	} else {
		next.CurrentSuit = card.Suit
		next.CurrentRank = card.Rank
	}

	next.Turn = domain.ActorPlayer
	next.HasDrawn = false
	return next, events, nil
}

// Reset abandons the current game and returns to the menu. The chosen
// difficulty survives so the menu can preselect it.
func (s *Service) Reset(g *domain.Game) (*domain.Game, []Event, error) {
	next := s.NewMenuState()
	if domain.ValidDifficulty(g.Difficulty) {
		next.Difficulty = g.Difficulty
	}
	return next, nil, nil
}
