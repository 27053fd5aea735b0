package app

import "crazyeights/internal/domain"

// EventKind identifies emitted engine events. Drivers map them to whatever
// the presentation layer needs (sounds, animations, wire opcodes); the
// engine itself never calls out.
type EventKind string

const (
	EventGameStarted     EventKind = "game_started"
	EventCardDealt       EventKind = "card_dealt"
	EventDealingFinished EventKind = "dealing_finished"
	EventCardPlayed      EventKind = "card_played"
	EventSuitChosen      EventKind = "suit_chosen"
	EventCardDrawn       EventKind = "card_drawn"
	EventTurnSkipped     EventKind = "turn_skipped"
	EventGameWon         EventKind = "game_won"
	EventGameLost        EventKind = "game_lost"
)

// Event is a discrete engine event with a typed payload.
type Event struct {
	Kind    EventKind
	Payload any
}

type GameStartedPayload struct {
	Difficulty   domain.Difficulty
	StartingCard domain.Card
}

type CardDealtPayload struct {
	Recipient domain.Actor
	Card      domain.Card
	DeckSize  int
}

type DealingFinishedPayload struct {
	FirstTurn domain.Actor
}

type CardPlayedPayload struct {
	Actor    domain.Actor
	Card     domain.Card
	HandSize int
}

type SuitChosenPayload struct {
	Actor domain.Actor
	Suit  domain.Suit
}

type CardDrawnPayload struct {
	Actor    domain.Actor
	Card     domain.Card
	Playable bool
	DeckSize int
}

type TurnSkippedPayload struct {
	Actor domain.Actor
}

type GameEndedPayload struct {
	Winner domain.Actor
}
