package nakama

import (
	"crazyeights/internal/app"
	"crazyeights/internal/domain"
)

// Client request payloads.

type startGameRequest struct {
	Difficulty string `json:"difficulty"`
}

type playCardRequest struct {
	CardID string `json:"card_id"`
}

type chooseSuitRequest struct {
	Suit string `json:"suit"`
}

// Server event payloads. The AI hand and the deck order never cross the
// wire; the engine has no hidden-information advantage and neither should a
// client inspecting traffic.

type wireCard struct {
	ID   string `json:"id"`
	Suit string `json:"suit"`
	Rank string `json:"rank"`
}

func toWireCard(c domain.Card) wireCard {
	return wireCard{ID: c.ID, Suit: string(c.Suit), Rank: string(c.Rank)}
}

type gameStartedEvent struct {
	Difficulty   string   `json:"difficulty"`
	StartingCard wireCard `json:"starting_card"`
	OpponentName string   `json:"opponent_name"`
}

type cardDealtEvent struct {
	Recipient string    `json:"recipient"`
	Card      *wireCard `json:"card,omitempty"` // omitted for the AI hand
	DeckCount int       `json:"deck_count"`
}

type dealingFinishedEvent struct {
	FirstTurn string `json:"first_turn"`
}

type cardPlayedEvent struct {
	Actor     string   `json:"actor"`
	Card      wireCard `json:"card"`
	HandCount int      `json:"hand_count"`
}

type suitChosenEvent struct {
	Actor string `json:"actor"`
	Suit  string `json:"suit"`
}

type cardDrawnEvent struct {
	Actor     string    `json:"actor"`
	Card      *wireCard `json:"card,omitempty"` // omitted for AI draws
	Playable  bool      `json:"playable"`
	DeckCount int       `json:"deck_count"`
}

type turnSkippedEvent struct {
	Actor string `json:"actor"`
}

type gameEndedEvent struct {
	Winner string `json:"winner"`
}

type gameErrorEvent struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// stateSnapshot is the full redacted view broadcast after every transition.
type stateSnapshot struct {
	Status       string     `json:"status"`
	Turn         string     `json:"turn"`
	Difficulty   string     `json:"difficulty"`
	PlayerHand   []wireCard `json:"player_hand"`
	AIHandCount  int        `json:"ai_hand_count"`
	DeckCount    int        `json:"deck_count"`
	DiscardTop   *wireCard  `json:"discard_top,omitempty"`
	CurrentSuit  string     `json:"current_suit"`
	CurrentRank  string     `json:"current_rank"`
	Winner       string     `json:"winner,omitempty"`
	HasDrawn     bool       `json:"has_drawn"`
	OpponentName string     `json:"opponent_name,omitempty"`
}

func buildSnapshot(g *domain.Game, opponentName string) stateSnapshot {
	snap := stateSnapshot{
		Status:       string(g.Status),
		Turn:         string(g.Turn),
		Difficulty:   string(g.Difficulty),
		AIHandCount:  len(g.AIHand),
		DeckCount:    len(g.Deck),
		CurrentSuit:  string(g.CurrentSuit),
		CurrentRank:  string(g.CurrentRank),
		Winner:       string(g.Winner),
		HasDrawn:     g.HasDrawn,
		OpponentName: opponentName,
	}
	snap.PlayerHand = make([]wireCard, len(g.PlayerHand))
	for i, c := range g.PlayerHand {
		snap.PlayerHand[i] = toWireCard(c)
	}
	if top, ok := g.TopDiscard(); ok {
		wc := toWireCard(top)
		snap.DiscardTop = &wc
	}
	return snap
}

// eventToWire maps an engine event to its opcode and wire payload,
// redacting anything the player is not entitled to see.
func eventToWire(ev app.Event, opponentName string) (int64, any, bool) {
	switch ev.Kind {
	case app.EventGameStarted:
		p := ev.Payload.(app.GameStartedPayload)
		return OpGameStarted, gameStartedEvent{
			Difficulty:   string(p.Difficulty),
			StartingCard: toWireCard(p.StartingCard),
			OpponentName: opponentName,
		}, true
	case app.EventCardDealt:
		p := ev.Payload.(app.CardDealtPayload)
		out := cardDealtEvent{Recipient: string(p.Recipient), DeckCount: p.DeckSize}
		if p.Recipient == domain.ActorPlayer {
			wc := toWireCard(p.Card)
			out.Card = &wc
		}
		return OpCardDealt, out, true
	case app.EventDealingFinished:
		p := ev.Payload.(app.DealingFinishedPayload)
		return OpDealingFinished, dealingFinishedEvent{FirstTurn: string(p.FirstTurn)}, true
	case app.EventCardPlayed:
		p := ev.Payload.(app.CardPlayedPayload)
		return OpCardPlayed, cardPlayedEvent{
			Actor:     string(p.Actor),
			Card:      toWireCard(p.Card),
			HandCount: p.HandSize,
		}, true
	case app.EventSuitChosen:
		p := ev.Payload.(app.SuitChosenPayload)
		return OpSuitChosen, suitChosenEvent{Actor: string(p.Actor), Suit: string(p.Suit)}, true
	case app.EventCardDrawn:
		p := ev.Payload.(app.CardDrawnPayload)
		out := cardDrawnEvent{Actor: string(p.Actor), Playable: p.Playable, DeckCount: p.DeckSize}
		if p.Actor == domain.ActorPlayer {
			wc := toWireCard(p.Card)
			out.Card = &wc
		}
		return OpCardDrawn, out, true
	case app.EventTurnSkipped:
		p := ev.Payload.(app.TurnSkippedPayload)
		return OpTurnSkipped, turnSkippedEvent{Actor: string(p.Actor)}, true
	case app.EventGameWon:
		p := ev.Payload.(app.GameEndedPayload)
		return OpGameWon, gameEndedEvent{Winner: string(p.Winner)}, true
	case app.EventGameLost:
		p := ev.Payload.(app.GameEndedPayload)
		return OpGameLost, gameEndedEvent{Winner: string(p.Winner)}, true
	}
	return 0, nil, false
}
