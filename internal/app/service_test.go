package app

import (
	"errors"
	"math/rand"
	"testing"

	"crazyeights/internal/domain"
)

func card(id string, suit domain.Suit, rank domain.Rank) domain.Card {
	return domain.Card{ID: id, Suit: suit, Rank: rank}
}

// playingState builds a mid-game state with the player on turn.
func playingState() *domain.Game {
	return &domain.Game{
		Deck: []domain.Card{
			card("d1", domain.Clubs, "4"),
			card("d2", domain.Spades, "J"),
		},
		PlayerHand: []domain.Card{
			card("p1", domain.Hearts, "5"),
			card("p2", domain.Clubs, domain.RankEight),
			card("p3", domain.Diamonds, "2"),
		},
		AIHand: []domain.Card{
			card("a1", domain.Hearts, "9"),
			card("a2", domain.Spades, "K"),
		},
		DiscardPile: []domain.Card{card("t1", domain.Hearts, "K")},
		CurrentSuit: domain.Hearts,
		CurrentRank: "K",
		Turn:        domain.ActorPlayer,
		Status:      domain.StatusPlaying,
		Difficulty:  domain.DifficultyMedium,
	}
}

func requireInvariant(t *testing.T, err error) {
	t.Helper()
	var inv *domain.InvariantError
	if !errors.As(err, &inv) {
		t.Fatalf("error = %v, want an invariant violation", err)
	}
}

func TestStartGameEntersDealing(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(42)))
	g := svc.NewMenuState()

	next, evs, err := svc.StartGame(g, domain.DifficultyHard)
	if err != nil {
		t.Fatalf("start game error: %v", err)
	}
	if next.Status != domain.StatusDealing {
		t.Fatalf("status = %s, want dealing", next.Status)
	}
	if next.Turn != domain.ActorPlayer {
		t.Fatalf("turn = %s, want player", next.Turn)
	}
	if next.Difficulty != domain.DifficultyHard {
		t.Fatalf("difficulty = %s, want hard", next.Difficulty)
	}
	if len(next.Deck) != 51 || len(next.DiscardPile) != 1 {
		t.Fatalf("deck = %d, discard = %d, want 51 and 1", len(next.Deck), len(next.DiscardPile))
	}

	top, _ := next.TopDiscard()
	if top.IsWild() {
		t.Fatalf("starting card must not be an 8")
	}
	if next.CurrentSuit != top.Suit || next.CurrentRank != top.Rank {
		t.Fatalf("matching criteria %s/%s do not mirror the starting card %s of %s",
			next.CurrentSuit, next.CurrentRank, top.Rank, top.Suit)
	}
	if domain.CountCards(next) != domain.DeckSize {
		t.Fatalf("card count = %d, want %d", domain.CountCards(next), domain.DeckSize)
	}

	if len(evs) != 1 || evs[0].Kind != EventGameStarted {
		t.Fatalf("events = %v, want a single game_started", evs)
	}
	payload := evs[0].Payload.(GameStartedPayload)
	if payload.StartingCard.ID != top.ID {
		t.Fatalf("game_started carries card %q, want %q", payload.StartingCard.ID, top.ID)
	}
}

func TestStartGameUnknownDifficulty(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(1)))
	g := svc.NewMenuState()

	next, _, err := svc.StartGame(g, "nightmare")
	if !errors.Is(err, ErrUnknownDifficulty) {
		t.Fatalf("error = %v, want ErrUnknownDifficulty", err)
	}
	if next != g {
		t.Fatalf("rejected operation must return the input state unchanged")
	}
}

func TestStartGameRestartsFromAnyStatus(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(3)))
	g := playingState()
	g.Status = domain.StatusWon

	next, _, err := svc.StartGame(g, domain.DifficultyEasy)
	if err != nil {
		t.Fatalf("start game error: %v", err)
	}
	if next.Status != domain.StatusDealing {
		t.Fatalf("status = %s, want dealing", next.Status)
	}
	if len(next.PlayerHand) != 0 || len(next.AIHand) != 0 {
		t.Fatalf("restart must discard previous hands")
	}
}

func TestDealSequence(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(42)))
	g, _, err := svc.StartGame(svc.NewMenuState(), domain.DifficultyMedium)
	if err != nil {
		t.Fatalf("start game error: %v", err)
	}

	for step := 0; step < TotalDealSteps; step++ {
		next, evs, err := svc.DealNext(g)
		if err != nil {
			t.Fatalf("deal step %d error: %v", step, err)
		}

		wantRecipient := domain.ActorPlayer
		if step%2 == 1 {
			wantRecipient = domain.ActorAI
		}
		payload := evs[0].Payload.(CardDealtPayload)
		if payload.Recipient != wantRecipient {
			t.Fatalf("step %d dealt to %s, want %s", step, payload.Recipient, wantRecipient)
		}
		if domain.CountCards(next) != domain.DeckSize {
			t.Fatalf("step %d broke conservation: %d cards", step, domain.CountCards(next))
		}

		if step < TotalDealSteps-1 {
			if next.Status != domain.StatusDealing {
				t.Fatalf("step %d status = %s, want dealing", step, next.Status)
			}
		} else {
			if next.Status != domain.StatusPlaying {
				t.Fatalf("final step status = %s, want playing", next.Status)
			}
			if next.Turn != domain.ActorPlayer {
				t.Fatalf("first turn = %s, want player", next.Turn)
			}
			if len(evs) != 2 || evs[1].Kind != EventDealingFinished {
				t.Fatalf("final step events = %v, want card_dealt then dealing_finished", evs)
			}
		}
		g = next
	}

	if len(g.PlayerHand) != InitialHandSize || len(g.AIHand) != InitialHandSize {
		t.Fatalf("hands = %d/%d, want %d each", len(g.PlayerHand), len(g.AIHand), InitialHandSize)
	}
	if len(g.Deck) != domain.DeckSize-2*InitialHandSize-1 {
		t.Fatalf("deck = %d, want %d", len(g.Deck), domain.DeckSize-2*InitialHandSize-1)
	}
}

func TestDealNextWrongStatus(t *testing.T) {
	svc := NewService(nil)
	g := svc.NewMenuState()

	next, _, err := svc.DealNext(g)
	if !errors.Is(err, ErrWrongStatus) {
		t.Fatalf("error = %v, want ErrWrongStatus", err)
	}
	if next != g {
		t.Fatalf("rejected operation must return the input state unchanged")
	}
}

func TestDealNextOverdealtIsInvariant(t *testing.T) {
	svc := NewService(nil)
	g := playingState()
	g.Status = domain.StatusDealing
	g.PlayerHand = domain.NewDeck()[:8]
	g.AIHand = domain.NewDeck()[:8]

	_, _, err := svc.DealNext(g)
	requireInvariant(t, err)
}

func TestPlayerPlaySuitMatch(t *testing.T) {
	svc := NewService(nil)
	g := playingState()

	next, evs, err := svc.PlayerPlay(g, "p1") // hearts 5 on hearts K
	if err != nil {
		t.Fatalf("play error: %v", err)
	}
	if top, _ := next.TopDiscard(); top.ID != "p1" {
		t.Fatalf("discard top = %q, want p1", top.ID)
	}
	if next.CurrentSuit != domain.Hearts || next.CurrentRank != "5" {
		t.Fatalf("matching criteria = %s/%s, want hearts/5", next.CurrentSuit, next.CurrentRank)
	}
	if next.Turn != domain.ActorAI {
		t.Fatalf("turn = %s, want ai", next.Turn)
	}
	if len(next.PlayerHand) != 2 {
		t.Fatalf("player hand = %d, want 2", len(next.PlayerHand))
	}
	if len(evs) != 1 || evs[0].Kind != EventCardPlayed {
		t.Fatalf("events = %v, want a single card_played", evs)
	}

	// Copy-on-write: the input state is untouched.
	if len(g.PlayerHand) != 3 || g.Turn != domain.ActorPlayer {
		t.Fatalf("PlayerPlay mutated its input state")
	}
}

func TestPlayerPlayIllegalCard(t *testing.T) {
	svc := NewService(nil)
	g := playingState()

	next, _, err := svc.PlayerPlay(g, "p3") // diamonds 2 on hearts K
	if !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("error = %v, want ErrIllegalMove", err)
	}
	if next != g {
		t.Fatalf("rejected operation must return the input state unchanged")
	}
}

func TestPlayerPlayOutOfTurn(t *testing.T) {
	svc := NewService(nil)
	g := playingState()
	g.Turn = domain.ActorAI

	_, _, err := svc.PlayerPlay(g, "p1")
	if !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("error = %v, want ErrNotYourTurn", err)
	}
}

func TestPlayerPlayWrongStatus(t *testing.T) {
	svc := NewService(nil)
	g := playingState()
	g.Status = domain.StatusChoosingSuit

	_, _, err := svc.PlayerPlay(g, "p1")
	if !errors.Is(err, ErrWrongStatus) {
		t.Fatalf("error = %v, want ErrWrongStatus", err)
	}
}

func TestPlayerPlayUnknownCardIsInvariant(t *testing.T) {
	svc := NewService(nil)
	g := playingState()

	_, _, err := svc.PlayerPlay(g, "nope")
	requireInvariant(t, err)
}

func TestPlayerPlayWildEntersChoosingSuit(t *testing.T) {
	svc := NewService(nil)
	g := playingState()

	next, _, err := svc.PlayerPlay(g, "p2") // clubs 8
	if err != nil {
		t.Fatalf("play error: %v", err)
	}
	if next.Status != domain.StatusChoosingSuit {
		t.Fatalf("status = %s, want choosing_suit", next.Status)
	}
	// Turn holds until the suit is declared; matching criteria are untouched.
	if next.Turn != domain.ActorPlayer {
		t.Fatalf("turn = %s, want player", next.Turn)
	}
	if next.CurrentSuit != domain.Hearts || next.CurrentRank != "K" {
		t.Fatalf("matching criteria changed before the suit declaration")
	}
}

func TestPlayerPlayLastCardWins(t *testing.T) {
	svc := NewService(nil)
	g := playingState()
	g.PlayerHand = []domain.Card{card("p1", domain.Hearts, "5")}

	next, evs, err := svc.PlayerPlay(g, "p1")
	if err != nil {
		t.Fatalf("play error: %v", err)
	}
	if next.Status != domain.StatusWon || next.Winner != domain.ActorPlayer {
		t.Fatalf("status/winner = %s/%s, want won/player", next.Status, next.Winner)
	}
	if evs[len(evs)-1].Kind != EventGameWon {
		t.Fatalf("final event = %v, want game_won", evs[len(evs)-1].Kind)
	}
}

func TestPlayerPlayLastCardWildWinsWithoutDeclaration(t *testing.T) {
	svc := NewService(nil)
	g := playingState()
	g.PlayerHand = []domain.Card{card("p2", domain.Clubs, domain.RankEight)}

	next, _, err := svc.PlayerPlay(g, "p2")
	if err != nil {
		t.Fatalf("play error: %v", err)
	}
	if next.Status != domain.StatusWon {
		t.Fatalf("status = %s, want won", next.Status)
	}
	// The winning 8 never gets its suit declared.
	if next.CurrentSuit != domain.Hearts || next.CurrentRank != "K" {
		t.Fatalf("matching criteria = %s/%s, want untouched hearts/K", next.CurrentSuit, next.CurrentRank)
	}
}

func TestChooseSuit(t *testing.T) {
	svc := NewService(nil)
	g := playingState()
	g.Status = domain.StatusChoosingSuit
	g.HasDrawn = true

	next, evs, err := svc.ChooseSuit(g, domain.Spades)
	if err != nil {
		t.Fatalf("choose suit error: %v", err)
	}
	if next.CurrentSuit != domain.Spades || next.CurrentRank != domain.RankEight {
		t.Fatalf("matching criteria = %s/%s, want spades/8", next.CurrentSuit, next.CurrentRank)
	}
	if next.Status != domain.StatusPlaying || next.Turn != domain.ActorAI {
		t.Fatalf("status/turn = %s/%s, want playing/ai", next.Status, next.Turn)
	}
	if next.HasDrawn {
		t.Fatalf("draw flag must clear when the turn changes hands")
	}
	if len(evs) != 1 || evs[0].Kind != EventSuitChosen {
		t.Fatalf("events = %v, want a single suit_chosen", evs)
	}
}

func TestChooseSuitRejections(t *testing.T) {
	svc := NewService(nil)

	g := playingState()
	if _, _, err := svc.ChooseSuit(g, domain.Spades); !errors.Is(err, ErrWrongStatus) {
		t.Fatalf("error = %v, want ErrWrongStatus", err)
	}

	g.Status = domain.StatusChoosingSuit
	if _, _, err := svc.ChooseSuit(g, "stars"); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("error = %v, want ErrIllegalMove", err)
	}
}

func TestPlayerDrawPlayableKeepsTurn(t *testing.T) {
	svc := NewService(nil)
	g := playingState()
	g.Deck = []domain.Card{card("d1", domain.Hearts, "2")} // playable on hearts K

	next, evs, err := svc.PlayerDraw(g)
	if err != nil {
		t.Fatalf("draw error: %v", err)
	}
	if next.Turn != domain.ActorPlayer {
		t.Fatalf("turn = %s, want player to keep the turn", next.Turn)
	}
	if !next.HasDrawn {
		t.Fatalf("draw flag must be set after drawing a playable card")
	}
	payload := evs[0].Payload.(CardDrawnPayload)
	if !payload.Playable {
		t.Fatalf("card_drawn payload should mark the card playable")
	}

	// A second draw in the same turn is refused.
	if _, _, err := svc.PlayerDraw(next); !errors.Is(err, ErrAlreadyDrawn) {
		t.Fatalf("second draw error = %v, want ErrAlreadyDrawn", err)
	}
}

func TestPlayerDrawUnplayablePassesTurn(t *testing.T) {
	svc := NewService(nil)
	g := playingState()
	g.Deck = []domain.Card{card("d1", domain.Clubs, "4")} // dead against hearts K

	next, _, err := svc.PlayerDraw(g)
	if err != nil {
		t.Fatalf("draw error: %v", err)
	}
	if next.Turn != domain.ActorAI {
		t.Fatalf("turn = %s, want ai", next.Turn)
	}
	if next.HasDrawn {
		t.Fatalf("draw flag must clear when the turn passes")
	}
	if len(next.PlayerHand) != 4 {
		t.Fatalf("player hand = %d, want 4", len(next.PlayerHand))
	}
}

func TestPlayerDrawEmptyDeckSkipsTurn(t *testing.T) {
	svc := NewService(nil)
	g := playingState()
	g.Deck = nil

	next, evs, err := svc.PlayerDraw(g)
	if err != nil {
		t.Fatalf("draw error: %v", err)
	}
	if next.Turn != domain.ActorAI {
		t.Fatalf("turn = %s, want ai", next.Turn)
	}
	if len(next.PlayerHand) != 3 {
		t.Fatalf("player hand changed on an empty-deck skip")
	}
	if len(evs) != 1 || evs[0].Kind != EventTurnSkipped {
		t.Fatalf("events = %v, want a single turn_skipped", evs)
	}
}

func TestAITakeTurnHardPlaysMostHeldSuit(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(5)))
	g := playingState()
	g.Turn = domain.ActorAI
	g.Difficulty = domain.DifficultyHard
	g.CurrentSuit = domain.Hearts
	g.CurrentRank = "3"
	g.AIHand = []domain.Card{
		card("a1", domain.Hearts, "5"), // playable via suit
		card("a2", domain.Clubs, "3"),  // playable via rank
		card("a3", domain.Clubs, "9"),
		card("a4", domain.Clubs, "J"),
	}

	next, _, err := svc.AITakeTurn(g)
	if err != nil {
		t.Fatalf("ai turn error: %v", err)
	}
	// Clubs outnumber hearts three to one, so the clubs 3 leads.
	if top, _ := next.TopDiscard(); top.ID != "a2" {
		t.Fatalf("discard top = %q, want a2", top.ID)
	}
	if next.CurrentSuit != domain.Clubs || next.CurrentRank != "3" {
		t.Fatalf("matching criteria = %s/%s, want clubs/3", next.CurrentSuit, next.CurrentRank)
	}
	if next.Turn != domain.ActorPlayer {
		t.Fatalf("turn = %s, want player", next.Turn)
	}
}

func TestAITakeTurnWildDeclaresSuit(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(5)))
	g := playingState()
	g.Turn = domain.ActorAI
	g.Difficulty = domain.DifficultyMedium
	g.AIHand = []domain.Card{
		card("w1", domain.Spades, domain.RankEight),
		card("a2", domain.Diamonds, "4"),
		card("a3", domain.Diamonds, "9"),
	}
	// Hearts K on top: only the 8 is playable.

	next, evs, err := svc.AITakeTurn(g)
	if err != nil {
		t.Fatalf("ai turn error: %v", err)
	}
	if next.CurrentSuit != domain.Diamonds || next.CurrentRank != domain.RankEight {
		t.Fatalf("matching criteria = %s/%s, want diamonds/8", next.CurrentSuit, next.CurrentRank)
	}

	foundChoice := false
	for _, ev := range evs {
		if ev.Kind == EventSuitChosen {
			foundChoice = true
			payload := ev.Payload.(SuitChosenPayload)
			if payload.Actor != domain.ActorAI || payload.Suit != domain.Diamonds {
				t.Fatalf("suit_chosen payload = %+v, want ai/diamonds", payload)
			}
		}
	}
	if !foundChoice {
		t.Fatalf("expected a suit_chosen event for the AI wild")
	}
}

func TestAITakeTurnLastCardLoses(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(5)))
	g := playingState()
	g.Turn = domain.ActorAI
	g.AIHand = []domain.Card{card("a1", domain.Hearts, "9")}

	next, evs, err := svc.AITakeTurn(g)
	if err != nil {
		t.Fatalf("ai turn error: %v", err)
	}
	if next.Status != domain.StatusLost || next.Winner != domain.ActorAI {
		t.Fatalf("status/winner = %s/%s, want lost/ai", next.Status, next.Winner)
	}
	if evs[len(evs)-1].Kind != EventGameLost {
		t.Fatalf("final event = %v, want game_lost", evs[len(evs)-1].Kind)
	}
}

func TestAITakeTurnDrawsWhenStuck(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(5)))
	g := playingState()
	g.Turn = domain.ActorAI
	g.AIHand = []domain.Card{card("a1", domain.Clubs, "4")} // dead against hearts K

	next, evs, err := svc.AITakeTurn(g)
	if err != nil {
		t.Fatalf("ai turn error: %v", err)
	}
	if len(next.AIHand) != 2 || len(next.Deck) != 1 {
		t.Fatalf("ai hand = %d, deck = %d, want 2 and 1", len(next.AIHand), len(next.Deck))
	}
	if next.Turn != domain.ActorPlayer {
		t.Fatalf("turn = %s, want player", next.Turn)
	}
	if len(evs) != 1 || evs[0].Kind != EventCardDrawn {
		t.Fatalf("events = %v, want a single card_drawn", evs)
	}
}

func TestAITakeTurnSkipsOnEmptyDeck(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(5)))
	g := playingState()
	g.Turn = domain.ActorAI
	g.Deck = nil
	g.AIHand = []domain.Card{card("a1", domain.Clubs, "4")}

	next, evs, err := svc.AITakeTurn(g)
	if err != nil {
		t.Fatalf("ai turn error: %v", err)
	}
	if next.Turn != domain.ActorPlayer {
		t.Fatalf("turn = %s, want player", next.Turn)
	}
	if len(evs) != 1 || evs[0].Kind != EventTurnSkipped {
		t.Fatalf("events = %v, want a single turn_skipped", evs)
	}
}

func TestAITakeTurnOutOfTurn(t *testing.T) {
	svc := NewService(nil)
	g := playingState()

	_, _, err := svc.AITakeTurn(g)
	if !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("error = %v, want ErrNotYourTurn", err)
	}
}

func TestResetKeepsDifficulty(t *testing.T) {
	svc := NewService(nil)
	g := playingState()
	g.Difficulty = domain.DifficultyHard

	next, _, err := svc.Reset(g)
	if err != nil {
		t.Fatalf("reset error: %v", err)
	}
	if next.Status != domain.StatusMenu {
		t.Fatalf("status = %s, want menu", next.Status)
	}
	if next.Difficulty != domain.DifficultyHard {
		t.Fatalf("difficulty = %s, want hard preserved", next.Difficulty)
	}
	if len(next.Deck) != 0 || len(next.PlayerHand) != 0 {
		t.Fatalf("reset must clear the table")
	}
}

// TestFullGameConservation drives complete games with a first-legal-card
// player policy and checks card conservation after every transition.
func TestFullGameConservation(t *testing.T) {
	for _, difficulty := range []domain.Difficulty{domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard} {
		difficulty := difficulty
		t.Run(string(difficulty), func(t *testing.T) {
			svc := NewService(rand.New(rand.NewSource(99)))
			g, _, err := svc.StartGame(svc.NewMenuState(), difficulty)
			if err != nil {
				t.Fatalf("start game error: %v", err)
			}

			for steps := 0; !g.Terminal() && steps < 2000; steps++ {
				var next *domain.Game
				switch {
				case g.Status == domain.StatusDealing:
					next, _, err = svc.DealNext(g)
				case g.Status == domain.StatusChoosingSuit:
					next, _, err = svc.ChooseSuit(g, domain.Hearts)
				case g.Turn == domain.ActorPlayer:
					next, err = playFirstLegal(svc, g)
				default:
					next, _, err = svc.AITakeTurn(g)
				}
				if err != nil {
					t.Fatalf("step %d (%s/%s) error: %v", steps, g.Status, g.Turn, err)
				}
				if got := domain.CountCards(next); got != domain.DeckSize {
					t.Fatalf("step %d broke conservation: %d cards", steps, got)
				}
				g = next
			}
		})
	}
}

func playFirstLegal(svc *Service, g *domain.Game) (*domain.Game, error) {
	for _, c := range g.PlayerHand {
		if domain.IsValidMove(c, g.CurrentSuit, g.CurrentRank) {
			next, _, err := svc.PlayerPlay(g, c.ID)
			return next, err
		}
	}
	next, _, err := svc.PlayerDraw(g)
	return next, err
}
