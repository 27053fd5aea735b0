package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"crazyeights/internal/app"
	"crazyeights/internal/domain"

	"go.uber.org/zap"
)

// maxStepsPerGame bounds a single game; a run past it means the engine
// stopped making progress.
const maxStepsPerGame = 2000

func main() {
	difficulty := flag.String("difficulty", "medium", "AI difficulty: easy, medium or hard")
	games := flag.Int("games", 100, "number of games to simulate")
	seed := flag.Int64("seed", 0, "rng seed, 0 for a random run")
	verbose := flag.Bool("verbose", false, "log every transition")
	flag.Parse()

	var logger *zap.Logger
	var err error
	if *verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Sugar()

	dif := domain.Difficulty(*difficulty)
	if !domain.ValidDifficulty(dif) {
		log.Fatalf("unknown difficulty %q", *difficulty)
	}

	if *seed == 0 {
		*seed = rand.Int63()
	}
	rng := rand.New(rand.NewSource(*seed))
	service := app.NewService(rng)

	log.Infow("simulation starting",
		"difficulty", dif,
		"games", *games,
		"seed", *seed,
	)

	var wins, losses, stalemates int
	for i := 0; i < *games; i++ {
		winner, err := runGame(service, dif, log.With("game", i))
		if err != nil {
			log.Fatalw("game aborted", "game", i, "error", err)
		}
		switch winner {
		case domain.ActorPlayer:
			wins++
		case domain.ActorAI:
			losses++
		default:
			stalemates++
		}
	}

	log.Infow("simulation finished",
		"games", *games,
		"player_wins", wins,
		"ai_wins", losses,
		"stalemates", stalemates,
		"player_win_rate", float64(wins)/float64(*games),
	)
}

// runGame plays one full game between the scripted stand-in player and the
// AI, returning the winner. An empty winner marks a stalemate: an exhausted
// deck with neither side holding a legal card.
func runGame(service *app.Service, difficulty domain.Difficulty, log *zap.SugaredLogger) (domain.Actor, error) {
	g := service.NewMenuState()

	g, _, err := service.StartGame(g, difficulty)
	if err != nil {
		return "", err
	}

	for steps := 0; !g.Terminal(); steps++ {
		if steps >= maxStepsPerGame {
			if len(g.Deck) == 0 {
				log.Debugw("stalemate", "steps", steps)
				return "", nil
			}
			return "", fmt.Errorf("no progress after %d steps (status=%s turn=%s)", steps, g.Status, g.Turn)
		}

		var events []app.Event
		switch {
		case g.Status == domain.StatusDealing:
			g, events, err = service.DealNext(g)
		case g.Status == domain.StatusChoosingSuit:
			g, events, err = service.ChooseSuit(g, mostHeldSuit(g.PlayerHand))
		case g.Turn == domain.ActorPlayer:
			g, events, err = playerStep(service, g)
		default:
			g, events, err = service.AITakeTurn(g)
		}
		if err != nil {
			return "", err
		}
		for _, ev := range events {
			log.Debugw("event", "kind", ev.Kind, "payload", ev.Payload)
		}
	}

	return g.Winner, nil
}

// playerStep is the stand-in player policy: play the first legal card, else
// draw once, else let the empty-deck skip pass the turn.
func playerStep(service *app.Service, g *domain.Game) (*domain.Game, []app.Event, error) {
	for _, c := range g.PlayerHand {
		if domain.IsValidMove(c, g.CurrentSuit, g.CurrentRank) {
			return service.PlayerPlay(g, c.ID)
		}
	}
	return service.PlayerDraw(g)
}

// mostHeldSuit picks the suit the hand holds most of, for wild declarations.
func mostHeldSuit(hand []domain.Card) domain.Suit {
	counts := make(map[domain.Suit]int)
	for _, c := range hand {
		if !c.IsWild() {
			counts[c.Suit]++
		}
	}
	best := domain.Suits[0]
	bestCount := counts[best]
	for _, s := range domain.Suits[1:] {
		if counts[s] > bestCount {
			best = s
			bestCount = counts[s]
		}
	}
	return best
}
