package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"math/rand"

	"crazyeights/internal/app"
	"crazyeights/internal/bot"
	"crazyeights/internal/config"
	"crazyeights/internal/domain"
	"crazyeights/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// matchLabel is the JSON label the match advertises. Solo matches are never
// listed for joining; the label exists for dashboards and debugging.
type matchLabel struct {
	Open   int    `json:"open"`
	Game   string `json:"game"`
	Status string `json:"status"`
}

// MatchState holds the authoritative runtime state for a solo session: one
// human seat, one scripted opponent.
type MatchState struct {
	UserID       string                      `json:"user_id"`
	Tick         int64                       `json:"tick"`
	NextDealTick int64                       `json:"next_deal_tick"` // tick of the next deal step, 0 when unscheduled
	AIWaitUntil  int64                       `json:"ai_wait_until"`  // tick when the AI acts, 0 when unscheduled
	Presences    map[string]runtime.Presence `json:"-"`
	App          *app.Service                `json:"-"`
	Game         *domain.Game                `json:"-"`
	Agent        *bot.Agent                  `json:"-"`
	Stats        ports.StatsPort             `json:"-"`
}

func (ms *MatchState) opponentName() string {
	if ms.Agent == nil {
		return ""
	}
	return ms.Agent.Name
}

func newMatchHandler() *matchHandler {
	return &matchHandler{}
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing solo match handler.")

	if err := bot.LoadIdentities("data/opponent_identities.json"); err != nil {
		logger.Warn("MatchInit: Could not load opponent identities: %v", err)
	}
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config: %v", err)
	}
	cfg := config.GetGameConfig()

	service := app.NewService(nil)
	state := &MatchState{
		Presences: make(map[string]runtime.Presence),
		App:       service,
		Game:      service.NewMenuState(),
		Stats:     NewNakamaStatsAdapter(nk),
	}

	label := matchLabel{Open: 1, Game: "crazy_eights", Status: string(state.Game.Status)}
	labelBytes, err := json.Marshal(label)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	return state, cfg.TickRate, string(labelBytes)
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// One human per table; the seat owner may reconnect.
	if matchState.UserID != "" && matchState.UserID != presence.GetUserId() {
		return matchState, false, "match is occupied"
	}
	return matchState, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.UserID = p.GetUserId()
		matchState.Presences[p.GetUserId()] = p
		logger.Info("MatchJoin: User %s seated.", p.GetUserId())
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastSnapshot(matchState, dispatcher, logger)
	return matchState
}

// MatchLeave ends the match: a solo table without its player has nothing
// left to run.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())
	}
	logger.Info("MatchLeave: Player left, terminating solo match.")
	return nil
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		senderID := msg.GetUserId()
		if senderID != matchState.UserID {
			logger.Warn("MatchLoop: Dropping message from non-seated user %s", senderID)
			continue
		}
		switch msg.GetOpCode() {
		case OpStartGame:
			mh.handleStartGame(ctx, matchState, dispatcher, logger, msg.GetData())
		case OpPlayCard:
			mh.handlePlayCard(ctx, matchState, dispatcher, logger, msg.GetData())
		case OpDrawCard:
			mh.handleDrawCard(ctx, matchState, dispatcher, logger)
		case OpChooseSuit:
			mh.handleChooseSuit(ctx, matchState, dispatcher, logger, msg.GetData())
		case OpBackToMenu:
			mh.handleBackToMenu(ctx, matchState, dispatcher, logger)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	mh.advance(ctx, matchState, dispatcher, logger)

	return matchState
}

// advance runs the scheduled work the engine leaves to the driver: pacing
// deal steps and delaying the AI so it appears to think.
func (mh *matchHandler) advance(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	cfg := config.GetGameConfig()

	switch {
	case state.Game.Status == domain.StatusDealing:
		state.AIWaitUntil = 0
		if state.NextDealTick == 0 {
			state.NextDealTick = state.Tick + int64(cfg.DealIntervalTicks)
			return
		}
		if state.Tick >= state.NextDealTick {
			state.NextDealTick = 0
			next, events, err := state.App.DealNext(state.Game)
			mh.applyResult(ctx, state, dispatcher, logger, "DealNext", next, events, err)
		}

	case state.Game.Status == domain.StatusPlaying && state.Game.Turn == domain.ActorAI:
		state.NextDealTick = 0
		if state.AIWaitUntil == 0 {
			delay := rand.Intn(cfg.AIThinkMaxTicks-cfg.AIThinkMinTicks+1) + cfg.AIThinkMinTicks
			state.AIWaitUntil = state.Tick + int64(delay)
			return
		}
		if state.Tick >= state.AIWaitUntil {
			state.AIWaitUntil = 0
			next, events, err := state.App.AITakeTurn(state.Game)
			mh.applyResult(ctx, state, dispatcher, logger, "AITakeTurn", next, events, err)
		}

	default:
		state.NextDealTick = 0
		state.AIWaitUntil = 0
	}
}

func (mh *matchHandler) handleStartGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, data []byte) {
	request := startGameRequest{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &request); err != nil {
			logger.Warn("handleStartGame: Invalid request payload: %v", err)
			mh.sendError(state, dispatcher, logger, 400, "invalid start_game payload")
			return
		}
	}

	difficulty := domain.Difficulty(request.Difficulty)
	if request.Difficulty == "" {
		difficulty = state.Game.Difficulty
	}

	agent, err := bot.NewAgent(difficulty)
	if err != nil {
		logger.Warn("handleStartGame: %v", err)
		mh.sendError(state, dispatcher, logger, 400, err.Error())
		return
	}
	state.Agent = agent

	next, events, err := state.App.StartGame(state.Game, difficulty)
	mh.applyResult(ctx, state, dispatcher, logger, "StartGame", next, events, err)
}

func (mh *matchHandler) handlePlayCard(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, data []byte) {
	request := playCardRequest{}
	if err := json.Unmarshal(data, &request); err != nil {
		logger.Warn("handlePlayCard: Invalid request payload: %v", err)
		mh.sendError(state, dispatcher, logger, 400, "invalid play_card payload")
		return
	}

	next, events, err := state.App.PlayerPlay(state.Game, request.CardID)
	mh.applyResult(ctx, state, dispatcher, logger, "PlayerPlay", next, events, err)
}

func (mh *matchHandler) handleDrawCard(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	next, events, err := state.App.PlayerDraw(state.Game)
	mh.applyResult(ctx, state, dispatcher, logger, "PlayerDraw", next, events, err)
}

func (mh *matchHandler) handleChooseSuit(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, data []byte) {
	request := chooseSuitRequest{}
	if err := json.Unmarshal(data, &request); err != nil {
		logger.Warn("handleChooseSuit: Invalid request payload: %v", err)
		mh.sendError(state, dispatcher, logger, 400, "invalid choose_suit payload")
		return
	}

	next, events, err := state.App.ChooseSuit(state.Game, domain.Suit(request.Suit))
	mh.applyResult(ctx, state, dispatcher, logger, "ChooseSuit", next, events, err)
}

func (mh *matchHandler) handleBackToMenu(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	state.NextDealTick = 0
	state.AIWaitUntil = 0
	next, events, err := state.App.Reset(state.Game)
	mh.applyResult(ctx, state, dispatcher, logger, "Reset", next, events, err)
}

// applyResult commits a transition: rejections are logged and reported to the
// client without touching state, invariant violations are server bugs and
// logged as errors, and a successful transition replaces the game state and
// broadcasts its events plus a fresh snapshot.
func (mh *matchHandler) applyResult(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, op string, next *domain.Game, events []app.Event, err error) {
	if err != nil {
		var inv *domain.InvariantError
		if errors.As(err, &inv) {
			logger.Error("%s: invariant violated: %v", op, err)
			mh.sendError(state, dispatcher, logger, 500, "internal game error")
		} else {
			logger.Warn("%s: rejected: %v", op, err)
			mh.sendError(state, dispatcher, logger, 400, err.Error())
		}
		return
	}

	prevStatus := state.Game.Status
	state.Game = next

	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
		mh.recordOutcome(ctx, state, logger, ev)
	}
	mh.broadcastSnapshot(state, dispatcher, logger)

	if next.Status != prevStatus {
		mh.updateLabel(state, dispatcher, logger)
	}
}

// recordOutcome persists a finished game to the stats port.
func (mh *matchHandler) recordOutcome(ctx context.Context, state *MatchState, logger runtime.Logger, ev app.Event) {
	if ev.Kind != app.EventGameWon && ev.Kind != app.EventGameLost {
		return
	}
	if state.Stats == nil || state.UserID == "" {
		return
	}
	result := ports.MatchResult{
		UserID:     state.UserID,
		Difficulty: string(state.Game.Difficulty),
		Won:        ev.Kind == app.EventGameWon,
	}
	if err := state.Stats.RecordResult(ctx, result); err != nil {
		logger.Error("recordOutcome: Failed to record result for %s: %v", state.UserID, err)
	}
}

func (mh *matchHandler) broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	opCode, payload, ok := eventToWire(ev, state.opponentName())
	if !ok {
		logger.Warn("broadcastEvent: Unknown event kind: %v", ev.Kind)
		return
	}
	bytes, err := json.Marshal(payload)
	if err != nil {
		logger.Error("broadcastEvent: Failed to marshal event %v: %v", ev.Kind, err)
		return
	}
	dispatcher.BroadcastMessage(opCode, bytes, nil, nil, true)
}

func (mh *matchHandler) broadcastSnapshot(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	snapshot := buildSnapshot(state.Game, state.opponentName())
	bytes, err := json.Marshal(snapshot)
	if err != nil {
		logger.Error("broadcastSnapshot: Failed to marshal snapshot: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpStateSnapshot, bytes, nil, nil, true)
}

func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, code int, message string) {
	bytes, err := json.Marshal(gameErrorEvent{Code: code, Message: message})
	if err != nil {
		logger.Error("sendError: Failed to marshal error event: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpGameError, bytes, nil, nil, true)
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	open := 1
	if state.UserID != "" {
		open = 0
	}
	label := matchLabel{Open: open, Game: "crazy_eights", Status: string(state.Game.Status)}
	labelBytes, err := json.Marshal(label)
	if err != nil {
		logger.Error("updateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("updateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
