package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"crazyeights/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// CreateSoloMatchResponse is returned to clients requesting a solo table.
type CreateSoloMatchResponse struct {
	MatchID string `json:"match_id"`
}

// GetRecordResponse is the user's accumulated win/loss tally.
type GetRecordResponse struct {
	Wins   int64 `json:"wins"`
	Losses int64 `json:"losses"`
}

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	if err := initializer.RegisterRpc(RpcCreateSoloMatch, rpcCreateSoloMatch); err != nil {
		return err
	}
	return initializer.RegisterRpc(RpcGetRecord, rpcGetRecord)
}

func rpcCreateSoloMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	// Every caller gets a private table; there is nothing to search for.
	matchID, err := nk.MatchCreate(ctx, MatchNameCrazyEights, map[string]interface{}{})
	if err != nil {
		logger.Error("rpcCreateSoloMatch [User:%s]: Failed to create match: %v", userID, err)
		return "", err
	}

	logger.Info("rpcCreateSoloMatch [User:%s]: Created solo match %s", userID, matchID)
	resp := CreateSoloMatchResponse{MatchID: matchID}
	b, _ := json.Marshal(resp)
	return string(b), nil
}

func rpcGetRecord(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", runtime.NewError("user id required", 3)
	}

	var stats ports.StatsPort = NewNakamaStatsAdapter(nk)
	record, err := stats.GetRecord(ctx, userID)
	if err != nil {
		logger.Error("rpcGetRecord [User:%s]: %v", userID, err)
		return "", err
	}

	resp := GetRecordResponse{Wins: record.Wins, Losses: record.Losses}
	b, _ := json.Marshal(resp)
	return string(b), nil
}
