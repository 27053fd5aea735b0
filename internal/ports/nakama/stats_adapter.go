package nakama

import (
	"context"
	"encoding/json"
	"fmt"

	"crazyeights/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

const (
	statsCollection = "crazy_eights"
	statsKey        = "record_v1"
)

// NakamaStatsAdapter persists win/loss records in Nakama storage. Records are
// owner-readable so clients can show them, server-writable only.
type NakamaStatsAdapter struct {
	nk runtime.NakamaModule
}

// NewNakamaStatsAdapter creates a new stats adapter.
func NewNakamaStatsAdapter(nk runtime.NakamaModule) *NakamaStatsAdapter {
	return &NakamaStatsAdapter{nk: nk}
}

// GetRecord reads the user's stored record. Missing storage means a fresh
// zero record.
func (a *NakamaStatsAdapter) GetRecord(ctx context.Context, userID string) (ports.Record, error) {
	if userID == "" {
		return ports.Record{}, fmt.Errorf("userID is required")
	}

	objects, err := a.nk.StorageRead(ctx, []*runtime.StorageRead{
		{Collection: statsCollection, Key: statsKey, UserID: userID},
	})
	if err != nil {
		return ports.Record{}, fmt.Errorf("failed to read stats record: %w", err)
	}
	if len(objects) == 0 {
		return ports.Record{}, nil
	}

	var record ports.Record
	if err := json.Unmarshal([]byte(objects[0].GetValue()), &record); err != nil {
		return ports.Record{}, fmt.Errorf("failed to unmarshal stats record: %w", err)
	}
	return record, nil
}

// RecordResult folds one finished game into the user's record.
func (a *NakamaStatsAdapter) RecordResult(ctx context.Context, result ports.MatchResult) error {
	if result.UserID == "" {
		return fmt.Errorf("userID is required")
	}

	record, err := a.GetRecord(ctx, result.UserID)
	if err != nil {
		return err
	}
	if result.Won {
		record.Wins++
	} else {
		record.Losses++
	}

	value, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal stats record: %w", err)
	}

	_, err = a.nk.StorageWrite(ctx, []*runtime.StorageWrite{
		{
			Collection:      statsCollection,
			Key:             statsKey,
			UserID:          result.UserID,
			Value:           string(value),
			PermissionRead:  runtime.STORAGE_PERMISSION_OWNER_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to write stats record: %w", err)
	}
	return nil
}

var _ ports.StatsPort = (*NakamaStatsAdapter)(nil)
