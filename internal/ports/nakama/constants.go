package nakama

const (
	// RpcCreateSoloMatch is the Nakama RPC id clients call to start a solo
	// session. Solo matches are private, so there is nothing to list; the
	// RPC always creates.
	RpcCreateSoloMatch = "create_solo_match"

	// RpcGetRecord returns the calling user's win/loss record.
	RpcGetRecord = "get_record"

	// MatchNameCrazyEights is the authoritative match handler name
	// registered with Nakama.
	MatchNameCrazyEights = "crazy_eights_solo"
)

// Op codes for client intents and server events.
const (
	// Client -> Server
	OpStartGame  int64 = 1
	OpPlayCard   int64 = 2
	OpDrawCard   int64 = 3
	OpChooseSuit int64 = 4
	OpBackToMenu int64 = 5

	// Server -> Client events
	OpGameStarted     int64 = 101
	OpCardDealt       int64 = 102
	OpDealingFinished int64 = 103
	OpCardPlayed      int64 = 104
	OpSuitChosen      int64 = 105
	OpCardDrawn       int64 = 106
	OpTurnSkipped     int64 = 107
	OpGameWon         int64 = 108
	OpGameLost        int64 = 109
	OpStateSnapshot   int64 = 110
	OpGameError       int64 = 111
)
