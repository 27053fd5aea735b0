package bot

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"crazyeights/internal/domain"
)

// Identity is the display profile for the scripted opponent at one
// difficulty tier.
type Identity struct {
	DisplayName string `json:"display_name"`
	Difficulty  string `json:"difficulty"`
	AvatarIndex int    `json:"avatar_index"`
}

var (
	identities    []Identity
	identityByDif map[domain.Difficulty]Identity
	loadOnce      sync.Once
	loadErr       error
)

// LoadIdentities loads the opponent profiles from the given path.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read opponent identities: %w", err)
			return
		}
		if err := json.Unmarshal(data, &identities); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal opponent identities: %w", err)
			return
		}
		identityByDif = make(map[domain.Difficulty]Identity, len(identities))
		for _, id := range identities {
			identityByDif[domain.Difficulty(id.Difficulty)] = id
		}
	})
	return loadErr
}

// GetIdentity returns the profile for a difficulty, falling back to a
// generic name when no profile file was loaded.
func GetIdentity(difficulty domain.Difficulty) Identity {
	if id, ok := identityByDif[difficulty]; ok {
		return id
	}
	return Identity{
		DisplayName: fmt.Sprintf("AI Opponent (%s)", difficulty),
		Difficulty:  string(difficulty),
	}
}
