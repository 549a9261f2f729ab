package mockbot

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

var seedNames = []string{
	"Alice Vega", "Bruno Keller", "Carmen Ito", "Derek Olsen", "Elena Brandt",
	"Felix Duran", "Greta Lindqvist", "Hugo Marchetti", "Imani Walsh", "Jonas Petrov",
}

// Seed fills an empty store with n fake profiles and a few days of action
// history. A store that already has profiles is left alone.
func Seed(store *Store, n int) error {
	existing, err := store.Profiles()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	if n <= 0 || n > len(seedNames) {
		n = 5
	}

	for i := 0; i < n; i++ {
		profile := Profile{
			ID:            fmt.Sprintf("profile_%d", i+1),
			Name:          seedNames[i],
			SerialNumber:  10001 + i,
			Email:         fmt.Sprintf("profile%d@example.com", i+1),
			IsEmailActive: i%3 != 0,
			Notes:         fmt.Sprintf("seeded account #%d for panel development", i+1),
		}
		if err := store.UpsertProfile(profile); err != nil {
			return err
		}

		// Backfill a spread of actions over the last three days.
		actionCount := 5 + rand.Intn(15)
		for j := 0; j < actionCount; j++ {
			tpl := actionTemplates[rand.Intn(len(actionTemplates))]
			at := time.Now().Add(-time.Duration(rand.Intn(72)) * time.Hour)
			details := fmt.Sprintf(tpl.details, rand.Intn(90000)+10000)
			if err := store.RecordAction(uuid.NewString(), profile.ID, tpl.actionType, details, at); err != nil {
				return err
			}
		}
	}
	return nil
}
