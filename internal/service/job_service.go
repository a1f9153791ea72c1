package service

import (
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"reservasport/internal/config"
	"reservasport/internal/db"
	"reservasport/internal/store"
)

type JobService struct {
	Store *store.Store
	cfg   config.App
	clock clockwork.Clock
}

func NewJobService(st *store.Store, cfg config.App, clock clockwork.Clock) *JobService {
	return &JobService{Store: st, cfg: cfg, clock: clock}
}

// PurgeExpiredTokens drops admin tokens past their TTL from the snapshot.
// Validation already rejects them lazily; this only keeps the token map from
// accumulating dead entries.
func (s *JobService) PurgeExpiredTokens() error {
	purged := 0
	err := s.Store.Update(func(snap *db.Snapshot) error {
		for token, info := range snap.AdminTokens {
			if s.clock.Now().Sub(info.CreatedAt) > s.cfg.TokenTTL {
				delete(snap.AdminTokens, token)
				purged++
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("purge expired tokens: %w", err)
	}
	if purged > 0 {
		log.Info().Int("purged", purged).Msg("expired admin tokens removed")
	}
	return nil
}
