package service

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"reservasport/internal/config"
	"reservasport/internal/db"
	apperrors "reservasport/internal/errors"
	"reservasport/internal/store"
)

type AdminAuthService interface {
	Login(password string) (string, error)
	Validate(token string) error
}

type adminAuthService struct {
	store *store.Store
	cfg   config.App
	clock clockwork.Clock
}

func NewAdminAuthService(st *store.Store, cfg config.App, clock clockwork.Clock) AdminAuthService {
	return &adminAuthService{store: st, cfg: cfg, clock: clock}
}

// Login checks the admin password and issues an opaque bearer token recorded
// in the snapshot. Any valid token grants full admin capability.
func (s *adminAuthService) Login(password string) (string, error) {
	if password == "" {
		return "", apperrors.InvalidInput("missing password")
	}
	if !s.passwordOK(password) {
		return "", apperrors.Unauthorized("wrong password")
	}

	token, err := generateToken()
	if err != nil {
		return "", fmt.Errorf("generate admin token: %w", err)
	}
	err = s.store.Update(func(snap *db.Snapshot) error {
		snap.AdminTokens[token] = db.AdminToken{CreatedAt: s.clock.Now()}
		return nil
	})
	if err != nil {
		return "", err
	}
	log.Info().Msg("admin login ok, token issued")
	return token, nil
}

// Validate checks a bearer token against the store. An expired token is
// deleted as a side effect before the Unauthorized result is reported.
func (s *adminAuthService) Validate(token string) error {
	var expired bool
	err := s.store.View(func(snap *db.Snapshot) error {
		info, ok := snap.AdminTokens[token]
		if !ok {
			return apperrors.Unauthorized("invalid or expired token")
		}
		expired = s.clock.Now().Sub(info.CreatedAt) > s.cfg.TokenTTL
		return nil
	})
	if err != nil {
		return err
	}
	if !expired {
		return nil
	}

	err = s.store.Update(func(snap *db.Snapshot) error {
		delete(snap.AdminTokens, token)
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Msg("could not remove expired admin token")
	}
	return apperrors.Unauthorized("token expired")
}

func (s *adminAuthService) passwordOK(password string) bool {
	if s.cfg.AdminPasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(s.cfg.AdminPassword), []byte(password)) == 1
}

// generateToken returns a fixed-length opaque token from 32 random bytes.
func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
