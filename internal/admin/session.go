package admin

import (
	"context"
	"fmt"
	"log"

	"github.com/agusnoopy3000/Carta-QR/internal/api"
	"github.com/agusnoopy3000/Carta-QR/internal/store"
)

// Session ties the API client's in-memory credentials to the persistent
// store, mirroring the localStorage-backed session of the original client:
// login persists, logout clears both, restore re-installs without a round
// trip.
type Session struct {
	client *api.Client
	store  *store.Store
}

func NewSession(client *api.Client, st *store.Store) *Session {
	return &Session{client: client, store: st}
}

func (s *Session) Login(ctx context.Context, username, password string) error {
	if err := s.client.Login(ctx, username, password); err != nil {
		return err
	}
	if err := s.store.SaveCredentials(s.client.Credentials()); err != nil {
		log.Printf("persisting session failed: %v", err)
	}
	return nil
}

func (s *Session) Logout() {
	s.client.Logout()
	if err := s.store.ClearCredentials(); err != nil {
		log.Printf("clearing persisted session failed: %v", err)
	}
}

// Restore installs persisted credentials, if any. Like the original client it
// trusts the stored pair until a request fails with 401.
func (s *Session) Restore() bool {
	encoded, ok := s.store.Credentials()
	if !ok || encoded == "" {
		return false
	}
	s.client.RestoreCredentials(encoded)
	return true
}

// RequireAuth restores the session and errors when no credentials exist.
func (s *Session) RequireAuth() error {
	if s.client.IsAuthenticated() || s.Restore() {
		return nil
	}
	return fmt.Errorf("no stored session; run 'carta admin login' first")
}

// HandleAuthFailure discards the session when an admin call came back
// unauthorized, so no invalid credentials persist.
func (s *Session) HandleAuthFailure(err error) bool {
	if !api.IsUnauthorized(err) {
		return false
	}
	s.Logout()
	return true
}
