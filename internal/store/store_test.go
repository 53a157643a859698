package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/agusnoopy3000/Carta-QR/internal/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "carta.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSettingsRoundTrip(t *testing.T) {
	s := openTestStore(t)

	if _, ok := s.Setting("language"); ok {
		t.Fatal("empty store returned a value")
	}
	if err := s.SetSetting("language", "es"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetSetting("language", "en"); err != nil {
		t.Fatal(err)
	}
	value, ok := s.Setting("language")
	if !ok || value != "en" {
		t.Errorf("Setting = (%q, %v), want (en, true)", value, ok)
	}

	if err := s.DeleteSetting("language"); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Setting("language"); ok {
		t.Error("setting survived deletion")
	}
}

func TestCredentialsLifecycle(t *testing.T) {
	s := openTestStore(t)

	if _, ok := s.Credentials(); ok {
		t.Fatal("fresh store has credentials")
	}
	if err := s.SaveCredentials("YWRtaW46c2VjcmV0"); err != nil {
		t.Fatal(err)
	}
	encoded, ok := s.Credentials()
	if !ok || encoded != "YWRtaW46c2VjcmV0" {
		t.Errorf("Credentials = (%q, %v)", encoded, ok)
	}
	if err := s.ClearCredentials(); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Credentials(); ok {
		t.Error("credentials survived logout")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := openTestStore(t)

	snap := &models.MenuSnapshot{
		RestaurantName: "El Macho",
		Language:       "es",
		Categories: []models.Category{
			{Code: "PESCADOS", NameEs: "Pescados", Products: []models.Product{
				{ID: 1, NameEs: "Reineta Frita", Available: true, Options: []models.ProductOption{
					{ID: 10, Price: 8000},
				}},
			}},
		},
	}
	fetchedAt := time.Now().Add(-time.Minute)
	if err := s.SaveSnapshot("es", snap, fetchedAt); err != nil {
		t.Fatal(err)
	}

	loaded, at, ok := s.Snapshot("es", 0)
	if !ok {
		t.Fatal("snapshot not found")
	}
	if loaded.RestaurantName != "El Macho" || len(loaded.Categories) != 1 {
		t.Errorf("loaded = %+v", loaded)
	}
	if loaded.Categories[0].Products[0].Options[0].Price != 8000 {
		t.Error("option price lost in round trip")
	}
	if at.Unix() != fetchedAt.Unix() {
		t.Errorf("fetchedAt = %v, want %v", at, fetchedAt)
	}

	// Other languages stay independent.
	if _, _, ok := s.Snapshot("en", 0); ok {
		t.Error("snapshot leaked across languages")
	}
}

func TestSnapshotMaxAge(t *testing.T) {
	s := openTestStore(t)

	snap := &models.MenuSnapshot{RestaurantName: "El Macho"}
	if err := s.SaveSnapshot("es", snap, time.Now().Add(-time.Hour)); err != nil {
		t.Fatal(err)
	}

	if _, _, ok := s.Snapshot("es", 10*time.Minute); ok {
		t.Error("stale snapshot returned inside maxAge window")
	}
	if _, _, ok := s.Snapshot("es", 2*time.Hour); !ok {
		t.Error("snapshot within maxAge not returned")
	}
}

func TestChangeLogNewestFirst(t *testing.T) {
	s := openTestStore(t)

	base := time.Now()
	for i, payload := range []string{`{"n":1}`, `{"n":2}`, `{"n":3}`} {
		if err := s.AppendChange([]byte(payload), base.Add(time.Duration(i)*time.Second)); err != nil {
			t.Fatal(err)
		}
	}

	changes, err := s.RecentChanges(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(changes) != 2 {
		t.Fatalf("got %d changes, want 2", len(changes))
	}
	if string(changes[0]) != `{"n":3}` || string(changes[1]) != `{"n":2}` {
		t.Errorf("order = [%s %s], want newest first", changes[0], changes[1])
	}
}
