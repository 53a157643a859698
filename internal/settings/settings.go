// Package settings holds the viewer preferences that the original client
// kept in ambient context: language, high contrast, font size and reduced
// motion. The manager is injected explicitly and every setter writes through
// to the store.
package settings

import (
	"fmt"
	"strconv"
	"sync"
)

const (
	keyLanguage      = "language"
	keyHighContrast  = "elmacho-high-contrast"
	keyFontSize      = "elmacho-font-size"
	keyReducedMotion = "elmacho-reduced-motion"
)

var fontSizes = map[string]bool{
	"small":  true,
	"normal": true,
	"large":  true,
	"xlarge": true,
}

type Settings struct {
	Language      string
	HighContrast  bool
	FontSize      string
	ReducedMotion bool
}

// Persister is the subset of the store the manager writes through to.
type Persister interface {
	Setting(key string) (string, bool)
	SetSetting(key, value string) error
}

type Manager struct {
	mu      sync.RWMutex
	store   Persister
	current Settings
}

// NewManager loads persisted preferences, falling back to Spanish and normal
// text for anything unset.
func NewManager(store Persister) *Manager {
	m := &Manager{
		store:   store,
		current: Settings{Language: "es", FontSize: "normal"},
	}
	if v, ok := store.Setting(keyLanguage); ok && (v == "es" || v == "en") {
		m.current.Language = v
	}
	if v, ok := store.Setting(keyHighContrast); ok {
		m.current.HighContrast, _ = strconv.ParseBool(v)
	}
	if v, ok := store.Setting(keyFontSize); ok && fontSizes[v] {
		m.current.FontSize = v
	}
	if v, ok := store.Setting(keyReducedMotion); ok {
		m.current.ReducedMotion, _ = strconv.ParseBool(v)
	}
	return m
}

func (m *Manager) Current() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

func (m *Manager) SetLanguage(language string) error {
	if language != "es" && language != "en" {
		return fmt.Errorf("unsupported language %q", language)
	}
	m.mu.Lock()
	m.current.Language = language
	m.mu.Unlock()
	return m.store.SetSetting(keyLanguage, language)
}

// ToggleLanguage flips between Spanish and English and returns the new value.
func (m *Manager) ToggleLanguage() string {
	m.mu.Lock()
	if m.current.Language == "es" {
		m.current.Language = "en"
	} else {
		m.current.Language = "es"
	}
	language := m.current.Language
	m.mu.Unlock()
	m.store.SetSetting(keyLanguage, language)
	return language
}

func (m *Manager) ToggleHighContrast() bool {
	m.mu.Lock()
	m.current.HighContrast = !m.current.HighContrast
	v := m.current.HighContrast
	m.mu.Unlock()
	m.store.SetSetting(keyHighContrast, strconv.FormatBool(v))
	return v
}

func (m *Manager) SetFontSize(size string) error {
	if !fontSizes[size] {
		return fmt.Errorf("unsupported font size %q", size)
	}
	m.mu.Lock()
	m.current.FontSize = size
	m.mu.Unlock()
	return m.store.SetSetting(keyFontSize, size)
}

func (m *Manager) ToggleReducedMotion() bool {
	m.mu.Lock()
	m.current.ReducedMotion = !m.current.ReducedMotion
	v := m.current.ReducedMotion
	m.mu.Unlock()
	m.store.SetSetting(keyReducedMotion, strconv.FormatBool(v))
	return v
}
