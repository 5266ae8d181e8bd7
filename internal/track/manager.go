package track

import "fmt"

// Manager owns the currently loaded track.
type Manager struct {
	opts    Options
	current *Track
	loading bool
}

// NewManager creates a track manager.
func NewManager(opts Options) *Manager {
	return &Manager{opts: opts}
}

// Current returns the active track, nil when none is loaded.
func (m *Manager) Current() *Track {
	return m.current
}

// Load loads a level file and makes it the active track. The previous
// track is closed only once the new one is ready.
func (m *Manager) Load(path string) error {
	m.loading = true
	defer func() { m.loading = false }()

	t, err := Load(path, m.opts)
	if err != nil {
		return fmt.Errorf("loading track %s: %w", path, err)
	}

	m.Unload()
	m.current = t
	return nil
}

// Unload closes the active track.
func (m *Manager) Unload() {
	if m.current == nil {
		return
	}
	m.current.Close()
	m.current = nil
}

// IsLoading returns whether a track is currently loading.
func (m *Manager) IsLoading() bool {
	return m.loading
}
