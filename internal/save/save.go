// Package save persists runs as checksummed JSON files. Every file carries a
// SHA-256 checksum of its payload; a slot that fails verification falls back
// to the newest valid checkpoint instead of surfacing corrupt state.
package save

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"chronosta/game"
	"chronosta/internal/telemetry"
)

const (
	slotPattern       = "slot_%d.json"
	checkpointPrefix  = "checkpoint_"
	suspendFile       = "suspend.json"
	checkpointsToKeep = 3
)

// ErrNoSave is returned when neither the slot nor any checkpoint could be
// loaded.
var ErrNoSave = errors.New("save: no usable save data")

// File is the on-disk envelope. GameData is kept as raw JSON so the checksum
// is computed over the exact bytes that were written.
type File struct {
	GameData json.RawMessage `json:"game_data"`
	Checksum string          `json:"checksum"`
}

// GameData is the persisted payload.
type GameData struct {
	Version  int           `json:"version"`
	Snapshot game.Snapshot `json:"snapshot"`
}

// SlotInfo describes one populated save slot.
type SlotInfo struct {
	Slot       int       `json:"slot"`
	LevelIndex int       `json:"levelIndex"`
	Era        string    `json:"era"`
	SavedAt    time.Time `json:"savedAt"`
}

// Manager owns a save directory. It is not safe for concurrent use; the
// simulation calls it from its own goroutine only.
type Manager struct {
	dir     string
	logger  telemetry.Logger
	metrics telemetry.Metrics
}

func NewManager(dir string, logger telemetry.Logger, metrics telemetry.Metrics) (*Manager, error) {
	if metrics == nil {
		metrics = telemetry.NopMetrics()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("save: create directory: %w", err)
	}
	return &Manager{dir: dir, logger: logger, metrics: metrics}, nil
}

func (m *Manager) Dir() string {
	return m.dir
}

// Save writes a snapshot to a numbered slot.
func (m *Manager) Save(slot int, snap game.Snapshot) error {
	return m.write(m.slotPath(slot), snap)
}

// Load reads a numbered slot, verifying its checksum. A missing or corrupt
// slot falls back to the newest valid checkpoint; only when that also fails
// does Load return ErrNoSave.
func (m *Manager) Load(slot int) (game.Snapshot, error) {
	snap, err := m.read(m.slotPath(slot))
	if err == nil {
		return snap, nil
	}
	if m.logger != nil {
		m.logger.Printf("save: slot %d unusable (%v), trying checkpoints", slot, err)
	}

	snap, cpErr := m.loadLatestCheckpoint()
	if cpErr != nil {
		return game.Snapshot{}, fmt.Errorf("%w: slot: %v, checkpoint: %v", ErrNoSave, err, cpErr)
	}
	m.metrics.Add(telemetry.CounterSaveFallbacks, 1)
	return snap, nil
}

// Checkpoint writes an automatic save and prunes old ones, keeping the most
// recent few.
func (m *Manager) Checkpoint(snap game.Snapshot) error {
	name := fmt.Sprintf("%s%d.json", checkpointPrefix, snap.SavedAt.UnixNano())
	if err := m.write(filepath.Join(m.dir, name), snap); err != nil {
		return err
	}
	m.pruneCheckpoints()
	return nil
}

// Suspend writes the quick-exit save. It is consumed, not kept: a successful
// Resume deletes it.
func (m *Manager) Suspend(snap game.Snapshot) error {
	return m.write(filepath.Join(m.dir, suspendFile), snap)
}

// Resume loads and removes the suspend save. The second return value reports
// whether one existed.
func (m *Manager) Resume() (game.Snapshot, bool, error) {
	path := filepath.Join(m.dir, suspendFile)
	snap, err := m.read(path)
	if errors.Is(err, os.ErrNotExist) {
		return game.Snapshot{}, false, nil
	}
	if err != nil {
		// A corrupt suspend save is discarded rather than retried forever.
		_ = os.Remove(path)
		return game.Snapshot{}, false, err
	}
	if err := os.Remove(path); err != nil {
		return game.Snapshot{}, false, fmt.Errorf("save: remove suspend file: %w", err)
	}
	return snap, true, nil
}

// List reports the populated numbered slots in slot order.
func (m *Manager) List() ([]SlotInfo, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("save: read directory: %w", err)
	}
	var infos []SlotInfo
	for _, entry := range entries {
		var slot int
		if n, err := fmt.Sscanf(entry.Name(), slotPattern, &slot); n != 1 || err != nil {
			continue
		}
		snap, err := m.read(filepath.Join(m.dir, entry.Name()))
		if err != nil {
			continue
		}
		infos = append(infos, SlotInfo{
			Slot:       slot,
			LevelIndex: snap.LevelIndex,
			Era:        snap.Era,
			SavedAt:    snap.SavedAt,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Slot < infos[j].Slot })
	return infos, nil
}

func (m *Manager) slotPath(slot int) string {
	return filepath.Join(m.dir, fmt.Sprintf(slotPattern, slot))
}

// write marshals the payload, checksums it, and replaces the target file
// atomically via a temp file in the same directory.
func (m *Manager) write(path string, snap game.Snapshot) error {
	payload, err := json.Marshal(GameData{Version: 1, Snapshot: snap})
	if err != nil {
		m.metrics.Add(telemetry.CounterSaveFailures, 1)
		return fmt.Errorf("save: marshal payload: %w", err)
	}
	envelope, err := json.Marshal(File{
		GameData: payload,
		Checksum: checksum(payload),
	})
	if err != nil {
		m.metrics.Add(telemetry.CounterSaveFailures, 1)
		return fmt.Errorf("save: marshal envelope: %w", err)
	}

	tmp, err := os.CreateTemp(m.dir, ".tmp-*")
	if err != nil {
		m.metrics.Add(telemetry.CounterSaveFailures, 1)
		return fmt.Errorf("save: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(envelope); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		m.metrics.Add(telemetry.CounterSaveFailures, 1)
		return fmt.Errorf("save: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		m.metrics.Add(telemetry.CounterSaveFailures, 1)
		return fmt.Errorf("save: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		m.metrics.Add(telemetry.CounterSaveFailures, 1)
		return fmt.Errorf("save: replace %s: %w", filepath.Base(path), err)
	}
	m.metrics.Add(telemetry.CounterSaveWrites, 1)
	return nil
}

func (m *Manager) read(path string) (game.Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return game.Snapshot{}, err
	}
	var envelope File
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return game.Snapshot{}, fmt.Errorf("save: parse %s: %w", filepath.Base(path), err)
	}
	if got := checksum(envelope.GameData); got != envelope.Checksum {
		return game.Snapshot{}, fmt.Errorf("save: checksum mismatch in %s", filepath.Base(path))
	}
	var data GameData
	if err := json.Unmarshal(envelope.GameData, &data); err != nil {
		return game.Snapshot{}, fmt.Errorf("save: parse payload of %s: %w", filepath.Base(path), err)
	}
	return data.Snapshot, nil
}

// loadLatestCheckpoint walks the checkpoints newest-first by modification
// time and returns the first one that verifies.
func (m *Manager) loadLatestCheckpoint() (game.Snapshot, error) {
	paths, err := m.checkpointPaths()
	if err != nil {
		return game.Snapshot{}, err
	}
	if len(paths) == 0 {
		return game.Snapshot{}, errors.New("no checkpoints")
	}
	var lastErr error
	for i := len(paths) - 1; i >= 0; i-- {
		snap, err := m.read(paths[i])
		if err == nil {
			return snap, nil
		}
		lastErr = err
	}
	return game.Snapshot{}, lastErr
}

// checkpointPaths returns checkpoint files sorted oldest-first by mtime.
func (m *Manager) checkpointPaths() ([]string, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("save: read directory: %w", err)
	}
	type stamped struct {
		path string
		mod  time.Time
	}
	var found []stamped
	for _, entry := range entries {
		if entry.IsDir() || len(entry.Name()) < len(checkpointPrefix) || entry.Name()[:len(checkpointPrefix)] != checkpointPrefix {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		found = append(found, stamped{path: filepath.Join(m.dir, entry.Name()), mod: info.ModTime()})
	}
	sort.Slice(found, func(i, j int) bool { return found[i].mod.Before(found[j].mod) })
	paths := make([]string, len(found))
	for i, f := range found {
		paths[i] = f.path
	}
	return paths, nil
}

func (m *Manager) pruneCheckpoints() {
	paths, err := m.checkpointPaths()
	if err != nil {
		return
	}
	for len(paths) > checkpointsToKeep {
		if err := os.Remove(paths[0]); err != nil && m.logger != nil {
			m.logger.Printf("save: prune checkpoint: %v", err)
		}
		paths = paths[1:]
	}
}

func checksum(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
