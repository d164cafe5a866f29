package teams

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// Service holds the current reference table snapshot. Snapshots are never
// modified; a reload swaps in a new one.
type Service struct {
	current atomic.Pointer[Snapshot]
	logger  *zap.Logger
}

// NewService creates a service serving snap. A nil snap serves an empty table.
func NewService(snap *Snapshot, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{logger: logger}
	s.Replace(snap)
	return s
}

// Current returns the snapshot in use
func (s *Service) Current() *Snapshot {
	return s.current.Load()
}

// Replace swaps in snap as the current snapshot
func (s *Service) Replace(snap *Snapshot) {
	if snap == nil {
		snap = NewSnapshot(nil)
	}
	s.current.Store(snap)
}

// Reload loads path and makes it the current snapshot
func (s *Service) Reload(path string) *Snapshot {
	snap := Load(path, s.logger)
	s.Replace(snap)
	s.logger.Info("teams table reloaded", zap.String("path", path), zap.Int("teams", snap.Len()))
	return snap
}
