package memory

import (
	"context"

	"payment-webhook-bridge/internal/core/domain"
	"payment-webhook-bridge/pkg/apperror"
)

// MappingStore implements ports.MappingRepository.
type MappingStore struct {
	s *Store
}

func (m *MappingStore) table(kind domain.MappingKind) (map[int64]mappingRow, error) {
	t, ok := m.s.mappings[kind]
	if !ok {
		return nil, apperror.ErrUnknownMappingKind(string(kind))
	}
	return t, nil
}

func (m *MappingStore) Save(_ context.Context, kind domain.MappingKind, localID int64, remoteID string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	t, err := m.table(kind)
	if err != nil {
		return err
	}
	m.s.seq++
	t[localID] = mappingRow{remoteID: remoteID, seq: m.s.seq}
	return nil
}

func (m *MappingStore) GetRemoteID(_ context.Context, kind domain.MappingKind, localID int64) (string, bool, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	t, err := m.table(kind)
	if err != nil {
		return "", false, err
	}
	row, ok := t[localID]
	return row.remoteID, ok, nil
}

// GetLocalID returns the most recently written local id when several share remoteID.
func (m *MappingStore) GetLocalID(_ context.Context, kind domain.MappingKind, remoteID string) (int64, bool, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	t, err := m.table(kind)
	if err != nil {
		return 0, false, err
	}
	var (
		best  int64
		seq   uint64
		found bool
	)
	for local, row := range t {
		if row.remoteID == remoteID && row.seq >= seq {
			best, seq, found = local, row.seq, true
		}
	}
	return best, found, nil
}

func (m *MappingStore) Delete(_ context.Context, kind domain.MappingKind, localID int64) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	t, err := m.deletable(kind)
	if err != nil {
		return err
	}
	delete(t, localID)
	return nil
}

func (m *MappingStore) Truncate(_ context.Context, kind domain.MappingKind) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	t, err := m.deletable(kind)
	if err != nil {
		return 0, err
	}
	n := int64(len(t))
	m.s.mappings[kind] = make(map[int64]mappingRow)
	return n, nil
}

func (m *MappingStore) deletable(kind domain.MappingKind) (map[int64]mappingRow, error) {
	t, err := m.table(kind)
	if err != nil {
		return nil, err
	}
	if !kind.Deletable() {
		return nil, apperror.ErrMappingNotDeletable(string(kind))
	}
	return t, nil
}
