package achievement

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/pageza/tastemap/backend/internal/models"
)

// Store persists unlock records. AppendIfAbsent must be atomic per
// (user, achievement) pair and report whether it inserted.
type Store interface {
	Get(ctx context.Context, userID uuid.UUID) ([]models.UserAchievement, error)
	AppendIfAbsent(ctx context.Context, ua models.UserAchievement) (bool, error)
}

// MemoryStore is a process-local Store.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID][]models.UserAchievement
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[uuid.UUID][]models.UserAchievement)}
}

func (s *MemoryStore) Get(ctx context.Context, userID uuid.UUID) ([]models.UserAchievement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.UserAchievement, len(s.records[userID]))
	copy(out, s.records[userID])
	return out, nil
}

func (s *MemoryStore) AppendIfAbsent(ctx context.Context, ua models.UserAchievement) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.records[ua.UserID] {
		if existing.AchievementID == ua.AchievementID {
			return false, nil
		}
	}
	s.records[ua.UserID] = append(s.records[ua.UserID], ua)
	return true, nil
}
