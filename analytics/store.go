package analytics

import (
	"sync"
	"sync/atomic"
	"time"

	uuid "github.com/satori/go.uuid"

	"github.com/kanishka-raisania/education-lead-view/domain/models"
)

// Snapshot неизменяемый набор лидов одной загрузки. После Publish его никто не меняет.
type Snapshot struct {
	ID           string
	FileName     string
	UploadedAt   time.Time
	Leads        []models.LeadRecord
	TotalRows    int
	SkippedEmpty int
	DroppedRows  int
}

func NewSnapshot(fileName string, result *models.IngestResult) *Snapshot {
	return &Snapshot{
		ID:           uuid.NewV4().String(),
		FileName:     fileName,
		UploadedAt:   time.Now(),
		Leads:        result.Leads,
		TotalRows:    result.TotalRows,
		SkippedEmpty: result.SkippedEmpty,
		DroppedRows:  result.DroppedRows,
	}
}

// LeadStore один писатель (загрузка) и сколько угодно читателей.
// Новая загрузка целиком заменяет предыдущую, побеждает последняя завершившаяся.
type LeadStore struct {
	current atomic.Pointer[Snapshot]
}

func (s *LeadStore) Publish(snapshot *Snapshot) {
	s.current.Store(snapshot)
}

// Current nil, если ничего не загружено
func (s *LeadStore) Current() *Snapshot {
	return s.current.Load()
}

type sessionEntry struct {
	store    *LeadStore
	lastUsed atomic.Int64
}

// Sessions хранилища по идентификатору сессии (uuid ссылки или id чата)
type Sessions struct {
	mu     sync.RWMutex
	stores map[string]*sessionEntry
	ttl    time.Duration
}

func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{stores: make(map[string]*sessionEntry), ttl: ttl}
}

func (s *Sessions) Get(id string) (*LeadStore, bool) {
	s.mu.RLock()
	entry, ok := s.stores[id]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	entry.lastUsed.Store(time.Now().UnixNano())
	return entry.store, true
}

func (s *Sessions) GetOrCreate(id string) *LeadStore {
	if store, ok := s.Get(id); ok {
		return store
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.stores[id]
	if !ok {
		entry = &sessionEntry{store: &LeadStore{}}
		s.stores[id] = entry
	}
	entry.lastUsed.Store(time.Now().UnixNano())
	return entry.store
}

// Expire удаляет сессии, не использованные дольше ttl. Возвращает число удаленных.
func (s *Sessions) Expire(at time.Time) int {
	if s.ttl <= 0 {
		return 0
	}
	deadline := at.Add(-s.ttl).UnixNano()

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, entry := range s.stores {
		if entry.lastUsed.Load() < deadline {
			delete(s.stores, id)
			removed++
		}
	}
	return removed
}

func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.stores)
}
