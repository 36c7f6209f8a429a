package main

import (
	"log"
	"strconv"
	"sync"
	"time"

	uuid "github.com/satori/go.uuid"

	"github.com/kanishka-raisania/education-lead-view/analytics"
	"github.com/kanishka-raisania/education-lead-view/domain/models"
)

// leadService общая часть бота и веба: загрузка файла и построение отчетов по сессии
type leadService struct {
	sessions *analytics.Sessions
	links    *chatLinks
	calendar analytics.Calendar
	audit    ingestAudit
	now      func() time.Time
}

func newLeadService(sessions *analytics.Sessions, calendar analytics.Calendar, audit ingestAudit) *leadService {
	return &leadService{
		sessions: sessions,
		links:    newChatLinks(),
		calendar: calendar,
		audit:    audit,
		now:      time.Now,
	}
}

func chatSession(chatID int64) string {
	return "chat-" + strconv.FormatInt(chatID, 10)
}

// ingest разбирает файл и публикует снимок в сессию. При ошибке предыдущий снимок остается.
func (s *leadService) ingest(sessionID, source, fileName string, data []byte) (*analytics.Snapshot, error) {
	run := models.IngestRun{
		SessionID: sessionID,
		Source:    source,
		FileName:  fileName,
		Checksum:  getMD5String(data),
		CreatedAt: s.now(),
	}

	snapshot, err := ingestUpload(fileName, data, s.calendar.Location)
	if err != nil {
		run.Error = err.Error()
		s.record(run)
		return nil, err
	}

	run.TotalRows = snapshot.TotalRows
	run.Leads = len(snapshot.Leads)
	run.SkippedEmpty = snapshot.SkippedEmpty
	run.DroppedRows = snapshot.DroppedRows
	s.record(run)

	s.sessions.GetOrCreate(sessionID).Publish(snapshot)
	log.Printf("session %s: %s ingested, %d leads of %d rows (%d dropped)",
		sessionID, fileName, len(snapshot.Leads), snapshot.TotalRows, snapshot.DroppedRows)
	return snapshot, nil
}

func (s *leadService) record(run models.IngestRun) {
	if err := s.audit.Record(run); err != nil {
		log.Printf("[Error] audit record for %s: %v", run.SessionID, err)
	}
}

// current снимок сессии или ErrNoSnapshot
func (s *leadService) current(sessionID string) (*analytics.Snapshot, error) {
	store, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, analytics.ErrNoSnapshot
	}
	snapshot := store.Current()
	if snapshot == nil {
		return nil, analytics.ErrNoSnapshot
	}
	return snapshot, nil
}

func (s *leadService) dashboard(sessionID string, q analytics.DashboardQuery) (models.Dashboard, error) {
	snapshot, err := s.current(sessionID)
	if err != nil {
		return models.Dashboard{}, err
	}
	return analytics.BuildDashboard(snapshot, q, s.now(), s.calendar), nil
}

func (s *leadService) funnel(sessionID, assignee string, q analytics.DashboardQuery) (models.FunnelReport, error) {
	snapshot, err := s.current(sessionID)
	if err != nil {
		return models.FunnelReport{}, err
	}
	leads := analytics.FilterLeads(snapshot.Leads, q.Filter)
	leads = analytics.FilterByWindowAt(leads, q.Window, s.now(), s.calendar)
	return analytics.AssigneeFunnel(leads, assignee), nil
}

// expire чистит сессии и ссылки старше ttl
func (s *leadService) expire(ttl time.Duration) {
	at := s.now()
	removed := s.sessions.Expire(at)
	unlinked := s.links.Expire(at.Add(-ttl))
	if mem, ok := s.audit.(*memoryAudit); ok {
		mem.forget(at.Add(-ttl))
	}
	if removed > 0 || unlinked > 0 {
		log.Printf("expired %d sessions, %d upload links, %d sessions left", removed, unlinked, s.sessions.Len())
	}
}

// chatLinks ссылка на веб-загрузку привязывает uuid к чату телеграма
type chatLinks struct {
	mu    sync.RWMutex
	chats map[string]chatLink
}

type chatLink struct {
	chatID  int64
	created time.Time
}

func newChatLinks() *chatLinks {
	return &chatLinks{chats: make(map[string]chatLink)}
}

func (l *chatLinks) Bind(chatID int64, at time.Time) string {
	id := uuid.NewV4().String()
	l.mu.Lock()
	l.chats[id] = chatLink{chatID: chatID, created: at}
	l.mu.Unlock()
	return id
}

func (l *chatLinks) Chat(id string) (int64, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	link, ok := l.chats[id]
	return link.chatID, ok
}

func (l *chatLinks) Expire(before time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	removed := 0
	for id, link := range l.chats {
		if link.created.Before(before) {
			delete(l.chats, id)
			removed++
		}
	}
	return removed
}
