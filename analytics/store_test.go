package analytics

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanishka-raisania/education-lead-view/domain/models"
)

func TestLeadStorePublishReplaces(t *testing.T) {
	var store LeadStore
	assert.Nil(t, store.Current())

	first := NewSnapshot("a.csv", &models.IngestResult{Leads: []models.LeadRecord{leadAt(testNow)}, TotalRows: 1})
	second := NewSnapshot("b.csv", &models.IngestResult{Leads: []models.LeadRecord{}})
	assert.NotEqual(t, first.ID, second.ID)

	store.Publish(first)
	assert.Same(t, first, store.Current())
	store.Publish(second)
	assert.Same(t, second, store.Current())
}

func TestLeadStoreConcurrentReaders(t *testing.T) {
	var store LeadStore
	snapshots := make([]*Snapshot, 0, 10)
	for i := 0; i < 10; i++ {
		leads := make([]models.LeadRecord, i+1)
		snapshots = append(snapshots, NewSnapshot(fmt.Sprintf("%d.csv", i), &models.IngestResult{Leads: leads}))
	}
	store.Publish(snapshots[0])

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for _, s := range snapshots[1:] {
			store.Publish(s)
		}
	}()
	for r := 0; r < 8; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				s := store.Current()
				// снимок всегда целый: имя файла соответствует числу лидов
				assert.Equal(t, fmt.Sprintf("%d.csv", len(s.Leads)-1), s.FileName)
			}
		}()
	}
	wg.Wait()
	assert.Same(t, snapshots[9], store.Current())
}

func TestSessionsGetOrCreate(t *testing.T) {
	sessions := NewSessions(time.Hour)
	_, ok := sessions.Get("chat-1")
	assert.False(t, ok)

	store := sessions.GetOrCreate("chat-1")
	require.NotNil(t, store)
	assert.Same(t, store, sessions.GetOrCreate("chat-1"))
	assert.NotSame(t, store, sessions.GetOrCreate("chat-2"))
	assert.Equal(t, 2, sessions.Len())

	got, ok := sessions.Get("chat-1")
	assert.True(t, ok)
	assert.Same(t, store, got)
}

func TestSessionsExpire(t *testing.T) {
	sessions := NewSessions(time.Minute)
	sessions.GetOrCreate("old")
	sessions.GetOrCreate("fresh")

	assert.Equal(t, 0, sessions.Expire(time.Now()))
	assert.Equal(t, 2, sessions.Expire(time.Now().Add(2*time.Minute)))
	assert.Equal(t, 0, sessions.Len())

	forever := NewSessions(0)
	forever.GetOrCreate("x")
	assert.Equal(t, 0, forever.Expire(time.Now().Add(24*time.Hour)))
}
