package main

import (
	"crypto/md5"
	"encoding/hex"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kanishka-raisania/education-lead-view/domain/models"
)

const createIngestRunsSQL = `CREATE TABLE IF NOT EXISTS ingest_runs (
	session_id String,
	source String,
	file_name String,
	checksum String,
	total_rows Int64,
	leads Int64,
	skipped_empty Int64,
	dropped_rows Int64,
	error String,
	created_at DateTime
) ENGINE = MergeTree ORDER BY (session_id, created_at) SETTINGS index_granularity = 8192`

// ingestAudit журнал загрузок: кто, когда и что загрузил
type ingestAudit interface {
	Record(run models.IngestRun) error
	History(sessionID string, limit int) ([]models.IngestRun, error)
}

func getMD5String(input []byte) string {
	hasher := md5.New()
	hasher.Write(input)
	return hex.EncodeToString(hasher.Sum(nil))
}

// newIngestAudit без DSN журнал живет в памяти процесса
func newIngestAudit(dsn string) (ingestAudit, error) {
	if dsn == "" {
		return &memoryAudit{}, nil
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, errors.Wrap(err, "cannot connect to clickhouse")
	}
	if tx := db.Exec(createIngestRunsSQL); tx.Error != nil {
		return nil, errors.Wrap(tx.Error, "create ingest_runs")
	}
	return &clickhouseAudit{db: db}, nil
}

type clickhouseAudit struct {
	db *gorm.DB
}

func (a *clickhouseAudit) Record(run models.IngestRun) error {
	return a.db.Create(&run).Error
}

func (a *clickhouseAudit) History(sessionID string, limit int) ([]models.IngestRun, error) {
	var runs []models.IngestRun
	tx := a.db.Where("session_id = ?", sessionID).Order("created_at DESC").Limit(limit).Find(&runs)
	return runs, tx.Error
}

type memoryAudit struct {
	mu   sync.Mutex
	runs []models.IngestRun
}

func (a *memoryAudit) Record(run models.IngestRun) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.runs = append(a.runs, run)
	return nil
}

func (a *memoryAudit) History(sessionID string, limit int) ([]models.IngestRun, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	result := make([]models.IngestRun, 0)
	for _, run := range a.runs {
		if run.SessionID == sessionID {
			result = append(result, run)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// forget удаляет записи старше границы, чтобы журнал в памяти не рос бесконечно
func (a *memoryAudit) forget(before time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()
	kept := a.runs[:0]
	for _, run := range a.runs {
		if !run.CreatedAt.Before(before) {
			kept = append(kept, run)
		}
	}
	a.runs = kept
}
