package models

import "time"

// LeadRecord одна строка выгрузки после нормализации
type LeadRecord struct {
	Status            string    `json:"status"`
	LostReason        string    `json:"lostReason"`
	AssigneeName      string    `json:"assigneeName"`
	AssigneeEmail     string    `json:"assigneeEmail"`
	Name              string    `json:"name"`
	Phone             string    `json:"phone"`
	Email             string    `json:"email"`
	City              string    `json:"city"`
	FacebookAd        string    `json:"facebookAd"`
	FacebookCampaign  string    `json:"facebookCampaign"`
	FacebookLeadID    string    `json:"facebookLeadId"`
	StudentPreference string    `json:"studentPreference"`
	CreatedOn         string    `json:"createdOn"`
	ParsedDate        time.Time `json:"parsedDate"` // всегда валидна у сохраненных записей
	ModifiedOn        string    `json:"modifiedOn"`
	BatchNames        string    `json:"batchNames"`
}

type IngestResult struct {
	Leads        []LeadRecord
	TotalRows    int // строки данных без заголовка
	SkippedEmpty int
	DroppedRows  int // строки без распознаваемой даты
}

type CategoryCount struct {
	Name       string `json:"name"`
	Value      int    `json:"value"`
	Percentage int    `json:"percentage"`
}

type TimeBucketCount struct {
	Name  string `json:"name"`
	Key   string `json:"key"`
	Value int    `json:"value"`
}

type StatState string

const (
	StatOK          StatState = "ok"
	StatNoData      StatState = "no_data"
	StatUnavailable StatState = "unavailable"
)

type ScorecardStat struct {
	Title         string    `json:"title"`
	Value         int       `json:"value"`
	ChangePercent float64   `json:"changePercent"`
	State         StatState `json:"state"`
}

type StageTag string

const (
	StageFresh                  StageTag = "fresh"
	StageLost                   StageTag = "lost"
	StageDocsReceived           StageTag = "docs_received"
	StageApplicationFiled       StageTag = "application_filed"
	StageDeposit                StageTag = "deposit"
	StageRegisteredToUniversity StageTag = "registered_to_university"
	StageEnrolled               StageTag = "enrolled"
)

type FunnelReport struct {
	Assignee       string          `json:"assignee"`
	Total          int             `json:"total"`
	Stages         []CategoryCount `json:"stages"`
	Converted      int             `json:"converted"`
	ConversionRate int             `json:"conversionRate"`
}

type WindowKind string

const (
	WindowAllTime    WindowKind = "all_time"
	WindowLast7Days  WindowKind = "last_7_days"
	WindowLast30Days WindowKind = "last_30_days"
	WindowThisMonth  WindowKind = "this_month"
	WindowThisWeek   WindowKind = "this_week"
	WindowToday      WindowKind = "today"
	WindowThisYear   WindowKind = "this_year"
	WindowCustom     WindowKind = "custom"
)

// Window Start и End заполняются только для WindowCustom
type Window struct {
	Kind  WindowKind
	Start time.Time
	End   time.Time
}

type Granularity string

const (
	Daily   Granularity = "daily"
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
	Yearly  Granularity = "yearly"
)

// LeadFilter пустые поля не фильтруют
type LeadFilter struct {
	Query  string
	Status string
	From   time.Time
	To     time.Time
}

type Dashboard struct {
	SnapshotID    string            `json:"snapshotId"`
	FileName      string            `json:"fileName"`
	UploadedAt    time.Time         `json:"uploadedAt"`
	TotalLeads    int               `json:"totalLeads"`
	WindowLeads   int               `json:"windowLeads"`
	Window        WindowKind        `json:"window"`
	Granularity   Granularity       `json:"granularity"`
	Scorecards    []ScorecardStat   `json:"scorecards"`
	Status        []CategoryCount   `json:"status"`
	Assignees     []CategoryCount   `json:"assignees"`
	Cities        []CategoryCount   `json:"cities"`
	Ads           []CategoryCount   `json:"ads"`
	Campaigns     []CategoryCount   `json:"campaigns"`
	LossReasons   []CategoryCount   `json:"lossReasons"`
	LostByCounsel []CategoryCount   `json:"lostByAssignee"`
	Preferences   []CategoryCount   `json:"preferences"`
	Timeline      []TimeBucketCount `json:"timeline"`
	Counselors    []FunnelReport    `json:"counselors"`
}

// IngestRun запись журнала загрузок; сами лиды не сохраняются
type IngestRun struct {
	SessionID    string    `gorm:"column:session_id" json:"sessionId"`
	Source       string    `gorm:"column:source" json:"source"`
	FileName     string    `gorm:"column:file_name" json:"fileName"`
	Checksum     string    `gorm:"column:checksum" json:"checksum"`
	TotalRows    int       `gorm:"column:total_rows" json:"totalRows"`
	Leads        int       `gorm:"column:leads" json:"leads"`
	SkippedEmpty int       `gorm:"column:skipped_empty" json:"skippedEmpty"`
	DroppedRows  int       `gorm:"column:dropped_rows" json:"droppedRows"`
	Error        string    `gorm:"column:error" json:"error,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (IngestRun) TableName() string {
	return "ingest_runs"
}
