package analytics

import (
	"time"

	"github.com/kanishka-raisania/education-lead-view/domain/models"
)

// лимиты top-N для представлений
const (
	LimitAssignees   = 10
	LimitCities      = 8
	LimitAds         = 7
	LimitCampaigns   = 6
	LimitLossReasons = 5
	LimitPreferences = 6
	LimitCounselors  = 10
)

type DashboardQuery struct {
	Window      models.Window
	Granularity models.Granularity
	Filter      models.LeadFilter
}

// BuildDashboard считает все представления по одному снимку. Каждое представление
// независимо и пересчитывается целиком, кэша нет.
func BuildDashboard(snapshot *Snapshot, q DashboardQuery, at time.Time, cal Calendar) models.Dashboard {
	if q.Window.Kind == "" {
		q.Window.Kind = models.WindowAllTime
	}
	if q.Granularity == "" {
		q.Granularity = models.Monthly
	}

	var leads []models.LeadRecord
	dashboard := models.Dashboard{Window: q.Window.Kind, Granularity: q.Granularity}
	if snapshot != nil {
		leads = snapshot.Leads
		dashboard.SnapshotID = snapshot.ID
		dashboard.FileName = snapshot.FileName
		dashboard.UploadedAt = snapshot.UploadedAt
		dashboard.TotalLeads = len(snapshot.Leads)
	}

	filtered := FilterLeads(leads, q.Filter)
	windowed := FilterByWindowAt(filtered, q.Window, at, cal)

	dashboard.WindowLeads = len(windowed)
	dashboard.Scorecards = Scorecards(filtered, q.Window, at, cal)
	dashboard.Status = ByStatus(windowed, 0)
	dashboard.Assignees = ByAssignee(windowed, LimitAssignees)
	dashboard.Cities = ByCity(windowed, LimitCities)
	dashboard.Ads = ByAd(windowed, LimitAds)
	dashboard.Campaigns = ByCampaign(windowed, LimitCampaigns)
	dashboard.LossReasons = ByLossReason(windowed, LimitLossReasons)
	dashboard.LostByCounsel = LostByAssignee(windowed, LimitAssignees)
	dashboard.Preferences = ByPreference(windowed, LimitPreferences)
	dashboard.Timeline = BucketByTimeAt(windowed, q.Granularity, at)
	dashboard.Counselors = CounselorPerformance(windowed, LimitCounselors)
	return dashboard
}
