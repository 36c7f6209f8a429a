package main

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/kanishka-raisania/education-lead-view/analytics"
	"github.com/kanishka-raisania/education-lead-view/domain/models"
)

const welcomeText = `Hi! I turn a lead export into analytics.

Send a CSV or XLSX export from the CRM (zip, gz and lz4 archives work too), or use /upload for a browser link.

Commands:
/summary [window] - scorecards and status breakdown
/status, /assignees, /cities, /ads, /campaigns, /lost, /lostby, /preferences [window]
/trend <daily|weekly|monthly|yearly> [window]
/funnel <assignee> - stage funnel of one counselor
/counselors [window] - conversion by counselor
/history - your recent uploads

Windows: all, today, week, month, year, 7d, 30d, or two dates 2025-03-01 2025-03-31.`

const noSnapshotText = "Nothing uploaded yet. Send a lead export file or use /upload."

// команды бота, которые показывают одно категориальное представление
var commandViews = map[string]string{
	"status":      "status",
	"assignees":   "assignees",
	"cities":      "cities",
	"ads":         "ads",
	"campaigns":   "campaigns",
	"lost":        "lost",
	"lostby":      "lost-by-assignee",
	"preferences": "preferences",
}

func (b *telegramBot) handleCommand(chatID int64, command, args string) {
	switch command {
	case "start", "help":
		b.send(chatID, welcomeText)
	case "upload":
		b.sendUploadLink(chatID)
	case "summary":
		b.handleSummary(chatID, args)
	case "trend":
		b.handleTrend(chatID, args)
	case "funnel":
		b.handleFunnel(chatID, args)
	case "counselors":
		b.handleCounselors(chatID, args)
	case "history":
		b.handleHistory(chatID)
	default:
		if view, ok := commandViews[command]; ok {
			b.handleView(chatID, view, args)
			return
		}
		b.send(chatID, "Unknown command. Use /start to see what I can do.")
	}
}

// parseWindowArgs "month", "custom 2025-03-01 2025-03-31" или просто две даты
func parseWindowArgs(fields []string, loc *time.Location) (models.Window, error) {
	switch {
	case len(fields) == 0:
		return analytics.ParseWindow("", "", "", loc)
	case len(fields) == 3 && strings.EqualFold(fields[0], "custom"):
		return analytics.ParseWindow("custom", fields[1], fields[2], loc)
	case len(fields) == 2:
		return analytics.ParseWindow("custom", fields[0], fields[1], loc)
	case len(fields) == 1:
		return analytics.ParseWindow(fields[0], "", "", loc)
	}
	return models.Window{}, errors.Errorf("cannot read window from %q", strings.Join(fields, " "))
}

// dashboardFor сообщает пользователю об ошибке сам и возвращает false
func (b *telegramBot) dashboardFor(chatID int64, q analytics.DashboardQuery) (models.Dashboard, bool) {
	d, err := b.service.dashboard(chatSession(chatID), q)
	if errors.Is(err, analytics.ErrNoSnapshot) {
		b.send(chatID, noSnapshotText)
		return d, false
	}
	if err != nil {
		b.send(chatID, "Failed to build the report: "+err.Error())
		return d, false
	}
	return d, true
}

func (b *telegramBot) windowQuery(chatID int64, fields []string) (analytics.DashboardQuery, bool) {
	window, err := parseWindowArgs(fields, b.service.calendar.Location)
	if err != nil {
		b.send(chatID, "Unknown window. Use all, today, week, month, year, 7d, 30d or two dates like 2025-03-01 2025-03-31.")
		return analytics.DashboardQuery{}, false
	}
	return analytics.DashboardQuery{Window: window}, true
}

func (b *telegramBot) handleSummary(chatID int64, args string) {
	q, ok := b.windowQuery(chatID, strings.Fields(args))
	if !ok {
		return
	}
	d, ok := b.dashboardFor(chatID, q)
	if !ok {
		return
	}
	b.sendTable(chatID, GenerateDashboardText(d))
	b.send(chatID, "Full dashboard: "+b.dashboardURL(chatSession(chatID)))
}

func (b *telegramBot) handleView(chatID int64, view, args string) {
	q, ok := b.windowQuery(chatID, strings.Fields(args))
	if !ok {
		return
	}
	d, ok := b.dashboardFor(chatID, q)
	if !ok {
		return
	}
	v := categoryViews[view]
	series := v.Series(d)
	b.sendTable(chatID, GenerateCategoryTable(v.Title, series))
	if len(series) > 0 {
		b.sendView(chatID, d, view)
	}
}

func (b *telegramBot) handleTrend(chatID int64, args string) {
	fields := strings.Fields(args)
	granularity := models.Monthly
	if len(fields) > 0 {
		g, err := analytics.ParseGranularity(fields[0])
		if err != nil {
			b.send(chatID, "Usage: /trend <daily|weekly|monthly|yearly> [window]")
			return
		}
		granularity = g
		fields = fields[1:]
	}

	q, ok := b.windowQuery(chatID, fields)
	if !ok {
		return
	}
	q.Granularity = granularity
	d, ok := b.dashboardFor(chatID, q)
	if !ok {
		return
	}
	b.sendTable(chatID, GenerateTimelineTable(timelineTitle(d.Granularity), d.Timeline))
	if len(d.Timeline) > 0 {
		b.sendView(chatID, d, timelineView)
	}
}

func (b *telegramBot) handleFunnel(chatID int64, args string) {
	assignee := strings.TrimSpace(args)
	if assignee == "" {
		b.send(chatID, "Usage: /funnel <assignee name>, for example /funnel Priya Sharma")
		return
	}
	report, err := b.service.funnel(chatSession(chatID), assignee, analytics.DashboardQuery{})
	if errors.Is(err, analytics.ErrNoSnapshot) {
		b.send(chatID, noSnapshotText)
		return
	}
	if err != nil {
		b.send(chatID, "Failed to build the funnel: "+err.Error())
		return
	}
	b.sendTable(chatID, GenerateFunnelTable(report))
}

func (b *telegramBot) handleCounselors(chatID int64, args string) {
	q, ok := b.windowQuery(chatID, strings.Fields(args))
	if !ok {
		return
	}
	d, ok := b.dashboardFor(chatID, q)
	if !ok {
		return
	}
	b.sendTable(chatID, GenerateCounselorTable(d.Counselors))
}

func (b *telegramBot) handleHistory(chatID int64) {
	runs, err := b.service.audit.History(chatSession(chatID), 10)
	if err != nil {
		b.send(chatID, "Upload history is unavailable right now.")
		return
	}
	b.sendTable(chatID, GenerateHistoryTable(runs))
}
