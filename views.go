package main

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/kanishka-raisania/education-lead-view/domain/models"
	"github.com/kanishka-raisania/education-lead-view/plot"
)

var errUnknownView = errors.New("unknown view")

const (
	timelineView    = "timeline"
	timelineBarView = "timeline-bar"
)

// categoryView одно категориальное представление дашборда
type categoryView struct {
	Title  string
	Series func(d models.Dashboard) []models.CategoryCount
}

var categoryViews = map[string]categoryView{
	"status":           {"Leads by status", func(d models.Dashboard) []models.CategoryCount { return d.Status }},
	"assignees":        {"Leads by assignee", func(d models.Dashboard) []models.CategoryCount { return d.Assignees }},
	"cities":           {"Top cities", func(d models.Dashboard) []models.CategoryCount { return d.Cities }},
	"ads":              {"Top Facebook ads", func(d models.Dashboard) []models.CategoryCount { return d.Ads }},
	"campaigns":        {"Top campaigns", func(d models.Dashboard) []models.CategoryCount { return d.Campaigns }},
	"lost":             {"Loss reasons", func(d models.Dashboard) []models.CategoryCount { return d.LossReasons }},
	"lost-by-assignee": {"Lost leads by assignee", func(d models.Dashboard) []models.CategoryCount { return d.LostByCounsel }},
	"preferences":      {"Student preferences", func(d models.Dashboard) []models.CategoryCount { return d.Preferences }},
}

// viewOrder порядок графиков на странице дашборда
var viewOrder = []string{"status", "assignees", "cities", "ads", "campaigns", "lost", "lost-by-assignee", "preferences"}

func timelineTitle(g models.Granularity) string {
	return fmt.Sprintf("Leads over time (%s)", g)
}

// renderView PNG одного представления
func renderView(d models.Dashboard, view string) ([]byte, error) {
	switch view {
	case timelineView:
		return plot.DrawTrendLine(timelineTitle(d.Granularity), d.Timeline)
	case timelineBarView:
		return plot.DrawTimelineBar(timelineTitle(d.Granularity), d.Timeline)
	}
	v, ok := categoryViews[view]
	if !ok {
		return nil, errors.Wrapf(errUnknownView, "%q", view)
	}
	return plot.DrawCategoryBar(v.Title, v.Series(d))
}
