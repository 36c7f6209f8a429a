package analytics

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"

	"github.com/kanishka-raisania/education-lead-view/domain/models"
)

type fieldSetter func(lead *models.LeadRecord, value string)

// leadColumns известные колонки выгрузки, ключи уже нормализованы через normalizeHeaderName
var leadColumns = map[string]fieldSetter{
	"status":             func(l *models.LeadRecord, v string) { l.Status = v },
	"lost_reason":        func(l *models.LeadRecord, v string) { l.LostReason = v },
	"assignee_name":      func(l *models.LeadRecord, v string) { l.AssigneeName = v },
	"assignee_email":     func(l *models.LeadRecord, v string) { l.AssigneeEmail = v },
	"name":               func(l *models.LeadRecord, v string) { l.Name = v },
	"phone":              func(l *models.LeadRecord, v string) { l.Phone = v },
	"email":              func(l *models.LeadRecord, v string) { l.Email = v },
	"city":               func(l *models.LeadRecord, v string) { l.City = v },
	"fb_campaign":        func(l *models.LeadRecord, v string) { l.FacebookCampaign = v },
	"facebook_campaign":  func(l *models.LeadRecord, v string) { l.FacebookCampaign = v },
	"fb_lead_id":         func(l *models.LeadRecord, v string) { l.FacebookLeadID = v },
	"facebook_lead_id":   func(l *models.LeadRecord, v string) { l.FacebookLeadID = v },
	"facebook_ad":        func(l *models.LeadRecord, v string) { l.FacebookAd = v },
	"fb_ad":              func(l *models.LeadRecord, v string) { l.FacebookAd = v },
	"student_preference": func(l *models.LeadRecord, v string) { l.StudentPreference = v },
	"created_on":         func(l *models.LeadRecord, v string) { l.CreatedOn = v },
	"modified_on":        func(l *models.LeadRecord, v string) { l.ModifiedOn = v },
	"batch_names":        func(l *models.LeadRecord, v string) { l.BatchNames = v },
}

var nonAlphanumeric = regexp.MustCompile("[^a-zA-Z0-9]+")

// replaceSpecialSymbols заменяет все, кроме латиницы и цифр, на одно подчеркивание
func replaceSpecialSymbols(input string) string {
	processed := nonAlphanumeric.ReplaceAllString(input, "_")
	return strings.Trim(processed, "_")
}

// normalizeHeaderName приводит заголовок к ключу вида created_on.
// Диакритика транслитерируется, регистр не важен.
func normalizeHeaderName(header string) string {
	header = strings.TrimSpace(unidecode.Unidecode(header))
	return strings.ToLower(replaceSpecialSymbols(header))
}

// ValidateHeaders добавляет суффикс _N к повторяющимся заголовкам
func ValidateHeaders(headers []string) []string {
	seen := make(map[string]bool, len(headers))
	result := make([]string, len(headers))

	for i, header := range headers {
		candidate := header
		for counter := 1; seen[candidate]; counter++ {
			candidate = fmt.Sprintf("%s_%d", header, counter)
		}
		seen[candidate] = true
		result[i] = candidate
	}

	return result
}

// mapHeaders возвращает сеттер для каждой позиции заголовка, nil для неизвестных колонок.
// При повторе колонки используется первая.
func mapHeaders(header []string) []fieldSetter {
	names := make([]string, len(header))
	for i, h := range header {
		names[i] = normalizeHeaderName(h)
	}
	names = ValidateHeaders(names)

	setters := make([]fieldSetter, len(names))
	for i, name := range names {
		setters[i] = leadColumns[name]
	}
	return setters
}
