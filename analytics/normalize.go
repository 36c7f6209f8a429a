package analytics

import (
	"strings"

	"github.com/pivolan/go_utils"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kanishka-raisania/education-lead-view/domain/models"
)

const Unassigned = "Unassigned"

// значения-заглушки, которые не попадают в агрегаты
var (
	placeholderValues      = []string{"", "na", "n/a", "unknown", "null", "-"}
	preferencePlaceholders = []string{"", "other", "other_program", "na", "n/a", "unknown"}
)

var preferenceCategories = []struct {
	substring string
	category  string
}{
	{"engineering", "Engineering Programs"},
	{"management", "Management Programs"},
	{"healthcare", "Healthcare Programs"},
	{"business", "Business Programs"},
	{"computer", "Computer Science/IT"},
	{"it", "Computer Science/IT"},
}

func isPlaceholder(value string) bool {
	return go_utils.InArray(strings.ToLower(strings.TrimSpace(value)), placeholderValues)
}

// AssigneeKey пустой ответственный группируется как Unassigned
func AssigneeKey(lead models.LeadRecord) string {
	name := strings.TrimSpace(lead.AssigneeName)
	if name == "" {
		return Unassigned
	}
	return name
}

// NormalizeCity "  mumbai " и "Mumbai" дают один ключ; заглушки дают пустую строку
func NormalizeCity(city string) string {
	city = strings.ToLower(strings.TrimSpace(city))
	if isPlaceholder(city) {
		return ""
	}
	return titleCase(strings.Join(strings.Fields(city), " "))
}

// NormalizePreference сводит пожелание студента к категории программы.
// Категории ищутся подстрокой в порядке списка.
func NormalizePreference(preference string) string {
	value := strings.ToLower(strings.TrimSpace(preference))
	if go_utils.InArray(value, preferencePlaceholders) {
		return ""
	}

	for _, c := range preferenceCategories {
		if strings.Contains(value, c.substring) {
			return c.category
		}
	}
	words := make([]string, 0)
	for _, word := range strings.Split(value, "_") {
		if word = strings.TrimSpace(word); word != "" {
			words = append(words, titleCase(word))
		}
	}
	return strings.Join(words, " ")
}

// titleCase Caser хранит состояние, поэтому создается на каждый вызов
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}
