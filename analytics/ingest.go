package analytics

import (
	"encoding/csv"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/kanishka-raisania/education-lead-view/domain/models"
)

var (
	// ErrMalformedFile файл не удалось прочитать как таблицу целиком
	ErrMalformedFile = errors.New("malformed lead file")
	// ErrNoSnapshot в сессию еще ничего не загружено
	ErrNoSnapshot = errors.New("no leads uploaded yet")
)

const SEPARATOR = ','

// ParseLeads разбирает CSV-текст выгрузки. Первая строка заголовок.
// Строки без даты создания отбрасываются и учитываются в DroppedRows.
func ParseLeads(csvText string, loc *time.Location) (*models.IngestResult, error) {
	if !utf8.ValidString(csvText) {
		return nil, errors.Wrap(ErrMalformedFile, "file is not utf-8 text")
	}
	csvText = strings.TrimPrefix(csvText, "\ufeff")

	r := csv.NewReader(strings.NewReader(csvText))
	r.Comma = SEPARATOR
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return emptyResult(), nil
	}
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedFile, "read header: %v", err)
	}

	rows := [][]string{header}
	broken := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				broken++
				continue
			}
			return nil, errors.Wrap(err, "read csv")
		}
		rows = append(rows, record)
	}

	if broken > 0 && len(rows) == 1 {
		return nil, errors.Wrapf(ErrMalformedFile, "%d rows failed to parse, none readable", broken)
	}

	result := ParseLeadRows(rows, loc)
	result.TotalRows += broken
	result.DroppedRows += broken
	return result, nil
}

// ParseLeadRows строит записи из уже разбитых строк (CSV или лист xlsx)
func ParseLeadRows(rows [][]string, loc *time.Location) *models.IngestResult {
	result := emptyResult()
	if len(rows) == 0 {
		return result
	}

	setters := mapHeaders(rows[0])
	for _, row := range rows[1:] {
		result.TotalRows++
		if isBlankRow(row) {
			result.SkippedEmpty++
			continue
		}

		var lead models.LeadRecord
		for i, value := range row {
			if i < len(setters) && setters[i] != nil {
				setters[i](&lead, strings.TrimSpace(value))
			}
		}

		parsed, ok := ParseCreatedOn(lead.CreatedOn, loc)
		if !ok {
			result.DroppedRows++
			continue
		}
		lead.ParsedDate = parsed
		result.Leads = append(result.Leads, lead)
	}
	return result
}

func emptyResult() *models.IngestResult {
	return &models.IngestResult{Leads: []models.LeadRecord{}}
}

func isBlankRow(row []string) bool {
	for _, field := range row {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
