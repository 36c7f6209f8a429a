package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"time"

	"github.com/pivolan/go_utils"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/kanishka-raisania/education-lead-view/analytics"
	"github.com/kanishka-raisania/education-lead-view/domain/models"
)

var ErrUnsupportedFile = errors.New("unsupported file type")

// расширения после распаковки архива; пустое считается csv
var csvExtensions = []string{"", ".csv", ".txt"}

// ingestUpload распаковывает загрузку и разбирает ее в снимок
func ingestUpload(fileName string, data []byte, loc *time.Location) (*analytics.Snapshot, error) {
	name, content, err := unpackArchive(fileName, data)
	if err != nil {
		return nil, err
	}

	var result *models.IngestResult
	ext := strings.ToLower(filepath.Ext(name))
	switch {
	case ext == ".xlsx":
		rows, err := readSpreadsheet(content)
		if err != nil {
			return nil, err
		}
		result = analytics.ParseLeadRows(rows, loc)
	case go_utils.InArray(ext, csvExtensions):
		result, err = analytics.ParseLeads(string(content), loc)
		if err != nil {
			return nil, errors.Wrap(err, name)
		}
	default:
		return nil, errors.Wrapf(ErrUnsupportedFile, "%s", name)
	}
	return analytics.NewSnapshot(fileName, result), nil
}

// readSpreadsheet строки первого листа xlsx
func readSpreadsheet(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(analytics.ErrMalformedFile, err.Error())
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrapf(analytics.ErrMalformedFile, "sheet %s: %v", sheets[0], err)
	}
	return rows, nil
}
