// Package importer reads word pairs from spreadsheets.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/iremert/wordpecker/internal/config"
	"github.com/iremert/wordpecker/internal/tracker"
	"github.com/iremert/wordpecker/internal/vocabulary"
)

// SkippedRow is a row that did not yield a word. Row is 1-based.
type SkippedRow struct {
	Row    int
	Reason string
}

type Result struct {
	Words   []tracker.NewWordParams
	Skipped []SkippedRow
}

type Importer struct {
	cfg config.ImportConfig
}

func New(cfg config.ImportConfig) *Importer {
	return &Importer{cfg: cfg}
}

// ReadFile reads a .csv, .xlsx or .xlsm file.
func (i *Importer) ReadFile(path string) (Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer file.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return i.ReadCSV(file)
	case ".xlsx", ".xlsm":
		return i.ReadXLSX(file)
	default:
		return Result{}, fmt.Errorf("unsupported file type %q: expected .csv, .xlsx or .xlsm", ext)
	}
}

func (i *Importer) ReadCSV(r io.Reader) (Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("reader.Read() > %w", err)
		}
		rows = append(rows, row)
	}
	return i.parseRows(rows), nil
}

// ReadXLSX reads the configured sheet, or the first sheet of the workbook.
func (i *Importer) ReadXLSX(r io.Reader) (Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Result{}, fmt.Errorf("excelize.OpenReader() > %w", err)
	}
	defer f.Close()

	sheet := i.cfg.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return Result{}, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return Result{}, fmt.Errorf("f.GetRows(%s) > %w", sheet, err)
	}
	return i.parseRows(rows), nil
}

func (i *Importer) parseRows(rows [][]string) Result {
	columns := i.cfg.Columns
	result := Result{
		Words:   []tracker.NewWordParams{},
		Skipped: []SkippedRow{},
	}
	for index, row := range rows {
		if index == 0 && i.cfg.SkipHeader {
			continue
		}

		word := tracker.NewWordParams{
			SourceWord:      cell(row, columns.Source),
			TargetWord:      cell(row, columns.Target),
			Pronunciation:   cell(row, columns.Pronunciation),
			ContextSentence: cell(row, columns.ContextSentence),
			ImageURL:        cell(row, columns.ImageURL),
			Difficulty:      strings.ToLower(cell(row, columns.Difficulty)),
		}
		if word.SourceWord == "" || word.TargetWord == "" {
			result.Skipped = append(result.Skipped, SkippedRow{Row: index + 1, Reason: "missing source or target word"})
			continue
		}
		if _, err := vocabulary.ParseDifficulty(word.Difficulty); err != nil {
			result.Skipped = append(result.Skipped, SkippedRow{Row: index + 1, Reason: err.Error()})
			continue
		}
		result.Words = append(result.Words, word)
	}
	return result
}

// cell returns the trimmed value of a column. A negative column is disabled.
func cell(row []string, column int) string {
	if column < 0 || column >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[column])
}
