// Package corpus loads job postings and maintains the derived skill-frequency index.
package corpus

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jonathan/skillmatch/internal/logging"
	"github.com/jonathan/skillmatch/internal/skills"
	"github.com/jonathan/skillmatch/internal/types"
)

// Column and field names shared by the CSV and JSON formats.
const (
	fieldRole       = "role"
	fieldSkills     = "skills"
	fieldSalary     = "salary_lpa"
	fieldExperience = "experience_required"
)

// LoadError reports a corpus source that could not be read at all.
// A malformed row is never a LoadError; it contributes zero skills instead.
type LoadError struct {
	Source string
	Cause  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load corpus from %s: %v", e.Source, e.Cause)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// LoadFile reads a corpus file, choosing the format from its extension.
// Malformed CSV rows are reported to logger, which may be nil.
func LoadFile(path string, logger logging.Logger) ([]types.JobPosting, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Source: path, Cause: err}
	}
	defer func() { _ = f.Close() }()

	var postings []types.JobPosting
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		postings, err = ParseCSV(f, logger)
	case ".json":
		postings, err = ParseJSON(f)
	default:
		err = fmt.Errorf("unsupported corpus format %q (want .csv or .json)", filepath.Ext(path))
	}
	if err != nil {
		return nil, &LoadError{Source: path, Cause: err}
	}
	return postings, nil
}

// ParseCSV reads a header-driven CSV corpus with one posting per line. Only
// the role column is mandatory; short rows and unparsable numbers degrade to
// zero values.
//
// A row with broken quoting is re-read with lazy quotes and logged with its
// line number. If it still cannot be split it is kept with no skills, so one
// bad row never hides the rows after it.
func ParseCSV(r io.Reader, logger logging.Logger) ([]types.JobPosting, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	p := &csvParser{logger: logger, postings: []types.JobPosting{}}

	br := bufio.NewReader(r)
	for {
		text, err := br.ReadString('\n')
		if text != "" {
			p.line++
			if perr := p.parseLine(strings.TrimRight(text, "\r\n")); perr != nil {
				return nil, perr
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
	}
	return p.postings, nil
}

type csvParser struct {
	logger   logging.Logger
	columns  map[string]int
	line     int
	postings []types.JobPosting
}

func (p *csvParser) parseLine(text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	if p.columns == nil {
		header, err := splitCSVLine(text, false)
		if err != nil {
			return fmt.Errorf("failed to read CSV header: %w", err)
		}
		p.columns = make(map[string]int, len(header))
		for i, name := range header {
			p.columns[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
		}
		if _, ok := p.columns[fieldRole]; !ok {
			return fmt.Errorf("CSV header is missing the %q column", fieldRole)
		}
		return nil
	}

	row, err := splitCSVLine(text, false)
	if err != nil {
		fields := logging.Fields{"line": p.line, "error": err.Error()}
		row, err = splitCSVLine(text, true)
		if err != nil {
			p.logger.Warn("malformed corpus row kept without skills", fields)
			p.postings = append(p.postings, types.JobPosting{
				Role:           p.recoverRole(text),
				RequiredSkills: []string{},
			})
			return nil
		}
		p.logger.Warn("malformed corpus row read with lazy quotes", fields)
	}

	p.postings = append(p.postings, types.JobPosting{
		Role:               p.cell(row, fieldRole),
		RequiredSkills:     skills.SplitList(p.cell(row, fieldSkills)),
		Salary:             parseFloat(p.cell(row, fieldSalary)),
		ExperienceRequired: parseYears(p.cell(row, fieldExperience)),
	})
	return nil
}

func (p *csvParser) cell(row []string, name string) string {
	i, ok := p.columns[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// recoverRole takes the role column from a plain comma split of the line.
func (p *csvParser) recoverRole(text string) string {
	parts := strings.Split(text, ",")
	i := p.columns[fieldRole]
	if i >= len(parts) {
		return ""
	}
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(parts[i]), `"`))
}

// splitCSVLine splits a single physical line into fields.
func splitCSVLine(text string, lazy bool) ([]string, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = lazy
	return reader.Read()
}

// rawRecord tolerates any JSON type per field.
type rawRecord map[string]json.RawMessage

// ParseJSON reads a JSON array of corpus records. Fields of the wrong type
// are treated as absent.
func ParseJSON(r io.Reader) ([]types.JobPosting, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON corpus: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []types.JobPosting{}, nil
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse JSON corpus: %w", err)
	}

	postings := make([]types.JobPosting, 0, len(records))
	for _, raw := range records {
		var rec rawRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			// Non-object entries still occupy a slot so total_jobs matches the source.
			postings = append(postings, types.JobPosting{})
			continue
		}
		postings = append(postings, types.JobPosting{
			Role:               rec.str(fieldRole),
			RequiredSkills:     rec.skillList(fieldSkills),
			Salary:             rec.number(fieldSalary),
			ExperienceRequired: clampYears(rec.number(fieldExperience)),
		})
	}
	return postings, nil
}

func (r rawRecord) str(key string) string {
	var s string
	if err := json.Unmarshal(r[key], &s); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// skillList accepts either a comma-separated string or an array of strings.
func (r rawRecord) skillList(key string) []string {
	raw, ok := r[key]
	if !ok {
		return []string{}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return skills.SplitList(s)
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return skills.SplitList(strings.Join(list, ","))
	}
	return []string{}
}

func (r rawRecord) number(key string) float64 {
	raw, ok := r[key]
	if !ok {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return parseFloat(s)
	}
	return 0
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

func parseYears(s string) int {
	return clampYears(parseFloat(s))
}

func clampYears(f float64) int {
	if f < 0 {
		return 0
	}
	return int(f)
}
