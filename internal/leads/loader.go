// Package leads reads the campaign lead list from a CSV file. The file is
// re-read on every access so edits show up without a restart.
package leads

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/demandify-media/caller-voice-service/internal/domain"
)

// PageSize is the number of leads shown per dashboard page.
const PageSize = 8

// Loader reads prospect records from a CSV file with a header row. Columns
// are matched by name; unknown columns are ignored.
type Loader struct {
	path string
}

func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

func (l *Loader) Path() string { return l.path }

// Load returns every lead in file order. A missing file is not an error and
// yields an empty list.
func (l *Loader) Load() ([]domain.ProspectData, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open leads file: %w", err)
	}
	defer f.Close()
	return parse(f)
}

// ByIndex returns the lead at a 1-based index, matching how the dashboard
// numbers rows.
func (l *Loader) ByIndex(idx1 int) (domain.ProspectData, bool) {
	all, err := l.Load()
	if err != nil {
		return domain.ProspectData{}, false
	}
	if idx1 < 1 || idx1 > len(all) {
		return domain.ProspectData{}, false
	}
	return all[idx1-1], true
}

// Count returns the number of leads on file.
func (l *Loader) Count() int {
	all, err := l.Load()
	if err != nil {
		return 0
	}
	return len(all)
}

// Page holds one dashboard page of leads. StartIndex is the 1-based index of
// the first lead on the page.
type Page struct {
	Leads      []domain.ProspectData `json:"leads"`
	Page       int                   `json:"page"`
	TotalPages int                   `json:"total_pages"`
	Total      int                   `json:"total"`
	StartIndex int                   `json:"start_index"`
}

// LoadPage returns one page of leads, clamping the page number into range.
func (l *Loader) LoadPage(page int) (Page, error) {
	all, err := l.Load()
	if err != nil {
		return Page{}, err
	}

	total := len(all)
	totalPages := (total + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if end > total {
		end = total
	}
	var items []domain.ProspectData
	if start < total {
		items = all[start:end]
	}

	return Page{
		Leads:      items,
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
		StartIndex: start + 1,
	}, nil
}

func parse(r io.Reader) ([]domain.ProspectData, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read leads header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		// Exported spreadsheets often carry a UTF-8 BOM on the first cell.
		name = strings.TrimPrefix(name, "\uFEFF")
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var out []domain.ProspectData
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read leads row: %w", err)
		}
		out = append(out, domain.ProspectData{
			Name:     field(row, "prospect_name"),
			Company:  field(row, "company_name"),
			JobTitle: field(row, "job_title"),
			Phone:    field(row, "phone"),
			Email:    field(row, "email"),
			Timezone: field(row, "timezone"),
			Industry: field(row, "industry"),
			Notes:    field(row, "notes"),
		})
	}
	return out, nil
}
