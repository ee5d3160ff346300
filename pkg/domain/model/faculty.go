package model

import (
	"encoding/csv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// facultyHeader is the first row of every csrankings-*.csv file
var facultyHeader = []string{"name", "affiliation", "homepage", "scholarid"}

// FacultyEntry is one row of a csrankings-<letter>.csv file
type FacultyEntry struct {
	Name        string `json:"name"`
	Affiliation string `json:"affiliation"`
	Homepage    string `json:"homepage"`
	ScholarID   string `json:"scholarid"`
	Path        string `json:"path"`
}

// ParseFacultyLine parses a single CSV row. ok is false for the header row.
func ParseFacultyLine(path, line string) (entry FacultyEntry, ok bool, err error) {
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	record, err := r.Read()
	if err != nil {
		return FacultyEntry{}, false, goerr.Wrap(err, "failed to parse faculty row",
			goerr.V("path", path),
			goerr.V("line", line),
		)
	}

	if len(record) != len(facultyHeader) {
		return FacultyEntry{}, false, goerr.New("unexpected number of fields in faculty row",
			goerr.V("path", path),
			goerr.V("line", line),
			goerr.V("fields", len(record)),
		)
	}

	if isHeader(record) {
		return FacultyEntry{}, false, nil
	}

	return FacultyEntry{
		Name:        record[0],
		Affiliation: record[1],
		Homepage:    record[2],
		ScholarID:   record[3],
		Path:        path,
	}, true, nil
}

func isHeader(record []string) bool {
	for i, h := range facultyHeader {
		if strings.TrimSpace(record[i]) != h {
			return false
		}
	}
	return true
}

// MissingFields returns the names of the required columns left empty
func (e FacultyEntry) MissingFields() []string {
	var missing []string
	for _, f := range []struct{ column, value string }{
		{"name", e.Name},
		{"homepage", e.Homepage},
		{"scholarid", e.ScholarID},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.column)
		}
	}
	return missing
}

// Commit builds the commit record validated for this entry
func (e FacultyEntry) Commit(account, title string, modifiedFiles []string) *Commit {
	files := make([]string, len(modifiedFiles))
	copy(files, modifiedFiles)

	return &Commit{
		Author:          Author{Account: account},
		Title:           title,
		ModifiedFiles:   files,
		Homepage:        e.Homepage,
		GoogleScholarID: e.ScholarID,
		Name:            e.Name,
	}
}
