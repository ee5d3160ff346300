package rule

import (
	"encoding/csv"
	"errors"
	"io"
	"regexp"

	"github.com/m-mizutani/goerr/v2"
)

var spaceAfterComma = regexp.MustCompile(`,\s`)

// ErrSpaceAfterComma is returned by CheckFormatting for a field containing
// a comma immediately followed by whitespace
var ErrSpaceAfterComma = errors.New("space after comma")

// CheckFormatting parses r as CSV and returns an error when a field contains
// a comma followed by whitespace or r cannot be read. Stray quotes are
// accepted, as hand-edited rows often carry them.
func CheckFormatting(r io.Reader) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return goerr.Wrap(err, "failed to parse CSV")
		}

		for _, field := range record {
			if spaceAfterComma.MatchString(field) {
				line, _ := reader.FieldPos(0)
				return goerr.Wrap(ErrSpaceAfterComma, "field contains a space after a comma",
					goerr.V("line", line),
					goerr.V("field", field),
				)
			}
		}
	}
}
