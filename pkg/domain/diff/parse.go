package diff

import (
	_ "embed"
	"encoding/json"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/rankguard/pkg/domain/model"
	"github.com/m-mizutani/rankguard/pkg/domain/types"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/diff.schema.json
var documentSchema string

var schemaLoader = gojsonschema.NewStringLoader(documentSchema)

// Parse validates raw JSON against the diff document schema and decodes it
func Parse(data []byte) (*model.DiffDocument, error) {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read diff document", goerr.T(types.ErrTagMalformedDiff))
	}

	if !result.Valid() {
		var violations []string
		for _, e := range result.Errors() {
			violations = append(violations, e.String())
		}
		return nil, goerr.New("diff document does not match schema",
			goerr.T(types.ErrTagMalformedDiff),
			goerr.V("violations", strings.Join(violations, "; ")),
		)
	}

	var doc model.DiffDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode diff document", goerr.T(types.ErrTagMalformedDiff))
	}

	return &doc, nil
}
