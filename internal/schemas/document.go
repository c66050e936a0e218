package schemas

import (
	_ "embed"
	"fmt"

	"github.com/jonathan/folio-builder/internal/types"
)

//go:embed document.schema.json
var documentSchema string

//go:embed portfolio.schema.json
var portfolioSchema string

// DocumentSchema returns the embedded schema used for kind.
func DocumentSchema(kind types.Kind) string {
	if kind == types.KindPortfolio {
		return portfolioSchema
	}
	return documentSchema
}

// ValidateDocument checks the minimal structure an uploaded document must
// have: an object personalInfo for every kind, plus an object themeSettings
// for portfolios.
func ValidateDocument(kind types.Kind, data []byte) error {
	if !kind.Valid() {
		return fmt.Errorf("unknown document kind %q", kind)
	}
	return ValidateJSONString(DocumentSchema(kind), string(data))
}
