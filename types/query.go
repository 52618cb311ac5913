package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

type Validater interface {
	Validate() map[string]string
}

// IngestTextParams is the body of POST /api/v1/ingest/from-text. Metadata
// arrives as a JSON-encoded object and is validated separately after decoding.
type IngestTextParams struct {
	Text     string `json:"text" validate:"required"`
	Metadata string `json:"metadata" validate:"required"`
	Topic    string `json:"topic"`
}

// IngestPatentParams is the body of POST /api/v1/ingest/from-id.
type IngestPatentParams struct {
	PatentID string `json:"patent_id" validate:"required"`
	Topic    string `json:"topic"`
}

// SearchParams is the body of POST /api/v1/search.
type SearchParams struct {
	Query   string         `json:"query" validate:"required"`
	TopK    int            `json:"top_k" validate:"omitempty,gte=1,lte=100"`
	Filters *SearchFilters `json:"filters"`
}

func Validate(v Validater) map[string]string {
	return v.Validate()
}

func (params *IngestTextParams) Validate() map[string]string {
	return validateStruct(params)
}

func (params *IngestPatentParams) Validate() map[string]string {
	return validateStruct(params)
}

func (params *SearchParams) Validate() map[string]string {
	return validateStruct(params)
}

func (m *PatentMetadata) Validate() map[string]string {
	return validateStruct(m)
}

func validateStruct(s any) map[string]string {
	validate := validator.New()
	if err := validate.Struct(s); err != nil {
		errs := err.(validator.ValidationErrors)
		errors := make(map[string]string)
		for _, e := range errs {
			errors[e.Field()] = fmt.Sprintf("failed on '%s' tag", e.Tag())
		}
		return errors
	}
	return nil
}
