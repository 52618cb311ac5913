package api

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"patentsearch/service"
	"patentsearch/store"
	"patentsearch/types"
)

type RequestHandler struct {
	ingest *service.IngestService
	search *service.SearchService
	store  store.VectorStorer
}

func NewRequestHandler(ingest *service.IngestService, search *service.SearchService, storer store.VectorStorer) *RequestHandler {
	return &RequestHandler{
		ingest: ingest,
		search: search,
		store:  storer,
	}
}

// HandleIngestFromText ingests raw patent text with caller-supplied metadata.
// Metadata arrives as a JSON-encoded string field and is validated before any
// pipeline work happens.
func (h *RequestHandler) HandleIngestFromText(c *fiber.Ctx) error {
	var params types.IngestTextParams
	if c.BodyParser(&params) != nil {
		return ErrBadRequest()
	}
	if errors := types.Validate(&params); len(errors) > 0 {
		return NewValidationError(errors)
	}

	var metadata types.PatentMetadata
	if err := json.Unmarshal([]byte(params.Metadata), &metadata); err != nil {
		return NewValidationError(map[string]string{"Metadata": "not a valid JSON object"})
	}
	if errors := types.Validate(&metadata); len(errors) > 0 {
		return NewValidationError(errors)
	}

	result, err := h.ingest.IngestText(c.Context(), params.Text, metadata, params.Topic)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// HandleIngestFromID ingests a patent by number, fetching its text and
// metadata from the patent API.
func (h *RequestHandler) HandleIngestFromID(c *fiber.Ctx) error {
	var params types.IngestPatentParams
	if c.BodyParser(&params) != nil {
		return ErrBadRequest()
	}
	if errors := types.Validate(&params); len(errors) > 0 {
		return NewValidationError(errors)
	}

	result, err := h.ingest.IngestPatentID(c.Context(), params.PatentID, params.Topic)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (h *RequestHandler) HandleSearch(c *fiber.Ctx) error {
	var params types.SearchParams
	if c.BodyParser(&params) != nil {
		return ErrBadRequest()
	}
	if errors := types.Validate(&params); len(errors) > 0 {
		return NewValidationError(errors)
	}

	results, err := h.search.Search(c.Context(), params.Query, params.TopK, params.Filters)
	if err != nil {
		return err
	}
	return c.JSON(results)
}

// HandleDropCollection deletes the whole chunk collection. Admin reset for
// re-ingesting a corpus from scratch.
func (h *RequestHandler) HandleDropCollection(c *fiber.Ctx) error {
	if err := h.store.DeleteCollection(c.Context()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"result": "collection deleted"})
}
