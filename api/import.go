package api

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/pyneda/wsimport/internal/view"
	"github.com/pyneda/wsimport/pkg/description"
	"github.com/pyneda/wsimport/pkg/importer"
	"github.com/pyneda/wsimport/pkg/metadata"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

// ImportSection is one metadata document sent inline
type ImportSection struct {
	// Dialect is detected from the document element when empty
	Dialect    string `json:"dialect,omitempty" validate:"omitempty,oneof=http://schemas.xmlsoap.org/wsdl/ http://www.w3.org/2001/XMLSchema http://schemas.xmlsoap.org/ws/2004/09/policy"`
	Identifier string `json:"identifier,omitempty"`
	Content    string `json:"content" validate:"required"`
}

// ImportInput represents the input for importing service metadata.
type ImportInput struct {
	URLs     []string         `json:"urls,omitempty" validate:"omitempty,dive,url"`
	Sections []ImportSection  `json:"sections,omitempty" validate:"omitempty,dive"`
	Quotas   *importer.Quotas `json:"quotas,omitempty"`
}

// ImportResponse represents the result of an import session.
type ImportResponse struct {
	Session     string                     `json:"session"`
	Contracts   []view.ContractRow         `json:"contracts"`
	Bindings    []view.BindingRow          `json:"bindings"`
	Endpoints   []view.EndpointRow         `json:"endpoints"`
	Diagnostics []importer.ConversionError `json:"diagnostics"`
}

// ErrorResponse is returned with every non 2xx status
type ErrorResponse struct {
	Error       string                     `json:"error"`
	Message     string                     `json:"message,omitempty"`
	Diagnostics []importer.ConversionError `json:"diagnostics,omitempty"`
}

// ImportHandler serves import requests with a fixed set of importer options
type ImportHandler struct {
	Options importer.Options
	Fetcher *metadata.Fetcher
}

// ImportMetadata godoc
// @Summary Import WSDL and WS-Policy metadata
// @Description Resolves the given documents, and everything the URLs import, into contracts, bindings and endpoints
// @Tags Import
// @Accept json
// @Produce json
// @Param input body ImportInput true "Metadata documents and quotas"
// @Success 200 {object} ImportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /api/v1/import [post]
func (h *ImportHandler) ImportMetadata(c *fiber.Ctx) error {
	input := new(ImportInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "Cannot parse JSON",
			Message: err.Error(),
		})
	}

	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
	}
	if len(input.URLs) == 0 && len(input.Sections) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "Validation failed",
			Message: "either urls or sections must be provided",
		})
	}

	set, err := h.metadataSet(c, input)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "Failed to load metadata",
			Message: err.Error(),
		})
	}

	opts := h.Options
	if input.Quotas != nil {
		opts.Quotas = *input.Quotas
	}
	imp, err := importer.New(set, opts)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "Invalid metadata",
			Message: err.Error(),
		})
	}

	response, err := importAll(imp)
	if err != nil {
		log.Warn().Err(err).Str("session", imp.ID().String()).Msg("Import failed")
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
			Error:       "Import failed",
			Message:     err.Error(),
			Diagnostics: imp.Errors(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(response)
}

func (h *ImportHandler) metadataSet(c *fiber.Ctx, input *ImportInput) (metadata.Set, error) {
	var set metadata.Set
	for i, s := range input.Sections {
		identifier := s.Identifier
		if identifier == "" {
			identifier = fmt.Sprintf("section-%d", i)
		}
		if s.Dialect != "" {
			set.Add(metadata.Section{Dialect: s.Dialect, Identifier: identifier, Metadata: []byte(s.Content)})
			continue
		}
		section, err := metadata.SectionFromBytes([]byte(s.Content), identifier)
		if err != nil {
			return set, err
		}
		set.Add(section)
	}

	if len(input.URLs) > 0 {
		if h.Fetcher == nil {
			return set, errors.New("downloading metadata is disabled")
		}
		fetched, err := h.Fetcher.Fetch(c.UserContext(), input.URLs...)
		if err != nil {
			return set, err
		}
		set.Sections = append(set.Sections, fetched.Sections...)
	}
	return set, nil
}

func importAll(imp *importer.Importer) (ImportResponse, error) {
	response := ImportResponse{Session: imp.ID().String()}

	contracts, err := imp.ImportAllContracts()
	if err != nil {
		return response, err
	}
	bindings, err := imp.ImportAllBindings()
	if err != nil {
		return response, err
	}
	endpoints, err := imp.ImportAllEndpoints()
	if err != nil {
		return response, err
	}

	response.Contracts = view.Rows[*description.ContractDescription](contracts, view.NewContractRow)
	response.Bindings = view.Rows[*description.Binding](bindings, view.NewBindingRow)
	response.Endpoints = view.Rows[*description.ServiceEndpoint](endpoints, view.NewEndpointRow)
	response.Diagnostics = imp.Errors()
	if response.Diagnostics == nil {
		response.Diagnostics = []importer.ConversionError{}
	}
	return response, nil
}
