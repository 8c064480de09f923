package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/melhem/content-hub/internal/api/dto"
	"github.com/melhem/content-hub/internal/auth"
	"github.com/melhem/content-hub/internal/domain"
	"github.com/melhem/content-hub/internal/service"
	"github.com/melhem/content-hub/internal/store"
	apperrors "github.com/melhem/content-hub/pkg/util"
)

// CasesHandler exposes the clinical case workflow endpoints.
type CasesHandler struct {
	cases   *service.CaseService
	content *service.ContentService
}

// NewCasesHandler constructs handler.
func NewCasesHandler(caseService *service.CaseService, contentService *service.ContentService) *CasesHandler {
	return &CasesHandler{cases: caseService, content: contentService}
}

// Create handles POST /cases.
func (h *CasesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateCaseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Title == "" {
		return apperrors.NewValidationError("title required", nil)
	}

	created, err := h.cases.SubmitCase(c.Context(), principal.Viewer, service.CaseSubmitInput{
		Title:                req.Title,
		Category:             req.Category,
		ShortDescription:     req.ShortDescription,
		PatientProblem:       req.PatientProblem,
		TreatmentProcess:     req.TreatmentProcess,
		Result:               req.Result,
		Tone:                 req.Tone,
		IsAnonymous:          req.IsAnonymous,
		IsSuitableForSharing: req.IsSuitableForSharing,
		Media:                dto.ToMedia(req.Media),
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.FromCase(*created),
	})
}

// List handles GET /cases. Doctors see their own cases, marketing sees all.
// Filters arrive as query parameters and combine with AND semantics.
func (h *CasesHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	filter := store.CaseFilter{
		Status:     c.Query("status"),
		Category:   c.Query("category"),
		Tone:       c.Query("tone"),
		SearchText: c.Query("search"),
	}

	cases := h.cases.ListForViewer(principal.Viewer, filter)
	return c.JSON(fiber.Map{
		"data": dto.FromCases(cases),
	})
}

// Get handles GET /cases/:id.
func (h *CasesHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	found, err := h.cases.GetForViewer(principal.Viewer, c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.FromCase(found),
	})
}

// UpdateStatus handles PATCH /cases/:id/status. Marketing only.
func (h *CasesHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Status == "" {
		return apperrors.NewValidationError("status required", nil)
	}

	updated, err := h.cases.ChangeStatus(c.Context(), principal.Viewer, c.Params("id"), req.Status)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.FromCase(*updated),
	})
}

// Publish handles POST /cases/:id/publish. Marketing only.
func (h *CasesHandler) Publish(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.PublishCaseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Type == "" || req.Content == "" {
		return apperrors.NewValidationError("type and content required", nil)
	}

	published, err := h.cases.Publish(c.Context(), principal.Viewer, c.Params("id"), domain.PublishedResult{
		Type:    req.Type,
		Content: req.Content,
		Caption: req.Caption,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.FromCase(*published),
	})
}

// GenerateContent handles POST /cases/:id/content. Marketing only; the
// result is cached, so repeated calls for the same case are cheap.
func (h *CasesHandler) GenerateContent(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	found, err := h.cases.GetForViewer(principal.Viewer, c.Params("id"))
	if err != nil {
		return err
	}

	content, err := h.content.GenerateForCase(c.Context(), found)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.FromSocialContent(*content),
	})
}
