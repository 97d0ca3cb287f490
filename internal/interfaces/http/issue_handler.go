package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/issuetrack-api/internal/application/dto"
	"github.com/jhoicas/issuetrack-api/internal/application/issues"
	"github.com/jhoicas/issuetrack-api/internal/domain"
)

// IssueHandler handles issue requests (protected).
type IssueHandler struct {
	uc *issues.IssueUseCase
}

// NewIssueHandler builds the handler.
func NewIssueHandler(uc *issues.IssueUseCase) *IssueHandler {
	return &IssueHandler{uc: uc}
}

// Create godoc
// @Summary      Create issue
// @Tags         issues
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateIssueRequest  true  "description, severity, product, reporter"
// @Success      201   {object}  dto.IssueResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/v1/issues [post]
func (h *IssueHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateIssueRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if in.Product == "" || in.Reporter == "" || in.Severity == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "severity, product and reporter are required"})
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "unknown severity"})
		}
		if errors.Is(err, domain.ErrUnprocessable) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "UNPROCESSABLE", Message: "couldn't add issue with given data (product or reporter user doesn't exist)"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      List issues
// @Tags         issues
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.IssueResponse
// @Router       /api/v1/issues [get]
func (h *IssueHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Retrieve issue
// @Tags         issues
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "issue id"
// @Success      200  {object}  dto.IssueResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/issues/{id} [get]
func (h *IssueHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id must be an integer"})
	}
	out, err := h.uc.GetByID(c.UserContext(), int64(id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "couldn't find issue with given id"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Patch godoc
// @Summary      Partially update issue
// @Tags         issues
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "issue id"
// @Param        body  body  dto.UpdateIssueRequest  true  "fields to change"
// @Success      200   {object}  dto.IssueResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/v1/issues/{id} [patch]
func (h *IssueHandler) Patch(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id must be an integer"})
	}
	var in dto.UpdateIssueRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.uc.Patch(c.UserContext(), int64(id), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "unknown severity or status"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "couldn't find issue with given id"})
		}
		if errors.Is(err, domain.ErrUnprocessable) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "UNPROCESSABLE", Message: "can't update the issue with given data"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
