package controller

import (
	"errors"

	"ai-import-be/internal/dto"
	"ai-import-be/internal/pkg/serverutils"
	"ai-import-be/internal/service"
	"ai-import-be/pkg/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IImportController interface {
	RegisterRoutes(r fiber.Router)
	Start(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	SetExerciseDecision(ctx *fiber.Ctx) error
	SetSetDecision(ctx *fiber.Ctx) error
	SetNoteDecision(ctx *fiber.Ctx) error
	ApplyBulk(ctx *fiber.Ctx) error
	ReplaceSuggestions(ctx *fiber.Ctx) error
	BindPatient(ctx *fiber.Ctx) error
	SetOptions(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
	SearchPatients(ctx *fiber.Ctx) error
	Commit(ctx *fiber.Ctx) error
}

type importController struct {
	service service.IImportService
	auth    fiber.Handler
}

func NewImportController(service service.IImportService, auth fiber.Handler) IImportController {
	return &importController{service: service, auth: auth}
}

func (c *importController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/import/v1")
	h.Use(c.auth)
	h.Post("/sessions", c.Start)
	h.Get("/sessions/:id", c.Show)
	h.Delete("/sessions/:id", c.Delete)
	h.Patch("/sessions/:id/exercises/:tempId", c.SetExerciseDecision)
	h.Put("/sessions/:id/exercises/:tempId/suggestions", c.ReplaceSuggestions)
	h.Patch("/sessions/:id/sets/:tempId", c.SetSetDecision)
	h.Patch("/sessions/:id/notes/:tempId", c.SetNoteDecision)
	h.Post("/sessions/:id/bulk", c.ApplyBulk)
	h.Put("/sessions/:id/patient", c.BindPatient)
	h.Put("/sessions/:id/options", c.SetOptions)
	h.Get("/sessions/:id/stats", c.Stats)
	h.Get("/sessions/:id/patients", c.SearchPatients)
	h.Post("/sessions/:id/commit", c.Commit)
}

// ImportErrorStatus maps import and reconcile errors onto HTTP status codes.
func ImportErrorStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, reconcile.ErrUnknownItem):
		return fiber.StatusNotFound, true
	case errors.Is(err, reconcile.ErrSetIneligible):
		return fiber.StatusConflict, true
	case errors.Is(err, reconcile.ErrNothingToImport):
		return fiber.StatusUnprocessableEntity, true
	case errors.Is(err, reconcile.ErrReuseWithoutTarget),
		errors.Is(err, reconcile.ErrTargetWithoutReuse),
		errors.Is(err, reconcile.ErrInvalidAction),
		errors.Is(err, reconcile.ErrUnknownCommand),
		errors.Is(err, service.ErrPatientNotInRoster):
		return fiber.StatusBadRequest, true
	}
	return 0, false
}

func practitionerId(ctx *fiber.Ctx) string {
	id, _ := ctx.Locals(serverutils.PractitionerIdKey).(string)
	return id
}

func sessionId(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}
	return id, nil
}

func parseBody(ctx *fiber.Ctx, req interface{}) error {
	if err := ctx.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	return serverutils.ValidateRequest(req)
}

func (c *importController) Start(ctx *fiber.Ctx) error {
	var req dto.StartImportRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Start(ctx.Context(), practitionerId(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success start import", res))
}

func (c *importController) Show(ctx *fiber.Ctx) error {
	id, err := sessionId(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Get(ctx.Context(), practitionerId(ctx), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show import", res))
}

func (c *importController) Delete(ctx *fiber.Ctx) error {
	id, err := sessionId(ctx)
	if err != nil {
		return err
	}

	if err := c.service.Delete(ctx.Context(), practitionerId(ctx), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success discard import", nil))
}

func (c *importController) SetExerciseDecision(ctx *fiber.Ctx) error {
	id, err := sessionId(ctx)
	if err != nil {
		return err
	}

	var req dto.ExerciseDecisionRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	req.SessionId = id
	req.TempId = ctx.Params("tempId")

	res, err := c.service.SetExerciseDecision(ctx.Context(), practitionerId(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update exercise decision", res))
}

func (c *importController) SetSetDecision(ctx *fiber.Ctx) error {
	id, err := sessionId(ctx)
	if err != nil {
		return err
	}

	var req dto.SetDecisionRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	req.SessionId = id
	req.TempId = ctx.Params("tempId")

	res, err := c.service.SetSetDecision(ctx.Context(), practitionerId(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update set decision", res))
}

func (c *importController) SetNoteDecision(ctx *fiber.Ctx) error {
	id, err := sessionId(ctx)
	if err != nil {
		return err
	}

	var req dto.NoteDecisionRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	req.SessionId = id
	req.TempId = ctx.Params("tempId")

	res, err := c.service.SetNoteDecision(ctx.Context(), practitionerId(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update note decision", res))
}

func (c *importController) ApplyBulk(ctx *fiber.Ctx) error {
	id, err := sessionId(ctx)
	if err != nil {
		return err
	}

	var req dto.BulkActionRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	req.SessionId = id

	res, err := c.service.ApplyBulk(ctx.Context(), practitionerId(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success apply bulk action", res))
}

func (c *importController) ReplaceSuggestions(ctx *fiber.Ctx) error {
	id, err := sessionId(ctx)
	if err != nil {
		return err
	}

	var req dto.ReplaceSuggestionsRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	req.SessionId = id
	req.TempId = ctx.Params("tempId")

	res, err := c.service.ReplaceSuggestions(ctx.Context(), practitionerId(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success replace suggestions", res))
}

func (c *importController) BindPatient(ctx *fiber.Ctx) error {
	id, err := sessionId(ctx)
	if err != nil {
		return err
	}

	var req dto.BindPatientRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	req.SessionId = id

	res, err := c.service.BindPatient(ctx.Context(), practitionerId(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success bind patient", res))
}

func (c *importController) SetOptions(ctx *fiber.Ctx) error {
	id, err := sessionId(ctx)
	if err != nil {
		return err
	}

	var req dto.ImportOptionsRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	req.SessionId = id

	res, err := c.service.SetOptions(ctx.Context(), practitionerId(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update import options", res))
}

func (c *importController) Stats(ctx *fiber.Ctx) error {
	id, err := sessionId(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Stats(ctx.Context(), practitionerId(ctx), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get import stats", res))
}

func (c *importController) SearchPatients(ctx *fiber.Ctx) error {
	id, err := sessionId(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.SearchPatients(ctx.Context(), practitionerId(ctx), id, ctx.Query("q"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search patients", res))
}

func (c *importController) Commit(ctx *fiber.Ctx) error {
	id, err := sessionId(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Commit(ctx.Context(), practitionerId(ctx), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success commit import", res))
}
