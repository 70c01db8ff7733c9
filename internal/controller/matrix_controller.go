package controller

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"glaze-matrix-be/internal/dto"
	"glaze-matrix-be/internal/pkg/serverutils"
	"glaze-matrix-be/internal/service"
	"glaze-matrix-be/internal/storage"
	"glaze-matrix-be/pkg/matrix"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const exportFileName = "glaze-matrix.csv"

type IMatrixController interface {
	RegisterRoutes(r fiber.Router, writeGuard fiber.Handler)
	SaveToggleStates(ctx *fiber.Ctx) error
	LoadToggleStates(ctx *fiber.Ctx) error
	ExportStoredMatrix(ctx *fiber.Ctx) error
	ExportMatrix(ctx *fiber.Ctx) error
	Reconcile(ctx *fiber.Ctx) error
	ApplyPreview(ctx *fiber.Ctx) error
	ListRuns(ctx *fiber.Ctx) error
	GetRun(ctx *fiber.Ctx) error
	GetCatalog(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type matrixController struct {
	service service.IMatrixService
}

func NewMatrixController(service service.IMatrixService) IMatrixController {
	return &matrixController{service: service}
}

// RegisterRoutes mounts the matrix API. writeGuard protects every state-changing route.
func (c *matrixController) RegisterRoutes(r fiber.Router, writeGuard fiber.Handler) {
	r.Get("/health", c.Health)
	r.Get("/colors", c.GetCatalog)

	r.Post("/save-toggle-states", writeGuard, c.SaveToggleStates)
	r.Get("/load-toggle-states", c.LoadToggleStates)

	r.Get("/export-matrix", c.ExportStoredMatrix)
	r.Post("/export-matrix", c.ExportMatrix)

	r.Post("/reconcile-from-csv", writeGuard, c.Reconcile)
	r.Post("/reconcile-from-csv/:previewId/apply", writeGuard, c.ApplyPreview)
	r.Get("/reconciliation-runs", c.ListRuns)
	r.Get("/reconciliation-runs/:id", c.GetRun)
}

func (c *matrixController) SaveToggleStates(ctx *fiber.Ctx) error {
	var req dto.SaveToggleStatesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Invalid request body", err)
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SaveToggleStates(ctx.UserContext(), &req)
	if err != nil {
		return mapServiceError(err)
	}

	return ctx.JSON(res)
}

func (c *matrixController) LoadToggleStates(ctx *fiber.Ctx) error {
	res, err := c.service.LoadToggleStates(ctx.UserContext())
	if err != nil {
		return mapServiceError(err)
	}

	return ctx.JSON(res)
}

func (c *matrixController) ExportStoredMatrix(ctx *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := c.service.ExportStoredMatrix(ctx.UserContext(), &buf); err != nil {
		return mapServiceError(err)
	}
	return sendCSV(ctx, buf.Bytes())
}

func (c *matrixController) ExportMatrix(ctx *fiber.Ctx) error {
	var req dto.ExportMatrixRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Invalid request body", err)
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := c.service.ExportMatrix(ctx.UserContext(), &buf, req.DisabledCells); err != nil {
		return mapServiceError(err)
	}
	return sendCSV(ctx, buf.Bytes())
}

// Reconcile accepts either JSON {csv, boundaryColumn, apply} or a multipart form with a
// "file" part and the same fields as form values.
func (c *matrixController) Reconcile(ctx *fiber.Ctx) error {
	var req dto.ReconcileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Invalid request body", err)
	}

	if isMultipart(ctx) {
		file, err := ctx.FormFile("file")
		if err != nil {
			return serverutils.BadRequest("Missing file", err)
		}
		f, err := file.Open()
		if err != nil {
			return serverutils.BadRequest("Unreadable file", err)
		}
		defer f.Close()

		content, err := io.ReadAll(f)
		if err != nil {
			return serverutils.BadRequest("Unreadable file", err)
		}
		req.Csv = string(content)
		if req.FileName == "" {
			req.FileName = file.Filename
		}
	}

	res, err := c.service.Reconcile(ctx.UserContext(), &req)
	if err != nil {
		return mapServiceError(err)
	}

	message := "Reconciliation preview created"
	if res.Applied {
		message = "Reconciliation applied"
	}
	return ctx.JSON(serverutils.SuccessResponse(message, res))
}

func (c *matrixController) ApplyPreview(ctx *fiber.Ctx) error {
	res, err := c.service.ApplyPreview(ctx.UserContext(), ctx.Params("previewId"))
	if err != nil {
		return mapServiceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Reconciliation applied", res))
}

func (c *matrixController) ListRuns(ctx *fiber.Ctx) error {
	var req dto.ListRunsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return serverutils.BadRequest("Invalid query", err)
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.ListRuns(ctx.UserContext(), &req)
	if err != nil {
		return mapServiceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list reconciliation runs", res))
}

func (c *matrixController) GetRun(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.BadRequest("Invalid run id", err)
	}

	res, err := c.service.GetRun(ctx.UserContext(), id)
	if err != nil {
		return mapServiceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get reconciliation run", res))
}

func (c *matrixController) GetCatalog(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get catalog", c.service.GetCatalog(ctx.UserContext())))
}

func (c *matrixController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(c.service.Health(ctx.UserContext()))
}

func mapServiceError(err error) error {
	var parseErr *matrix.ParseError
	var persistenceErr *storage.PersistenceError
	var fileErr *storage.FileError

	switch {
	case errors.Is(err, service.ErrBlankCellKey):
		return serverutils.BadRequest(err.Error(), err)
	case errors.Is(err, service.ErrPreviewNotFound), errors.Is(err, service.ErrRunNotFound):
		return serverutils.NotFound(err.Error(), err)
	case errors.As(err, &parseErr):
		return serverutils.BadRequest(parseErr.Error(), err)
	case errors.As(err, &persistenceErr):
		// Two saves racing on the same keys; the losing transaction rolled back.
		if persistenceErr.IsUniqueViolation() {
			return serverutils.Conflict("toggle states were saved concurrently, retry", err)
		}
		return serverutils.InternalServerError("database storage failed: "+persistenceErr.Op, err)
	case errors.As(err, &fileErr):
		return serverutils.InternalServerError("file storage failed: "+fileErr.Op, err)
	default:
		return err
	}
}

func isMultipart(ctx *fiber.Ctx) bool {
	return strings.HasPrefix(string(ctx.Request().Header.ContentType()), fiber.MIMEMultipartForm)
}

func sendCSV(ctx *fiber.Ctx, body []byte) error {
	ctx.Attachment(exportFileName)
	ctx.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return ctx.Send(body)
}
