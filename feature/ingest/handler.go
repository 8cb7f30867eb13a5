package ingest

import (
	"errors"
	"fmt"
	"io"

	"dex-ingest/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler handles HTTP requests for audit file ingestion.
type Handler struct {
	service   *Service
	maxUpload int64
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, maxUpload int64) *Handler {
	return &Handler{service: service, maxUpload: maxUpload}
}

// RegisterRoutes registers the ingest routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/dex")
	group.Post("/", h.HandleIngest)
	group.Get("/:id", h.HandleGetFile)
	group.Get("/:id/raw", h.HandleGetRaw)
}

// HandleIngest accepts a raw audit transmission, parses it, and returns
// the full parse outcome. The transmission arrives either as the request
// body or as a multipart "file" part; the optional "label" query parameter
// names it in reports and persistence.
func (h *Handler) HandleIngest(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	body, err := h.readUpload(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if len(body) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "request body is empty",
		})
	}
	if int64(len(body)) > h.maxUpload {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"error": "request body exceeds upload limit",
		})
	}

	label := c.Query("label", "upload")

	report, err := h.service.Ingest(c.Context(), body, label)
	if err != nil {
		l.Error("Ingest failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	l.Info("Audit file ingested",
		zap.String("id", report.ID),
		zap.String("label", label),
		zap.Bool("success", report.Result.Success),
		zap.Int("selections", len(report.Result.Selections)),
	)

	return c.JSON(report)
}

// readUpload returns the transmission bytes from a multipart "file" part
// when one is present, otherwise from the raw request body.
func (h *Handler) readUpload(c *fiber.Ctx) ([]byte, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		// Not a multipart request; fall back to the raw body.
		return c.Body(), nil
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, h.maxUpload+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	return content, nil
}

// HandleGetRaw streams the archived raw transmission back to the caller.
func (h *Handler) HandleGetRaw(c *fiber.Ctx) error {
	id := c.Params("id")
	l := logger.WithRayID(h.service.logger, c)

	raw, err := h.service.GetRaw(c.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNoStorage) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		l.Error("Raw file retrieval failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set(fiber.HeaderContentType, "text/plain")
	// SendStream closes the reader once the body has been written.
	return c.SendStream(raw)
}

// HandleGetFile returns a previously ingested audit file with its
// consolidated selections and recorded issues.
func (h *Handler) HandleGetFile(c *fiber.Ctx) error {
	id := c.Params("id")
	l := logger.WithRayID(h.service.logger, c)

	detail, err := h.service.GetFile(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoDatabase):
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, gorm.ErrRecordNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "audit file not found",
			})
		default:
			l.Error("Audit file lookup failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	return c.JSON(detail)
}
