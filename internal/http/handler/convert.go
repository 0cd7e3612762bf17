package handler

import (
	"errors"
	"fmt"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gofiber/fiber/v2"

	"convertapi/internal/http/middleware"
	"convertapi/internal/model"
	"convertapi/internal/service"
)

const (
	// ConvertPath is the upload route. Its response body is a stream.
	ConvertPath = "/api/convert-to-word"
	// FileField is the multipart field carrying the PDF.
	FileField = "file"
)

// ConvertToWord handles PDF uploads and answers with the converted DOCX.
//
// @Summary Convert a PDF to Word
// @Description Uploads a PDF and returns it converted to DOCX. Conversion failures are reported with status 200 and an error field.
// @Tags convert
// @Accept multipart/form-data
// @Produce application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Produce json
// @Param file formData file true "PDF document"
// @Success 200 {file} file "DOCX document"
// @Failure 422 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /api/convert-to-word [post]
func ConvertToWord(svc service.ConversionService, logger log.Logger) fiber.Handler {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile(FileField)
		if err != nil {
			return writeError(c, fiber.StatusUnprocessableEntity, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return fmt.Errorf("open upload: %w", err)
		}
		conv, err := svc.Convert(c.UserContext(), f, fh.Filename)
		f.Close()
		if err != nil {
			if errors.Is(err, service.ErrConversionFailed) {
				return c.JSON(conversionFailure{Error: err.Error()})
			}
			if errors.Is(err, service.ErrFilenameRequired) {
				return writeError(c, fiber.StatusUnprocessableEntity, "FILE_REQUIRED", "file is required")
			}
			level.Error(logger).Log("msg", "convert upload", "request_id", middleware.RequestIDFromCtx(c), "file", fh.Filename, "err", err)
			return err
		}

		body, info, err := svc.OpenResult(c.UserContext(), conv)
		if err != nil {
			level.Error(logger).Log("msg", "open result", "request_id", middleware.RequestIDFromCtx(c), "conversion_id", conv.ID, "err", err)
			return err
		}

		// The body stream is closed once the response is written, which
		// removes both files.
		c.Attachment(conv.DocxName)
		c.Set(fiber.HeaderContentType, model.DocxContentType)
		c.Status(fiber.StatusOK).Context().SetBodyStream(body, int(info.Size))
		return nil
	}
}
