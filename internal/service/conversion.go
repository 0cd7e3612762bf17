package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"convertapi/internal/converter"
	"convertapi/internal/metrics"
	"convertapi/internal/model"
	"convertapi/internal/storage"
)

var (
	ErrReaderNil        = errors.New("reader is nil")
	ErrFilenameRequired = errors.New("filename is required")
	// ErrConversionFailed marks errors raised by the converter itself; every
	// other error from Convert is an infrastructure failure.
	ErrConversionFailed = errors.New("conversion failed")
)

// ConversionError wraps a converter failure. Its message is the one returned
// to clients.
type ConversionError struct {
	Err error
}

func (e *ConversionError) Error() string {
	return "Failed to convert PDF: " + e.Err.Error()
}

func (e *ConversionError) Unwrap() []error {
	return []error{ErrConversionFailed, e.Err}
}

// ConversionService defines the PDF to DOCX use case.
type ConversionService interface {
	// Convert stores the upload under filename and converts every page into a
	// DOCX next to it. On converter failure the stored PDF is deleted and the
	// error wraps ErrConversionFailed.
	Convert(ctx context.Context, r io.Reader, filename string) (*model.Conversion, error)

	// OpenResult opens the produced DOCX. Closing the returned reader removes
	// both artifacts of conv. If opening fails the artifacts are removed at once.
	OpenResult(ctx context.Context, conv *model.Conversion) (io.ReadCloser, storage.ObjectInfo, error)

	// Cleanup deletes both artifacts of conv if they exist.
	Cleanup(ctx context.Context, conv *model.Conversion) error

	// Ready reports whether the workspace and the converter backend are usable.
	Ready(ctx context.Context) error
}

// conversionService is a concrete implementation of ConversionService.
type conversionService struct {
	store   storage.Storage
	conv    converter.Converter
	metrics metrics.Recorder
	logger  log.Logger
	tracer  trace.Tracer
}

// NewConversionService constructs a new ConversionService. A nil recorder or
// logger disables metrics or logging.
func NewConversionService(store storage.Storage, conv converter.Converter, rec metrics.Recorder, logger log.Logger) ConversionService {
	if rec == nil {
		rec = metrics.Nop{}
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &conversionService{
		store:   store,
		conv:    conv,
		metrics: rec,
		logger:  logger,
		tracer:  otel.Tracer("convertapi/internal/service"),
	}
}

func (s *conversionService) Convert(ctx context.Context, r io.Reader, filename string) (*model.Conversion, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if filename == "" {
		return nil, ErrFilenameRequired
	}
	backend := s.conv.Name()

	ctx, span := s.tracer.Start(ctx, "conversion.convert", trace.WithAttributes(
		attribute.String("file.name", filename),
		attribute.String("converter.backend", backend),
	))
	defer span.End()

	c := &model.Conversion{
		ID:         uuid.New().String(),
		SourceName: filename,
		DocxName:   docxName(filename),
		CreatedAt:  time.Now().UTC(),
	}
	span.SetAttributes(attribute.String("conversion.id", c.ID))

	info, err := s.store.Put(ctx, c.SourceName, r)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "save upload")
		return nil, fmt.Errorf("save upload: %w", err)
	}
	c.Size = info.Size
	c.PDFPath = s.store.Path(c.SourceName)
	c.DocxPath = s.store.Path(c.DocxName)
	span.SetAttributes(attribute.Int64("file.size", c.Size))

	start := time.Now()
	if err := s.conv.Convert(ctx, c.PDFPath, c.DocxPath, converter.FullRange); err != nil {
		s.metrics.ObserveConversion(backend, metrics.ResultFailure, time.Since(start))
		span.RecordError(err)
		span.SetStatus(codes.Error, "convert")

		level.Warn(s.logger).Log("msg", "conversion failed", "conversion_id", c.ID, "file", filename, "err", err)
		if delErr := s.store.Delete(ctx, c.SourceName); delErr != nil {
			level.Error(s.logger).Log("msg", "remove upload after failure", "conversion_id", c.ID, "err", delErr)
		}
		return nil, &ConversionError{Err: err}
	}
	elapsed := time.Since(start)
	s.metrics.ObserveConversion(backend, metrics.ResultSuccess, elapsed)

	level.Info(s.logger).Log("msg", "conversion finished", "conversion_id", c.ID, "file", filename,
		"size", c.Size, "backend", backend, "duration_ms", elapsed.Milliseconds())
	return c, nil
}

func (s *conversionService) OpenResult(ctx context.Context, conv *model.Conversion) (io.ReadCloser, storage.ObjectInfo, error) {
	rc, info, err := s.store.Open(conv.DocxName)
	if err != nil {
		_ = s.Cleanup(ctx, conv)
		return nil, storage.ObjectInfo{}, fmt.Errorf("open result: %w", err)
	}
	return &cleanupReader{
		ReadCloser: rc,
		cleanup: func() {
			// The request context may be gone by the time the body is flushed.
			_ = s.Cleanup(context.Background(), conv)
		},
	}, info, nil
}

func (s *conversionService) Cleanup(ctx context.Context, conv *model.Conversion) error {
	if err := s.store.Delete(ctx, conv.Artifacts()...); err != nil {
		level.Error(s.logger).Log("msg", "cleanup failed", "conversion_id", conv.ID, "err", err)
		return fmt.Errorf("cleanup: %w", err)
	}
	level.Debug(s.logger).Log("msg", "cleanup done", "conversion_id", conv.ID)
	return nil
}

func (s *conversionService) Ready(ctx context.Context) error {
	if err := s.store.Check(ctx); err != nil {
		return err
	}
	return s.conv.Ready(ctx)
}

// cleanupReader runs cleanup once, after the underlying reader is closed.
type cleanupReader struct {
	io.ReadCloser
	once    sync.Once
	cleanup func()
}

func (r *cleanupReader) Close() error {
	err := r.ReadCloser.Close()
	r.once.Do(r.cleanup)
	return err
}

// docxName replaces the extension of filename with ".docx". Leading dots do
// not start an extension, so ".pdf" becomes ".pdf.docx".
func docxName(filename string) string {
	i := strings.LastIndexByte(filename, '.')
	if i <= 0 || strings.Trim(filename[:i], ".") == "" {
		return filename + ".docx"
	}
	return filename[:i] + ".docx"
}
