package resumes

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"resume-analyzer/internal/extract"
	"resume-analyzer/internal/shared/server/middleware"
	"resume-analyzer/internal/shared/server/respond"
	"resume-analyzer/internal/shared/telemetry"
	"resume-analyzer/internal/shared/util"
)

const (
	defaultMaxUploadBytes = 10 << 20 // 10MB
	sniffLen              = 512
)

var (
	errFileRequired = errors.New("file is required")
	errNotPDF       = errors.New("file must be a PDF")
	errTooLarge     = errors.New("file exceeds upload limit")
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler. A non-positive limit uses 10MB.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches résumé routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes/analyze", h.analyze)
	rg.POST("/resumes/extract", h.extract)
	rg.GET("/resumes/techniques", h.techniques)
	rg.GET("/analyses/demo", h.demo)
}

func (h *Handler) analyze(c *gin.Context) {
	document, ok := h.readUpload(c)
	if !ok {
		return
	}

	report, err := h.Svc.Analyze(c.Request.Context(), document)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Set(middleware.ProviderKey, report.Provider)
	c.Set(middleware.TextLengthKey, report.TextLength)

	respond.OK(c, ToAnalyzeResponse(report))
}

func (h *Handler) extract(c *gin.Context) {
	document, ok := h.readUpload(c)
	if !ok {
		return
	}

	text, err := h.Svc.Extract(c.Request.Context(), document)
	if err != nil {
		h.fail(c, err)
		return
	}
	length := utf8.RuneCountInString(text)
	c.Set(middleware.TextLengthKey, length)

	respond.OK(c, ExtractResponse{Text: text, TextLength: length})
}

func (h *Handler) demo(c *gin.Context) {
	respond.OK(c, h.Svc.Demo())
}

func (h *Handler) techniques(c *gin.Context) {
	respond.OK(c, TechniquesResponse{Techniques: h.Svc.Techniques()})
}

// readUpload returns the bytes of the multipart "file" field, writing the
// error response itself when the upload is unusable.
func (h *Handler) readUpload(c *gin.Context) ([]byte, bool) {
	document, err := h.loadFile(c)
	if err == nil {
		return document, true
	}
	switch {
	case errors.Is(err, errTooLarge):
		respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large", "file exceeds upload limit", gin.H{
			"maxBytes": h.MaxUploadBytes,
		})
	case errors.Is(err, errNotPDF):
		respond.Error(c, http.StatusBadRequest, "validation_error", "file must be a PDF", nil)
	default:
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	}
	return nil, false
}

func (h *Handler) loadFile(c *gin.Context) ([]byte, error) {
	if c.Request.ContentLength > h.MaxUploadBytes {
		return nil, errTooLarge
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		if isTooLarge(err) {
			return nil, errTooLarge
		}
		return nil, errFileRequired
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, errors.New("unable to read file")
	}
	defer file.Close()

	document, err := io.ReadAll(io.LimitReader(file, h.MaxUploadBytes+1))
	if err != nil {
		return nil, errors.New("unable to read file")
	}
	if int64(len(document)) > h.MaxUploadBytes {
		return nil, errTooLarge
	}

	head := document
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	if !extract.IsPDFUpload(fileHeader.Filename, fileHeader.Header.Get("Content-Type"), head) {
		return nil, errNotPDF
	}

	name, err := util.SanitizeFileName(fileHeader.Filename)
	if err != nil {
		name = "upload"
	}
	telemetry.Info("resume.upload", map[string]any{
		"request_id":  middleware.RequestIDFromContext(c),
		"file_name":   name,
		"size_bytes":  len(document),
		"fingerprint": util.Fingerprint(document),
	})
	return document, nil
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, extract.ErrExtractionFailed):
		respond.Error(c, http.StatusUnprocessableEntity, "extraction_failed", "Could not extract text from the PDF. Please try another file.", nil)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respond.Error(c, http.StatusServiceUnavailable, "request_cancelled", "request was cancelled before analysis finished", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to analyze resume", nil)
	}
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}
