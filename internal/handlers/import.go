// Package handlers implements the HTTP surface of the import service.
package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/maquinex/import-service/internal/database"
	"github.com/maquinex/import-service/internal/importer"
	"github.com/maquinex/import-service/internal/storage"
	"github.com/maquinex/import-service/internal/submit"
	"github.com/maquinex/import-service/internal/types"
)

// ImportHandler wires the import pipeline to the HTTP endpoints. The
// semaphore bounds concurrent submit requests; preview requests are not
// bounded since they never touch the upstream API. archive and runs may be
// nil, in which case archiving and the audit trail are skipped.
type ImportHandler struct {
	importer       *importer.Importer
	submitter      *submit.Submitter
	archive        storage.Archive
	runs           *database.RunStore
	sem            *semaphore.Weighted
	maxUploadBytes int64
}

// NewImportHandler creates the handler set. maxConcurrent bounds in-flight
// submit requests; maxUploadBytes rejects oversized files before parsing.
func NewImportHandler(
	imp *importer.Importer,
	submitter *submit.Submitter,
	archive storage.Archive,
	runs *database.RunStore,
	maxConcurrent int64,
	maxUploadBytes int64,
) *ImportHandler {
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}
	return &ImportHandler{
		importer:       imp,
		submitter:      submitter,
		archive:        archive,
		runs:           runs,
		sem:            semaphore.NewWeighted(maxConcurrent),
		maxUploadBytes: maxUploadBytes,
	}
}

// previewResponse is the body of a successful preview call. Errors and rows
// are mutually exclusive: a file with validation errors carries no preview.
type previewResponse struct {
	Valid      bool                `json:"valid"`
	TotalRows  int                 `json:"totalRows"`
	ErrorCount int                 `json:"errorCount"`
	Preview    []types.PreviewItem `json:"preview"`
	Errors     []types.ErrorItem   `json:"errors,omitempty"`
}

// submitResponse is the body of a successful submit call.
type submitResponse struct {
	RunID      string                `json:"runId"`
	Status     types.ImportRunStatus `json:"status"`
	TotalRows  int                   `json:"totalRows"`
	Result     *types.UploadResult   `json:"result"`
	ArchiveKey string                `json:"archiveKey,omitempty"`
}

// Preview parses and validates an uploaded file without submitting anything.
// POST /internal/import/preview
func (h *ImportHandler) Preview(c *gin.Context) {
	filename, content, ok := h.readUpload(c)
	if !ok {
		return
	}

	result, err := h.importer.ImportFile(c.Request.Context(), filename, content)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, previewResponse{
		Valid:      len(result.Errors) == 0,
		TotalRows:  result.TotalRows,
		ErrorCount: len(result.Errors),
		Preview:    result.Preview,
		Errors:     result.ErrorItems,
	})
}

// Submit parses, validates, archives and submits an uploaded file. A file
// with any validation error is rejected with 422 and nothing is submitted.
// POST /internal/import/submit
func (h *ImportHandler) Submit(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.sem.Acquire(ctx, 1); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "el servicio está ocupado, intente de nuevo"})
		return
	}
	defer h.sem.Release(1)

	filename, content, ok := h.readUpload(c)
	if !ok {
		return
	}

	result, err := h.importer.ImportFile(ctx, filename, content)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(result.Errors) > 0 {
		h.recordRejection(c, filename, result)
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":      "el archivo contiene errores de validación y no fue enviado",
			"totalRows":  result.TotalRows,
			"errorCount": len(result.Errors),
			"errors":     result.ErrorItems,
		})
		return
	}

	runID := ""
	if h.runs != nil {
		runID, err = h.runs.CreateRun(ctx, filename, result.TotalRows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo registrar la importación"})
			return
		}
	}

	archiveKey := ""
	if h.archive != nil {
		key, checksum, archiveErr := h.archive.Put(ctx, runID, filename, content)
		if archiveErr != nil {
			// The archive is an audit convenience; a failed write does not
			// block the submission.
			log.Warn().Err(archiveErr).Str("file", filename).Msg("Failed to archive upload")
		} else {
			archiveKey = key
			log.Debug().Str("key", key).Str("checksum", checksum).Msg("Upload archived")
		}
	}

	upload, err := h.submitter.Submit(ctx, result.Rows)
	if err != nil {
		if h.runs != nil {
			if failErr := h.runs.FailRun(ctx, runID, types.RunStatusFailed, 0); failErr != nil {
				log.Error().Err(failErr).Str("runId", runID).Msg("Failed to mark run as failed")
			}
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "runId": runID})
		return
	}

	status := types.RunStatusCompleted
	if upload.HasObservations() {
		status = types.RunStatusCompletedWithObservations
	}
	if h.runs != nil {
		if err := h.runs.CompleteRun(ctx, runID, status, upload); err != nil {
			log.Error().Err(err).Str("runId", runID).Msg("Failed to complete run record")
		}
	}

	c.JSON(http.StatusOK, submitResponse{
		RunID:      runID,
		Status:     status,
		TotalRows:  result.TotalRows,
		Result:     upload,
		ArchiveKey: archiveKey,
	})
}

// ListRuns returns recent import runs, newest first.
// GET /internal/import/runs
func (h *ImportHandler) ListRuns(c *gin.Context) {
	if h.runs == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "la auditoría de importaciones no está configurada"})
		return
	}
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	runs, err := h.runs.ListRuns(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudieron consultar las importaciones"})
		return
	}
	if runs == nil {
		runs = []types.ImportRun{}
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

// recordRejection writes an audit row for a file blocked by validation. It
// is best-effort: the 422 goes out either way.
func (h *ImportHandler) recordRejection(c *gin.Context, filename string, result *importer.Result) {
	if h.runs == nil {
		return
	}
	ctx := c.Request.Context()
	runID, err := h.runs.CreateRun(ctx, filename, result.TotalRows)
	if err != nil {
		log.Error().Err(err).Str("file", filename).Msg("Failed to record rejected import")
		return
	}
	if err := h.runs.FailRun(ctx, runID, types.RunStatusRejected, len(result.Errors)); err != nil {
		log.Error().Err(err).Str("runId", runID).Msg("Failed to mark run as rejected")
	}
}

// readUpload extracts the multipart "file" field with a size cap. On failure
// it writes the error response and returns ok=false.
func (h *ImportHandler) readUpload(c *gin.Context) (string, []byte, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "se requiere un archivo en el campo 'file'"})
		return "", nil, false
	}
	if h.maxUploadBytes > 0 && fileHeader.Size > h.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": "el archivo excede el tamaño máximo permitido",
		})
		return "", nil, false
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no se pudo leer el archivo"})
		return "", nil, false
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no se pudo leer el archivo"})
		return "", nil, false
	}
	return fileHeader.Filename, content, true
}
