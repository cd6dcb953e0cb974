package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/alimgiray/gitaudit/internal/models"
	"github.com/alimgiray/gitaudit/internal/repositories"
	"github.com/alimgiray/gitaudit/internal/services"
	"github.com/alimgiray/gitaudit/pkg/logger"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AuditHandler struct {
	jobStore       *repositories.JobStore
	exportService  *services.ExportService
	evaluationRepo *repositories.EvaluationRepository
}

// NewAuditHandler creates the audit API handler; evaluationRepo may be nil
// when no SQLite sink is configured.
func NewAuditHandler(jobStore *repositories.JobStore, exportService *services.ExportService,
	evaluationRepo *repositories.EvaluationRepository) *AuditHandler {
	return &AuditHandler{
		jobStore:       jobStore,
		exportService:  exportService,
		evaluationRepo: evaluationRepo,
	}
}

// Register mounts the audit routes on group. submitGuards run before
// CreateAudit only.
func (h *AuditHandler) Register(group *gin.RouterGroup, submitGuards ...gin.HandlerFunc) {
	group.POST("/audits", append(submitGuards, h.CreateAudit)...)
	group.GET("/audits", h.ListAudits)
	group.GET("/audits/:id", h.GetAudit)
	group.GET("/audits/:id/export", h.ExportAudit)
	group.GET("/evaluations", h.ListEvaluations)
}

// CreateAudit queues an audit job
func (h *AuditHandler) CreateAudit(c *gin.Context) {
	var request models.AuditRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if err := request.Validate(); err != nil {
		var validationErr *models.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message, "field": validationErr.Field})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job := models.NewJob(request)
	if err := h.jobStore.Create(job); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to queue audit"})
		return
	}

	logger.WithField("job_id", job.ID).WithField("repository", request.Repository).Info("Audit queued")
	c.Header("Location", "/api/audits/"+job.ID)
	c.JSON(http.StatusAccepted, job)
}

// ListAudits returns every known job, newest first, without results
func (h *AuditHandler) ListAudits(c *gin.Context) {
	jobs := h.jobStore.List()
	for _, job := range jobs {
		job.Result = nil
	}
	c.JSON(http.StatusOK, gin.H{"audits": jobs})
}

// GetAudit returns one job including its result once completed
func (h *AuditHandler) GetAudit(c *gin.Context) {
	job, ok := h.findJob(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, job)
}

// ExportAudit streams the result of a completed job as csv (default) or xlsx
func (h *AuditHandler) ExportAudit(c *gin.Context) {
	job, ok := h.findJob(c)
	if !ok {
		return
	}
	if !job.IsCompleted() || job.Result == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Audit is not completed", "status": job.Status})
		return
	}

	switch format := c.DefaultQuery("format", "csv"); format {
	case "csv":
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=audit-%s.csv", job.ID))
		c.Status(http.StatusOK)
		if err := h.exportService.WriteCSV(c.Writer, job.Result.Rows); err != nil {
			_ = c.Error(err)
		}
	case "xlsx":
		c.Header("Content-Type", xlsxContentType)
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=audit-%s.xlsx", job.ID))
		c.Status(http.StatusOK)
		if err := h.exportService.WriteXLSX(c.Writer, job.Result); err != nil {
			_ = c.Error(err)
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported format: " + format})
	}
}

// ListEvaluations returns the rows stored by the latest audit
func (h *AuditHandler) ListEvaluations(c *gin.Context) {
	if h.evaluationRepo == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No evaluation store configured"})
		return
	}

	rows, err := h.evaluationRepo.GetAll()
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load evaluations"})
		return
	}
	runID, err := h.evaluationRepo.GetRunID()
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load evaluations"})
		return
	}
	if rows == nil {
		rows = []*models.EvaluationRow{}
	}

	c.JSON(http.StatusOK, gin.H{"run_id": runID, "rows": rows})
}

func (h *AuditHandler) findJob(c *gin.Context) (*models.Job, bool) {
	job, err := h.jobStore.GetByID(c.Param("id"))
	if errors.Is(err, repositories.ErrJobNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Audit not found"})
		return nil, false
	}
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load audit"})
		return nil, false
	}
	return job, true
}
