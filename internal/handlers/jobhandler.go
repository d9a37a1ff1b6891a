package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-tracker-api/internal/dtos"
	"github.com/justsurfingit/job-tracker-api/internal/middleware"
	"github.com/justsurfingit/job-tracker-api/internal/services"
)

// Dependency injection
type JobHandler struct {
	JobService *services.JobService
}

// NewJobHandler creates the handler with dependencies
func NewJobHandler(j *services.JobService) *JobHandler {
	return &JobHandler{
		JobService: j,
	}
}

// ListJobs is GET /jobs
func (h *JobHandler) ListJobs(c *gin.Context) {
	var query dtos.JobListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, services.InvalidArgument("Invalid query parameters"))
		return
	}
	jobs, err := h.JobService.ListJobs(c.Request.Context(), middleware.UserID(c), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// creating the job
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dtos.JobCreationRequest
	if err := bindJSON(c, &req, false); err != nil {
		respondError(c, err)
		return
	}
	job, err := h.JobService.CreateJob(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	middleware.Log(c).WithField("job_id", job.ID).Info("job created")
	c.JSON(http.StatusCreated, job)
}

// GetJob is GET /jobs/:id
func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.JobService.GetJob(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// UpdateJob serves PATCH and PUT /jobs/:id. Access is checked before the body is
// read, so a stranger gets 403 even for a malformed payload.
func (h *JobHandler) UpdateJob(c *gin.Context) {
	ctx := c.Request.Context()
	job, err := h.JobService.Authorize(ctx, middleware.UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req dtos.JobUpdateRequest
	if err := bindJSON(c, &req, true); err != nil {
		respondError(c, err)
		return
	}
	updated, err := h.JobService.ApplyUpdate(ctx, job, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	middleware.Log(c).WithField("job_id", updated.ID).Info("job updated")
	c.JSON(http.StatusOK, updated)
}

// DeleteJob is DELETE /jobs/:id
func (h *JobHandler) DeleteJob(c *gin.Context) {
	if err := h.JobService.DeleteJob(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	middleware.Log(c).WithField("job_id", c.Param("id")).Info("job deleted")
	c.JSON(http.StatusOK, dtos.MessageResponse{Message: "Job deleted successfully"})
}

// Stats is GET /jobs/stats
func (h *JobHandler) Stats(c *gin.Context) {
	stats, err := h.JobService.Stats(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
