package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	jobRepo "carenow/database/repository/job"
	"carenow/models"
	"carenow/services/job"
	"carenow/services/partner"
	"carenow/utils"
)

// JobHandler exposes job intake, queries, and lifecycle actions.
type JobHandler struct {
	Jobs      job.JobService
	Dashboard invalidator
	Logger    *zap.Logger
}

func NewJobHandler(jobs job.JobService, dash invalidator, logger *zap.Logger) *JobHandler {
	return &JobHandler{Jobs: jobs, Dashboard: dash, Logger: logger}
}

// respondJobError maps service errors onto HTTP statuses.
func (h *JobHandler) respondJobError(c *gin.Context, err error) {
	var invalid *models.InvalidTransitionError
	var validation *partner.ValidationError
	switch {
	case errors.Is(err, jobRepo.ErrJobNotFound):
		utils.JSONError(c, http.StatusNotFound, "Job not found", err.Error())
	case errors.As(err, &invalid):
		utils.JSONError(c, http.StatusConflict, "Illegal job transition", err.Error())
	case errors.As(err, &validation):
		utils.JSONError(c, http.StatusBadRequest, "Validation failed", err.Error())
	default:
		h.Logger.Error("job operation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Job operation failed", err.Error())
	}
}

// CreateJobHandler records a booking assignment as a pending job.
func (h *JobHandler) CreateJobHandler(c *gin.Context) {
	var input models.Job
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid job payload", err.Error())
		return
	}
	if input.ID == "" {
		input.ID = input.BookingID
	}

	if err := h.Jobs.CreateJob(c.Request.Context(), &input); err != nil {
		h.respondJobError(c, err)
		return
	}
	h.Dashboard.Invalidate(c.Request.Context(), input.PartnerID)
	c.JSON(http.StatusCreated, input)
}

func (h *JobHandler) GetJobHandler(c *gin.Context) {
	j, err := h.Jobs.GetJob(c.Request.Context(), c.Param("id"), c.Param("jobId"))
	if err != nil {
		h.respondJobError(c, err)
		return
	}
	c.JSON(http.StatusOK, j)
}

func (h *JobHandler) PendingJobsHandler(c *gin.Context) {
	jobs, err := h.Jobs.PendingJobs(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondJobError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

func (h *JobHandler) ActiveJobsHandler(c *gin.Context) {
	jobs, err := h.Jobs.ActiveJobs(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondJobError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

func (h *JobHandler) JobHistoryHandler(c *gin.Context) {
	jobs, err := h.Jobs.JobHistory(c.Request.Context(), c.Param("id"), 0)
	if err != nil {
		h.respondJobError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

// action runs a lifecycle transition and refreshes the dashboard snapshot.
func (h *JobHandler) action(c *gin.Context, fn func(partnerID, jobID string) (*models.Job, error)) {
	partnerID := c.Param("id")
	jobID := c.Param("jobId")

	updated, err := fn(partnerID, jobID)
	if err != nil {
		h.respondJobError(c, err)
		return
	}

	h.Dashboard.Invalidate(c.Request.Context(), partnerID)
	c.JSON(http.StatusOK, updated)
}

type reasonInput struct {
	Reason string `json:"reason" binding:"required"`
}

func (h *JobHandler) AcceptJobHandler(c *gin.Context) {
	h.action(c, func(partnerID, jobID string) (*models.Job, error) {
		return h.Jobs.AcceptJob(c.Request.Context(), partnerID, jobID)
	})
}

func (h *JobHandler) RejectJobHandler(c *gin.Context) {
	var input reasonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "A rejection reason is required", err.Error())
		return
	}
	h.action(c, func(partnerID, jobID string) (*models.Job, error) {
		return h.Jobs.RejectJob(c.Request.Context(), partnerID, jobID, input.Reason)
	})
}

func (h *JobHandler) StartJobHandler(c *gin.Context) {
	h.action(c, func(partnerID, jobID string) (*models.Job, error) {
		return h.Jobs.StartJob(c.Request.Context(), partnerID, jobID)
	})
}

func (h *JobHandler) CompleteJobHandler(c *gin.Context) {
	h.action(c, func(partnerID, jobID string) (*models.Job, error) {
		return h.Jobs.CompleteJob(c.Request.Context(), partnerID, jobID)
	})
}

func (h *JobHandler) CancelJobHandler(c *gin.Context) {
	var input reasonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "A cancellation reason is required", err.Error())
		return
	}
	h.action(c, func(partnerID, jobID string) (*models.Job, error) {
		return h.Jobs.CancelJob(c.Request.Context(), partnerID, jobID, input.Reason)
	})
}
