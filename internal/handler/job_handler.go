package handler

import (
	"net/http"
	"strconv"

	"jobportal/internal/domain"
	"jobportal/internal/domain/dto"
	"jobportal/internal/middleware"
	"jobportal/internal/service"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobService service.JobService
}

func NewJobHandler(jobService service.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

func (h *JobHandler) Create(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)

	var req dto.JobRequest
	if !bindAndValidate(c, &req) {
		return
	}

	job, err := h.jobService.CreateJob(c.Request.Context(), principal.UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Job created", job)
}

func (h *JobHandler) Update(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)
	jobID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.JobRequest
	if !bindAndValidate(c, &req) {
		return
	}

	job, err := h.jobService.UpdateJob(c.Request.Context(), jobID, principal.UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Job updated", job)
}

func (h *JobHandler) Delete(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)
	jobID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.jobService.DeleteJob(c.Request.Context(), jobID, principal.UserID); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Job deleted", nil)
}

func (h *JobHandler) ToggleStatus(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)
	jobID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ToggleJobStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.NewValidationError(map[string]string{"body": "invalid JSON payload"}))
		return
	}

	if err := h.jobService.ToggleJobStatus(c.Request.Context(), jobID, principal.UserID, req.IsActive); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Job status updated", gin.H{"isActive": req.IsActive})
}

func (h *JobHandler) GetByID(c *gin.Context) {
	jobID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	job, err := h.jobService.GetJobByID(c.Request.Context(), jobID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Job retrieved", job)
}

func (h *JobHandler) ListActive(c *gin.Context) {
	offset, limit := parsePaging(c)
	jobs, total, err := h.jobService.GetAllActiveJobs(c.Request.Context(), offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Jobs retrieved", pagedData(jobs, total, offset, limit))
}

func (h *JobHandler) MyJobs(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)
	offset, limit := parsePaging(c)
	jobs, total, err := h.jobService.GetJobsByEmployer(c.Request.Context(), principal.UserID, offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Jobs retrieved", pagedData(jobs, total, offset, limit))
}

// Search filters are conjunctive query parameters; every one is optional.
func (h *JobHandler) Search(c *gin.Context) {
	filter := domain.JobSearchFilter{
		Title:    c.Query("title"),
		Location: c.Query("location"),
	}

	if raw := c.Query("jobType"); raw != "" {
		jobType, err := domain.ParseJobType(raw)
		if err != nil {
			respondError(c, domain.NewValidationError(map[string]string{"jobType": err.Error()}))
			return
		}
		filter.JobType = &jobType
	}
	if raw := c.Query("experienceLevel"); raw != "" {
		level, err := domain.ParseExperienceLevel(raw)
		if err != nil {
			respondError(c, domain.NewValidationError(map[string]string{"experienceLevel": err.Error()}))
			return
		}
		filter.ExperienceLevel = &level
	}
	if raw := c.Query("minSalary"); raw != "" {
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(c, domain.NewValidationError(map[string]string{"minSalary": "must be an integer"}))
			return
		}
		filter.MinSalary = &value
	}
	if raw := c.Query("maxSalary"); raw != "" {
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(c, domain.NewValidationError(map[string]string{"maxSalary": "must be an integer"}))
			return
		}
		filter.MaxSalary = &value
	}
	if raw := c.Query("isRemote"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, domain.NewValidationError(map[string]string{"isRemote": "must be true or false"}))
			return
		}
		filter.IsRemote = &value
	}

	offset, limit := parsePaging(c)
	jobs, total, err := h.jobService.SearchJobs(c.Request.Context(), filter, offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Jobs retrieved", pagedData(jobs, total, offset, limit))
}
