package handler

import (
	"net/http"

	"jobportal/internal/domain"
	"jobportal/internal/domain/dto"
	"jobportal/internal/middleware"
	"jobportal/internal/service"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	appService service.ApplicationService
}

func NewApplicationHandler(appService service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{appService: appService}
}

func (h *ApplicationHandler) Apply(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)

	var req dto.ApplicationRequest
	if !bindAndValidate(c, &req) {
		return
	}

	app, err := h.appService.ApplyToJob(c.Request.Context(), principal.UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Application submitted", app)
}

func (h *ApplicationHandler) GetByID(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)
	appID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	app, err := h.appService.GetApplication(c.Request.Context(), appID, principal.UserID, principal.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Application retrieved", app)
}

func (h *ApplicationHandler) MyApplications(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)
	offset, limit := parsePaging(c)

	apps, total, err := h.appService.GetApplicationsBySeeker(c.Request.Context(), principal.UserID, nil, offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Applications retrieved", pagedData(apps, total, offset, limit))
}

func (h *ApplicationHandler) MyApplicationsByStatus(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)

	status, err := domain.ParseApplicationStatus(c.Param("status"))
	if err != nil {
		respondError(c, domain.NewValidationError(map[string]string{"status": err.Error()}))
		return
	}

	offset, limit := parsePaging(c)
	apps, total, err := h.appService.GetApplicationsBySeeker(c.Request.Context(), principal.UserID, &status, offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Applications retrieved", pagedData(apps, total, offset, limit))
}

func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)
	appID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.appService.WithdrawApplication(c.Request.Context(), appID, principal.UserID); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Application withdrawn", nil)
}

func (h *ApplicationHandler) ByJob(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)
	jobID, ok := parseUUIDParam(c, "jobId")
	if !ok {
		return
	}

	offset, limit := parsePaging(c)
	apps, total, err := h.appService.GetApplicationsByJob(c.Request.Context(), jobID, principal.UserID, offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Applications retrieved", pagedData(apps, total, offset, limit))
}

func (h *ApplicationHandler) EmployerApplications(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)
	offset, limit := parsePaging(c)

	apps, total, err := h.appService.GetApplicationsByEmployer(c.Request.Context(), principal.UserID, offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Applications retrieved", pagedData(apps, total, offset, limit))
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)
	appID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ApplicationStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}

	app, err := h.appService.UpdateApplicationStatus(c.Request.Context(), appID, principal.UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Application status updated", app)
}

func (h *ApplicationHandler) CheckApplied(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)
	jobID, ok := parseUUIDParam(c, "jobId")
	if !ok {
		return
	}

	applied, err := h.appService.HasApplied(c.Request.Context(), jobID, principal.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Application check completed", gin.H{"hasApplied": applied})
}
