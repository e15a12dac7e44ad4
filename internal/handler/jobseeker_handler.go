package handler

import (
	"net/http"

	"jobportal/internal/domain"
	"jobportal/internal/domain/dto"
	"jobportal/internal/middleware"
	"jobportal/internal/service"

	"github.com/gin-gonic/gin"
)

type JobSeekerHandler struct {
	seekerService service.JobSeekerService
}

func NewJobSeekerHandler(seekerService service.JobSeekerService) *JobSeekerHandler {
	return &JobSeekerHandler{seekerService: seekerService}
}

func (h *JobSeekerHandler) GetProfile(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)
	user, err := h.seekerService.GetProfile(c.Request.Context(), principal.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Profile retrieved", user)
}

func (h *JobSeekerHandler) UpdateProfile(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)

	var req dto.ProfileUpdateRequest
	if !bindAndValidate(c, &req) {
		return
	}

	user, err := h.seekerService.UpdateProfile(c.Request.Context(), principal.UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Profile updated", user)
}

func (h *JobSeekerHandler) UploadProfilePicture(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)

	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, domain.NewValidationError(map[string]string{"file": "file is required"}))
		return
	}

	url, err := h.seekerService.UploadProfilePicture(c.Request.Context(), principal.UserID, file)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Profile picture uploaded", gin.H{"url": url})
}

func (h *JobSeekerHandler) GetCV(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)
	cv, err := h.seekerService.GetCV(c.Request.Context(), principal.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "CV retrieved", cv)
}

func (h *JobSeekerHandler) UpdateCV(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)

	var req dto.CVUpdateRequest
	if !bindAndValidate(c, &req) {
		return
	}

	cv, err := h.seekerService.UpdateCV(c.Request.Context(), principal.UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "CV updated", cv)
}

func (h *JobSeekerHandler) UploadCVFile(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)

	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, domain.NewValidationError(map[string]string{"file": "file is required"}))
		return
	}

	url, err := h.seekerService.UploadCVFile(c.Request.Context(), principal.UserID, file)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "CV file uploaded", gin.H{"url": url})
}

func (h *JobSeekerHandler) AddEducation(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)

	var req dto.EducationRequest
	if !bindAndValidate(c, &req) {
		return
	}

	cv, err := h.seekerService.AddEducation(c.Request.Context(), principal.UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Education added", cv)
}

func (h *JobSeekerHandler) AddWorkExperience(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)

	var req dto.WorkExperienceRequest
	if !bindAndValidate(c, &req) {
		return
	}

	cv, err := h.seekerService.AddWorkExperience(c.Request.Context(), principal.UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Work experience added", cv)
}

func (h *JobSeekerHandler) AddCertification(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)

	var req dto.CertificationRequest
	if !bindAndValidate(c, &req) {
		return
	}

	cv, err := h.seekerService.AddCertification(c.Request.Context(), principal.UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Certification added", cv)
}
