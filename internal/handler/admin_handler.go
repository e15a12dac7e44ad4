package handler

import (
	"net/http"

	"jobportal/internal/domain"
	"jobportal/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminService service.AdminService
}

func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.adminService.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Dashboard retrieved", dashboard)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	var role *domain.Role
	if raw := c.Query("role"); raw != "" {
		parsed, err := domain.ParseRole(raw)
		if err != nil {
			respondError(c, domain.NewValidationError(map[string]string{"role": err.Error()}))
			return
		}
		role = &parsed
	}

	offset, limit := parsePaging(c)
	users, total, err := h.adminService.ListUsers(c.Request.Context(), role, offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Users retrieved", pagedData(users, total, offset, limit))
}

func (h *AdminHandler) PendingEmployers(c *gin.Context) {
	employers, err := h.adminService.PendingEmployers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Pending employers retrieved", employers)
}

func (h *AdminHandler) ApproveEmployer(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.adminService.ApproveEmployer(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Employer approved", nil)
}

func (h *AdminHandler) RejectEmployer(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.adminService.RejectEmployer(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Employer rejected", nil)
}

func (h *AdminHandler) PendingJobs(c *gin.Context) {
	offset, limit := parsePaging(c)
	jobs, total, err := h.adminService.PendingJobs(c.Request.Context(), offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Pending jobs retrieved", pagedData(jobs, total, offset, limit))
}

func (h *AdminHandler) ApproveJob(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.adminService.ApproveJob(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Job approved", nil)
}

func (h *AdminHandler) DeactivateJob(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.adminService.DeactivateJob(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Job deactivated", nil)
}

func (h *AdminHandler) DeleteJob(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.adminService.DeleteJob(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Job deleted", nil)
}

func (h *AdminHandler) EnableUser(c *gin.Context)  { h.setEnabled(c, true) }
func (h *AdminHandler) DisableUser(c *gin.Context) { h.setEnabled(c, false) }

func (h *AdminHandler) setEnabled(c *gin.Context, enabled bool) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.adminService.SetUserEnabled(c.Request.Context(), id, enabled); err != nil {
		respondError(c, err)
		return
	}
	message := "User disabled"
	if enabled {
		message = "User enabled"
	}
	respond(c, http.StatusOK, message, nil)
}

func (h *AdminHandler) LockUser(c *gin.Context)   { h.setLocked(c, true) }
func (h *AdminHandler) UnlockUser(c *gin.Context) { h.setLocked(c, false) }

func (h *AdminHandler) setLocked(c *gin.Context, locked bool) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.adminService.SetUserLocked(c.Request.Context(), id, locked); err != nil {
		respondError(c, err)
		return
	}
	message := "User unlocked"
	if locked {
		message = "User locked"
	}
	respond(c, http.StatusOK, message, nil)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.adminService.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "User deleted", nil)
}
