package handler

import (
	"net/http"

	"jobportal/internal/domain"
	"jobportal/internal/domain/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService domain.AuthService
}

func NewAuthHandler(authService domain.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		respondError(c, domain.NewValidationError(map[string]string{"role": err.Error()}))
		return
	}

	result, err := h.authService.Register(c.Request.Context(), domain.RegisterInput{
		Email:             req.Email,
		Username:          req.Username,
		Password:          req.Password,
		Role:              role,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Phone:             req.Phone,
		ProfileHeadline:   req.ProfileHeadline,
		YearsOfExperience: req.YearsOfExperience,
		CompanyName:       req.CompanyName,
		CompanyWebsite:    req.CompanyWebsite,
		UserAgent:         c.GetHeader("User-Agent"),
		IPAddress:         c.ClientIP(),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, "Registration successful", result)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Identifier, req.Password,
		c.GetHeader("User-Agent"), c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Login successful", result)
}

func (h *AuthHandler) CheckEmail(c *gin.Context) {
	exists, err := h.authService.ExistsByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Email availability checked", gin.H{"exists": exists})
}

func (h *AuthHandler) CheckUsername(c *gin.Context) {
	exists, err := h.authService.ExistsByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Username availability checked", gin.H{"exists": exists})
}
