package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobportal/internal/config"
	"jobportal/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	config      *config.Config
	userRepo    domain.UserRepository
	sessionRepo domain.SessionStore
	jwtSecret   string
}

// Claims is the JWT payload. The session ID doubles as the JTI so a token can
// be revoked server-side before it expires.
type Claims struct {
	UserID    uuid.UUID   `json:"user_id"`
	Role      domain.Role `json:"role"`
	SessionID string      `json:"session_id"`
	jwt.RegisteredClaims
}

func NewAuthService(
	cfg *config.Config,
	userRepo domain.UserRepository,
	sessionRepo domain.SessionStore,
) domain.AuthService {
	return &authService{
		config:      cfg,
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwtSecret:   cfg.JWTSecret,
	}
}

func (s *authService) Register(ctx context.Context, req domain.RegisterInput) (*domain.AuthResult, error) {
	if req.Role == domain.RoleAdmin {
		return nil, domain.NewForbiddenError("Admin accounts cannot be self-registered")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)

	if taken, err := s.userRepo.ExistsByEmail(ctx, email); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.NewDuplicateError("Email is already registered")
	}
	if taken, err := s.userRepo.ExistsByUsername(ctx, username); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.NewDuplicateError("Username is already taken")
	}

	if req.Role == domain.RoleEmployer && strings.TrimSpace(req.CompanyName) == "" {
		return nil, domain.NewValidationError(map[string]string{
			"companyName": "field is required for employer accounts",
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		PhoneNumber:  strings.TrimSpace(req.Phone),
		Role:         req.Role,
		IsEnabled:    true,
		IsLocked:     false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	switch req.Role {
	case domain.RoleJobSeeker:
		user.Seeker = &domain.JobSeekerProfile{
			ProfileHeadline:   strings.TrimSpace(req.ProfileHeadline),
			YearsOfExperience: req.YearsOfExperience,
		}
	case domain.RoleEmployer:
		// Registration returns a token, but subsequent logins are blocked
		// until an admin approves the company.
		user.Employer = &domain.EmployerProfile{
			CompanyName:    strings.TrimSpace(req.CompanyName),
			CompanyWebsite: strings.TrimSpace(req.CompanyWebsite),
			IsApproved:     false,
			ApprovalStatus: domain.ApprovalPending,
		}
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Info().
		Str("user_id", user.ID.String()).
		Str("role", string(user.Role)).
		Msg("User registered")

	return s.issueToken(ctx, user, req.UserAgent, req.IPAddress)
}

func (s *authService) Login(ctx context.Context, identifier, password, userAgent, ipAddress string) (*domain.AuthResult, error) {
	user, err := s.lookup(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewAuthenticationError("Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.NewAuthenticationError("Invalid credentials")
	}

	if !user.IsEnabled {
		return nil, domain.NewAuthenticationError("Account is disabled")
	}
	if user.IsLocked {
		return nil, domain.NewAuthenticationError("Account is locked")
	}
	if user.Role == domain.RoleEmployer && user.Employer != nil {
		switch user.Employer.ApprovalStatus {
		case domain.ApprovalRejected:
			return nil, domain.NewAuthenticationError("Employer account was rejected")
		case domain.ApprovalPending:
			return nil, domain.NewAuthenticationError("Employer account is pending approval")
		}
	}

	return s.issueToken(ctx, user, userAgent, ipAddress)
}

// lookup resolves a login identifier as an email first, then as a username.
func (s *authService) lookup(ctx context.Context, identifier string) (*domain.User, error) {
	identifier = strings.TrimSpace(identifier)
	if strings.Contains(identifier, "@") {
		return s.userRepo.GetByEmail(ctx, strings.ToLower(identifier))
	}
	user, err := s.userRepo.GetByUsername(ctx, identifier)
	if err != nil || user != nil {
		return user, err
	}
	return s.userRepo.GetByEmail(ctx, strings.ToLower(identifier))
}

func (s *authService) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return s.userRepo.ExistsByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (s *authService) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return s.userRepo.ExistsByUsername(ctx, strings.TrimSpace(username))
}

// EnsureAdmin creates the seed admin account on startup when it is missing.
func (s *authService) EnsureAdmin(ctx context.Context, email, username, password string) error {
	if password == "" {
		log.Warn().Msg("Admin password not configured, skipping admin seed")
		return nil
	}

	existing, err := s.userRepo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	now := time.Now()
	admin := &domain.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        strings.ToLower(email),
		PasswordHash: string(hash),
		FirstName:    "System",
		LastName:     "Administrator",
		Role:         domain.RoleAdmin,
		IsEnabled:    true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, admin); err != nil {
		return err
	}

	log.Info().Str("email", admin.Email).Msg("Seed admin account created")
	return nil
}

func (s *authService) issueToken(ctx context.Context, user *domain.User, userAgent, ipAddress string) (*domain.AuthResult, error) {
	sessionID := uuid.New().String()
	now := time.Now()
	expiresAt := now.Add(s.config.TokenTTL)

	claims := &Claims{
		UserID:    user.ID,
		Role:      user.Role,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "jobportal",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	session := &domain.Session{
		ID:        sessionID,
		UserID:    user.ID,
		Role:      user.Role,
		ExpiresAt: expiresAt,
		CreatedAt: now,
		UserAgent: userAgent,
		IPAddress: ipAddress,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	return &domain.AuthResult{
		User:        user,
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		SessionID:   sessionID,
	}, nil
}

// ParseClaims validates a signed token and returns its claims. The middleware
// additionally checks the session still exists.
func ParseClaims(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
