package dto

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required,min=3,max=20,alphanum"`
	Password  string `json:"password" validate:"required,min=6"`
	Role      string `json:"role" validate:"required"`
	FirstName string `json:"firstName" validate:"max=100"`
	LastName  string `json:"lastName" validate:"max=100"`
	Phone     string `json:"phone" validate:"omitempty,e164"`

	// Job seeker specific
	ProfileHeadline   string `json:"profileHeadline" validate:"max=255"`
	YearsOfExperience *int   `json:"yearsOfExperience" validate:"omitempty,min=0,max=80"`

	// Employer specific; companyName is checked in the service once the role
	// is known.
	CompanyName    string `json:"companyName" validate:"max=255"`
	CompanyWebsite string `json:"companyWebsite" validate:"omitempty,url"`
}

type LoginRequest struct {
	// Identifier may be an email address or a username.
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}
