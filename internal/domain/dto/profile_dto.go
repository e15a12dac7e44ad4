package dto

// ProfileUpdateRequest is a partial update: nil pointers leave the stored
// value untouched.
type ProfileUpdateRequest struct {
	FirstName         *string `json:"firstName" validate:"omitempty,max=100"`
	LastName          *string `json:"lastName" validate:"omitempty,max=100"`
	PhoneNumber       *string `json:"phoneNumber" validate:"omitempty,e164"`
	DateOfBirth       *string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	Address           *string `json:"address" validate:"omitempty,max=255"`
	City              *string `json:"city" validate:"omitempty,max=100"`
	Country           *string `json:"country" validate:"omitempty,max=100"`
	PostalCode        *string `json:"postalCode" validate:"omitempty,max=20"`
	ProfileSummary    *string `json:"profileSummary"`
	ProfileHeadline   *string `json:"profileHeadline" validate:"omitempty,max=255"`
	YearsOfExperience *int    `json:"yearsOfExperience" validate:"omitempty,min=0,max=80"`
}

type CVUpdateRequest struct {
	ProfessionalTitle *string   `json:"professionalTitle" validate:"omitempty,max=255"`
	Bio               *string   `json:"bio"`
	Skills            *[]string `json:"skills"`
	Languages         *[]string `json:"languages"`
	LinkedinURL       *string   `json:"linkedinUrl" validate:"omitempty,url"`
	GithubURL         *string   `json:"githubUrl" validate:"omitempty,url"`
	PortfolioURL      *string   `json:"portfolioUrl" validate:"omitempty,url"`
	TemplateName      *string   `json:"templateName" validate:"omitempty,max=50"`
}

type EducationRequest struct {
	Institution  string `json:"institution" validate:"required,max=255"`
	Degree       string `json:"degree" validate:"required,max=255"`
	FieldOfStudy string `json:"fieldOfStudy" validate:"max=255"`
	StartDate    string `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate      string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	IsCurrent    bool   `json:"isCurrent"`
	Description  string `json:"description"`
}

type WorkExperienceRequest struct {
	Company     string `json:"company" validate:"required,max=255"`
	Position    string `json:"position" validate:"required,max=255"`
	StartDate   string `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate     string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	IsCurrent   bool   `json:"isCurrent"`
	Description string `json:"description"`
}

type CertificationRequest struct {
	Name                string `json:"name" validate:"required,max=255"`
	IssuingOrganization string `json:"issuingOrganization" validate:"max=255"`
	IssueDate           string `json:"issueDate" validate:"omitempty,datetime=2006-01-02"`
	ExpirationDate      string `json:"expirationDate" validate:"omitempty,datetime=2006-01-02"`
	CredentialID        string `json:"credentialId" validate:"max=100"`
	CredentialURL       string `json:"credentialUrl" validate:"omitempty,url"`
}
