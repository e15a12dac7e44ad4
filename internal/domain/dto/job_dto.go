package dto

// JobRequest is used for both create and full-overwrite update. Omitted list
// fields (nil) leave the stored lists untouched; explicit empty lists clear
// them.
type JobRequest struct {
	Title               string    `json:"title" validate:"required,max=255"`
	Description         string    `json:"description" validate:"required"`
	Requirements        string    `json:"requirements"`
	Responsibilities    string    `json:"responsibilities"`
	JobType             string    `json:"jobType" validate:"required"`
	ExperienceLevel     string    `json:"experienceLevel" validate:"required"`
	Location            string    `json:"location" validate:"max=255"`
	SalaryMin           *int64    `json:"salaryMin" validate:"omitempty,min=0"`
	SalaryMax           *int64    `json:"salaryMax" validate:"omitempty,min=0"`
	SalaryCurrency      string    `json:"salaryCurrency" validate:"omitempty,len=3"`
	IsRemote            bool      `json:"isRemote"`
	ApplicationDeadline string    `json:"applicationDeadline" validate:"omitempty,datetime=2006-01-02"`
	Vacancies           *int      `json:"vacancies" validate:"omitempty,min=1"`
	RequiredSkills      *[]string `json:"requiredSkills"`
	Benefits            *[]string `json:"benefits"`
}

type ToggleJobStatusRequest struct {
	IsActive bool `json:"isActive"`
}
