package dto

type ApplicationRequest struct {
	JobID       string `json:"jobId" validate:"required,uuid"`
	CoverLetter string `json:"coverLetter"`
	CVFileURL   string `json:"cvFileUrl" validate:"max=512"`
}

type ApplicationStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes"`
}
