package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	cases := map[string]Role{
		"employer":      RoleEmployer,
		"EMPLOYER":      RoleEmployer,
		"ROLE_EMPLOYER": RoleEmployer,
		" job_seeker ":  RoleJobSeeker,
		"admin":         RoleAdmin,
	}
	for input, want := range cases {
		got, err := ParseRole(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseRole("superuser")
	assert.Error(t, err)
	_, err = ParseRole("")
	assert.Error(t, err)
}

func TestParseApprovalStatus(t *testing.T) {
	got, err := ParseApprovalStatus("approved")
	require.NoError(t, err)
	assert.Equal(t, ApprovalApproved, got)

	_, err = ParseApprovalStatus("MAYBE")
	assert.Error(t, err)
}

func TestParseJobType(t *testing.T) {
	got, err := ParseJobType("full_time")
	require.NoError(t, err)
	assert.Equal(t, JobTypeFullTime, got)

	_, err = ParseJobType("GIG")
	assert.Error(t, err)
}

func TestParseApplicationStatus(t *testing.T) {
	got, err := ParseApplicationStatus(" shortlisted ")
	require.NoError(t, err)
	assert.Equal(t, ApplicationShortlisted, got)

	_, err = ParseApplicationStatus("ON_HOLD")
	assert.Error(t, err)
}

func TestErrorPredicates(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFoundError("Job not found")))
	assert.True(t, IsDuplicate(NewDuplicateError("taken")))
	assert.True(t, IsForbidden(NewForbiddenError("no")))
	assert.True(t, IsInvalidState(NewInvalidStateError("bad state")))
	assert.True(t, IsAuthentication(NewAuthenticationError("bad creds")))
	assert.True(t, IsValidation(NewValidationError(map[string]string{"f": "m"})))

	assert.False(t, IsNotFound(NewDuplicateError("taken")))
	assert.False(t, IsNotFound(errors.New("plain")))
	assert.False(t, IsNotFound(nil))

	// Predicates see through wrapping.
	wrapped := fmt.Errorf("loading job: %w", NewNotFoundError("Job not found"))
	assert.True(t, IsNotFound(wrapped))
}

func TestValidationErrorFields(t *testing.T) {
	err := NewValidationError(map[string]string{"email": "must be a valid email address"})
	assert.Equal(t, "Validation failed", err.Error())
	assert.Equal(t, "must be a valid email address", err.Fields["email"])
}

func TestPubliclyVisible(t *testing.T) {
	job := &Job{IsActive: true, ApprovalStatus: ApprovalApproved}
	assert.True(t, job.PubliclyVisible())

	job.IsActive = false
	assert.False(t, job.PubliclyVisible())

	job.IsActive = true
	job.ApprovalStatus = ApprovalPending
	assert.False(t, job.PubliclyVisible())
}

func TestApprovedEmployer(t *testing.T) {
	user := &User{Role: RoleEmployer, Employer: &EmployerProfile{IsApproved: true}}
	assert.True(t, user.ApprovedEmployer())

	user.Employer.IsApproved = false
	assert.False(t, user.ApprovedEmployer())

	seeker := &User{Role: RoleJobSeeker}
	assert.False(t, seeker.ApprovedEmployer())
}

func TestFullName(t *testing.T) {
	assert.Equal(t, "John Doe", (&User{FirstName: "John", LastName: "Doe"}).FullName())
	assert.Equal(t, "John", (&User{FirstName: "John"}).FullName())
	assert.Equal(t, "", (&User{}).FullName())
}

func TestValidateStruct(t *testing.T) {
	type form struct {
		Email string `validate:"required,email"`
		Name  string `validate:"required,min=3"`
	}

	err := ValidateStruct(form{Email: "john@example.com", Name: "John"})
	assert.NoError(t, err)

	err = ValidateStruct(form{Email: "not-an-email", Name: "J"})
	require.Error(t, err)
	require.True(t, IsValidation(err))

	var domainErr *Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "must be a valid email address", domainErr.Fields["Email"])
	assert.Equal(t, "must be at least 3", domainErr.Fields["Name"])
}

func TestSanitizerStripsHTML(t *testing.T) {
	s := NewSanitizer()
	assert.Equal(t, "hello", s.Clean(`<b>hello</b>`))
	assert.NotContains(t, s.Clean(`<script>alert(1)</script>safe`), "script")

	assert.Nil(t, s.CleanAll(nil))
	assert.Equal(t, []string{"a", "b"}, s.CleanAll([]string{"<i>a</i>", "b"}))
}
