package model

import (
	"strings"
	"time"
)

// Gender values offered by the member form.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

// Member is a registered member of a society.
type Member struct {
	ID                 string    `json:"id"`
	FullName           string    `json:"full_name"`
	DateOfBirth        Timestamp `json:"date_of_birth"`
	Gender             string    `json:"gender"`
	Title              *string   `json:"title,omitempty"`
	ResidentialAddress string    `json:"residential_address"`
	EmailAddress       *string   `json:"email_address,omitempty"`
	Occupation         *string   `json:"occupation,omitempty"`
	Society            Society   `json:"society"`
	ClassAllocation    *string   `json:"class_allocation,omitempty"`
	CreatedAt          Timestamp `json:"created_at"`
	CreatedBy          string    `json:"created_by"`
}

// OccupationOrNA returns the occupation for display, "N/A" when blank.
func (m Member) OccupationOrNA() string {
	if m.Occupation == nil || strings.TrimSpace(*m.Occupation) == "" {
		return "N/A"
	}
	return *m.Occupation
}

// CreateMemberRequest is the body of POST /members.
type CreateMemberRequest struct {
	FullName           string    `json:"full_name"`
	DateOfBirth        Timestamp `json:"date_of_birth"`
	Gender             string    `json:"gender"`
	Title              *string   `json:"title,omitempty"`
	ResidentialAddress string    `json:"residential_address"`
	EmailAddress       *string   `json:"email_address,omitempty"`
	Occupation         *string   `json:"occupation,omitempty"`
	Society            Society   `json:"society"`
	ClassAllocation    *string   `json:"class_allocation,omitempty"`
}

// MembersListOptions filters GET /members. Empty fields are not sent.
type MembersListOptions struct {
	Society Society
	Search  string
}

// MemberDraft holds the raw member form input.
type MemberDraft struct {
	FullName           string
	DateOfBirth        string
	Gender             string
	Title              string
	ResidentialAddress string
	EmailAddress       string
	Occupation         string
	Society            string
	ClassAllocation    string
}

// Validate reports field errors, or nil when the draft can be submitted.
func (d MemberDraft) Validate() FieldErrors {
	fe := FieldErrors{}
	requireField(fe, "full_name", d.FullName, "Full name is required")
	if strings.TrimSpace(d.DateOfBirth) == "" {
		fe["date_of_birth"] = "Date of birth is required"
	} else if dob, err := ParseDate(d.DateOfBirth); err != nil {
		fe["date_of_birth"] = "Date of birth must be YYYY-MM-DD"
	} else if dob.After(time.Now()) {
		fe["date_of_birth"] = "Date of birth cannot be in the future"
	}
	switch strings.TrimSpace(d.Gender) {
	case GenderMale, GenderFemale:
	case "":
		fe["gender"] = "Gender is required"
	default:
		fe["gender"] = "Gender must be Male or Female"
	}
	requireField(fe, "residential_address", d.ResidentialAddress, "Residential address is required")
	if strings.TrimSpace(d.Society) == "" {
		fe["society"] = "Society is required"
	} else if _, ok := ParseSociety(d.Society); !ok {
		fe["society"] = "Unknown society"
	}
	if email := strings.TrimSpace(d.EmailAddress); email != "" && !strings.Contains(email, "@") {
		fe["email_address"] = "Email address is invalid"
	}
	return fe.OrNil()
}

// Request shapes the draft into the create payload.
func (d MemberDraft) Request() (CreateMemberRequest, error) {
	if fe := d.Validate(); fe != nil {
		return CreateMemberRequest{}, fe
	}
	dob, _ := ParseDate(d.DateOfBirth)
	society, _ := ParseSociety(d.Society)
	return CreateMemberRequest{
		FullName:           strings.TrimSpace(d.FullName),
		DateOfBirth:        dob,
		Gender:             strings.TrimSpace(d.Gender),
		Title:              optional(d.Title),
		ResidentialAddress: strings.TrimSpace(d.ResidentialAddress),
		EmailAddress:       optional(d.EmailAddress),
		Occupation:         optional(d.Occupation),
		Society:            society,
		ClassAllocation:    optional(d.ClassAllocation),
	}, nil
}

// Reset clears the draft after a successful submit.
func (d *MemberDraft) Reset() { *d = MemberDraft{} }
