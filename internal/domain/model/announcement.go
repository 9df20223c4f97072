package model

import "strings"

// Funeral announcement status values.
const (
	FinancialStatusGood    = "Good standing"
	FinancialStatusNotGood = "Not good standing"

	AttendanceAttending    = "Attending classes"
	AttendanceNotAttending = "Not attending classes"
)

// FinancialStatuses returns the selectable financial standing values.
func FinancialStatuses() []string {
	return []string{FinancialStatusGood, FinancialStatusNotGood}
}

// AttendanceRecords returns the selectable class attendance values.
func AttendanceRecords() []string {
	return []string{AttendanceAttending, AttendanceNotAttending}
}

// Announcement is a circuit notice, optionally carrying funeral details.
type Announcement struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Content          string     `json:"content"`
	DeceasedName     *string    `json:"deceased_name,omitempty"`
	ClassLeaderName  *string    `json:"class_leader_name,omitempty"`
	DeathDate        *Timestamp `json:"death_date,omitempty"`
	BurialLocation   *string    `json:"burial_location,omitempty"`
	FinancialStatus  *string    `json:"financial_status,omitempty"`
	AttendanceRecord *string    `json:"attendance_record,omitempty"`
	CreatedBy        string     `json:"created_by"`
	CreatedAt        Timestamp  `json:"created_at"`
}

// IsFuneral reports whether the funeral details block applies.
func (a Announcement) IsFuneral() bool {
	return a.DeceasedName != nil && strings.TrimSpace(*a.DeceasedName) != ""
}

// CreateAnnouncementRequest is the body of POST /announcements.
type CreateAnnouncementRequest struct {
	Title            string     `json:"title"`
	Content          string     `json:"content"`
	DeceasedName     *string    `json:"deceased_name,omitempty"`
	ClassLeaderName  *string    `json:"class_leader_name,omitempty"`
	DeathDate        *Timestamp `json:"death_date"`
	BurialLocation   *string    `json:"burial_location,omitempty"`
	FinancialStatus  *string    `json:"financial_status,omitempty"`
	AttendanceRecord *string    `json:"attendance_record,omitempty"`
}

// AnnouncementDraft holds the raw announcement form input.
type AnnouncementDraft struct {
	Title            string
	Content          string
	DeceasedName     string
	ClassLeaderName  string
	DeathDate        string
	BurialLocation   string
	FinancialStatus  string
	AttendanceRecord string
}

func oneOf(value string, allowed []string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

// Validate reports field errors, or nil when the draft can be submitted.
func (d AnnouncementDraft) Validate() FieldErrors {
	fe := FieldErrors{}
	requireField(fe, "title", d.Title, "Title is required")
	requireField(fe, "content", d.Content, "Content is required")
	if v := strings.TrimSpace(d.DeathDate); v != "" {
		if _, err := ParseDate(v); err != nil {
			fe["death_date"] = "Death date must be YYYY-MM-DD"
		}
	}
	if v := strings.TrimSpace(d.FinancialStatus); v != "" && !oneOf(v, FinancialStatuses()) {
		fe["financial_status"] = "Unknown financial status"
	}
	if v := strings.TrimSpace(d.AttendanceRecord); v != "" && !oneOf(v, AttendanceRecords()) {
		fe["attendance_record"] = "Unknown attendance record"
	}
	return fe.OrNil()
}

// Request shapes the draft into the create payload. A blank death date is sent as null.
func (d AnnouncementDraft) Request() (CreateAnnouncementRequest, error) {
	if fe := d.Validate(); fe != nil {
		return CreateAnnouncementRequest{}, fe
	}
	req := CreateAnnouncementRequest{
		Title:            strings.TrimSpace(d.Title),
		Content:          strings.TrimSpace(d.Content),
		DeceasedName:     optional(d.DeceasedName),
		ClassLeaderName:  optional(d.ClassLeaderName),
		BurialLocation:   optional(d.BurialLocation),
		FinancialStatus:  optional(d.FinancialStatus),
		AttendanceRecord: optional(d.AttendanceRecord),
	}
	if v := strings.TrimSpace(d.DeathDate); v != "" {
		ts, _ := ParseDate(v)
		req.DeathDate = &ts
	}
	return req, nil
}

// Reset clears the draft after a successful submit.
func (d *AnnouncementDraft) Reset() { *d = AnnouncementDraft{} }
