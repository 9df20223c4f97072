package httpx

import (
	"context"
	"net/http"

	"github.com/mcsa-hvr/circuit1021/internal/domain/model"
	"github.com/mcsa-hvr/circuit1021/internal/service"
)

// Announcements lists all announcements, newest first.
// GET /announcements.
func (h *UIHandlers) Announcements(w http.ResponseWriter, r *http.Request) {
	HandleList(ListHandlerOpts[model.Announcement, struct{}]{
		Handler: h,
		W:       w,
		R:       r,
		Fetch: func(ctx context.Context, ws *service.Workspace, _ struct{}) ([]model.Announcement, error) {
			return ws.Announcements(ctx)
		},
		PageMeta:     PageMeta{Title: "Circuit 1021 - Announcements", PageTitle: "Announcements", CurrentPage: PageAnnouncements},
		ItemsKey:     "Announcements",
		ErrorMessage: "Unable to load announcements.",
	})
}

var announcementFormMeta = PageMeta{
	Title:       "Circuit 1021 - Create Announcement",
	PageTitle:   "Create Announcement",
	CurrentPage: PageAnnouncementForm,
}

func announcementFormOptions(model.AnnouncementDraft) map[string]any {
	return map[string]any{
		"FinancialStatuses": model.FinancialStatuses(),
		"AttendanceRecords": model.AttendanceRecords(),
	}
}

// NewAnnouncement renders the announcement form with the optional funeral block.
// GET /announcements/new.
func (h *UIHandlers) NewAnnouncement(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData(r, announcementFormMeta).
		With("Mode", string(FormModeCreate)).
		With("FormData", model.AnnouncementDraft{}).
		Build()
	for k, v := range announcementFormOptions(model.AnnouncementDraft{}) {
		data[k] = v
	}
	h.renderDashboardPage(w, r, data)
}

func parseAnnouncementDraft(r *http.Request) model.AnnouncementDraft {
	return model.AnnouncementDraft{
		Title:            formValue(r, "title"),
		Content:          rawFormValue(r, "content"),
		DeceasedName:     formValue(r, "deceased_name"),
		ClassLeaderName:  formValue(r, "class_leader_name"),
		DeathDate:        formValue(r, "death_date"),
		BurialLocation:   formValue(r, "burial_location"),
		FinancialStatus:  formValue(r, "financial_status"),
		AttendanceRecord: formValue(r, "attendance_record"),
	}
}

// CreateAnnouncement submits the announcement form. A blank death date is sent as null.
// POST /announcements.
func (h *UIHandlers) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	HandleForm(FormHandlerOpts[model.AnnouncementDraft]{
		Handler: h,
		W:       w,
		R:       r,
		Parse:   parseAnnouncementDraft,
		Submit: func(ctx context.Context, ws *service.Workspace, d *model.AnnouncementDraft) service.SubmitResult {
			return ws.AddAnnouncement(ctx, d)
		},
		FormMeta:    announcementFormMeta,
		FormData:    announcementFormOptions,
		SuccessPath: "/announcements",
		OnSuccess:   h.Announcements,
	})
}
