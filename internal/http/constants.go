package httpx

import "github.com/mcsa-hvr/circuit1021/internal/http/ui/viewmodel"

// CurrentPage identifiers used by templates and navigation.
const (
	PageOverview         = "overview"
	PageMembers          = "members"
	PageMemberForm       = "member-form"
	PageFinances         = "finances"
	PageFinanceForm      = "finance-form"
	PageOrganizations    = "organizations"
	PageAnnouncements    = "announcements"
	PageAnnouncementForm = "announcement-form"
	PageFiles            = "files"
	PageLogin            = "login"
	PageSignedOut        = "signed-out"
	PageNotFound         = "not-found"
)

// Template paths used for loading templates in tests and production.
const (
	TemplatePathFromRoot = "frontend/templates"       // From project root
	TemplatePathFromTest = "../../frontend/templates" // From internal/http test files
)

// Session cookie defaults.
const (
	SessionCookieName = "session_id"
	loginPath         = "/login"
	signedOutPath     = "/auth/signed-out"
)

// FormMode represents the mode of a form. Only creation is offered; the
// backend's edit and delete endpoints have no views.
type FormMode string

// FormModeCreate indicates the form is in create mode.
const FormModeCreate FormMode = "create"

//nolint:gochecknoglobals // static read-only lookup for templates
var contentTemplates = map[string]string{
	PageOverview:         "overview-content",
	PageMembers:          "members-content",
	PageMemberForm:       "member-form-content",
	PageFinances:         "finances-content",
	PageFinanceForm:      "finance-form-content",
	PageOrganizations:    "organizations-content",
	PageAnnouncements:    "announcements-content",
	PageAnnouncementForm: "announcement-form-content",
	PageFiles:            "files-content",
	PageNotFound:         "not-found-content",
}

// ContentTemplateMap returns the mapping from CurrentPage to template name.
func ContentTemplateMap() map[string]string { return contentTemplates }

// ContentTemplateFor returns the content template for the given CurrentPage.
// Falls back to overview-content for unknown pages.
func ContentTemplateFor(currentPage string) string {
	if name, ok := ContentTemplateMap()[currentPage]; ok {
		return name
	}
	return "overview-content"
}

// dashboardNav lists the sidebar sections in display order.
func dashboardNav() []viewmodel.NavItem {
	return []viewmodel.NavItem{
		{Page: PageOverview, Label: "Dashboard Overview", Path: "/"},
		{Page: PageMembers, Label: "Members", Path: "/members"},
		{Page: PageFinances, Label: "Finances", Path: "/finances"},
		{Page: PageOrganizations, Label: "Organizations", Path: "/organizations"},
		{Page: PageAnnouncements, Label: "Announcements", Path: "/announcements"},
		{Page: PageFiles, Label: "Files", Path: "/files"},
	}
}
