package httpx

import (
	"context"
	"net/http"

	"github.com/mcsa-hvr/circuit1021/internal/domain/model"
	"github.com/mcsa-hvr/circuit1021/internal/service"
)

// quickAction links an overview tile to a create form.
type quickAction struct {
	Label string
	Icon  string
	Path  string
}

func quickActions() []quickAction {
	return []quickAction{
		{Label: "Add New Member", Icon: "👤", Path: "/members/new"},
		{Label: "Record Financial Entry", Icon: "💰", Path: "/finances/new"},
		{Label: "Create Announcement", Icon: "📢", Path: "/announcements/new"},
	}
}

// Overview renders the dashboard landing view. Missing totals fall back to
// the fixed society and organization counts.
func (h *UIHandlers) Overview(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Circuit 1021 - Dashboard", PageTitle: "Dashboard Overview", CurrentPage: PageOverview},
		Fetch: func(ctx context.Context, ws *service.Workspace, data map[string]any) error {
			data["QuickActions"] = quickActions()
			data["Stats"] = model.DashboardStats{}
			overview, err := ws.Overview(ctx)
			if err != nil {
				data["SocietyCounts"] = model.DashboardStats{}.MembersPerSociety()
				return err
			}
			data["Stats"] = overview.Stats
			data["SocietyCounts"] = overview.Stats.MembersPerSociety()
			data["RecentFinances"] = overview.Stats.RecentFinances
			data["Announcements"] = overview.Announcements
			return nil
		},
	})
}

// organizationCard is one tile of the organizations view.
type organizationCard struct {
	Key  model.Organization
	Name string
}

// Organizations renders the nine circuit organizations. No backend call is made.
func (h *UIHandlers) Organizations(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Circuit 1021 - Organizations", PageTitle: "Organizations", CurrentPage: PageOrganizations},
		Fetch: func(_ context.Context, ws *service.Workspace, data map[string]any) error {
			orgs := ws.Organizations()
			cards := make([]organizationCard, 0, len(orgs))
			for _, o := range orgs {
				cards = append(cards, organizationCard{Key: o, Name: o.Name()})
			}
			data["Organizations"] = cards
			return nil
		},
	})
}
