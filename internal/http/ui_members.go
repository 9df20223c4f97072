package httpx

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/mcsa-hvr/circuit1021/internal/domain/model"
	"github.com/mcsa-hvr/circuit1021/internal/service"
)

const membersTableTarget = "members-table"

// memberFilters keeps the raw filter inputs so the form redisplays them.
type memberFilters struct {
	Search  string
	Society string
}

func (f memberFilters) options() model.MembersListOptions {
	society, _ := model.ParseSociety(f.Society)
	return model.MembersListOptions{Society: society, Search: f.Search}
}

func parseMemberFilters(q url.Values) (memberFilters, model.FieldErrors) {
	f := memberFilters{
		Search:  strings.TrimSpace(q.Get("search")),
		Society: strings.TrimSpace(q.Get("society")),
	}
	if f.Society != "" {
		if _, ok := model.ParseSociety(f.Society); !ok {
			return f, model.FieldErrors{"society": "Unknown society"}
		}
	}
	return f, nil
}

var membersMeta = PageMeta{Title: "Circuit 1021 - Members", PageTitle: "Members Management", CurrentPage: PageMembers}

// Members lists members for the search and society filters. A filter change
// swaps only the table.
// GET /members?search=&society=.
func (h *UIHandlers) Members(w http.ResponseWriter, r *http.Request) {
	HandleList(ListHandlerOpts[model.Member, memberFilters]{
		Handler: h,
		W:       w,
		R:       r,
		Parse:   parseMemberFilters,
		Fetch: func(ctx context.Context, ws *service.Workspace, f memberFilters) ([]model.Member, error) {
			return ws.Members(ctx, f.options())
		},
		EnrichData: func(b *TemplateDataBuilder, _ []model.Member, _ memberFilters) {
			b.With("Societies", model.Societies())
		},
		PageMeta:         membersMeta,
		ItemsKey:         "Members",
		ErrorMessage:     "Unable to load members.",
		FragmentTarget:   membersTableTarget,
		FragmentTemplate: "members-table",
	})
}

var memberFormMeta = PageMeta{Title: "Circuit 1021 - Add Member", PageTitle: "Add New Member", CurrentPage: PageMemberForm}

func memberFormOptions(model.MemberDraft) map[string]any {
	return map[string]any{
		"Societies": model.Societies(),
		"Genders":   []string{model.GenderMale, model.GenderFemale},
	}
}

// NewMember renders the empty member form.
// GET /members/new.
func (h *UIHandlers) NewMember(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData(r, memberFormMeta).
		With("Mode", string(FormModeCreate)).
		With("FormData", model.MemberDraft{}).
		Build()
	for k, v := range memberFormOptions(model.MemberDraft{}) {
		data[k] = v
	}
	h.renderDashboardPage(w, r, data)
}

func parseMemberDraft(r *http.Request) model.MemberDraft {
	return model.MemberDraft{
		FullName:           formValue(r, "full_name"),
		DateOfBirth:        formValue(r, "date_of_birth"),
		Gender:             formValue(r, "gender"),
		Title:              formValue(r, "title"),
		ResidentialAddress: formValue(r, "residential_address"),
		EmailAddress:       formValue(r, "email_address"),
		Occupation:         formValue(r, "occupation"),
		Society:            formValue(r, "society"),
		ClassAllocation:    formValue(r, "class_allocation"),
	}
}

// CreateMember submits the member form.
// POST /members.
func (h *UIHandlers) CreateMember(w http.ResponseWriter, r *http.Request) {
	HandleForm(FormHandlerOpts[model.MemberDraft]{
		Handler: h,
		W:       w,
		R:       r,
		Parse:   parseMemberDraft,
		Submit: func(ctx context.Context, ws *service.Workspace, d *model.MemberDraft) service.SubmitResult {
			return ws.AddMember(ctx, d)
		},
		FormMeta:    memberFormMeta,
		FormData:    memberFormOptions,
		SuccessPath: "/members",
		OnSuccess:   h.Members,
	})
}
