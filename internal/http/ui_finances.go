package httpx

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/mcsa-hvr/circuit1021/internal/domain/model"
	"github.com/mcsa-hvr/circuit1021/internal/service"
)

const financesTableTarget = "finances-table"

type financeFilters struct {
	Society   string
	StartDate string
	EndDate   string
	opts      model.FinancesListOptions
}

func parseFinanceFilters(q url.Values) (financeFilters, model.FieldErrors) {
	f := financeFilters{
		Society:   strings.TrimSpace(q.Get("society")),
		StartDate: strings.TrimSpace(q.Get("start_date")),
		EndDate:   strings.TrimSpace(q.Get("end_date")),
	}
	opts, fe := model.NewFinancesListOptions(f.Society, f.StartDate, f.EndDate)
	f.opts = opts
	return f, fe
}

var financesMeta = PageMeta{Title: "Circuit 1021 - Finances", PageTitle: "Financial Management", CurrentPage: PageFinances}

// Finances lists financial entries for the society and date filters.
// GET /finances?society=&start_date=&end_date=.
func (h *UIHandlers) Finances(w http.ResponseWriter, r *http.Request) {
	HandleList(ListHandlerOpts[model.FinancialEntry, financeFilters]{
		Handler: h,
		W:       w,
		R:       r,
		Parse:   parseFinanceFilters,
		Fetch: func(ctx context.Context, ws *service.Workspace, f financeFilters) ([]model.FinancialEntry, error) {
			return ws.Finances(ctx, f.opts)
		},
		EnrichData: func(b *TemplateDataBuilder, entries []model.FinancialEntry, _ financeFilters) {
			var sum float64
			for _, e := range entries {
				sum += e.Total
			}
			b.With("Societies", model.Societies()).With("GrandTotal", sum)
		},
		PageMeta:         financesMeta,
		ItemsKey:         "Entries",
		ErrorMessage:     "Unable to load financial entries.",
		FragmentTarget:   financesTableTarget,
		FragmentTemplate: "finances-table",
	})
}

var financeFormMeta = PageMeta{Title: "Circuit 1021 - Add Financial Entry", PageTitle: "Add Financial Entry", CurrentPage: PageFinanceForm}

func financeFormOptions(d model.FinanceDraft) map[string]any {
	return map[string]any{
		"Societies":    model.Societies(),
		"DisplayTotal": d.DisplayTotal(),
	}
}

// NewFinance renders the financial entry form dated today with a zero total.
// GET /finances/new.
func (h *UIHandlers) NewFinance(w http.ResponseWriter, r *http.Request) {
	draft := model.NewFinanceDraft(h.now())
	data := NewTemplateData(r, financeFormMeta).
		With("Mode", string(FormModeCreate)).
		With("FormData", draft).
		Build()
	for k, v := range financeFormOptions(draft) {
		data[k] = v
	}
	h.renderDashboardPage(w, r, data)
}

func parseFinanceDraft(r *http.Request) model.FinanceDraft {
	return model.FinanceDraft{
		Society:                 formValue(r, "society"),
		Date:                    formValue(r, "date"),
		SundayCollection:        formValue(r, "sunday_collection"),
		Pledges:                 formValue(r, "pledges"),
		SpecialEffort:           formValue(r, "special_effort"),
		CircuitEventsCollection: formValue(r, "circuit_events_collection"),
	}
}

// CreateFinance submits the financial entry form.
// POST /finances.
func (h *UIHandlers) CreateFinance(w http.ResponseWriter, r *http.Request) {
	HandleForm(FormHandlerOpts[model.FinanceDraft]{
		Handler: h,
		W:       w,
		R:       r,
		Parse:   parseFinanceDraft,
		Submit: func(ctx context.Context, ws *service.Workspace, d *model.FinanceDraft) service.SubmitResult {
			return ws.AddFinance(ctx, d)
		},
		FormMeta:    financeFormMeta,
		FormData:    financeFormOptions,
		SuccessPath: "/finances",
		OnSuccess:   h.Finances,
	})
}

// FinanceTotal re-renders the live total while the form is edited. Blank or
// unparsable amounts count as zero.
// POST /finances/total.
func (h *UIHandlers) FinanceTotal(w http.ResponseWriter, r *http.Request) {
	draft := parseFinanceDraft(r)
	h.renderFragment(w, r, "finance-total", map[string]any{"DisplayTotal": draft.DisplayTotal()})
}
