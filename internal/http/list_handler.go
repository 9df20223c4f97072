package httpx

import (
	"context"
	"net/http"
	"net/url"

	"github.com/mcsa-hvr/circuit1021/internal/domain/model"
	"github.com/mcsa-hvr/circuit1021/internal/service"
)

// FilterParser parses URL query parameters into filters. Field errors are
// shown next to the filter inputs and skip the fetch.
type FilterParser[F any] func(url.Values) (F, model.FieldErrors)

// ListFetcher fetches the rows for the parsed filters.
type ListFetcher[T, F any] func(ctx context.Context, ws *service.Workspace, filters F) ([]T, error)

// DataEnricher adds view-specific data after a fetch.
type DataEnricher[T, F any] func(builder *TemplateDataBuilder, items []T, filters F)

// ListHandlerOpts contains all options needed for the generic list handler.
type ListHandlerOpts[T, F any] struct {
	Handler *UIHandlers
	W       http.ResponseWriter
	R       *http.Request
	// Parse is optional; without it filters stay at their zero value.
	Parse FilterParser[F]
	// Fetch is required.
	Fetch      ListFetcher[T, F]
	EnrichData DataEnricher[T, F]
	PageMeta   PageMeta
	// ItemsKey is the template data key for the rows (e.g., "Members").
	ItemsKey string
	// ErrorMessage is shown when the fetch fails without a backend detail.
	ErrorMessage string
	// FragmentTarget is the element id a filter form swaps. Requests aimed at
	// it get FragmentTemplate only, so the filter inputs keep focus.
	FragmentTarget   string
	FragmentTemplate string
}

// HandleList issues one read for the request's filters and renders the rows.
// A request the browser abandoned for a newer one renders nothing.
func HandleList[T, F any](opts ListHandlerOpts[T, F]) {
	if opts.W == nil || opts.R == nil || opts.Handler == nil || opts.Fetch == nil {
		if opts.W != nil {
			http.Error(opts.W, "Internal configuration error", http.StatusInternalServerError)
		}
		return
	}
	ws, ok := WorkspaceFromContext(opts.R.Context())
	if !ok {
		redirectToLogin(opts.W, opts.R)
		return
	}

	var filters F
	if opts.Parse != nil {
		var fe model.FieldErrors
		filters, fe = opts.Parse(opts.R.URL.Query())
		if fe != nil {
			builder := NewTemplateData(opts.R, opts.PageMeta).
				WithFilters(filters).
				WithFieldErrors(fe).
				WithError("Invalid filter: "+fe.Error()).
				With(opts.ItemsKey, []T{})
			opts.enrich(builder, nil, filters)
			opts.render(builder)
			return
		}
	}

	items, err := opts.Fetch(opts.R.Context(), ws, filters)
	if err != nil {
		if opts.R.Context().Err() != nil {
			return
		}
		opts.Handler.logger().WarnContext(opts.R.Context(), "list fetch failed",
			"page", opts.PageMeta.CurrentPage, "error", err)
		builder := NewTemplateData(opts.R, opts.PageMeta).
			WithFilters(filters).
			WithError(userMessage(err, opts.ErrorMessage)).
			With(opts.ItemsKey, []T{})
		opts.enrich(builder, nil, filters)
		opts.render(builder)
		return
	}

	builder := NewTemplateData(opts.R, opts.PageMeta).
		WithFilters(filters).
		With(opts.ItemsKey, items)
	opts.enrich(builder, items, filters)
	opts.render(builder)
}

// enrich also runs on the error paths so filter inputs keep their options.
func (lh ListHandlerOpts[T, F]) enrich(builder *TemplateDataBuilder, items []T, filters F) {
	if lh.EnrichData != nil {
		lh.EnrichData(builder, items, filters)
	}
}

func (lh ListHandlerOpts[T, F]) render(builder *TemplateDataBuilder) {
	if lh.FragmentTarget != "" && IsHTMX(lh.R) && HXTarget(lh.R) == lh.FragmentTarget {
		lh.Handler.renderFragment(lh.W, lh.R, lh.FragmentTemplate, builder.Build())
		return
	}
	lh.Handler.renderDashboardPage(lh.W, lh.R, builder.Build())
}
