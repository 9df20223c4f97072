package httpx

import (
	"context"
	"net/http"

	"github.com/mcsa-hvr/circuit1021/internal/service"
)

// FormParser reads the submitted form into a draft.
type FormParser[D any] func(r *http.Request) D

// FormSubmitter validates and sends the draft. It resets the draft on success.
type FormSubmitter[D any] func(ctx context.Context, ws *service.Workspace, draft *D) service.SubmitResult

// FormHandlerOpts contains all options needed to handle a create form submission.
type FormHandlerOpts[D any] struct {
	Handler *UIHandlers
	W       http.ResponseWriter
	R       *http.Request
	Parse   FormParser[D]
	Submit  FormSubmitter[D]
	// FormMeta is used to re-render the form after a failure.
	FormMeta PageMeta
	// FormData adds option lists (societies, genders, ...) for the form template.
	FormData func(draft D) map[string]any
	// SuccessPath is the list the browser lands on after a successful submit.
	SuccessPath string
	// OnSuccess renders the refetched list in place for htmx requests.
	OnSuccess http.HandlerFunc
}

// HandleForm submits one create form. Success shows a toast and the
// refetched list; failure keeps the input and surfaces the message.
func HandleForm[D any](opts FormHandlerOpts[D]) {
	if opts.Parse == nil || opts.Submit == nil || opts.Handler == nil {
		http.Error(opts.W, "misconfigured form handler", http.StatusInternalServerError)
		return
	}
	ws, ok := WorkspaceFromContext(opts.R.Context())
	if !ok {
		redirectToLogin(opts.W, opts.R)
		return
	}

	draft := opts.Parse(opts.R)
	res := opts.Submit(opts.R.Context(), ws, &draft)
	if opts.R.Context().Err() != nil {
		return
	}

	if res.Success {
		if !IsHTMX(opts.R) || opts.OnSuccess == nil {
			http.Redirect(opts.W, opts.R, opts.SuccessPath, http.StatusSeeOther)
			return
		}
		HTMX(opts.W).Toast(res.Message, "success").PushURL(opts.SuccessPath)
		opts.OnSuccess(opts.W, listRequest(opts.R, opts.SuccessPath))
		return
	}

	data := map[string]any{"Mode": string(FormModeCreate), "FormData": draft}
	if opts.FormData != nil {
		for k, v := range opts.FormData(draft) {
			data[k] = v
		}
	}
	RenderError(ErrorOpts{
		W:           opts.W,
		R:           opts.R,
		Message:     res.Message,
		FieldErrors: res.FieldErrors,
		Renderer:    opts.Handler.renderDashboardPage,
		PageMeta:    opts.FormMeta,
		Data:        data,
		ShowToast:   true,
	})
}

// listRequest turns a form POST into the GET of the list it returns to, so
// the list handler sees no filters and the nav highlights the list.
func listRequest(r *http.Request, path string) *http.Request {
	lr := r.Clone(r.Context())
	lr.Method = http.MethodGet
	lr.URL.Path = path
	lr.URL.RawQuery = ""
	lr.Header.Del("Hx-Target")
	return lr
}
