package httpx

import (
	"context"
	"errors"
	"maps"
	"net/http"

	apperrors "github.com/mcsa-hvr/circuit1021/internal/errors"
)

// Messages for failures that carry no backend detail.
const (
	msgTimedOut    = "Request timed out. Please try again."
	msgCanceled    = "Request was canceled."
	msgUnreachable = "The circuit service is unreachable. Please try again later."
	msgSignedOut   = "Your session has expired. Please sign in again."
)

// ErrorRenderer renders a page with the given data.
type ErrorRenderer func(w http.ResponseWriter, r *http.Request, data map[string]any)

// ErrorOpts contains all options needed to render an error response.
type ErrorOpts struct {
	W http.ResponseWriter
	R *http.Request
	// Message is shown as the general error. When empty it is derived from Err.
	Message string
	// Err is the error that occurred (optional, can be nil if only field errors)
	Err error
	// FieldErrors maps field names to messages.
	FieldErrors map[string]string
	// Renderer is typically h.renderDashboardPage.
	Renderer ErrorRenderer
	PageMeta PageMeta
	// Data carries the form input and option lists back to the template.
	Data map[string]any
	// StatusCode is set when non-zero; htmx only swaps 2xx bodies by default.
	StatusCode int
	// ShowToast also raises the general message as an error toast.
	ShowToast bool
}

// RenderError renders a page with a general error message and field errors.
func RenderError(opts ErrorOpts) {
	if opts.Renderer == nil {
		http.Error(opts.W, "misconfigured error renderer", http.StatusInternalServerError)
		return
	}

	builder := NewTemplateData(opts.R, opts.PageMeta).WithFieldErrors(opts.FieldErrors)

	general := opts.Message
	if general == "" && opts.Err != nil {
		general = userMessage(opts.Err, "An error occurred. Please try again.")
	}
	if general == "" && len(opts.FieldErrors) > 0 {
		general = errMsgFixBelow
	}
	if general != "" {
		builder.WithError(general)
	}

	data := builder.Build()
	maps.Copy(data, opts.Data)

	if opts.ShowToast {
		triggerToast(opts.W, general, "error")
	}
	if opts.StatusCode != 0 {
		opts.W.WriteHeader(opts.StatusCode)
	}
	opts.Renderer(opts.W, opts.R, data)
}

// userMessage turns err into text for the page. Backend rejections show the
// server detail; transport failures get a fixed message.
func userMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded) || apperrors.IsTimeout(err):
		return msgTimedOut
	case errors.Is(err, context.Canceled) || apperrors.IsCanceled(err):
		return msgCanceled
	case apperrors.IsTransport(err):
		return msgUnreachable
	case apperrors.IsUnauthorized(err):
		return msgSignedOut
	}
	if detail := apperrors.UpstreamDetail(err); detail != "" {
		return detail
	}
	if detail := apperrors.Detail(err); detail != "" {
		return detail
	}
	return fallback
}
