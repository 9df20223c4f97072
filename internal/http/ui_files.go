package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/mcsa-hvr/circuit1021/internal/domain/model"
	"github.com/mcsa-hvr/circuit1021/internal/service"
)

const (
	filesTableTarget = "files-table"
	msgChooseFile    = "Please choose a file to upload"
	msgFileTooLarge  = "The file is too large to upload"
)

type fileFilters struct {
	Category string
}

func parseFileFilters(q url.Values) (fileFilters, model.FieldErrors) {
	raw := q.Get("category")
	if raw == "" {
		return fileFilters{Category: model.FileCategoryReports}, nil
	}
	c, ok := model.NormalizeFileCategory(raw)
	if !ok {
		return fileFilters{Category: raw}, model.FieldErrors{"category": "Invalid category"}
	}
	return fileFilters{Category: c}, nil
}

var filesMeta = PageMeta{Title: "Circuit 1021 - Files", PageTitle: "File Management", CurrentPage: PageFiles}

// Files lists uploads in one category, reports by default.
// GET /files?category=.
func (h *UIHandlers) Files(w http.ResponseWriter, r *http.Request) {
	HandleList(ListHandlerOpts[model.FileRecord, fileFilters]{
		Handler: h,
		W:       w,
		R:       r,
		Parse:   parseFileFilters,
		Fetch: func(ctx context.Context, ws *service.Workspace, f fileFilters) ([]model.FileRecord, error) {
			return ws.Files(ctx, f.Category)
		},
		EnrichData: func(b *TemplateDataBuilder, _ []model.FileRecord, _ fileFilters) {
			b.With("Categories", model.FileCategories())
		},
		PageMeta:         filesMeta,
		ItemsKey:         "Files",
		ErrorMessage:     "Unable to load files.",
		FragmentTarget:   filesTableTarget,
		FragmentTemplate: "files-table",
	})
}

// UploadFile forwards one multipart upload to the backend and shows the
// category it landed in.
// POST /files.
func (h *UIHandlers) UploadFile(w http.ResponseWriter, r *http.Request) {
	ws, ok := WorkspaceFromContext(r.Context())
	if !ok {
		redirectToLogin(w, r)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		msg := msgChooseFile
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			msg = msgFileTooLarge
		}
		h.renderUploadError(w, r, model.FileCategoryReports, msg)
		return
	}

	category, ok := model.NormalizeFileCategory(r.FormValue("category"))
	if !ok {
		h.renderUploadError(w, r, model.FileCategoryReports, "Please choose a category")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.renderUploadError(w, r, category, msgChooseFile)
		return
	}
	defer file.Close()

	res := ws.Upload(r.Context(), category, filepath.Base(header.Filename), file)
	if r.Context().Err() != nil {
		return
	}
	if !res.Success {
		h.renderUploadError(w, r, category, res.Message)
		return
	}

	listPath := "/files?category=" + url.QueryEscape(category)
	if !IsHTMX(r) {
		http.Redirect(w, r, listPath, http.StatusSeeOther)
		return
	}
	HTMX(w).Toast(res.Message, "success").PushURL(listPath)
	lr := listRequest(r, "/files")
	lr.URL.RawQuery = "category=" + url.QueryEscape(category)
	h.Files(w, lr)
}

func (h *UIHandlers) renderUploadError(w http.ResponseWriter, r *http.Request, category, msg string) {
	var files []model.FileRecord
	if ws, ok := WorkspaceFromContext(r.Context()); ok {
		list, err := ws.Files(r.Context(), category)
		if err == nil {
			files = list
		}
	}
	RenderError(ErrorOpts{
		W:        w,
		R:        r,
		Message:  msg,
		Renderer: h.renderDashboardPage,
		PageMeta: filesMeta,
		Data: map[string]any{
			"Files":      files,
			"Filters":    fileFilters{Category: category},
			"Categories": model.FileCategories(),
		},
		ShowToast: true,
	})
}
