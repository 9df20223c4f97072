package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/mcsa-hvr/circuit1021/internal/domain/model"
	apperrors "github.com/mcsa-hvr/circuit1021/internal/errors"
)

// Messages shown after a create form is submitted.
const (
	MemberAddedMessage        = "Member added successfully!"
	FinanceAddedMessage       = "Financial entry added successfully!"
	AnnouncementAddedMessage  = "Announcement created successfully!"
	FileUploadedMessage       = "File uploaded successfully!"
	memberErrorPrefix         = "Error adding member: "
	financeErrorPrefix        = "Error adding financial entry: "
	announcementErrorPrefix   = "Error creating announcement: "
	fileErrorPrefix           = "Error uploading file: "
	unknownError              = "Unknown error"
	overviewAnnouncementLimit = 3
)

// SubmitResult is the outcome of a create form. On failure Message carries
// the prefixed error and FieldErrors any per-field problems found locally.
type SubmitResult struct {
	Success     bool
	Message     string
	FieldErrors model.FieldErrors
}

func submitFailed(prefix string, err error) SubmitResult {
	var fe model.FieldErrors
	if errors.As(err, &fe) {
		return SubmitResult{Message: prefix + "Please correct the highlighted fields", FieldErrors: fe}
	}
	// Backend rejections show the server detail only; local and transport
	// failures show their own message.
	detail := apperrors.Detail(err)
	if apperrors.FromResponse(err) {
		detail = apperrors.UpstreamDetail(err)
	}
	if detail == "" {
		detail = unknownError
	}
	res := SubmitResult{Message: prefix + detail}
	if field := apperrors.GetField(err); field != "" {
		res.FieldErrors = model.FieldErrors{field: detail}
	}
	return res
}

// Overview is the dashboard landing data.
type Overview struct {
	Stats         model.DashboardStats `json:"stats"`
	Announcements []model.Announcement `json:"announcements"`
}

// Overview fetches the dashboard stats and the latest announcements concurrently.
func (w *Workspace) Overview(ctx context.Context) (Overview, error) {
	var out Overview
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := w.API.DashboardStats(gctx)
		if err != nil {
			return fmt.Errorf("load dashboard stats: %w", err)
		}
		out.Stats = stats
		return nil
	})
	g.Go(func() error {
		items, err := w.API.ListAnnouncements(gctx)
		if err != nil {
			return fmt.Errorf("load announcements: %w", err)
		}
		if len(items) > overviewAnnouncementLimit {
			items = items[:overviewAnnouncementLimit]
		}
		out.Announcements = items
		return nil
	})
	if err := g.Wait(); err != nil {
		return Overview{}, err
	}
	return out, nil
}

// Members lists members for the given filters.
func (w *Workspace) Members(ctx context.Context, opts model.MembersListOptions) ([]model.Member, error) {
	members, err := w.API.ListMembers(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

// AddMember submits the draft. The draft is reset on success and kept otherwise.
func (w *Workspace) AddMember(ctx context.Context, draft *model.MemberDraft) SubmitResult {
	req, err := draft.Request()
	if err == nil {
		_, err = w.API.CreateMember(ctx, req)
	}
	if err != nil {
		w.logger.DebugContext(ctx, "add member failed", "error", err)
		return submitFailed(memberErrorPrefix, err)
	}
	draft.Reset()
	return SubmitResult{Success: true, Message: MemberAddedMessage}
}

// Finances lists financial entries for the given filters.
func (w *Workspace) Finances(ctx context.Context, opts model.FinancesListOptions) ([]model.FinancialEntry, error) {
	entries, err := w.API.ListFinances(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list finances: %w", err)
	}
	return entries, nil
}

// AddFinance submits the draft. The draft is reset on success and kept otherwise.
func (w *Workspace) AddFinance(ctx context.Context, draft *model.FinanceDraft) SubmitResult {
	req, err := draft.Request()
	if err == nil {
		_, err = w.API.CreateFinance(ctx, req)
	}
	if err != nil {
		w.logger.DebugContext(ctx, "add financial entry failed", "error", err)
		return submitFailed(financeErrorPrefix, err)
	}
	draft.Reset()
	return SubmitResult{Success: true, Message: FinanceAddedMessage}
}

// Announcements lists every announcement, newest first.
func (w *Workspace) Announcements(ctx context.Context) ([]model.Announcement, error) {
	items, err := w.API.ListAnnouncements(ctx)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	return items, nil
}

// AddAnnouncement submits the draft. The draft is reset on success and kept otherwise.
func (w *Workspace) AddAnnouncement(ctx context.Context, draft *model.AnnouncementDraft) SubmitResult {
	req, err := draft.Request()
	if err == nil {
		_, err = w.API.CreateAnnouncement(ctx, req)
	}
	if err != nil {
		w.logger.DebugContext(ctx, "create announcement failed", "error", err)
		return submitFailed(announcementErrorPrefix, err)
	}
	draft.Reset()
	return SubmitResult{Success: true, Message: AnnouncementAddedMessage}
}

// Files lists uploads in category.
func (w *Workspace) Files(ctx context.Context, category string) ([]model.FileRecord, error) {
	files, err := w.API.ListFiles(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	return files, nil
}

// Upload sends one file under category.
func (w *Workspace) Upload(ctx context.Context, category, filename string, content io.Reader) SubmitResult {
	if _, err := w.API.UploadFile(ctx, category, filename, content); err != nil {
		w.logger.DebugContext(ctx, "upload failed", "error", err)
		return submitFailed(fileErrorPrefix, err)
	}
	return SubmitResult{Success: true, Message: FileUploadedMessage}
}

// Organizations returns the circuit organizations; they are fixed and need no request.
func (w *Workspace) Organizations() []model.Organization {
	return model.Organizations()
}
