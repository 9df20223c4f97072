package circuitapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"time"

	domainauth "github.com/mcsa-hvr/circuit1021/internal/domain/auth"
	"github.com/mcsa-hvr/circuit1021/internal/domain/model"
	apperrors "github.com/mcsa-hvr/circuit1021/internal/errors"
	"github.com/mcsa-hvr/circuit1021/internal/ports"
)

// queryTimeLayout is how filter timestamps are sent; the backend parses ISO-8601.
const queryTimeLayout = time.RFC3339

// Login exchanges credentials for a bearer token and profile.
func (c *Client) Login(ctx context.Context, username, password string) (ports.LoginResponse, error) {
	cl, err := jsonCall(http.MethodPost, "/auth/login", "/auth/login", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return ports.LoginResponse{}, err
	}
	var out ports.LoginResponse
	if err := c.do(ctx, cl, &out); err != nil {
		return ports.LoginResponse{}, err
	}
	if out.AccessToken == "" {
		return ports.LoginResponse{}, apperrors.Internal("login response carried no access token")
	}
	return out, nil
}

// Me returns the profile behind the attached token.
func (c *Client) Me(ctx context.Context) (domainauth.UserProfile, error) {
	var out domainauth.UserProfile
	err := c.do(ctx, call{method: http.MethodGet, route: "/auth/me", path: "/auth/me"}, &out)
	return out, err
}

// Register creates a backend user account.
func (c *Client) Register(ctx context.Context, req model.RegisterUserRequest) (model.RegisterResult, error) {
	if err := req.Validate(); err != nil {
		return model.RegisterResult{}, apperrors.Validation(err.Error())
	}
	cl, err := jsonCall(http.MethodPost, "/auth/register", "/auth/register", req)
	if err != nil {
		return model.RegisterResult{}, err
	}
	var out model.RegisterResult
	err = c.do(ctx, cl, &out)
	return out, err
}

// DashboardStats returns the aggregate counts for the overview.
func (c *Client) DashboardStats(ctx context.Context) (model.DashboardStats, error) {
	var out model.DashboardStats
	err := c.do(ctx, call{method: http.MethodGet, route: "/stats/dashboard", path: "/stats/dashboard"}, &out)
	return out, err
}

// ListMembers lists members, optionally filtered by society and a name/email search.
func (c *Client) ListMembers(ctx context.Context, opts model.MembersListOptions) ([]model.Member, error) {
	q := url.Values{}
	if opts.Society != "" {
		q.Set("society", string(opts.Society))
	}
	if opts.Search != "" {
		q.Set("search", opts.Search)
	}
	out := []model.Member{}
	err := c.do(ctx, call{method: http.MethodGet, route: "/members", path: "/members", query: q}, &out)
	return out, err
}

// CreateMember registers a member.
func (c *Client) CreateMember(ctx context.Context, req model.CreateMemberRequest) (model.Member, error) {
	cl, err := jsonCall(http.MethodPost, "/members", "/members", req)
	if err != nil {
		return model.Member{}, err
	}
	var out model.Member
	err = c.do(ctx, cl, &out)
	return out, err
}

// ListFinances lists financial entries, newest date first.
func (c *Client) ListFinances(ctx context.Context, opts model.FinancesListOptions) ([]model.FinancialEntry, error) {
	q := url.Values{}
	if opts.Society != "" {
		q.Set("society", string(opts.Society))
	}
	if !opts.StartDate.IsZero() {
		q.Set("start_date", opts.StartDate.UTC().Format(queryTimeLayout))
	}
	if !opts.EndDate.IsZero() {
		q.Set("end_date", opts.EndDate.UTC().Format(queryTimeLayout))
	}
	out := []model.FinancialEntry{}
	err := c.do(ctx, call{method: http.MethodGet, route: "/finances", path: "/finances", query: q}, &out)
	return out, err
}

// CreateFinance records a financial entry; the backend computes the total.
func (c *Client) CreateFinance(ctx context.Context, req model.CreateFinancialEntryRequest) (model.FinancialEntry, error) {
	cl, err := jsonCall(http.MethodPost, "/finances", "/finances", req)
	if err != nil {
		return model.FinancialEntry{}, err
	}
	var out model.FinancialEntry
	err = c.do(ctx, cl, &out)
	return out, err
}

// ListAnnouncements lists announcements, newest first.
func (c *Client) ListAnnouncements(ctx context.Context) ([]model.Announcement, error) {
	out := []model.Announcement{}
	err := c.do(ctx, call{method: http.MethodGet, route: "/announcements", path: "/announcements"}, &out)
	return out, err
}

// CreateAnnouncement publishes an announcement.
func (c *Client) CreateAnnouncement(ctx context.Context, req model.CreateAnnouncementRequest) (model.Announcement, error) {
	cl, err := jsonCall(http.MethodPost, "/announcements", "/announcements", req)
	if err != nil {
		return model.Announcement{}, err
	}
	var out model.Announcement
	err = c.do(ctx, cl, &out)
	return out, err
}

// UploadFile sends content as a multipart upload under category.
func (c *Client) UploadFile(ctx context.Context, category, filename string, content io.Reader) (model.UploadResult, error) {
	cat, ok := model.NormalizeFileCategory(category)
	if !ok {
		return model.UploadResult{}, apperrors.ValidationField("category", "Category is required")
	}
	name := path.Base(filename)
	if name == "." || name == "/" {
		return model.UploadResult{}, apperrors.ValidationField("file", "File name is required")
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("category", cat); err != nil {
		return model.UploadResult{}, fmt.Errorf("write category field: %w", err)
	}
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return model.UploadResult{}, fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return model.UploadResult{}, fmt.Errorf("copy upload content: %w", err)
	}
	if err := mw.Close(); err != nil {
		return model.UploadResult{}, fmt.Errorf("close multipart writer: %w", err)
	}

	var out model.UploadResult
	err = c.do(ctx, call{
		method: http.MethodPost,
		route:  "/upload",
		path:   "/upload",
		body:   &buf,
		ctype:  mw.FormDataContentType(),
	}, &out)
	return out, err
}

// ListFiles lists uploads in a category, newest first.
func (c *Client) ListFiles(ctx context.Context, category string) ([]model.FileRecord, error) {
	cat, ok := model.NormalizeFileCategory(category)
	if !ok {
		return nil, apperrors.ValidationField("category", "Category is required")
	}
	out := []model.FileRecord{}
	err := c.do(ctx, call{
		method: http.MethodGet,
		route:  "/files/{category}",
		path:   "/files/" + cat,
	}, &out)
	return out, err
}
