package circuitapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	domainauth "github.com/mcsa-hvr/circuit1021/internal/domain/auth"
	"github.com/mcsa-hvr/circuit1021/internal/domain/model"
	apperrors "github.com/mcsa-hvr/circuit1021/internal/errors"
	"github.com/mcsa-hvr/circuit1021/internal/observability/statsd"
	"github.com/mcsa-hvr/circuit1021/internal/testutil/fakeapi"
)

func newTestClient(t *testing.T, baseURL string, src oauth2.TokenSource) *Client {
	t.Helper()
	c, err := New(Config{BaseURL: baseURL, Timeout: 5 * time.Second, Credentials: src})
	require.NoError(t, err)
	return c
}

func bearer(token string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		want    string
		wantErr bool
	}{
		{name: "default", baseURL: "", want: DefaultBaseURL},
		{name: "trailing slash trimmed", baseURL: "https://circuit.example.org/api/", want: "https://circuit.example.org/api"},
		{name: "bad scheme", baseURL: "ftp://circuit.example.org/api", wantErr: true},
		{name: "missing host", baseURL: "http:///api", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(Config{BaseURL: tt.baseURL})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.BaseURL())
		})
	}
}

func TestLogin(t *testing.T) {
	srv := fakeapi.New(t)
	c := newTestClient(t, srv.BaseURL(), nil)

	resp, err := c.Login(context.Background(), fakeapi.AdminUsername, fakeapi.AdminPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, "System Administrator", resp.User.FullName)
	assert.Equal(t, domainauth.RoleAdmin, resp.User.Role)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	srv := fakeapi.New(t)
	c := newTestClient(t, srv.BaseURL(), nil)

	_, err := c.Login(context.Background(), "admin", "wrong")
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Equal(t, "Invalid credentials", apperrors.Detail(err))
}

func TestMe_BearerHeader(t *testing.T) {
	srv := fakeapi.New(t)
	token := srv.IssueToken(fakeapi.AdminUsername)

	anon := newTestClient(t, srv.BaseURL(), nil)
	_, err := anon.Me(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsForbidden(err))
	assert.Equal(t, "Not authenticated", apperrors.Detail(err))

	authed := anon.WithCredentials(bearer(token))
	user, err := authed.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fakeapi.AdminUsername, user.Username)

	headers := srv.AuthHeaders()
	require.Len(t, headers, 2)
	assert.Empty(t, headers[0])
	assert.Equal(t, "Bearer "+token, headers[1])
}

func TestMe_InvalidToken(t *testing.T) {
	srv := fakeapi.New(t)
	c := newTestClient(t, srv.BaseURL(), bearer("stale"))

	_, err := c.Me(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Equal(t, "Invalid token", apperrors.Detail(err))
}

func TestEmptyTokenSourceSendsNoHeader(t *testing.T) {
	srv := fakeapi.New(t)
	c := newTestClient(t, srv.BaseURL(), oauth2.StaticTokenSource(&oauth2.Token{}))

	_, err := c.DashboardStats(context.Background())
	require.Error(t, err)
	assert.Equal(t, []string{""}, srv.AuthHeaders())
}

func TestMembers_CreateAndFilter(t *testing.T) {
	srv := fakeapi.New(t)
	c := newTestClient(t, srv.BaseURL(), bearer(srv.IssueToken(fakeapi.AdminUsername)))
	ctx := context.Background()

	draft := model.MemberDraft{
		FullName:           "Thandi Mokoena",
		DateOfBirth:        "1985-03-14",
		Gender:             model.GenderFemale,
		ResidentialAddress: "12 Church St",
		EmailAddress:       "thandi@example.org",
		Society:            string(model.SocietySecunda),
	}
	req, err := draft.Request()
	require.NoError(t, err)
	created, err := c.CreateMember(ctx, req)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "1985-03-14", created.DateOfBirth.DateString())

	other := req
	other.FullName = "Sipho Dlamini"
	other.EmailAddress = nil
	other.Society = model.SocietyEvander
	_, err = c.CreateMember(ctx, other)
	require.NoError(t, err)

	all, err := c.ListMembers(ctx, model.MembersListOptions{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	secunda, err := c.ListMembers(ctx, model.MembersListOptions{Society: model.SocietySecunda})
	require.NoError(t, err)
	require.Len(t, secunda, 1)
	assert.Equal(t, "Thandi Mokoena", secunda[0].FullName)

	byEmail, err := c.ListMembers(ctx, model.MembersListOptions{Search: "THANDI@"})
	require.NoError(t, err)
	assert.Len(t, byEmail, 1)

	none, err := c.ListMembers(ctx, model.MembersListOptions{Search: "nobody"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestCreateMember_ValidationDetail(t *testing.T) {
	srv := fakeapi.New(t)
	c := newTestClient(t, srv.BaseURL(), bearer(srv.IssueToken(fakeapi.AdminUsername)))

	_, err := c.CreateMember(context.Background(), model.CreateMemberRequest{FullName: "No Details"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t,
		"date_of_birth: field required; gender: field required; residential_address: field required; society: field required",
		apperrors.Detail(err))
}

func TestFinances_CreateThenList(t *testing.T) {
	srv := fakeapi.New(t)
	c := newTestClient(t, srv.BaseURL(), bearer(srv.IssueToken(fakeapi.AdminUsername)))
	ctx := context.Background()

	draft := model.FinanceDraft{
		Society:          string(model.SocietyKMT),
		Date:             "2024-06-02",
		SundayCollection: "100",
		Pledges:          "50",
	}
	assert.Equal(t, "150.00", draft.DisplayTotal())
	req, err := draft.Request()
	require.NoError(t, err)

	entry, err := c.CreateFinance(ctx, req)
	require.NoError(t, err)
	assert.InDelta(t, 150.0, entry.Total, 0.001)

	opts, fe := model.NewFinancesListOptions(string(model.SocietyKMT), "2024-06-01", "2024-06-02")
	require.Nil(t, fe)
	list, err := c.ListFinances(ctx, opts)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entry.ID, list[0].ID)

	opts, fe = model.NewFinancesListOptions("", "2024-07-01", "")
	require.Nil(t, fe)
	list, err = c.ListFinances(ctx, opts)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAnnouncements_FuneralDetails(t *testing.T) {
	srv := fakeapi.New(t)
	c := newTestClient(t, srv.BaseURL(), bearer(srv.IssueToken(fakeapi.AdminUsername)))
	ctx := context.Background()

	req, err := model.AnnouncementDraft{
		Title:           "Funeral notice",
		Content:         "Service on Saturday",
		DeceasedName:    "Mr. B. Nkosi",
		DeathDate:       "2024-05-20",
		FinancialStatus: model.FinancialStatusGood,
	}.Request()
	require.NoError(t, err)

	_, err = c.CreateAnnouncement(ctx, req)
	require.NoError(t, err)

	list, err := c.ListAnnouncements(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsFuneral())
	require.NotNil(t, list[0].DeathDate)
	assert.Equal(t, "2024-05-20", list[0].DeathDate.DateString())
}

func TestFiles_UploadAndList(t *testing.T) {
	srv := fakeapi.New(t)
	c := newTestClient(t, srv.BaseURL(), bearer(srv.IssueToken(fakeapi.AdminUsername)))
	ctx := context.Background()

	res, err := c.UploadFile(ctx, " Reports ", "/tmp/q2-report.pdf", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)
	assert.NotEmpty(t, res.FileID)

	files, err := c.ListFiles(ctx, model.FileCategoryReports)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "q2-report.pdf", files[0].OriginalName)

	empty, err := c.ListFiles(ctx, model.FileCategoryDocuments)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = c.ListFiles(ctx, "../etc")
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, 1, srv.Hits("GET /files/reports"))
}

func TestFiles_CategoryWithSpace(t *testing.T) {
	srv := fakeapi.New(t)
	c := newTestClient(t, srv.BaseURL(), bearer(srv.IssueToken(fakeapi.AdminUsername)))
	ctx := context.Background()

	_, err := c.UploadFile(ctx, "Board Minutes", "minutes.pdf", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)

	files, err := c.ListFiles(ctx, "board minutes")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "board minutes", files[0].Category)
	assert.Equal(t, 1, srv.Hits("GET /files/board minutes"))
}

func TestListFiles_EscapesPathOnce(t *testing.T) {
	var escaped string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		escaped = r.URL.EscapedPath()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("[]"))
	}))
	t.Cleanup(srv.Close)
	c := newTestClient(t, srv.URL+"/api", bearer("t"))

	_, err := c.ListFiles(context.Background(), "board minutes 50%")
	require.NoError(t, err)
	assert.Equal(t, "/api/files/board%20minutes%2050%25", escaped)
}

func TestRegister(t *testing.T) {
	srv := fakeapi.New(t)
	c := newTestClient(t, srv.BaseURL(), nil)
	ctx := context.Background()
	society := model.SocietyEbenezer

	res, err := c.Register(ctx, model.RegisterUserRequest{
		Username: "steward",
		Password: "secret1",
		FullName: "Society Steward",
		Role:     domainauth.RoleSocietySteward,
		Society:  &society,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.UserID)

	_, err = c.Register(ctx, model.RegisterUserRequest{
		Username: "steward", Password: "secret1", FullName: "Again", Role: domainauth.RoleSecretary,
	})
	require.Error(t, err)
	assert.Equal(t, "Username already exists", apperrors.Detail(err))

	before := srv.TotalHits()
	_, err = c.Register(ctx, model.RegisterUserRequest{Username: "x", Password: "123", FullName: "X", Role: domainauth.RoleRev})
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, before, srv.TotalHits())
}

func TestDashboardStats(t *testing.T) {
	srv := fakeapi.New(t)
	c := newTestClient(t, srv.BaseURL(), bearer(srv.IssueToken(fakeapi.AdminUsername)))

	stats, err := c.DashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, stats.Societies())
	assert.Equal(t, 9, stats.Organizations())
	assert.Len(t, stats.MembersPerSociety(), 6)
}

func TestTransportErrors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(ts.Close)

	c := newTestClient(t, ts.URL+"/api", nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.ListAnnouncements(ctx)
	require.Error(t, err)
	assert.True(t, apperrors.IsCanceled(err))

	ctx, cancel = context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = c.ListAnnouncements(ctx)
	require.Error(t, err)
	assert.True(t, apperrors.IsTimeout(err))

	ts.Close()
	_, err = c.ListAnnouncements(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsUnavailable(err))
}

func TestErrorStatusWithoutDetail(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	t.Cleanup(ts.Close)

	c := newTestClient(t, ts.URL+"/api", nil)
	_, err := c.DashboardStats(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsInternal(err))
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), apperrors.Detail(err))
	assert.Contains(t, err.Error(), "GET /stats/dashboard")
}

func TestMalformedSuccessBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"total_members": "lots"`))
	}))
	t.Cleanup(ts.Close)

	c := newTestClient(t, ts.URL+"/api", nil)
	_, err := c.DashboardStats(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsInternal(err))
}

func TestMetricsEmitted(t *testing.T) {
	srv := fakeapi.New(t)
	rec := &statsd.Recorder{}
	c, err := New(Config{BaseURL: srv.BaseURL(), Metrics: rec})
	require.NoError(t, err)

	_, err = c.Login(context.Background(), "admin", "nope")
	require.Error(t, err)

	samples := rec.Named("api.request")
	require.Len(t, samples, 1)
	assert.Equal(t, "/auth/login", samples[0].Tags["endpoint"])
	assert.Equal(t, "POST", samples[0].Tags["method"])
	assert.Equal(t, "401", samples[0].Tags["status"])
	assert.Equal(t, "error", samples[0].Tags["result"])
	assert.Equal(t, "unauthorized", samples[0].Tags["error_class"])
}
