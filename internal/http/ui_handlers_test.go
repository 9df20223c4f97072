package httpx

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mcsa-hvr/circuit1021/internal/domain/model"
	apperrors "github.com/mcsa-hvr/circuit1021/internal/errors"
	"github.com/mcsa-hvr/circuit1021/internal/testutil"
)

func sampleMembers() []model.Member {
	return []model.Member{
		{ID: "m1", FullName: "Thandi Nkosi", Title: testutil.StringPtr("Mrs"), Gender: model.GenderFemale, Society: model.SocietySecunda, EmailAddress: testutil.StringPtr("thandi@example.com")},
		{ID: "m2", FullName: "Sipho Dlamini", Gender: model.GenderMale, Society: model.SocietyKMT},
	}
}

func serveUI(h http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, r)
	return rec
}

func TestMembers_FullPage(t *testing.T) {
	h := newTestUIHandlers(t)
	ws, api := mockWorkspace(t, true)
	api.EXPECT().ListMembers(gomock.Any(), model.MembersListOptions{}).Return(sampleMembers(), nil)

	rec := serveUI(h.Members, withWorkspace(httptest.NewRequest(http.MethodGet, "/members", nil), ws))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<!DOCTYPE html>")
	assert.Contains(t, body, "Members Management")
	assert.Contains(t, body, "Mrs Thandi Nkosi")
	assert.Contains(t, body, "thandi@example.com")
	assert.Contains(t, body, "Secunda")
	assert.Contains(t, body, "N/A", "missing occupation")
	assert.Contains(t, body, "Circuit Steward")
}

func TestMembers_FilterSwapsTableOnly(t *testing.T) {
	h := newTestUIHandlers(t)
	ws, api := mockWorkspace(t, true)
	api.EXPECT().
		ListMembers(gomock.Any(), model.MembersListOptions{Society: model.SocietyKMT, Search: "sipho"}).
		Return(sampleMembers()[1:], nil)

	r := htmxRequest(httptest.NewRequest(http.MethodGet, "/members?society=kmt&search=+sipho+", nil), membersTableTarget)
	rec := serveUI(h.Members, withWorkspace(r, ws))

	body := rec.Body.String()
	assert.Contains(t, body, "Sipho Dlamini")
	assert.NotContains(t, body, "Thandi")
	assert.NotContains(t, body, "<title>", "fragment has no page chrome")
	assert.NotContains(t, body, `name="search"`, "filter inputs are not replaced")
}

func TestMembers_NavigationRendersPartial(t *testing.T) {
	h := newTestUIHandlers(t)
	ws, api := mockWorkspace(t, true)
	api.EXPECT().ListMembers(gomock.Any(), gomock.Any()).Return(nil, nil)

	r := htmxRequest(httptest.NewRequest(http.MethodGet, "/members", nil), "main-content")
	rec := serveUI(h.Members, withWorkspace(r, ws))

	body := rec.Body.String()
	assert.Contains(t, body, "<title>Circuit 1021 - Members</title>")
	assert.Contains(t, body, `id="header-title"`)
	assert.Contains(t, body, "No members found.")
	assert.NotContains(t, body, "<!DOCTYPE html>")
	assert.Contains(t, rec.Header().Get("Hx-Trigger"), "nav:activate")
}

func TestMembers_UnknownSocietySkipsFetch(t *testing.T) {
	h := newTestUIHandlers(t)
	ws, _ := mockWorkspace(t, true) // no ListMembers expectation

	rec := serveUI(h.Members, withWorkspace(httptest.NewRequest(http.MethodGet, "/members?society=pretoria", nil), ws))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid filter")
	assert.Contains(t, rec.Body.String(), "Embalenhle", "society options still offered")
}

func TestMembers_FetchErrorShowsBackendDetail(t *testing.T) {
	h := newTestUIHandlers(t)
	ws, api := mockWorkspace(t, true)
	api.EXPECT().ListMembers(gomock.Any(), gomock.Any()).
		Return(nil, apperrors.FromStatus(http.StatusForbidden, "Not authenticated"))

	rec := serveUI(h.Members, withWorkspace(httptest.NewRequest(http.MethodGet, "/members", nil), ws))
	assert.Contains(t, rec.Body.String(), "Not authenticated")
}

func TestMembers_AbandonedRequestRendersNothing(t *testing.T) {
	h := newTestUIHandlers(t)
	ws, api := mockWorkspace(t, true)
	ctx, cancel := context.WithCancel(context.Background())
	api.EXPECT().ListMembers(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, model.MembersListOptions) ([]model.Member, error) {
			cancel()
			return nil, context.Canceled
		})

	r := httptest.NewRequest(http.MethodGet, "/members?search=a", nil).WithContext(ctx)
	rec := serveUI(h.Members, withWorkspace(r, ws))
	assert.Empty(t, rec.Body.String())
}

func memberForm() url.Values {
	return url.Values{
		"full_name":           {"Lerato Mokoena"},
		"date_of_birth":       {"1990-04-12"},
		"gender":              {model.GenderFemale},
		"residential_address": {"12 Church St, Secunda"},
		"society":             {"secunda"},
		"email_address":       {""},
	}
}

func TestCreateMember_HTMXSuccessShowsList(t *testing.T) {
	h := newTestUIHandlers(t)
	ws, api := mockWorkspace(t, true)
	gomock.InOrder(
		api.EXPECT().CreateMember(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req model.CreateMemberRequest) (model.Member, error) {
				assert.Equal(t, "Lerato Mokoena", req.FullName)
				assert.Equal(t, model.SocietySecunda, req.Society)
				assert.Nil(t, req.EmailAddress)
				return model.Member{ID: "m9"}, nil
			}),
		api.EXPECT().ListMembers(gomock.Any(), model.MembersListOptions{}).Return(sampleMembers(), nil),
	)

	r := htmxRequest(formRequest(http.MethodPost, "/members", memberForm()), "main-content")
	rec := serveUI(h.CreateMember, withWorkspace(r, ws))

	assert.Equal(t, "/members", rec.Header().Get("Hx-Push-Url"))
	assert.Contains(t, rec.Header().Get("Hx-Trigger"), "Member added successfully!")
	assert.Contains(t, rec.Body.String(), "Thandi Nkosi")
}

func TestCreateMember_PlainPostRedirects(t *testing.T) {
	h := newTestUIHandlers(t)
	ws, api := mockWorkspace(t, true)
	api.EXPECT().CreateMember(gomock.Any(), gomock.Any()).Return(model.Member{}, nil)

	rec := serveUI(h.CreateMember, withWorkspace(formRequest(http.MethodPost, "/members", memberForm()), ws))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/members", rec.Header().Get("Location"))
}

func TestCreateMember_InvalidDraftKeepsInput(t *testing.T) {
	h := newTestUIHandlers(t)
	ws, _ := mockWorkspace(t, true) // invalid drafts never reach the backend

	form := memberForm()
	form.Set("gender", "")
	r := htmxRequest(formRequest(http.MethodPost, "/members", form), "main-content")
	rec := serveUI(h.CreateMember, withWorkspace(r, ws))

	body := rec.Body.String()
	assert.Contains(t, body, "Gender is required")
	assert.Contains(t, body, `value="Lerato Mokoena"`)
	assert.Contains(t, rec.Header().Get("Hx-Trigger"), "Error adding member")
}

func TestCreateMember_BackendRejection(t *testing.T) {
	h := newTestUIHandlers(t)
	ws, api := mockWorkspace(t, true)
	api.EXPECT().CreateMember(gomock.Any(), gomock.Any()).
		Return(model.Member{}, apperrors.FromStatus(http.StatusForbidden, "Not enough permissions"))

	r := htmxRequest(formRequest(http.MethodPost, "/members", memberForm()), "main-content")
	rec := serveUI(h.CreateMember, withWorkspace(r, ws))

	assert.Contains(t, rec.Body.String(), "Error adding member: Not enough permissions")
	assert.Contains(t, rec.Body.String(), `value="12 Church St, Secunda"`)
}

func TestFinances_FiltersAndGrandTotal(t *testing.T) {
	h := newTestUIHandlers(t)
	ws, api := mockWorkspace(t, true)
	day := model.NewTimestamp(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	api.EXPECT().ListFinances(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, opts model.FinancesListOptions) ([]model.FinancialEntry, error) {
			assert.Equal(t, model.SocietyEvander, opts.Society)
			assert.False(t, opts.StartDate.IsZero())
			return []model.FinancialEntry{
				{Society: model.SocietyEvander, Date: day, SundayCollection: 100, Pledges: 50, Total: 150},
				{Society: model.SocietyEvander, Date: day, SpecialEffort: 25.5, Total: 25.5},
			}, nil
		})

	r := htmxRequest(httptest.NewRequest(http.MethodGet, "/finances?society=evander&start_date=2026-01-01", nil), financesTableTarget)
	rec := serveUI(h.Finances, withWorkspace(r, ws))

	body := rec.Body.String()
	assert.Contains(t, body, "R150.00")
	assert.Contains(t, body, "R25.50")
	assert.Contains(t, body, "R175.50", "grand total")
}

func TestFinances_BadDateRange(t *testing.T) {
	h := newTestUIHandlers(t)
	ws, _ := mockWorkspace(t, true)

	r := httptest.NewRequest(http.MethodGet, "/finances?start_date=2026-03-01&end_date=2026-01-01", nil)
	rec := serveUI(h.Finances, withWorkspace(r, ws))
	assert.Contains(t, rec.Body.String(), "End date must not be before start date")
}

func TestNewFinance_DefaultsToToday(t *testing.T) {
	h := newTestUIHandlers(t)
	h.Now = testutil.FixedTimeFunc(time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC))
	ws, _ := mockWorkspace(t, true)

	rec := serveUI(h.NewFinance, withWorkspace(httptest.NewRequest(http.MethodGet, "/finances/new", nil), ws))
	body := rec.Body.String()
	assert.Contains(t, body, `value="2026-10-16"`)
	assert.Contains(t, body, "Total: R0.00")
}

func TestFinanceTotal(t *testing.T) {
	h := newTestUIHandlers(t)
	form := url.Values{"sunday_collection": {"100"}, "pledges": {"49.5"}, "special_effort": {"abc"}, "circuit_events_collection": {""}}
	rec := serveUI(h.FinanceTotal, htmxRequest(formRequest(http.MethodPost, "/finances/total", form), "finance-total"))
	assert.Equal(t, `<p class="total">Total: R149.50</p>`, rec.Body.String())
}

func TestCreateFinance_Success(t *testing.T) {
	h := newTestUIHandlers(t)
	ws, api := mockWorkspace(t, true)
	api.EXPECT().CreateFinance(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req model.CreateFinancialEntryRequest) (model.FinancialEntry, error) {
			assert.InDelta(t, 120.0, req.SundayCollection, 0.001)
			assert.Zero(t, req.Pledges)
			return model.FinancialEntry{}, nil
		})
	api.EXPECT().ListFinances(gomock.Any(), model.FinancesListOptions{}).Return(nil, nil)

	form := url.Values{"society": {"ebenezer"}, "date": {"2026-10-11"}, "sunday_collection": {"120"}}
	r := htmxRequest(formRequest(http.MethodPost, "/finances", form), "main-content")
	rec := serveUI(h.CreateFinance, withWorkspace(r, ws))

	assert.Contains(t, rec.Header().Get("Hx-Trigger"), "Financial entry added successfully!")
	assert.Contains(t, rec.Body.String(), "No financial entries found.")
}

func TestAnnouncements_FuneralDetails(t *testing.T) {
	h := newTestUIHandlers(t)
	ws, api := mockWorkspace(t, true)
	died := model.NewTimestamp(time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC))
	api.EXPECT().ListAnnouncements(gomock.Any()).Return([]model.Announcement{
		{Title: "Synod", Content: "Synod starts Friday."},
		{Title: "Funeral notice", Content: "Service at 09:00", DeceasedName: testutil.StringPtr("Bab' Mthembu"), DeathDate: &died, BurialLocation: testutil.StringPtr("Evander cemetery")},
	}, nil)

	rec := serveUI(h.Announcements, withWorkspace(httptest.NewRequest(http.MethodGet, "/announcements", nil), ws))
	body := rec.Body.String()
	assert.Contains(t, body, "Synod starts Friday.")
	assert.Contains(t, body, "Bab&#39; Mthembu")
	assert.Contains(t, body, "Evander cemetery")
}

func TestCreateAnnouncement_FailureKeepsContent(t *testing.T) {
	h := newTestUIHandlers(t)
	ws, api := mockWorkspace(t, true)
	api.EXPECT().CreateAnnouncement(gomock.Any(), gomock.Any()).
		Return(model.Announcement{}, apperrors.MapTransportError(errors.New("connection refused")))

	form := url.Values{"title": {"Choir practice"}, "content": {"  Saturday 14:00  "}}
	r := htmxRequest(formRequest(http.MethodPost, "/announcements", form), "main-content")
	rec := serveUI(h.CreateAnnouncement, withWorkspace(r, ws))

	body := rec.Body.String()
	assert.Contains(t, body, "Error creating announcement: The circuit service is unreachable.")
	assert.Contains(t, body, "  Saturday 14:00  ")
}

func TestOverview(t *testing.T) {
	h := newTestUIHandlers(t)
	ws, api := mockWorkspace(t, true)
	api.EXPECT().DashboardStats(gomock.Any()).Return(model.DashboardStats{
		TotalMembers:     1234,
		MembersBySociety: map[model.Society]int{model.SocietySecunda: 7},
	}, nil)
	api.EXPECT().ListAnnouncements(gomock.Any()).Return([]model.Announcement{
		{Title: "One"}, {Title: "Two"}, {Title: "Three"}, {Title: "Four"},
	}, nil)

	rec := serveUI(h.Overview, withWorkspace(httptest.NewRequest(http.MethodGet, "/", nil), ws))
	body := rec.Body.String()
	assert.Contains(t, body, "1,234")
	assert.Contains(t, body, "7 members")
	assert.Contains(t, body, "Record Financial Entry")
	assert.Contains(t, body, "Three")
	assert.NotContains(t, body, "Four", "only the latest three announcements")
}

func TestOverview_StatsFailureStillRenders(t *testing.T) {
	h := newTestUIHandlers(t)
	ws, api := mockWorkspace(t, true)
	api.EXPECT().DashboardStats(gomock.Any()).Return(model.DashboardStats{}, apperrors.FromStatus(http.StatusInternalServerError, "db down"))
	api.EXPECT().ListAnnouncements(gomock.Any()).Return(nil, nil).AnyTimes()

	rec := serveUI(h.Overview, withWorkspace(httptest.NewRequest(http.MethodGet, "/", nil), ws))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "db down")
	assert.Contains(t, rec.Body.String(), "eMzinoni")
}

func TestOrganizations_NoBackendCall(t *testing.T) {
	h := newTestUIHandlers(t)
	ws, _ := mockWorkspace(t, true)

	rec := serveUI(h.Organizations, withWorkspace(httptest.NewRequest(http.MethodGet, "/organizations", nil), ws))
	body := rec.Body.String()
	for _, o := range model.Organizations() {
		assert.Contains(t, body, o.Name())
	}
}

func uploadRequest(t *testing.T, category, filename, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("category", category))
	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = io.WriteString(part, content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	r := httptest.NewRequest(http.MethodPost, "/files", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}

func TestUploadFile_HTMXSuccess(t *testing.T) {
	h := newTestUIHandlers(t)
	ws, api := mockWorkspace(t, true)
	api.EXPECT().UploadFile(gomock.Any(), model.FileCategoryDocuments, "minutes.pdf", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, content io.Reader) (model.UploadResult, error) {
			b, err := io.ReadAll(content)
			require.NoError(t, err)
			assert.Equal(t, "%PDF-1.4", string(b))
			return model.UploadResult{}, nil
		})
	api.EXPECT().ListFiles(gomock.Any(), model.FileCategoryDocuments).Return([]model.FileRecord{
		{OriginalName: "minutes.pdf", Category: model.FileCategoryDocuments, UploadedBy: "admin"},
	}, nil)

	r := htmxRequest(uploadRequest(t, "Documents", "../../minutes.pdf", "%PDF-1.4"), "main-content")
	rec := serveUI(h.UploadFile, withWorkspace(r, ws))

	assert.Equal(t, "/files?category=documents", rec.Header().Get("Hx-Push-Url"))
	assert.Contains(t, rec.Header().Get("Hx-Trigger"), "File uploaded successfully!")
	assert.Contains(t, rec.Body.String(), "minutes.pdf")
}

func TestUploadFile_MissingFile(t *testing.T) {
	h := newTestUIHandlers(t)
	ws, api := mockWorkspace(t, true)
	api.EXPECT().ListFiles(gomock.Any(), model.FileCategoryReports).Return(nil, nil)

	rec := serveUI(h.UploadFile, withWorkspace(uploadRequest(t, "reports", "", ""), ws))
	assert.Contains(t, rec.Body.String(), msgChooseFile)
}

func TestUploadFile_PlainPostRedirects(t *testing.T) {
	h := newTestUIHandlers(t)
	ws, api := mockWorkspace(t, true)
	api.EXPECT().UploadFile(gomock.Any(), model.FileCategoryReports, "q3.xlsx", gomock.Any()).Return(model.UploadResult{}, nil)

	rec := serveUI(h.UploadFile, withWorkspace(uploadRequest(t, "reports", "q3.xlsx", "data"), ws))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/files?category=reports", rec.Header().Get("Location"))
}

func TestFiles_DefaultCategory(t *testing.T) {
	h := newTestUIHandlers(t)
	ws, api := mockWorkspace(t, true)
	api.EXPECT().ListFiles(gomock.Any(), model.FileCategoryReports).Return(nil, nil)

	rec := serveUI(h.Files, withWorkspace(httptest.NewRequest(http.MethodGet, "/files", nil), ws))
	assert.Contains(t, rec.Body.String(), "No files in this category.")
}

func TestNotFound(t *testing.T) {
	h := newTestUIHandlers(t)

	t.Run("json", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/nope", nil)
		r.Header.Set("Accept", "application/json")
		rec := serveUI(h.NotFound, r)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"not_found","message":"resource not found"}`, rec.Body.String())
	})
	t.Run("anonymous browser", func(t *testing.T) {
		rec := serveUI(h.NotFound, httptest.NewRequest(http.MethodGet, "/nope", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "MCSA Highveld Ridge Circuit 1021")
	})
}
