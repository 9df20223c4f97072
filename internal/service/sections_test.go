package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mcsa-hvr/circuit1021/internal/domain/model"
	apperrors "github.com/mcsa-hvr/circuit1021/internal/errors"
	apimocks "github.com/mcsa-hvr/circuit1021/internal/mocks"
	"github.com/mcsa-hvr/circuit1021/internal/testutil"
)

func newMockWorkspace(t *testing.T) (*Workspace, *apimocks.MockCircuitAPI) {
	t.Helper()
	ctrl := gomock.NewController(t)
	api := apimocks.NewMockCircuitAPI(ctrl)
	return &Workspace{API: api, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}, api
}

func validMemberDraft() model.MemberDraft {
	return testutil.NewMemberDraft().Build()
}

func TestOverview(t *testing.T) {
	ws, api := newMockWorkspace(t)
	stats := model.DashboardStats{TotalMembers: 12}
	items := []model.Announcement{{ID: "a1"}, {ID: "a2"}, {ID: "a3"}, {ID: "a4"}}
	api.EXPECT().DashboardStats(gomock.Any()).Return(stats, nil)
	api.EXPECT().ListAnnouncements(gomock.Any()).Return(items, nil)

	got, err := ws.Overview(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 12, got.Stats.TotalMembers)
	require.Len(t, got.Announcements, 3)
	assert.Equal(t, "a1", got.Announcements[0].ID)
}

func TestOverview_Error(t *testing.T) {
	ws, api := newMockWorkspace(t)
	api.EXPECT().DashboardStats(gomock.Any()).Return(model.DashboardStats{}, apperrors.FromStatus(403, "Not authenticated"))
	api.EXPECT().ListAnnouncements(gomock.Any()).Return(nil, nil).AnyTimes()

	_, err := ws.Overview(context.Background())

	require.Error(t, err)
	assert.True(t, apperrors.IsForbidden(err))
	assert.Contains(t, err.Error(), "load dashboard stats")
}

func TestMembers_PassesFilters(t *testing.T) {
	ws, api := newMockWorkspace(t)
	opts := model.MembersListOptions{Society: model.SocietyKMT, Search: "nkosi"}
	api.EXPECT().ListMembers(gomock.Any(), opts).Return([]model.Member{{ID: "m1"}}, nil)

	got, err := ws.Members(context.Background(), opts)

	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestAddMember(t *testing.T) {
	t.Run("success resets draft", func(t *testing.T) {
		ws, api := newMockWorkspace(t)
		draft := validMemberDraft()
		api.EXPECT().CreateMember(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req model.CreateMemberRequest) (model.Member, error) {
				assert.Equal(t, "Thandi Mokoena", req.FullName)
				assert.Equal(t, model.SocietySecunda, req.Society)
				assert.Nil(t, req.Occupation)
				return model.Member{ID: "m1"}, nil
			})

		res := ws.AddMember(context.Background(), &draft)

		assert.Equal(t, SubmitResult{Success: true, Message: MemberAddedMessage}, res)
		assert.Equal(t, model.MemberDraft{}, draft)
	})

	t.Run("backend detail keeps draft", func(t *testing.T) {
		ws, api := newMockWorkspace(t)
		draft := validMemberDraft()
		api.EXPECT().CreateMember(gomock.Any(), gomock.Any()).
			Return(model.Member{}, apperrors.FromStatus(422, "gender: field required"))

		res := ws.AddMember(context.Background(), &draft)

		assert.False(t, res.Success)
		assert.Equal(t, "Error adding member: gender: field required", res.Message)
		assert.Equal(t, validMemberDraft(), draft)
	})

	t.Run("backend without detail", func(t *testing.T) {
		ws, api := newMockWorkspace(t)
		draft := validMemberDraft()
		api.EXPECT().CreateMember(gomock.Any(), gomock.Any()).Return(model.Member{}, apperrors.FromStatus(500, ""))

		res := ws.AddMember(context.Background(), &draft)

		assert.Equal(t, "Error adding member: Unknown error", res.Message)
	})

	t.Run("non-api error", func(t *testing.T) {
		ws, api := newMockWorkspace(t)
		draft := validMemberDraft()
		api.EXPECT().CreateMember(gomock.Any(), gomock.Any()).Return(model.Member{}, errors.New("boom"))

		res := ws.AddMember(context.Background(), &draft)

		assert.Equal(t, "Error adding member: Unknown error", res.Message)
	})

	t.Run("invalid draft makes no call", func(t *testing.T) {
		ws, _ := newMockWorkspace(t)
		draft := model.MemberDraft{FullName: "Only a name"}

		res := ws.AddMember(context.Background(), &draft)

		assert.False(t, res.Success)
		assert.Contains(t, res.FieldErrors, "society")
		assert.True(t, strings.HasPrefix(res.Message, "Error adding member: "))
		assert.Equal(t, "Only a name", draft.FullName)
	})
}

func TestAddFinance(t *testing.T) {
	ws, api := newMockWorkspace(t)
	draft := testutil.SundayTakings()
	require.Equal(t, "150.00", draft.DisplayTotal())
	api.EXPECT().CreateFinance(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req model.CreateFinancialEntryRequest) (model.FinancialEntry, error) {
			assert.InDelta(t, 100.0, req.SundayCollection, 0.001)
			assert.InDelta(t, 50.0, req.Pledges, 0.001)
			assert.Zero(t, req.SpecialEffort)
			return model.FinancialEntry{ID: "f1", Total: 150}, nil
		})

	res := ws.AddFinance(context.Background(), &draft)

	assert.Equal(t, SubmitResult{Success: true, Message: FinanceAddedMessage}, res)
	assert.Equal(t, model.FinanceDraft{}, draft)
}

func TestAddFinance_Failure(t *testing.T) {
	ws, api := newMockWorkspace(t)
	draft := model.FinanceDraft{Society: "kmt", Date: "2024-06-02", SundayCollection: "100"}
	api.EXPECT().CreateFinance(gomock.Any(), gomock.Any()).
		Return(model.FinancialEntry{}, apperrors.FromStatus(401, "Invalid token"))

	res := ws.AddFinance(context.Background(), &draft)

	assert.Equal(t, "Error adding financial entry: Invalid token", res.Message)
	assert.Equal(t, "100", draft.SundayCollection)
}

func TestAddAnnouncement(t *testing.T) {
	ws, api := newMockWorkspace(t)
	draft := model.AnnouncementDraft{Title: "Synod", Content: "Synod opens on Friday"}
	api.EXPECT().CreateAnnouncement(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req model.CreateAnnouncementRequest) (model.Announcement, error) {
			assert.Nil(t, req.DeathDate)
			assert.Nil(t, req.DeceasedName)
			return model.Announcement{ID: "a1"}, nil
		})

	res := ws.AddAnnouncement(context.Background(), &draft)

	assert.Equal(t, AnnouncementAddedMessage, res.Message)
	assert.Equal(t, model.AnnouncementDraft{}, draft)
}

func TestAddAnnouncement_Funeral(t *testing.T) {
	ws, api := newMockWorkspace(t)
	draft := testutil.FuneralNotice()
	api.EXPECT().CreateAnnouncement(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req model.CreateAnnouncementRequest) (model.Announcement, error) {
			require.NotNil(t, req.DeathDate)
			assert.Equal(t, "2023-12-29", req.DeathDate.UTC().Format(model.DateLayout))
			require.NotNil(t, req.DeceasedName)
			assert.Equal(t, "Baba Mthembu", *req.DeceasedName)
			require.NotNil(t, req.FinancialStatus)
			assert.Equal(t, model.FinancialStatusGood, *req.FinancialStatus)
			return model.Announcement{ID: "a2"}, nil
		})

	res := ws.AddAnnouncement(context.Background(), &draft)

	assert.True(t, res.Success)
	assert.Equal(t, model.AnnouncementDraft{}, draft)
}

func TestAddFinance_BuilderValidation(t *testing.T) {
	ws, _ := newMockWorkspace(t)
	draft := testutil.NewFinanceDraft().WithSociety("").WithSpecialEffort("lots").Build()

	res := ws.AddFinance(context.Background(), &draft)

	assert.False(t, res.Success)
	assert.Equal(t, "Society is required", res.FieldErrors["society"])
	assert.Equal(t, "Special effort must be a number", res.FieldErrors["special_effort"])
}

func TestAddAnnouncement_Unreachable(t *testing.T) {
	ws, api := newMockWorkspace(t)
	draft := model.AnnouncementDraft{Title: "Synod", Content: "Synod opens on Friday"}
	api.EXPECT().CreateAnnouncement(gomock.Any(), gomock.Any()).
		Return(model.Announcement{}, apperrors.MapTransportError(errors.New("connection refused")))

	res := ws.AddAnnouncement(context.Background(), &draft)

	assert.Equal(t, "Error creating announcement: The circuit service is unreachable. Please try again later.", res.Message)
}

func TestUpload(t *testing.T) {
	ws, api := newMockWorkspace(t)
	api.EXPECT().UploadFile(gomock.Any(), "reports", "q2.pdf", gomock.Any()).
		Return(model.UploadResult{FileID: "f1"}, nil)
	api.EXPECT().UploadFile(gomock.Any(), "", "q2.pdf", gomock.Any()).
		Return(model.UploadResult{}, apperrors.ValidationField("category", "Category is required"))

	ok := ws.Upload(context.Background(), "reports", "q2.pdf", strings.NewReader("x"))
	assert.Equal(t, SubmitResult{Success: true, Message: FileUploadedMessage}, ok)

	bad := ws.Upload(context.Background(), "", "q2.pdf", strings.NewReader("x"))
	assert.Equal(t, "Error uploading file: Category is required", bad.Message)
	assert.Equal(t, model.FieldErrors{"category": "Category is required"}, bad.FieldErrors)
}

func TestOrganizations_NoRequest(t *testing.T) {
	ws, _ := newMockWorkspace(t)
	assert.Len(t, ws.Organizations(), 9)
}
