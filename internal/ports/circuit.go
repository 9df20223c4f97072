package ports

import (
	"context"
	"io"

	"github.com/mcsa-hvr/circuit1021/internal/domain/model"
)

// CircuitAPI is the full backend surface used by the dashboard and CLI.
type CircuitAPI interface {
	IdentityAPI

	Register(ctx context.Context, req model.RegisterUserRequest) (model.RegisterResult, error)
	DashboardStats(ctx context.Context) (model.DashboardStats, error)

	ListMembers(ctx context.Context, opts model.MembersListOptions) ([]model.Member, error)
	CreateMember(ctx context.Context, req model.CreateMemberRequest) (model.Member, error)

	ListFinances(ctx context.Context, opts model.FinancesListOptions) ([]model.FinancialEntry, error)
	CreateFinance(ctx context.Context, req model.CreateFinancialEntryRequest) (model.FinancialEntry, error)

	ListAnnouncements(ctx context.Context) ([]model.Announcement, error)
	CreateAnnouncement(ctx context.Context, req model.CreateAnnouncementRequest) (model.Announcement, error)

	UploadFile(ctx context.Context, category, filename string, content io.Reader) (model.UploadResult, error)
	ListFiles(ctx context.Context, category string) ([]model.FileRecord, error)
}
