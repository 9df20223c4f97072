package model

// Fallback totals shown when the backend omits them.
const (
	DefaultTotalSocieties     = 6
	DefaultTotalOrganizations = 9
)

// DashboardStats is the aggregate returned by GET /stats/dashboard.
type DashboardStats struct {
	TotalMembers       int              `json:"total_members"`
	TotalSocieties     int              `json:"total_societies"`
	TotalOrganizations int              `json:"total_organizations"`
	MembersBySociety   map[Society]int  `json:"members_by_society"`
	RecentFinances     []FinancialEntry `json:"recent_finances"`
}

// Societies returns the society total, falling back to the fixed count.
func (s DashboardStats) Societies() int {
	if s.TotalSocieties == 0 {
		return DefaultTotalSocieties
	}
	return s.TotalSocieties
}

// Organizations returns the organization total, falling back to the fixed count.
func (s DashboardStats) Organizations() int {
	if s.TotalOrganizations == 0 {
		return DefaultTotalOrganizations
	}
	return s.TotalOrganizations
}

// SocietyCount is one row of the members-per-society breakdown.
type SocietyCount struct {
	Society Society
	Name    string
	Members int
}

// MembersPerSociety returns a row for every society in display order, zero when absent.
func (s DashboardStats) MembersPerSociety() []SocietyCount {
	out := make([]SocietyCount, 0, len(Societies()))
	for _, soc := range Societies() {
		out = append(out, SocietyCount{Society: soc, Name: soc.Name(), Members: s.MembersBySociety[soc]})
	}
	return out
}
