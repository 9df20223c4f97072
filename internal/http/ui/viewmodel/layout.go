package viewmodel

// User is the signed-in member of staff shown in the header.
type User struct {
	FullName  string
	Role      string
	RoleLabel string
}

// NavItem is one entry of the dashboard sidebar.
type NavItem struct {
	Page  string
	Label string
	Path  string
}

// Layout captures shared chrome metadata (titles, navigation state, auth flags).
type Layout struct {
	Title           string
	PageTitle       string
	CurrentPage     string
	CSRFToken       string
	IsAuthenticated bool
	User            *User
	Nav             []NavItem
}

// LayoutProvider exposes layout metadata for renderer utilities.
type LayoutProvider interface {
	LayoutData() *Layout
}
