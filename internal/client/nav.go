package client

// Link is one navigation entry.
type Link struct {
	Label string
	Path  string
}

var (
	homeLink  = Link{Label: "Home", Path: "/"}
	userLinks = []Link{
		{Label: "Dashboard", Path: "/dashboard"},
		{Label: "Location", Path: "/location"},
		{Label: "Period Details", Path: "/period-details"},
		{Label: "Report", Path: "/report"},
		{Label: "Phone Book", Path: "/contacts"},
		{Label: "Logout", Path: "/logout"},
	}
	guestLinks = []Link{
		{Label: "Login", Path: "/login"},
		{Label: "Sign Up", Path: "/signup"},
	}
)

// Navigation returns the links to render for a signed-in user or a guest.
func Navigation(loggedIn bool) []Link {
	links := []Link{homeLink}
	if loggedIn {
		return append(links, userLinks...)
	}
	return append(links, guestLinks...)
}
