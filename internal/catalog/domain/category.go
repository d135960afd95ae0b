package domain

// Category groups products for browsing. Serial is the display order;
// inactive categories disappear from navigation but their products stay
// reachable by direct link.
type Category struct {
	ID     string
	Slug   string
	Name   string
	Serial int
	Active bool
}
