package domain

// Category is a named product grouping. Position orders categories within a listing.
type Category struct {
	Name     string `json:"name"`
	Position int    `json:"-"`
}
