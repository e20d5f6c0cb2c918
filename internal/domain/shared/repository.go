package shared

// Page represents offset pagination for list queries
type Page struct {
	Limit  int
	Offset int
}

// DefaultRecentLimit is the number of rows returned by recent-first listings
// when the caller does not ask for a specific limit.
const DefaultRecentLimit = 100

// Normalize clamps the page to sane bounds
func (p Page) Normalize(maxLimit int) Page {
	if p.Limit <= 0 {
		p.Limit = DefaultRecentLimit
	}
	if maxLimit > 0 && p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
