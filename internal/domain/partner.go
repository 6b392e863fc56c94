package domain

// Partner is a sponsor or community partner listed on event pages.
type Partner struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
	Logo  string `json:"logo,omitempty"`
}
