package domain

// Speaker represents a conference speaker as stored in speakers.json.
// swagger:model Speaker
type Speaker struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Company   string `json:"company,omitempty"`
	Position  string `json:"position,omitempty"`
	Photo     string `json:"photo,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Bio       string `json:"bio,omitempty"`
}

// DisplayName returns "FirstName LastName".
func (s *Speaker) DisplayName() string {
	return s.FirstName + " " + s.LastName
}
