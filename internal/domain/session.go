package domain

// Phase is the lifecycle stage of a discovery session. Exactly one holds.
type Phase string

const (
	PhaseIdle    Phase = "Idle"
	PhaseLoading Phase = "Loading"
	PhaseReady   Phase = "Ready"
	PhaseError   Phase = "Error"
)

const (
	MinRadius     = 1000
	MaxRadius     = 20000
	DefaultRadius = 5000
)

// RadiusInRange reports whether meters may be accepted into a search.
func RadiusInRange(meters int) bool {
	return meters >= MinRadius && meters <= MaxRadius
}

// SessionState is the full discovery state. Values returned to callers
// are deep copies.
type SessionState struct {
	Phase           Phase       `json:"phase"`
	Coordinate      *Coordinate `json:"coordinate"`
	Radius          int         `json:"radius"`
	Places          []Place     `json:"places"`
	SelectedPlaceID *string     `json:"selected_place_id"`
	ErrorMessage    *string     `json:"error_message"`
	ErrorCode       string      `json:"error_code,omitempty"`
}

func (s SessionState) Clone() SessionState {
	cp := s
	if s.Coordinate != nil {
		c := *s.Coordinate
		cp.Coordinate = &c
	}
	cp.Places = make([]Place, len(s.Places))
	for i, p := range s.Places {
		cp.Places[i] = p.Clone()
	}
	if s.SelectedPlaceID != nil {
		id := *s.SelectedPlaceID
		cp.SelectedPlaceID = &id
	}
	if s.ErrorMessage != nil {
		msg := *s.ErrorMessage
		cp.ErrorMessage = &msg
	}
	return cp
}

// FindPlace returns the place with id from the current result set.
func (s SessionState) FindPlace(id string) (Place, bool) {
	for _, p := range s.Places {
		if p.ID == id {
			return p, true
		}
	}
	return Place{}, false
}

// SelectedPlace resolves the selection, if any.
func (s SessionState) SelectedPlace() (Place, bool) {
	if s.SelectedPlaceID == nil {
		return Place{}, false
	}
	return s.FindPlace(*s.SelectedPlaceID)
}
