package domain

type Permission string

const (
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

// LocationReport is pushed by the device after the OS permission prompt or
// a new fix. Coordinate is nil when permission was denied or no fix exists.
type LocationReport struct {
	Permission Permission  `json:"permission" validate:"required,oneof=granted denied"`
	Coordinate *Coordinate `json:"coordinate,omitempty"`
}
