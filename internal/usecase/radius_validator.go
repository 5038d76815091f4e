package usecase

import (
	"fmt"
	"strconv"

	"github.com/gym-finder/internal/domain"
	"github.com/gym-finder/internal/pkg/errors"
	"github.com/gym-finder/internal/pkg/validator"
)

type RadiusStatus string

const (
	RadiusAccepted   RadiusStatus = "Accepted"
	RadiusEmpty      RadiusStatus = "Empty"
	RadiusOutOfRange RadiusStatus = "OutOfRange"
	RadiusNonNumeric RadiusStatus = "NonNumeric"
)

// RadiusWarning is shown next to the input while the text is out of range.
const RadiusWarning = "Enter a value between 1K - 20K"

var radiusRule = fmt.Sprintf("min=%d,max=%d", domain.MinRadius, domain.MaxRadius)

// RadiusResult is the outcome of validating raw radius text. Meters is set
// only for Accepted.
type RadiusResult struct {
	Status RadiusStatus `json:"status"`
	Meters int          `json:"meters,omitempty"`
}

// ShowWarning is true only for out-of-range numbers; empty text never warns.
func (r RadiusResult) ShowWarning() bool {
	return r.Status == RadiusOutOfRange
}

// CanSubmit reports whether the search action is enabled.
func (r RadiusResult) CanSubmit() bool {
	return r.Status == RadiusAccepted || r.Status == RadiusEmpty
}

// ValidateRadius classifies raw input text. Exactly one status applies.
func ValidateRadius(raw string) RadiusResult {
	if raw == "" {
		return RadiusResult{Status: RadiusEmpty}
	}
	if !isDigits(raw) {
		return RadiusResult{Status: RadiusNonNumeric}
	}

	meters, err := strconv.Atoi(raw)
	if err != nil {
		// only digits, so the sole failure is overflow
		return RadiusResult{Status: RadiusOutOfRange}
	}
	if err := validator.Var(meters, radiusRule); err != nil {
		return RadiusResult{Status: RadiusOutOfRange}
	}

	return RadiusResult{Status: RadiusAccepted, Meters: meters}
}

// SubmitRadius turns raw text into the radius of a search command. Empty
// text means the default radius.
func SubmitRadius(raw string) (int, error) {
	result := ValidateRadius(raw)
	switch result.Status {
	case RadiusAccepted:
		return result.Meters, nil
	case RadiusEmpty:
		return domain.DefaultRadius, nil
	default:
		return 0, errors.ErrValidation.WithDetails(map[string]interface{}{
			"text":   raw,
			"status": string(result.Status),
		})
	}
}

// FilterRadiusInput applies a keystroke: text containing anything but
// digits is rejected and the previous text is kept.
func FilterRadiusInput(previous, next string) string {
	if !isDigits(next) {
		return previous
	}
	return next
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
