package standings

import (
	crerr "github.com/cockroachdb/errors"
)

// ErrUnknownClub matches every UnknownClubError through errors.Is.
var ErrUnknownClub = crerr.New("unknown club")

// ErrInvalidRules marks a points configuration that cannot rank a table.
var ErrInvalidRules = crerr.New("invalid points rules")

// UnknownClubError reports a result that references a club missing from the registry.
type UnknownClubError struct {
	ResultID string
	ClubID   string
}

func (e *UnknownClubError) Error() string {
	if e.ResultID == "" {
		return "unknown club: " + e.ClubID
	}
	return "unknown club: " + e.ClubID + " (result=" + e.ResultID + ")"
}

func (e *UnknownClubError) Is(target error) bool {
	return target == ErrUnknownClub
}

func NewUnknownClubError(resultID, clubID string) error {
	return crerr.WithStack(&UnknownClubError{ResultID: resultID, ClubID: clubID})
}
