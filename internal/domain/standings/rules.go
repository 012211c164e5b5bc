package standings

import (
	crerr "github.com/cockroachdb/errors"
)

// Rules stores the points awarded per match outcome.
type Rules struct {
	WinPoints  int
	DrawPoints int
	LossPoints int
}

func DefaultRules() Rules {
	return Rules{
		WinPoints:  3,
		DrawPoints: 1,
		LossPoints: 0,
	}
}

func (r Rules) Validate() error {
	if r.WinPoints < 0 || r.DrawPoints < 0 || r.LossPoints < 0 {
		return crerr.Wrapf(ErrInvalidRules, "points must be >= 0 (win=%d draw=%d loss=%d)", r.WinPoints, r.DrawPoints, r.LossPoints)
	}
	if r.WinPoints < r.DrawPoints || r.DrawPoints < r.LossPoints {
		return crerr.Wrapf(ErrInvalidRules, "points must satisfy win >= draw >= loss (win=%d draw=%d loss=%d)", r.WinPoints, r.DrawPoints, r.LossPoints)
	}
	return nil
}

func (r Rules) points(won, drawn, lost int) int {
	return won*r.WinPoints + drawn*r.DrawPoints + lost*r.LossPoints
}
