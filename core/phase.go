package core

// Phase is the discrete sale period derived from a timestamp. It is never
// persisted; every operation recomputes it from the time it was given.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhasePreICO
	PhaseICO
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not started"
	case PhasePreICO:
		return "pre-ico"
	case PhaseICO:
		return "ico"
	case PhaseEnded:
		return "ended"
	}
	return "unknown"
}

const secondsPerWeek = 7 * 24 * 60 * 60

// PhaseAt derives the phase for ts (unix seconds). Both windows are
// inclusive at both ends; the gap between them reports NotStarted, and
// anything strictly past the ICO end is Ended.
func (c *SaleConfig) PhaseAt(ts uint64) Phase {
	switch {
	case ts > c.IcoEnd:
		return PhaseEnded
	case ts >= c.IcoStart:
		return PhaseICO
	case ts >= c.PreIcoStart && ts <= c.PreIcoEnd:
		return PhasePreICO
	}
	return PhaseNotStarted
}

// BonusPercent returns the bonus rate, in whole percent, for a purchase at
// ts during phase. The week offset is measured from the phase's own start
// using the same timestamp PhaseAt was given, so phase and bonus can never
// disagree at a boundary.
func (c *SaleConfig) BonusPercent(phase Phase, ts uint64) uint64 {
	switch phase {
	case PhasePreICO:
		switch week := (ts - c.PreIcoStart) / secondsPerWeek; {
		case week < 3:
			return 50
		case week == 3:
			return 45
		case week == 4:
			return 37
		}
		return 30
	case PhaseICO:
		switch week := (ts - c.IcoStart) / secondsPerWeek; {
		case week == 0:
			return 20
		case week == 1:
			return 10
		case week == 2:
			return 5
		}
	}
	return 0
}

// IsPurchasable reports whether contributions are accepted in phase.
func IsPurchasable(phase Phase) bool {
	return phase == PhasePreICO || phase == PhaseICO
}
