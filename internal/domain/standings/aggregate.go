package standings

import (
	"iter"

	crerr "github.com/cockroachdb/errors"
	"github.com/remostars/club-standings/internal/domain/club"
	"github.com/remostars/club-standings/internal/domain/result"
	"go.uber.org/multierr"
)

// Registry resolves club ids referenced by results.
type Registry map[string]club.Club

func NewRegistry(clubs []club.Club) Registry {
	out := make(Registry, len(clubs))
	for _, item := range clubs {
		out[item.ID] = item
	}
	return out
}

type Option func(*Aggregator)

// WithIdleClubs adds a zeroed row for every registered club without results.
func WithIdleClubs() Option {
	return func(a *Aggregator) {
		a.includeIdle = true
	}
}

// Aggregator folds a result log into per-club rows. It holds no state between
// calls, so the same input always produces the same rows.
type Aggregator struct {
	rules       Rules
	includeIdle bool
}

func NewAggregator(rules Rules, opts ...Option) *Aggregator {
	a := &Aggregator{rules: rules}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Aggregator) Rules() Rules {
	return a.rules
}

// Compute aggregates results into rows keyed by club id. Results that fail
// validation or reference unknown clubs are skipped and reported in the
// returned error; rows for every other result are still returned.
func (a *Aggregator) Compute(results iter.Seq[result.MatchResult], registry Registry) (map[string]Row, error) {
	rows := make(map[string]*Row)
	var errs error

	if a.includeIdle {
		for id, item := range registry {
			rows[id] = &Row{ClubID: id, ClubName: item.Name}
		}
	}

	row := func(item club.Club) *Row {
		r, ok := rows[item.ID]
		if !ok {
			r = &Row{ClubID: item.ID, ClubName: item.Name}
			rows[item.ID] = r
		}
		return r
	}

	for item := range results {
		if err := item.Validate(); err != nil {
			errs = multierr.Append(errs, crerr.Wrapf(err, "skip result %s", item.ID))
			continue
		}
		home, ok := registry[item.HomeClubID]
		if !ok {
			errs = multierr.Append(errs, NewUnknownClubError(item.ID, item.HomeClubID))
			continue
		}
		away, ok := registry[item.AwayClubID]
		if !ok {
			errs = multierr.Append(errs, NewUnknownClubError(item.ID, item.AwayClubID))
			continue
		}

		h, w := row(home), row(away)
		h.Played++
		w.Played++
		h.GoalsFor += item.HomeScore
		h.GoalsAgainst += item.AwayScore
		w.GoalsFor += item.AwayScore
		w.GoalsAgainst += item.HomeScore

		switch {
		case item.HomeScore > item.AwayScore:
			h.Won++
			w.Lost++
		case item.HomeScore < item.AwayScore:
			w.Won++
			h.Lost++
		default:
			h.Drawn++
			w.Drawn++
		}
	}

	out := make(map[string]Row, len(rows))
	for id, r := range rows {
		r.GoalDifference = r.GoalsFor - r.GoalsAgainst
		r.Points = a.rules.points(r.Won, r.Drawn, r.Lost)
		out[id] = *r
	}

	return out, errs
}
