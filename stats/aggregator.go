package stats

import (
	"context"

	"github.com/MrSableye/showdown-log-parser/battlelog"
)

// Aggregate folds match records into a fresh Stats. Both sides of every
// record are applied, so a match contributes two teams. Record order does
// not affect the result.
func Aggregate(records []battlelog.MatchRecord) *Stats {
	s := New()
	for _, r := range records {
		s.applyTeam(r.Player1Team, r.Player2Team, ToID(r.Winner) == ToID(r.Player1))
		s.applyTeam(r.Player2Team, r.Player1Team, ToID(r.Winner) == ToID(r.Player2))
	}
	return s
}

// AggregateWindow fetches the records of w from source and aggregates them.
// It fails only when the source does.
func AggregateWindow(ctx context.Context, source battlelog.Source, w battlelog.Window) (*Stats, error) {
	records, err := source.FetchRecords(ctx, w)
	if err != nil {
		return nil, err
	}
	return Aggregate(records), nil
}

// applyTeam counts one side of a match. An empty team still counts as a team.
func (s *Stats) applyTeam(team, opposing []battlelog.Entry, won bool) {
	s.TotalTeams++

	teamIDs := uniqueSpecies(team)
	againstIDs := uniqueSpecies(opposing)

	for _, set := range team {
		speciesID := ToID(set.Species)
		ps, ok := s.Species[speciesID]
		if !ok {
			ps = newSpeciesStats()
			s.Species[speciesID] = ps
		}

		ps.Usage++
		if won {
			ps.Wins++
		}

		for _, partnerID := range teamIDs {
			if partnerID == speciesID {
				continue
			}
			increment(ps.Partner, partnerID, won)
		}
		for _, againstID := range againstIDs {
			increment(ps.Against, againstID, won)
		}

		increment(ps.Item, ToID(set.Item), won)
		increment(ps.Ability, ToID(set.Ability), won)
		increment(ps.Nature, ToID(set.Nature), won)

		// Repeated moves within one set are counted per occurrence.
		for _, move := range set.Moves {
			increment(ps.Move, ToID(move), won)
		}
	}
}

// uniqueSpecies returns the normalized species ids of a team, each once.
func uniqueSpecies(team []battlelog.Entry) []string {
	seen := make(map[string]bool, len(team))
	ids := make([]string, 0, len(team))
	for _, set := range team {
		id := ToID(set.Species)
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

func increment(m map[string]*UsageCount, id string, won bool) {
	c, ok := m[id]
	if !ok {
		c = &UsageCount{}
		m[id] = c
	}
	c.Usage++
	if won {
		c.Wins++
	}
}
