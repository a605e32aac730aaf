// Package stats folds battle logs into usage and win counts.
package stats

// UsageCount holds how often something was used and how often its team won.
// Wins never exceeds Usage.
type UsageCount struct {
	Usage int `json:"usage"`
	Wins  int `json:"win"`
}

// SpeciesStats holds the counts for one species and its six breakdown axes,
// each keyed by normalized id.
type SpeciesStats struct {
	Usage   int                    `json:"usage"`
	Wins    int                    `json:"win"`
	Partner map[string]*UsageCount `json:"partner"`
	Against map[string]*UsageCount `json:"against"`
	Item    map[string]*UsageCount `json:"item"`
	Ability map[string]*UsageCount `json:"ability"`
	Nature  map[string]*UsageCount `json:"nature"`
	Move    map[string]*UsageCount `json:"move"`
}

func newSpeciesStats() *SpeciesStats {
	return &SpeciesStats{
		Partner: make(map[string]*UsageCount),
		Against: make(map[string]*UsageCount),
		Item:    make(map[string]*UsageCount),
		Ability: make(map[string]*UsageCount),
		Nature:  make(map[string]*UsageCount),
		Move:    make(map[string]*UsageCount),
	}
}

// Stats is the aggregate of one window.
type Stats struct {
	TotalTeams int                      `json:"totalTeams"`
	Species    map[string]*SpeciesStats `json:"pokemonStats"`
}

// New returns an empty aggregate.
func New() *Stats {
	return &Stats{Species: make(map[string]*SpeciesStats)}
}

// UsedSpecies counts the species with non-zero usage.
func (s *Stats) UsedSpecies() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, ps := range s.Species {
		if ps.Usage > 0 {
			n++
		}
	}
	return n
}
