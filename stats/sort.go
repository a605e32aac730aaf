package stats

import "sort"

// Entry pairs an id with its counts for ordered presentation.
type Entry struct {
	Name  string     `json:"name"`
	Stats UsageCount `json:"stats"`
}

// SortedEntries orders a breakdown by descending usage. Equal usage falls
// back to ascending id so repeated runs render identically.
func SortedEntries(m map[string]*UsageCount) []Entry {
	entries := make([]Entry, 0, len(m))
	for name, c := range m {
		entries = append(entries, Entry{Name: name, Stats: *c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Stats.Usage != entries[j].Stats.Usage {
			return entries[i].Stats.Usage > entries[j].Stats.Usage
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// SortedSpecies is one species with each axis already ordered.
type SortedSpecies struct {
	Usage   int     `json:"usage"`
	Wins    int     `json:"win"`
	Partner []Entry `json:"partner"`
	Against []Entry `json:"against"`
	Item    []Entry `json:"item"`
	Ability []Entry `json:"ability"`
	Nature  []Entry `json:"nature"`
	Move    []Entry `json:"move"`
}

// SpeciesEntry is a named SortedSpecies, the unit handed to species pages.
type SpeciesEntry struct {
	Name  string        `json:"name"`
	Stats SortedSpecies `json:"stats"`
}

// Sort orders every axis of ps.
func (ps *SpeciesStats) Sort() SortedSpecies {
	return SortedSpecies{
		Usage:   ps.Usage,
		Wins:    ps.Wins,
		Partner: SortedEntries(ps.Partner),
		Against: SortedEntries(ps.Against),
		Item:    SortedEntries(ps.Item),
		Ability: SortedEntries(ps.Ability),
		Nature:  SortedEntries(ps.Nature),
		Move:    SortedEntries(ps.Move),
	}
}

// SortedSpeciesEntries returns the species of s by descending usage with
// every axis sorted. Species with zero usage are left out.
func SortedSpeciesEntries(s *Stats) []SpeciesEntry {
	if s == nil {
		return nil
	}
	entries := make([]SpeciesEntry, 0, len(s.Species))
	for name, ps := range s.Species {
		if ps.Usage == 0 {
			continue
		}
		entries = append(entries, SpeciesEntry{Name: name, Stats: ps.Sort()})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Stats.Usage != entries[j].Stats.Usage {
			return entries[i].Stats.Usage > entries[j].Stats.Usage
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}
