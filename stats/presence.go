package stats

// Present reports whether the window behind s processed at least one team.
func (s *Stats) Present() bool {
	return s != nil && s.TotalTeams > 0
}

// AnyPresent reports whether at least one child window is present. A month
// is present when one of its days is, a year when one of its months is, and
// so on up to the root.
func AnyPresent(children ...bool) bool {
	for _, present := range children {
		if present {
			return true
		}
	}
	return false
}

// PresentLabels returns the labels whose flag is set, keeping their order.
func PresentLabels(labels []string, present []bool) []string {
	var out []string
	for i, label := range labels {
		if i < len(present) && present[i] {
			out = append(out, label)
		}
	}
	return out
}
