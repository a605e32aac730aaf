package report

import "fmt"

// RootTitle is the title of the top-level index.
const RootTitle = "Usage Stats"

func formatTitle(format string) string {
	return fmt.Sprintf("%s Usage Stats", format)
}

func yearTitle(format, year string) string {
	return fmt.Sprintf("%s %s Usage Stats", format, year)
}

func monthTitle(format, year, month string) string {
	return fmt.Sprintf("%s %s/%s Usage Stats", format, year, month)
}

func dayTitle(format, year, month, day string) string {
	return fmt.Sprintf("%s %s/%s/%s Usage Stats", format, year, month, day)
}

func monthSpeciesTitle(format, year, month, species string) string {
	return fmt.Sprintf("%s %s/%s %s Usage Stats", format, year, month, species)
}

func daySpeciesTitle(format, year, month, day, species string) string {
	return fmt.Sprintf("%s %s/%s/%s %s Usage Stats", format, year, month, day, species)
}
