package cmd

import (
	"fmt"

	"github.com/gen2brain/beeep"

	"github.com/MrSableye/showdown-log-parser/internal/logger"
	"github.com/MrSableye/showdown-log-parser/report"
)

func init() {
	beeep.AppName = "showdown-stats"
}

// notifyFinished sends a desktop notification describing a finished run.
func notifyFinished(summary *report.Summary) {
	title, body := notificationText(summary)
	if err := beeep.Notify(title, body, ""); err != nil {
		logger.Debug("desktop notification failed", "error", err)
	}
}

func notificationText(summary *report.Summary) (string, string) {
	if !summary.Present {
		return "Usage stats: nothing generated", "No battle logs matched the requested windows."
	}
	days, months := summary.Pages()
	formats := 0
	for _, f := range summary.Formats {
		if f.Present {
			formats++
		}
	}
	return "Usage stats generated",
		fmt.Sprintf("%d format(s), %d month(s), %d day(s) written.", formats, months, days)
}
