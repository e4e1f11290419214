package config

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

var scheduleParser = cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Epoch is the wall-clock origin of the simulated clock. Schedules are
// evaluated against Epoch plus the simulated elapsed time.
var Epoch = time.Date(2000, time.January, 3, 0, 0, 0, 0, time.UTC)

// ParseSchedule parses a cron expression with optional seconds or a
// descriptor such as "@every 5s"
func ParseSchedule(expr string) (cron.Schedule, error) {
	if expr == "" {
		return nil, fmt.Errorf("schedule must not be empty")
	}

	schedule, err := scheduleParser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schedule %q: %w", expr, err)
	}

	return schedule, nil
}
