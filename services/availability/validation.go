package availability

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"carenow/models"
)

const (
	minSlotMinutes  = 30
	maxSlotMinutes  = 4 * 60
	maxDailyMinutes = 12 * 60
)

// WorkingHoursError describes a rejected weekly schedule.
type WorkingHoursError struct {
	Day     string
	Message string
}

func (e *WorkingHoursError) Error() string {
	if e.Day == "" {
		return fmt.Sprintf("working hours: %s", e.Message)
	}
	return fmt.Sprintf("working hours (%s): %s", e.Day, e.Message)
}

var validDays = func() map[string]bool {
	m := make(map[string]bool, len(models.WeekDays))
	for _, d := range models.WeekDays {
		m[d] = true
	}
	return m
}()

// parseSlot parses "HH:MM-HH:MM" into start/end minutes from midnight.
func parseSlot(slot string) (start, end int, err error) {
	parts := strings.Split(slot, "-")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("slot %q is not in HH:MM-HH:MM form", slot)
	}
	start, err = parseClock(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("slot %q: %w", slot, err)
	}
	end, err = parseClock(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("slot %q: %w", slot, err)
	}
	return start, end, nil
}

func parseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return h*60 + m, nil
}

// ValidateWorkingHours checks a weekly schedule: known day names, well-formed
// slots (start<end, 30 minutes to 4 hours), no overlaps within a day, at most
// 12 working hours per day, and at least one working day in the week.
func ValidateWorkingHours(hours map[string][]string) error {
	workingDays := 0

	for day, slots := range hours {
		if !validDays[day] {
			return &WorkingHoursError{Day: day, Message: "unknown day name"}
		}
		if len(slots) == 0 {
			continue
		}
		workingDays++

		type interval struct{ start, end int }
		intervals := make([]interval, 0, len(slots))
		dailyMinutes := 0

		for _, slot := range slots {
			start, end, err := parseSlot(slot)
			if err != nil {
				return &WorkingHoursError{Day: day, Message: err.Error()}
			}
			if start >= end {
				return &WorkingHoursError{Day: day, Message: fmt.Sprintf("slot %q must start before it ends", slot)}
			}
			duration := end - start
			if duration < minSlotMinutes {
				return &WorkingHoursError{Day: day, Message: fmt.Sprintf("slot %q is shorter than 30 minutes", slot)}
			}
			if duration > maxSlotMinutes {
				return &WorkingHoursError{Day: day, Message: fmt.Sprintf("slot %q is longer than 4 hours", slot)}
			}
			dailyMinutes += duration
			intervals = append(intervals, interval{start, end})
		}

		if dailyMinutes > maxDailyMinutes {
			return &WorkingHoursError{Day: day, Message: "total working time exceeds 12 hours"}
		}

		sort.Slice(intervals, func(i, j int) bool { return intervals[i].start < intervals[j].start })
		for i := 1; i < len(intervals); i++ {
			if intervals[i].start < intervals[i-1].end {
				return &WorkingHoursError{Day: day, Message: "slots overlap"}
			}
		}
	}

	if workingDays == 0 {
		return &WorkingHoursError{Message: "at least one working day is required"}
	}
	return nil
}
