package expense

import "time"

const undatedLabel = "Undated"

type Group struct {
	Label   string   `json:"label"`
	Total   float64  `json:"total"`
	Records []Record `json:"records"`
}

// GroupByRecency labels records "Today", "Yesterday" or by month and year,
// keeping the input order within and across groups.
func GroupByRecency(records []Record, now time.Time) []Group {
	today := startOfDay(now)
	yesterday := today.AddDate(0, 0, -1)

	return groupBy(records, func(r Record) string {
		date, ok := r.Date()
		if !ok {
			return undatedLabel
		}
		switch day := startOfDay(date); {
		case day.Equal(today):
			return "Today"
		case day.Equal(yesterday):
			return "Yesterday"
		default:
			return date.Format("January 2006")
		}
	})
}

// GroupByDay labels records by calendar day, e.g. "January 2, 2006".
func GroupByDay(records []Record) []Group {
	return groupBy(records, func(r Record) string {
		date, ok := r.Date()
		if !ok {
			return undatedLabel
		}
		return date.Format("January 2, 2006")
	})
}

func groupBy(records []Record, label func(Record) string) []Group {
	index := make(map[string]int)
	groups := make([]Group, 0)
	for _, r := range records {
		l := label(r)
		i, ok := index[l]
		if !ok {
			i = len(groups)
			index[l] = i
			groups = append(groups, Group{Label: l})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	for i := range groups {
		groups[i].Total = Sum(groups[i].Records)
	}
	return groups
}
