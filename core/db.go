package core

import "strings"

type DBOrdering struct {
	Field     string
	Ascending bool
}

func (ord DBOrdering) String() string {
	direction := "DESC"
	if ord.Ascending {
		direction = "ASC"
	}
	return ord.Field + " " + direction
}

// ParseOrdering parses comma separated fields, a leading "-" meaning descending order.
func ParseOrdering(val string) []DBOrdering {
	var orderings []DBOrdering
	for _, field := range strings.Split(val, ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		if field == "" {
			continue
		}
		orderings = append(orderings, DBOrdering{Field: field, Ascending: !descending})
	}
	return orderings
}

// AllowedOrdering drops the orderings whose field is not in allowed, mapping each kept
// field to its column name. Fallback is returned when nothing is left.
func AllowedOrdering(orderings []DBOrdering, allowed map[string]string, fallback ...DBOrdering) []DBOrdering {
	kept := make([]DBOrdering, 0, len(orderings))
	for _, ord := range orderings {
		if col, ok := allowed[ord.Field]; ok {
			kept = append(kept, DBOrdering{Field: col, Ascending: ord.Ascending})
		}
	}
	if len(kept) == 0 {
		return fallback
	}
	return kept
}
