package domain

import "fmt"

// ValidateSeat checks a (row, seat) tuple against the airplane seat grid.
func ValidateSeat(row, seat int, airplane Airplane) error {
	verr := &ValidationError{}
	checks := []struct {
		value    int
		field    string
		gridName string
		limit    int
	}{
		{row, "row", "rows", airplane.Rows},
		{seat, "seat", "seats_in_row", airplane.SeatsInRow},
	}
	for _, c := range checks {
		if c.value < 1 || c.value > c.limit {
			verr.Add(c.field, fmt.Sprintf("%s number must be in available range: (1, %s): (1, %d)", c.field, c.gridName, c.limit))
		}
	}
	return verr.OrNil()
}
