// Package priority translates Linear issue priorities into Todoist task priorities.
//
// Linear uses 0 (none) and 1 (urgent) through 4 (low). Todoist uses 1 (normal)
// through 4 (urgent). Linear's urgent and high both land on Todoist's 4.
package priority

// table maps a Linear priority to a Todoist priority.
var table = map[int]int{
	0: 1,
	4: 2,
	3: 3,
	2: 4,
	1: 4,
}

// Map returns the Todoist priority for the Linear priority p.
// A nil p stays nil. Values outside 0-4 are returned unchanged, since neither
// API bounds its scale contractually.
func Map(p *int) *int {
	if p == nil {
		return nil
	}
	if mapped, ok := table[*p]; ok {
		return &mapped
	}
	v := *p
	return &v
}

// Of returns a pointer to p.
func Of(p int) *int {
	return &p
}
