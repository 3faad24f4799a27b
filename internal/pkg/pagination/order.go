package pagination

import "fmt"

// OrderClauses maps sort fields onto SQL ORDER BY terms using the allowed
// field-to-column table. Unknown fields are rejected.
func OrderClauses(sort []SortField, columns map[string]string) ([]string, error) {
	clauses := make([]string, 0, len(sort))
	for _, s := range sort {
		col, ok := columns[s.Field]
		if !ok {
			return nil, fmt.Errorf("cannot sort by %q", s.Field)
		}
		dir := "DESC"
		if s.Direction == Asc {
			dir = "ASC"
		}
		clauses = append(clauses, col+" "+dir)
	}
	return clauses, nil
}
