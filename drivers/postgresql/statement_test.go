package postgresql

import "testing"

func TestCountPlaceholdersFindsHighestIndex(t *testing.T) {
	cases := map[string]int{
		"SELECT 1":                               0,
		"SELECT * FROM t WHERE a = $1":            1,
		"INSERT INTO t VALUES ($1, $2, $3)":       3,
		"UPDATE t SET a = $2 WHERE id = $1":       2,
		"SELECT * FROM t WHERE a = $10":           10,
	}
	for query, want := range cases {
		if got := countPlaceholders(query); got != want {
			t.Errorf("countPlaceholders(%q) = %d, want %d", query, got, want)
		}
	}
}
