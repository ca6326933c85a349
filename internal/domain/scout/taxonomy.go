package scout

import "github.com/riskibarqy/scouting-panel/internal/domain/kpi"

type Category string

const (
	CategoryOffensive Category = "offensive"
	CategoryDefensive Category = "defensive"
	CategoryNegative  Category = "negative"
)

// Curated display order per category. A code appears in exactly one list.
var (
	OffensiveCodes = []string{"G", "A", "FT", "FD", "FF", "FS", "PS"}
	DefensiveCodes = []string{"DS", "SG", "DE", "DP"}
	NegativeCodes  = []string{"FC", "PC", "CA", "CV", "GC", "GS", "I", "PP"}
)

// Entry is a scout code resolved against the reference table.
type Entry struct {
	FieldKey    string
	Code        string
	Description string
	Points      float64
}

// Groups holds the three categories in display order.
type Groups struct {
	Offensive []Entry
	Defensive []Entry
	Negative  []Entry
}

// Section pairs a category with its title and entries.
type Section struct {
	Category Category
	Title    string
	Entries  []Entry
}

// Sections returns Offensive, Defensive, Negative in that order.
func (g Groups) Sections() []Section {
	return []Section{
		{Category: CategoryOffensive, Title: "Offensive", Entries: g.Offensive},
		{Category: CategoryDefensive, Title: "Defensive", Entries: g.Defensive},
		{Category: CategoryNegative, Title: "Negative", Entries: g.Negative},
	}
}

// GroupScouts partitions the reference table into the curated categories.
// Codes missing from the table are skipped.
func GroupScouts(table Table) Groups {
	return Groups{
		Offensive: resolve(table, OffensiveCodes),
		Defensive: resolve(table, DefensiveCodes),
		Negative:  resolve(table, NegativeCodes),
	}
}

func resolve(table Table, order []string) []Entry {
	out := make([]Entry, 0, len(order))
	for _, code := range order {
		ref, ok := table[code]
		if !ok {
			continue
		}
		out = append(out, Entry{
			FieldKey:    kpi.ScoutFieldKey(code),
			Code:        code,
			Description: ref.Description,
			Points:      ref.Points,
		})
	}
	return out
}
