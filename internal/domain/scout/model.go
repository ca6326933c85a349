package scout

import "context"

// Code is one kind of recorded in-match event with its fantasy point weight.
type Code struct {
	Code        string
	Description string
	Points      float64
}

// Table is the reference table keyed by code.
type Table map[string]Code

func NewTable(codes []Code) Table {
	out := make(Table, len(codes))
	for _, c := range codes {
		out[c.Code] = c
	}
	return out
}

// Repository loads the full scout point table.
type Repository interface {
	ListCodes(ctx context.Context) ([]Code, error)
}
