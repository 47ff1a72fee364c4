package services

import (
	"fmt"
	"strings"

	"gachabot/domain/entities"
)

// SearchItems resolves a user-typed query against a pool in three passes:
// exact name, case-insensitive name, then case-insensitive prefix. The first
// pass with any hit wins, so an exact name is never reported as ambiguous
// because a longer name shares its prefix.
func SearchItems(pool []*entities.Item, query string) []*entities.Item {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	for _, item := range pool {
		if item.Name == query {
			return []*entities.Item{item}
		}
	}

	lower := strings.ToLower(query)
	var folded, prefixed []*entities.Item
	for _, item := range pool {
		name := strings.ToLower(item.Name)
		if name == lower {
			folded = append(folded, item)
		} else if strings.HasPrefix(name, lower) {
			prefixed = append(prefixed, item)
		}
	}
	if len(folded) > 0 {
		return folded
	}
	return prefixed
}

// resolveItem turns a search into exactly one item or a typed error.
func resolveItem(pool []*entities.Item, query string) (*entities.Item, error) {
	matches := SearchItems(pool, query)
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("item %q: %w", query, entities.ErrNotFound)
	case 1:
		return matches[0], nil
	}

	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.Name
	}
	return nil, &entities.AmbiguousReferenceError{Query: query, Matches: names}
}
