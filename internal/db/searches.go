package db

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"barblend/internal/model"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// InsertSearch records a completed search.
func InsertSearch(db *sql.DB, s model.NewHistoryEntry) (int64, error) {
	result, err := db.Exec(
		`INSERT INTO searches (term, mode, outcome, result_count) VALUES (?, ?, ?, ?)`,
		s.Term, s.Mode.String(), s.Outcome, s.ResultCount,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert search: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get search ID: %w", err)
	}
	return id, nil
}

// ListRecentSearches returns the most recent searches, newest first.
func ListRecentSearches(db *sql.DB, limit int) ([]model.HistoryEntry, error) {
	if limit < 1 {
		limit = 20
	}
	rows, err := db.Query(`
		SELECT id, term, mode, outcome, result_count, searched_at
		FROM searches
		ORDER BY searched_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list searches: %w", err)
	}
	defer rows.Close()

	var results []model.HistoryEntry
	for rows.Next() {
		var e model.HistoryEntry
		var mode, searchedAt string
		if err := rows.Scan(&e.ID, &e.Term, &mode, &e.Outcome, &e.ResultCount, &searchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan search row: %w", err)
		}
		e.Mode = model.ParseSearchMode(mode)
		if t, err := time.Parse(time.RFC3339, searchedAt); err == nil {
			e.SearchedAt = t
		}
		results = append(results, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating search rows: %w", err)
	}
	return results, nil
}

// DistinctTerms returns each previously searched term once for the given
// mode, most recently used first. Terms differing only in case are folded
// together under the casing of the latest search.
func DistinctTerms(db *sql.DB, mode model.SearchMode) ([]string, error) {
	rows, err := db.Query(`
		SELECT s.term
		FROM searches s
		JOIN (
			SELECT MAX(id) AS id
			FROM searches
			WHERE mode = ? AND TRIM(term) != ''
			GROUP BY LOWER(term)
		) latest ON latest.id = s.id
		ORDER BY s.searched_at DESC, s.id DESC
	`, mode.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list terms: %w", err)
	}
	defer rows.Close()

	var terms []string
	for rows.Next() {
		var term string
		if err := rows.Scan(&term); err != nil {
			return nil, fmt.Errorf("failed to scan term: %w", err)
		}
		terms = append(terms, term)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating terms: %w", err)
	}
	return terms, nil
}

// MatchTerms ranks past terms against the typed query. An empty query
// returns the terms unchanged; an exact repeat of the query is omitted.
func MatchTerms(query string, terms []string, limit int) []string {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return truncate(terms, limit)
	}

	ranks := fuzzy.RankFindNormalizedFold(trimmed, terms)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance == ranks[j].Distance {
			return ranks[i].OriginalIndex < ranks[j].OriginalIndex
		}
		return ranks[i].Distance < ranks[j].Distance
	})

	matches := make([]string, 0, len(ranks))
	for _, r := range ranks {
		if strings.EqualFold(r.Target, trimmed) {
			continue
		}
		matches = append(matches, r.Target)
	}
	return truncate(matches, limit)
}

// ClearSearches deletes all recorded searches.
func ClearSearches(db *sql.DB) error {
	if _, err := db.Exec(`DELETE FROM searches`); err != nil {
		return fmt.Errorf("failed to clear searches: %w", err)
	}
	return nil
}

func truncate(terms []string, limit int) []string {
	if limit > 0 && len(terms) > limit {
		return terms[:limit]
	}
	return terms
}
