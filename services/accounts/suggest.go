package accounts

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/antzucaro/matchr"
	"go.opentelemetry.io/otel/codes"
)

type Suggestion struct {
	Query      string
	Similarity float64
}

// a suggestion below this similarity is more noise than help
const minSimilarity = 0.6

// SuggestQueries returns up to `limit` of the user's past queries
// ranked by Jaro-Winkler similarity to the current one. The current
// query itself is excluded.
func (s Service) SuggestQueries(ctx context.Context, userId int64, query string, limit int) ([]Suggestion, error) {
	ctx, span := tracer.Start(ctx, "SuggestQueries")
	defer span.End()

	past, err := s.qry.ListSearchQueries(ctx, userId)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read past queries")
		return nil, err
	}

	normalized := strings.ToLower(strings.TrimSpace(query))

	var suggestions []Suggestion
	for _, candidate := range past {
		if strings.ToLower(candidate) == normalized {
			continue
		}
		similarity := matchr.JaroWinkler(normalized, strings.ToLower(candidate), false)
		if similarity < minSimilarity {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Query:      candidate,
			Similarity: similarity,
		})
	}

	slices.SortStableFunc(suggestions, func(a, b Suggestion) int {
		return cmp.Compare(b.Similarity, a.Similarity)
	})
	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions, nil
}
