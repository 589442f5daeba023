package search

import (
	"context"
	"log/slog"
	"pricewise-backend/lib/serpapi"
	"pricewise-backend/lib/telemetry"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = telemetry.Tracer("pricewise.services.search")

type Service struct {
	client serpapi.Client
}

func NewService(client serpapi.Client) Service {
	return Service{client: client}
}

// Search runs the whole pipeline for one request: dispatch the query,
// normalize whatever came back, rank by price. A dispatch failure is
// returned to the caller, listing-level defects never are.
func (s Service) Search(ctx context.Context, query, direction string) ([]Result, error) {
	ctx, span := tracer.Start(ctx, "Search")
	defer span.End()

	span.SetAttributes(
		attribute.String("query", query),
		attribute.String("direction", direction),
	)

	raw, err := s.client.Search(ctx, query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "dispatch failed")
		return nil, err
	}

	results := make([]Result, 0, len(raw))
	for _, item := range raw {
		result, ok := Normalize(item)
		if !ok {
			continue
		}
		results = append(results, result)
	}
	Rank(results, direction)

	slog.DebugContext(
		ctx, "search completed",
		"query", query,
		"raw", len(raw),
		"kept", len(results),
	)
	return results, nil
}
