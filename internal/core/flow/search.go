package flow

import (
	"context"
	"log/slog"
	"strings"

	"github.com/agenthands/patientdesk/internal/core/render"
)

type Searches struct {
	backend RecordSearcher
	log     *slog.Logger
}

func NewSearches(backend RecordSearcher, log *slog.Logger) *Searches {
	return &Searches{backend: backend, log: orDefault(log)}
}

// Search trims the query and, unless it is blank, renders the backend's
// ranked results.
func (s *Searches) Search(ctx context.Context, rawQuery string) (*SearchView, error) {
	const name = "search"
	query := strings.TrimSpace(rawQuery)
	view := &SearchView{Query: query}
	if query == "" {
		invalid(ctx, s.log, name, ErrEmptyQuery)
		view.alert(ErrEmptyQuery.Message)
		return view, ErrEmptyQuery
	}

	results, err := s.backend.Search(ctx, query)
	if err != nil {
		fail(ctx, s.log, name, err, "query", query)
		view.alert(AlertSearch)
		return view, err
	}

	view.Count = len(results)
	view.Results, err = render.SearchResults(results)
	if err != nil {
		fail(ctx, s.log, name, err)
		view.alert(AlertRender)
		return view, err
	}
	succeed(name)
	return view, nil
}
