package service

import (
	"context"
	"strings"
	"time"

	"github.com/smallbiznis/kstore/internal/catalog/domain"
	"github.com/smallbiznis/kstore/internal/filter"
	"github.com/smallbiznis/kstore/internal/observability/metrics"
	"github.com/smallbiznis/kstore/internal/search"
	"github.com/smallbiznis/kstore/internal/shelf"
)

func (s *Service) shelfOptions(snap *domain.Snapshot, limit int) shelf.Options {
	return shelf.Options{
		Today:          snap.Today,
		FeaturedGroups: s.storefront.Get().FeaturedGroups,
		Source:         s.shuffleSource(),
		Limit:          limit,
	}
}

func (s *Service) Home(ctx context.Context) ([]domain.ShelfRow, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	rows := shelf.Homepage(snap.Products, s.shelfOptions(snap, s.storefront.Get().HomepageLimit))
	out := make([]domain.ShelfRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.ShelfRow{
			Key:   string(row.Key),
			Slug:  row.Slug,
			Title: row.Title,
			Items: nonNil(row.Items),
		})
	}
	return out, nil
}

func (s *Service) Category(ctx context.Context, slug string, visible int) (*domain.CategoryPage, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	slug = strings.TrimSpace(slug)
	title := shelf.DefaultTitle
	if key, ok := shelf.FromSlug(slug); ok {
		title = shelf.Title(key)
	}
	items := shelf.BySlug(snap.Products, slug, s.shelfOptions(snap, 0))
	window, info := s.window(items, visible)

	return &domain.CategoryPage{
		Slug:     slug,
		Title:    title,
		Items:    window,
		PageInfo: info,
	}, nil
}

func (s *Service) Artist(ctx context.Context, slug string, req domain.ListingRequest) (*domain.ArtistPage, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	group, ok := snap.GroupBySlug(slug)
	if !ok {
		window, info := s.window(nil, req.Visible)
		return &domain.ArtistPage{Members: []string{}, Items: window, PageInfo: info}, nil
	}

	members := []string{}
	for _, m := range snap.Members {
		if m.GroupID == group.ID && m.Name != "" {
			members = append(members, m.Name)
		}
	}

	var products []domain.Product
	for _, p := range snap.Products {
		if p.ArtistGroupID == group.ID || (p.ArtistGroupID == "" && p.ArtistSlug == group.Slug) {
			products = append(products, p)
		}
	}
	items := filter.Apply(products, filter.Query{
		Search:  req.Query,
		Type:    filter.ParseType(req.Type),
		General: filter.ParseGeneral(req.General),
		Member:  strings.TrimSpace(req.Member),
	})
	window, info := s.window(items, req.Visible)

	return &domain.ArtistPage{
		Group:    &group,
		Members:  members,
		Items:    window,
		PageInfo: info,
	}, nil
}

func (s *Service) Search(ctx context.Context, req domain.ListingRequest) (*domain.SearchPage, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	query := strings.TrimSpace(req.Query)
	res := search.Search(snap.Products, filter.Query{
		Search:  query,
		Type:    filter.ParseType(req.Type),
		General: filter.ParseGeneral(req.General),
	})
	if query != "" {
		outcome := metrics.SearchMiss
		switch {
		case len(res.Items) > 0:
			outcome = metrics.SearchHit
		case len(res.Suggestions) > 0:
			outcome = metrics.SearchSuggested
		}
		s.metrics.RecordSearch(outcome, time.Since(start))
	}

	window, info := s.window(res.Items, req.Visible)
	return &domain.SearchPage{
		Query:       query,
		Items:       window,
		Suggestions: res.Suggestions,
		PageInfo:    info,
	}, nil
}

// window cuts the reveal prefix. A non-positive visible count means the
// first page.
func (s *Service) window(items []domain.Product, visible int) ([]domain.Product, domain.PageInfo) {
	reveal := filter.NewReveal(s.storefront.Get().PageStep)
	if visible > 0 {
		reveal.Visible = visible
	}
	out, more := filter.Window(nonNil(items), reveal.Visible)
	return out, domain.PageInfo{Visible: reveal.Visible, Total: len(items), HasMore: more}
}

func nonNil(items []domain.Product) []domain.Product {
	if items == nil {
		return []domain.Product{}
	}
	return items
}
