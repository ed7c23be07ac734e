package service

import (
	"context"
	"strings"

	"github.com/smallbiznis/kstore/internal/catalog/domain"
	"github.com/smallbiznis/kstore/internal/shelf"
	"github.com/smallbiznis/kstore/internal/version"
)

const (
	maxSiblings = 8
	maxSimilar  = 8
)

func (s *Service) Product(ctx context.Context, id string) (*domain.ProductDetail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrInvalidID
	}
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	p, ok := snap.ProductByID(id)
	if !ok {
		return nil, domain.ErrNotFound
	}

	versions := version.Selectable(p)
	if versions == nil {
		versions = []domain.Version{}
	}
	layout := version.Truncate(len(versions), s.storefront.Get().PillLimit)
	names := version.Names(versions)

	detail := &domain.ProductDetail{
		Product:  p,
		Gallery:  gallery(p),
		Versions: versions,
		Pills: domain.VersionPills{
			Labels:   names[:layout.Visible],
			Hidden:   layout.Hidden,
			Overflow: layout.Overflow,
		},
		PurchasePrice: purchasePrice(p),
		Siblings:      siblings(snap, p),
		Similar:       s.similar(snap, p),
	}
	if meta, ok := snap.BaseMeta[p.BaseProductID]; ok && p.BaseProductID != "" {
		detail.BaseMeta = &meta
	}
	return detail, nil
}

// gallery lists cover, gallery and version images with blanks and repeats
// removed, first occurrence wins.
func gallery(p domain.Product) []string {
	out := []string{}
	seen := make(map[string]struct{})
	add := func(url string) {
		url = strings.TrimSpace(url)
		if url == "" {
			return
		}
		if _, ok := seen[url]; ok {
			return
		}
		seen[url] = struct{}{}
		out = append(out, url)
	}
	if p.Images.Cover != nil {
		add(*p.Images.Cover)
	}
	for _, url := range p.Images.Gallery {
		add(url)
	}
	for _, v := range p.Versions {
		if v.Image != nil {
			add(*v.Image)
		}
	}
	return out
}

// purchasePrice is what goes in the basket: a positive sale price while on
// sale, else the list price.
func purchasePrice(p domain.Product) string {
	if p.OnSale && p.SalePrice != nil && p.SalePrice.IsPositive() {
		return p.SalePrice.StringFixed(2)
	}
	return p.Price.StringFixed(2)
}

// siblings follows the relation index of p's base family. Ids without a
// product are skipped.
func siblings(snap *domain.Snapshot, p domain.Product) []domain.Product {
	out := []domain.Product{}
	if p.BaseProductID == "" {
		return out
	}
	for _, id := range snap.Relations[p.BaseProductID] {
		if id == p.ID {
			continue
		}
		sibling, ok := snap.ProductByID(id)
		if !ok {
			continue
		}
		out = append(out, sibling)
		if len(out) == maxSiblings {
			break
		}
	}
	return out
}

func (s *Service) similar(snap *domain.Snapshot, p domain.Product) []domain.Product {
	out := []domain.Product{}
	for _, q := range snap.Products {
		if q.ID == p.ID {
			continue
		}
		if p.BaseProductID != "" && q.BaseProductID == p.BaseProductID {
			continue
		}
		sameArtist := p.Artist != "" && strings.EqualFold(q.Artist, p.Artist)
		if sameArtist || q.MainType == p.MainType {
			out = append(out, q)
		}
	}
	shelf.Shuffle(out, s.shuffleSource())
	if len(out) > maxSimilar {
		out = out[:maxSimilar]
	}
	return out
}
