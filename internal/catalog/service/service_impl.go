package service

import (
	"context"
	"strings"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/kstore/internal/cache"
	"github.com/smallbiznis/kstore/internal/catalog/domain"
	"github.com/smallbiznis/kstore/internal/clock"
	"github.com/smallbiznis/kstore/internal/config"
	"github.com/smallbiznis/kstore/internal/observability/metrics"
	"github.com/smallbiznis/kstore/internal/shelf"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/atomic"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Repo       domain.Repository
	Clock      clock.Clock
	Cache      cache.SnapshotCache
	Storefront *config.StorefrontHolder
	Metrics    *metrics.Metrics `optional:"true"`
	// Source overrides the shuffle source; tests pass a seeded one.
	Source shelf.Source `optional:"true"`
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	repo       domain.Repository
	clock      clock.Clock
	cache      cache.SnapshotCache
	storefront *config.StorefrontHolder
	metrics    *metrics.Metrics
	source     shelf.Source
	tracer     trace.Tracer

	// generation is bumped by every write. A load that observes a change
	// while it was fetching does not cache its result.
	generation atomic.Uint64
}

func New(p Params) domain.Service {
	s := &Service{
		db:         p.DB,
		log:        p.Log.Named("catalog.service"),
		genID:      p.GenID,
		repo:       p.Repo,
		clock:      p.Clock,
		cache:      p.Cache,
		storefront: p.Storefront,
		metrics:    p.Metrics,
		tracer:     otel.Tracer("kstore/catalog"),
	}
	if p.Source != nil {
		s.source = &lockedSource{src: p.Source}
	}
	return s
}

// shuffleSource returns the injected source, or a fresh one per call so
// shelf order differs between page views.
func (s *Service) shuffleSource() shelf.Source {
	if s.source != nil {
		return s.source
	}
	return shelf.NewRandomSource()
}

type lockedSource struct {
	mu  sync.Mutex
	src shelf.Source
}

func (l *lockedSource) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.IntN(n)
}

// Snapshot returns the catalog as of today, from cache when possible.
func (s *Service) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	today := clock.Today(s.clock)
	if snap, ok := s.cache.Get(ctx, today); ok {
		s.metrics.RecordSnapshotLoad(metrics.SourceCache)
		return snap, nil
	}

	gen := s.generation.Load()
	snap, err := s.load(ctx, today)
	if err != nil {
		return nil, err
	}
	snap.Generation = gen
	s.metrics.RecordSnapshotLoad(metrics.SourceStore)

	if s.generation.Load() != gen {
		s.log.Debug("snapshot superseded by a write, not caching",
			zap.Uint64("generation", gen),
		)
		return snap, nil
	}
	s.cache.Set(ctx, today, snap)
	return snap, nil
}

func (s *Service) load(ctx context.Context, today string) (*domain.Snapshot, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.load_snapshot")
	defer span.End()

	var products, groups, members, relations, baseMeta []domain.Document
	g, gctx := errgroup.WithContext(ctx)
	fetch := func(collection string, dst *[]domain.Document) {
		g.Go(func() error {
			docs, err := s.repo.List(gctx, s.db, collection)
			if err != nil {
				return err
			}
			*dst = docs
			return nil
		})
	}
	fetch(domain.CollectionProducts, &products)
	fetch(domain.CollectionGroups, &groups)
	fetch(domain.CollectionMembers, &members)
	fetch(domain.CollectionRelations, &relations)
	fetch(domain.CollectionBaseMeta, &baseMeta)
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load failed")
		s.log.Error("failed to load catalog", zap.Error(err))
		return nil, err
	}

	snap := &domain.Snapshot{
		Today:     today,
		Groups:    make([]domain.Group, 0, len(groups)),
		Members:   make([]domain.Member, 0, len(members)),
		Products:  make([]domain.Product, 0, len(products)),
		Relations: make(map[string][]string),
		BaseMeta:  make(map[string]domain.BaseMeta, len(baseMeta)),
	}

	byID := make(map[string]domain.Group, len(groups))
	for _, doc := range groups {
		group := decodeGroup(doc)
		byID[group.ID] = group
		snap.Groups = append(snap.Groups, group)
	}
	for _, doc := range members {
		snap.Members = append(snap.Members, decodeMember(doc))
	}

	currency := s.storefront.Get().Currency
	for _, doc := range products {
		snap.Products = append(snap.Products, decodeProduct(doc, byID, today, currency))
	}
	sortNewestFirst(snap.Products)

	for _, doc := range relations {
		base, productID, ok := splitRelationKey(doc.Key)
		if !ok || strings.TrimSpace(string(doc.Body)) != "true" {
			continue
		}
		snap.Relations[base] = append(snap.Relations[base], productID)
	}
	for _, doc := range baseMeta {
		snap.BaseMeta[doc.Key] = decodeBaseMeta(doc)
	}

	span.SetAttributes(
		attribute.Int("catalog.products", len(snap.Products)),
		attribute.Int("catalog.groups", len(snap.Groups)),
	)
	return snap, nil
}

// invalidate must run after every write.
func (s *Service) invalidate(ctx context.Context) {
	s.generation.Inc()
	s.cache.Invalidate(ctx)
}

func relationKey(baseProductID, productID string) string {
	return baseProductID + "/" + productID
}

func splitRelationKey(key string) (string, string, bool) {
	i := strings.LastIndex(key, "/")
	if i <= 0 || i == len(key)-1 {
		return "", "", false
	}
	return key[:i], key[i+1:], true
}
