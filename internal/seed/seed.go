// Package seed fills an empty store with a small demo catalog for local
// development.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	catalogdomain "github.com/smallbiznis/kstore/internal/catalog/domain"
	"github.com/smallbiznis/kstore/internal/clock"
	"go.uber.org/zap"
)

type demoGroup struct {
	name      string
	groupType string
	members   string
	products  []catalogdomain.CreateProductRequest
}

func demoCatalog(now time.Time) []demoGroup {
	upcoming := now.AddDate(0, 1, 0).Format(clock.DateLayout)
	released := now.AddDate(0, -2, 0).Format(clock.DateLayout)

	return []demoGroup{
		{
			name:      "IVE",
			groupType: "girl",
			members:   "Yujin\nGaeul\nRei\nWonyoung\nLiz\nLeeseo",
			products: []catalogdomain.CreateProductRequest{
				{Title: "IVE SWITCH", MainType: "album", MediaType: "CD", Price: "169,95", ReleaseDate: released, VersionTotal: "3", VersionNames: []string{"Spotlight", "Highlight", ""}, POB: true, PobLabel: "Photocard"},
				{Title: "IVE SWITCH (Digipack)", BaseProductID: "bp_ive_ive-switch", MainType: "album", MediaType: "CD", Price: "99,95", SalePrice: "79,95", ReleaseDate: released, Digipack: true, IsRandomVersion: true, VersionTotal: "6"},
				{Title: "Official Lightstick", MainType: "merch", MerchSubType: "lightstick", Price: "449"},
			},
		},
		{
			name:      "ATEEZ",
			groupType: "boy",
			members:   "Hongjoong\nSeonghwa\nYunho\nYeosang\nSan\nMingi\nWooyoung\nJongho",
			products: []catalogdomain.CreateProductRequest{
				{Title: "GOLDEN HOUR : Part.3", MainType: "album", MediaType: "CD", Price: "179,95", ReleaseDate: upcoming, PreOrder: true, VersionTotal: "2"},
				{Title: "GOLDEN HOUR : Part.3 (Vinyl)", MainType: "album", MediaType: "Vinyl", Price: "349", ReleaseDate: upcoming},
				{Title: "Tour Hoodie", MainType: "merch", MerchSubType: "clothes", Price: "499", VersionTotal: "3", VersionNames: []string{"S", "M", "L"}},
			},
		},
		{
			name:      "Stray Kids",
			groupType: "boy",
			members:   "Bang Chan\nLee Know\nChangbin\nHyunjin\nHan\nFelix\nSeungmin\nI.N",
			products: []catalogdomain.CreateProductRequest{
				{Title: "ATE", MainType: "album", MediaType: "CD", Price: "189,95", SalePrice: "149,95", ReleaseDate: released, VersionTotal: "2"},
				{Title: "SKZOO Keyring", MainType: "merch", MerchSubType: "other", Price: "129"},
			},
		},
		{
			name:      "KISS OF LIFE",
			groupType: "girl",
			members:   "Julie\nNatty\nBelle\nHaneul",
			products: []catalogdomain.CreateProductRequest{
				{Title: "Lose Yourself", MainType: "album", MediaType: "Digital", Price: "129,95", ReleaseDate: released, DigitalEdition: true},
			},
		},
	}
}

// EnsureDemoCatalog writes the demo groups and products through the catalog
// service. A store that already holds groups is left alone.
func EnsureDemoCatalog(ctx context.Context, svc catalogdomain.Service, log *zap.Logger) error {
	if svc == nil {
		return errors.New("seed catalog service is required")
	}
	snap, err := svc.Snapshot(ctx)
	if err != nil {
		return err
	}
	if len(snap.Groups) > 0 {
		return nil
	}

	products := 0
	for _, demo := range demoCatalog(time.Now().UTC()) {
		group, err := svc.CreateGroup(ctx, catalogdomain.CreateGroupRequest{
			Name:        demo.name,
			GroupType:   demo.groupType,
			MembersText: demo.members,
		})
		if err != nil {
			return fmt.Errorf("seed group %s: %w", demo.name, err)
		}
		for _, req := range demo.products {
			req.GroupID = group.ID
			if _, err := svc.CreateProduct(ctx, req); err != nil {
				return fmt.Errorf("seed product %s: %w", req.Title, err)
			}
			products++
		}
	}

	log.Info("seeded demo catalog", zap.Int("products", products))
	return nil
}
