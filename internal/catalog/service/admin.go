package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/kstore/internal/badge"
	"github.com/smallbiznis/kstore/internal/catalog/domain"
	"github.com/smallbiznis/kstore/internal/clock"
	"github.com/smallbiznis/kstore/internal/slugify"
	"github.com/smallbiznis/kstore/internal/version"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type groupDocument struct {
	Name      string  `json:"name"`
	Slug      string  `json:"slug"`
	GroupType string  `json:"groupType"`
	Image     *string `json:"image"`
}

type memberDocument struct {
	Name    string `json:"name"`
	GroupID string `json:"groupId"`
}

type searchAid struct {
	TitleLower  string `json:"titleLower"`
	ArtistLower string `json:"artistLower"`
}

type productDocument struct {
	BaseProductID   string           `json:"baseProductId"`
	Title           string           `json:"title"`
	ArtistGroupID   string           `json:"artistGroupId"`
	GroupType       string           `json:"groupType"`
	MainType        string           `json:"mainType"`
	MerchSubType    string           `json:"merchSubType,omitempty"`
	MediaType       string           `json:"mediaType,omitempty"`
	Price           json.Number      `json:"price"`
	SalePrice       *json.Number     `json:"salePrice"`
	OnSale          bool             `json:"onSale"`
	Currency        string           `json:"currency"`
	Images          domain.Images    `json:"images"`
	Versions        []domain.Version `json:"versions"`
	IsRandomVersion bool             `json:"isRandomVersion"`
	Badges          domain.Badges    `json:"badges"`
	HasPOB          bool             `json:"hasPOB"`
	PobLabel        string           `json:"pobLabel,omitempty"`
	ReleaseDate     string           `json:"releaseDate,omitempty"`
	CreatedAt       int64            `json:"createdAt"`
	Search          searchAid        `json:"search"`
}

type baseMetaDocument struct {
	Title         string   `json:"title"`
	ArtistGroupID string   `json:"artistGroupId"`
	MainType      string   `json:"mainType"`
	VersionTotal  *int     `json:"versionTotal,omitempty"`
	AlbumImages   []string `json:"albumImages,omitempty"`
}

func (s *Service) newDocument(collection, key string, body any) (*domain.Document, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now().UTC()
	return &domain.Document{
		Collection: collection,
		Key:        key,
		Body:       datatypes.JSON(raw),
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

func (s *Service) CreateGroup(ctx context.Context, req domain.CreateGroupRequest) (*domain.Group, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.create_group")
	defer span.End()

	name := strings.TrimSpace(req.Name)
	slug := slugify.Make(name)
	if slug == "" {
		return nil, domain.ErrInvalidName
	}
	groupType := domain.GroupTypeBoy
	if raw := strings.TrimSpace(req.GroupType); raw != "" {
		groupType = parseGroupType(raw, "")
		if groupType == "" {
			return nil, domain.ErrInvalidGroup
		}
	}

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if _, exists := snap.GroupBySlug(slug); exists {
		return nil, domain.ErrConflict
	}

	group := domain.Group{
		ID:        s.genID.Generate().String(),
		Name:      name,
		Slug:      slug,
		GroupType: groupType,
	}
	if image := strings.TrimSpace(req.Image); image != "" {
		group.Image = &image
	}

	doc, err := s.newDocument(domain.CollectionGroups, group.ID, groupDocument{
		Name:      group.Name,
		Slug:      group.Slug,
		GroupType: string(group.GroupType),
		Image:     group.Image,
	})
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, s.db, doc); err != nil {
		return nil, err
	}
	defer s.invalidate(ctx)

	for _, line := range strings.Split(req.MembersText, "\n") {
		memberName := strings.TrimSpace(line)
		if memberName == "" {
			continue
		}
		memberDoc, err := s.newDocument(domain.CollectionMembers, s.genID.Generate().String(), memberDocument{
			Name:    memberName,
			GroupID: group.ID,
		})
		if err == nil {
			err = s.repo.Create(ctx, s.db, memberDoc)
		}
		if err != nil {
			s.log.Warn("member write failed after group was stored",
				zap.String("group_id", group.ID),
				zap.String("member", memberName),
				zap.Error(err),
			)
			s.metrics.RecordWriteFailure(domain.CollectionMembers)
			return &group, &domain.PartialWriteError{ID: group.ID, Collection: domain.CollectionMembers, Err: err}
		}
	}

	span.SetAttributes(attribute.String("group.id", group.ID))
	return &group, nil
}

func (s *Service) CreateProduct(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.create_product")
	defer span.End()

	groupID := strings.TrimSpace(req.GroupID)
	if groupID == "" {
		return nil, domain.ErrInvalidGroup
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, domain.ErrInvalidTitle
	}
	mainType, err := requestedMainType(req.MainType)
	if err != nil {
		return nil, err
	}

	groupDoc, err := s.repo.Get(ctx, s.db, domain.CollectionGroups, groupID)
	if err != nil {
		return nil, err
	}
	if groupDoc == nil {
		return nil, domain.ErrGroupNotFound
	}
	group := decodeGroup(*groupDoc)

	var subType domain.MerchSubType
	var mediaType domain.MediaType
	if mainType == domain.MainTypeMerch {
		subType = parseMerchSubType(req.MerchSubType)
	} else {
		mediaType = parseMediaType(req.MediaType)
	}

	price, _ := parseAmount(req.Price)
	var salePrice *decimal.Decimal
	var storedSale *json.Number
	if d, ok := parseAmount(req.SalePrice); ok {
		salePrice = &d
		n := json.Number(d.String())
		storedSale = &n
	}

	badges := badge.Category(mainType, subType)
	badges[domain.BadgePOB] = req.POB
	badges[domain.BadgePreOrder] = req.PreOrder
	badges[domain.BadgeDigipack] = req.Digipack
	badges[domain.BadgeDigitalEdition] = req.DigitalEdition
	badges[domain.BadgeRandomVer] = req.IsRandomVersion
	badges = badge.ResolveVinyl(badges, string(mediaType))

	baseProductID := strings.TrimSpace(req.BaseProductID)
	if baseProductID == "" {
		baseProductID = fmt.Sprintf("bp_%s_%s", slugify.Make(group.Name), slugify.Make(title))
	}

	versionTotal := version.ParseCount(req.VersionTotal)
	versions := version.Resolve(version.Input{
		MainType:        mainType,
		MerchSubType:    subType,
		IsRandomVersion: req.IsRandomVersion,
		Total:           versionTotal,
		Names:           req.VersionNames,
		Codes:           req.VersionCodes,
		Details:         req.VersionDetails,
		Images:          req.VersionImages,
		Lightstick:      req.Lightstick,
	})

	var cover *string
	if c := strings.TrimSpace(req.CoverImage); c != "" {
		cover = &c
	}
	galleryURLs := []string{}
	for _, line := range strings.Split(req.GalleryText, "\n") {
		if url := strings.TrimSpace(line); url != "" {
			galleryURLs = append(galleryURLs, url)
		}
	}

	id := s.genID.Generate().String()
	body := productDocument{
		BaseProductID:   baseProductID,
		Title:           title,
		ArtistGroupID:   group.ID,
		GroupType:       string(group.GroupType),
		MainType:        string(mainType),
		MerchSubType:    string(subType),
		MediaType:       string(mediaType),
		Price:           json.Number(price.String()),
		SalePrice:       storedSale,
		OnSale:          domain.IsOnSale(price, salePrice),
		Currency:        s.storefront.Get().Currency,
		Images:          domain.Images{Cover: cover, Gallery: galleryURLs},
		Versions:        versions,
		IsRandomVersion: req.IsRandomVersion,
		Badges:          badges,
		HasPOB:          req.POB,
		PobLabel:        strings.TrimSpace(req.PobLabel),
		ReleaseDate:     strings.TrimSpace(req.ReleaseDate),
		CreatedAt:       s.clock.Now().UnixMilli(),
		Search: searchAid{
			TitleLower:  strings.ToLower(title),
			ArtistLower: strings.ToLower(group.Name),
		},
	}
	doc, err := s.newDocument(domain.CollectionProducts, id, body)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, s.db, doc); err != nil {
		return nil, err
	}
	defer s.invalidate(ctx)
	span.SetAttributes(attribute.String("product.id", id))

	product := decodeProduct(*doc, map[string]domain.Group{group.ID: group}, clock.Today(s.clock), s.storefront.Get().Currency)

	if err := s.linkRelation(ctx, baseProductID, id); err != nil {
		return &product, s.partialWrite(id, domain.CollectionRelations, err)
	}
	meta := baseMetaDocument{
		Title:         title,
		ArtistGroupID: group.ID,
		MainType:      string(mainType),
	}
	if mainType == domain.MainTypeAlbum {
		meta.VersionTotal = &versionTotal
		if cover != nil {
			meta.AlbumImages = []string{*cover}
		}
	}
	if err := s.ensureBaseMeta(ctx, baseProductID, meta); err != nil {
		return &product, s.partialWrite(id, domain.CollectionBaseMeta, err)
	}
	return &product, nil
}

func (s *Service) linkRelation(ctx context.Context, baseProductID, productID string) error {
	now := s.clock.Now().UTC()
	return s.repo.Put(ctx, s.db, &domain.Document{
		Collection: domain.CollectionRelations,
		Key:        relationKey(baseProductID, productID),
		Body:       datatypes.JSON("true"),
		CreatedAt:  now,
		UpdatedAt:  now,
	})
}

// ensureBaseMeta writes the family record only once; later variants keep
// the first title.
func (s *Service) ensureBaseMeta(ctx context.Context, baseProductID string, meta baseMetaDocument) error {
	existing, err := s.repo.Get(ctx, s.db, domain.CollectionBaseMeta, baseProductID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	doc, err := s.newDocument(domain.CollectionBaseMeta, baseProductID, meta)
	if err != nil {
		return err
	}
	err = s.repo.Create(ctx, s.db, doc)
	if errors.Is(err, domain.ErrConflict) {
		return nil
	}
	return err
}

func (s *Service) partialWrite(productID, collection string, err error) error {
	s.log.Warn("write failed after product was stored",
		zap.String("product_id", productID),
		zap.String("collection", collection),
		zap.Error(err),
	)
	s.metrics.RecordWriteFailure(collection)
	return &domain.PartialWriteError{ID: productID, Collection: collection, Err: err}
}

func (s *Service) UpdateProduct(ctx context.Context, req domain.UpdateProductRequest) (*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.update_product")
	defer span.End()

	id := strings.TrimSpace(req.ID)
	if id == "" {
		return nil, domain.ErrInvalidID
	}
	doc, err := s.repo.Get(ctx, s.db, domain.CollectionProducts, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}

	body, err := patchProduct(string(doc.Body), req)
	if err != nil {
		return nil, err
	}
	doc.Body = datatypes.JSON(body)
	doc.UpdatedAt = s.clock.Now().UTC()
	if err := s.repo.Put(ctx, s.db, doc); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	groups := map[string]domain.Group{}
	if groupID := gjson.Get(body, "artistGroupId").String(); groupID != "" {
		groupDoc, err := s.repo.Get(ctx, s.db, domain.CollectionGroups, groupID)
		if err != nil {
			return nil, err
		}
		if groupDoc != nil {
			groups[groupID] = decodeGroup(*groupDoc)
		}
	}
	product := decodeProduct(*doc, groups, clock.Today(s.clock), s.storefront.Get().Currency)
	return &product, nil
}

// patchProduct applies the editable subset of req to a stored product body.
func patchProduct(body string, req domain.UpdateProductRequest) (string, error) {
	var err error
	set := func(path string, value any) {
		if err == nil {
			body, err = sjson.Set(body, path, value)
		}
	}
	setRaw := func(path, raw string) {
		if err == nil {
			body, err = sjson.SetRaw(body, path, raw)
		}
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return "", domain.ErrInvalidTitle
		}
		set("title", title)
		set("search.titleLower", strings.ToLower(title))
	}
	if req.Price != nil {
		price, _ := parseAmount(*req.Price)
		setRaw("price", price.String())
	}
	if req.SalePrice != nil {
		if d, ok := parseAmount(*req.SalePrice); ok {
			setRaw("salePrice", d.String())
		} else {
			setRaw("salePrice", "null")
		}
	}
	if req.ReleaseDate != nil {
		set("releaseDate", strings.TrimSpace(*req.ReleaseDate))
	}
	if req.CoverImage != nil {
		if cover := strings.TrimSpace(*req.CoverImage); cover != "" {
			set("images.cover", cover)
		} else {
			setRaw("images.cover", "null")
		}
	}
	if req.PobLabel != nil {
		set("pobLabel", strings.TrimSpace(*req.PobLabel))
	}
	if req.IsRandomVersion != nil {
		set("isRandomVersion", *req.IsRandomVersion)
		set("badges.RANDOM_VER", *req.IsRandomVersion)
	}
	if err != nil {
		return "", err
	}

	parsed := gjson.Parse(body)
	set("onSale", domain.IsOnSale(coercePrice(parsed.Get("price")), coerceSalePrice(parsed.Get("salePrice"))))
	return body, err
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "catalog.delete_product")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return domain.ErrInvalidID
	}
	doc, err := s.repo.Get(ctx, s.db, domain.CollectionProducts, id)
	if err != nil {
		return err
	}
	if doc == nil {
		return domain.ErrNotFound
	}
	if err := s.repo.Delete(ctx, s.db, domain.CollectionProducts, id); err != nil {
		return err
	}
	defer s.invalidate(ctx)

	base := strings.TrimSpace(gjson.GetBytes(doc.Body, "baseProductId").String())
	if base == "" {
		return nil
	}
	s.unlinkRelation(ctx, base, id)
	return nil
}

// unlinkRelation is best effort; a dangling relation is ignored on read.
// The family record goes once no variant is left.
func (s *Service) unlinkRelation(ctx context.Context, base, productID string) {
	log := s.log.With(zap.String("product_id", productID), zap.String("base_product_id", base))
	if err := s.repo.Delete(ctx, s.db, domain.CollectionRelations, relationKey(base, productID)); err != nil {
		log.Warn("relation cleanup failed", zap.Error(err))
		return
	}
	remaining, err := s.repo.ListPrefix(ctx, s.db, domain.CollectionRelations, base+"/")
	if err != nil {
		log.Warn("relation lookup failed", zap.Error(err))
		return
	}
	if len(remaining) > 0 {
		return
	}
	if err := s.repo.Delete(ctx, s.db, domain.CollectionBaseMeta, base); err != nil {
		log.Warn("base meta cleanup failed", zap.Error(err))
	}
}

func requestedMainType(raw string) (domain.MainType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(domain.MainTypeAlbum):
		return domain.MainTypeAlbum, nil
	case string(domain.MainTypeMerch):
		return domain.MainTypeMerch, nil
	default:
		return "", domain.ErrInvalidMainType
	}
}
