package domain

import (
	"context"
	"errors"
	"fmt"
)

type Service interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
	Home(ctx context.Context) ([]ShelfRow, error)
	Category(ctx context.Context, slug string, visible int) (*CategoryPage, error)
	Artist(ctx context.Context, slug string, req ListingRequest) (*ArtistPage, error)
	Search(ctx context.Context, req ListingRequest) (*SearchPage, error)
	Product(ctx context.Context, id string) (*ProductDetail, error)

	CreateGroup(ctx context.Context, req CreateGroupRequest) (*Group, error)
	CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error)
	UpdateProduct(ctx context.Context, req UpdateProductRequest) (*Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// ListingRequest carries the user-chosen search and filter state of a
// listing page. Visible is the reveal window; zero means the first page.
type ListingRequest struct {
	Query   string
	Type    string
	General string
	Member  string
	Visible int
}

type ShelfRow struct {
	Key   string    `json:"key"`
	Slug  string    `json:"slug"`
	Title string    `json:"title"`
	Items []Product `json:"items"`
}

type PageInfo struct {
	Visible int  `json:"visible"`
	Total   int  `json:"total"`
	HasMore bool `json:"has_more"`
}

type CategoryPage struct {
	Slug     string    `json:"slug"`
	Title    string    `json:"title"`
	Items    []Product `json:"items"`
	PageInfo PageInfo  `json:"page_info"`
}

type ArtistPage struct {
	Group    *Group    `json:"group"`
	Members  []string  `json:"members"`
	Items    []Product `json:"items"`
	PageInfo PageInfo  `json:"page_info"`
}

type SearchPage struct {
	Query       string    `json:"query"`
	Items       []Product `json:"items"`
	Suggestions []string  `json:"suggestions"`
	PageInfo    PageInfo  `json:"page_info"`
}

type VersionPills struct {
	Labels   []string `json:"labels"`
	Hidden   int      `json:"hidden"`
	Overflow string   `json:"overflow,omitempty"`
}

type ProductDetail struct {
	Product       Product      `json:"product"`
	Gallery       []string     `json:"gallery"`
	Versions      []Version    `json:"versions"`
	Pills         VersionPills `json:"pills"`
	PurchasePrice string       `json:"purchase_price"`
	Siblings      []Product    `json:"siblings"`
	Similar       []Product    `json:"similar"`
	BaseMeta      *BaseMeta    `json:"base_meta,omitempty"`
}

type CreateGroupRequest struct {
	Name        string `json:"name"`
	GroupType   string `json:"groupType"`
	Image       string `json:"image"`
	MembersText string `json:"members"`
}

type LightstickInput struct {
	Name    string `json:"name"`
	Code    string `json:"code"`
	Details string `json:"details"`
	Image   string `json:"image"`
}

type CreateProductRequest struct {
	GroupID       string `json:"groupId"`
	Title         string `json:"title"`
	BaseProductID string `json:"baseProductId"`
	MainType      string `json:"mainType"`
	MerchSubType  string `json:"merchSubType"`
	MediaType     string `json:"mediaType"`
	Price         string `json:"price"`
	SalePrice     string `json:"salePrice"`
	ReleaseDate   string `json:"releaseDate"`
	CoverImage    string `json:"coverImage"`
	GalleryText   string `json:"gallery"`

	VersionTotal    string          `json:"versionTotal"`
	VersionNames    []string        `json:"versionNames"`
	VersionCodes    []string        `json:"versionCodes"`
	VersionDetails  []string        `json:"versionDetails"`
	VersionImages   []string        `json:"versionImages"`
	Lightstick      LightstickInput `json:"lightstick"`
	IsRandomVersion bool            `json:"isRandomVersion"`

	POB            bool   `json:"pob"`
	PobLabel       string `json:"pobLabel"`
	PreOrder       bool   `json:"preOrder"`
	Digipack       bool   `json:"digipack"`
	DigitalEdition bool   `json:"digitalEdition"`
}

// UpdateProductRequest only covers the fields that are safe to edit after
// creation. Versions and gallery are immutable.
type UpdateProductRequest struct {
	ID              string  `json:"id"`
	Title           *string `json:"title"`
	Price           *string `json:"price"`
	SalePrice       *string `json:"salePrice"`
	ReleaseDate     *string `json:"releaseDate"`
	CoverImage      *string `json:"coverImage"`
	PobLabel        *string `json:"pobLabel"`
	IsRandomVersion *bool   `json:"isRandomVersion"`
}

var (
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidTitle    = errors.New("invalid_title")
	ErrInvalidGroup    = errors.New("invalid_group")
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidMainType = errors.New("invalid_main_type")
	ErrGroupNotFound   = errors.New("group_not_found")
	ErrNotFound        = errors.New("not_found")
	ErrConflict        = errors.New("conflict")
	ErrUnknownShelf    = errors.New("unknown_shelf")
)

// PartialWriteError reports a follow-up write that failed after the primary
// document was stored. The primary document stays in place.
type PartialWriteError struct {
	ID         string
	Collection string
	Err        error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("%s stored but %s write failed: %v", e.ID, e.Collection, e.Err)
}

func (e *PartialWriteError) Unwrap() error {
	return e.Err
}
