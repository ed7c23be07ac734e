package server

import (
	"errors"
	"strconv"
	"strings"

	catalogdomain "github.com/smallbiznis/kstore/internal/catalog/domain"
)

// maxVisible bounds the reveal window a client can ask for.
const maxVisible = 10000

func parseOptionalInt(value string) (*int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// parseVisible reads the reveal window. Absent means the first page.
func parseVisible(value string) (int, error) {
	visible, err := parseOptionalInt(value)
	if err != nil {
		return 0, errors.New("invalid_visible")
	}
	if visible == nil {
		return 0, nil
	}
	if *visible < 0 || *visible > maxVisible {
		return 0, errors.New("invalid_visible")
	}
	return *visible, nil
}

type listingQuery struct {
	Query   string `form:"q"`
	Type    string `form:"type"`
	Member  string `form:"member"`
	Filter  string `form:"filter"`
	Visible string `form:"visible"`
}

func (q listingQuery) toRequest() (catalogdomain.ListingRequest, error) {
	visible, err := parseVisible(q.Visible)
	if err != nil {
		return catalogdomain.ListingRequest{}, newValidationError("visible", "invalid_visible", "invalid visible")
	}
	return catalogdomain.ListingRequest{
		Query:   strings.TrimSpace(q.Query),
		Type:    strings.TrimSpace(q.Type),
		General: strings.TrimSpace(q.Filter),
		Member:  strings.TrimSpace(q.Member),
		Visible: visible,
	}, nil
}
