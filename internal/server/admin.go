package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/smallbiznis/kstore/internal/catalog/domain"
)

type createGroupRequest struct {
	Name      string `json:"name"`
	GroupType string `json:"groupType"`
	Image     string `json:"image"`
	Members   string `json:"members"`
}

func (s *Server) CreateGroup(c *gin.Context) {
	var req createGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.catalogSvc.CreateGroup(c.Request.Context(), catalogdomain.CreateGroupRequest{
		Name:        strings.TrimSpace(req.Name),
		GroupType:   strings.TrimSpace(req.GroupType),
		Image:       strings.TrimSpace(req.Image),
		MembersText: req.Members,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateProduct(c *gin.Context) {
	var req catalogdomain.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.catalogSvc.CreateProduct(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateProductRequest struct {
	Title           *string `json:"title"`
	Price           *string `json:"price"`
	SalePrice       *string `json:"salePrice"`
	ReleaseDate     *string `json:"releaseDate"`
	CoverImage      *string `json:"coverImage"`
	PobLabel        *string `json:"pobLabel"`
	IsRandomVersion *bool   `json:"isRandomVersion"`
}

func (s *Server) UpdateProduct(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.catalogSvc.UpdateProduct(c.Request.Context(), catalogdomain.UpdateProductRequest{
		ID:              strings.TrimSpace(c.Param("id")),
		Title:           req.Title,
		Price:           req.Price,
		SalePrice:       req.SalePrice,
		ReleaseDate:     req.ReleaseDate,
		CoverImage:      req.CoverImage,
		PobLabel:        req.PobLabel,
		IsRandomVersion: req.IsRandomVersion,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteProduct(c *gin.Context) {
	if err := s.catalogSvc.DeleteProduct(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
