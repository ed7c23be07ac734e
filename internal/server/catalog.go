package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *Server) GetHome(c *gin.Context) {
	rows, err := s.catalogSvc.Home(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rows})
}

func (s *Server) GetCategory(c *gin.Context) {
	visible, err := parseVisible(c.Query("visible"))
	if err != nil {
		AbortWithError(c, newValidationError("visible", "invalid_visible", "invalid visible"))
		return
	}

	resp, err := s.catalogSvc.Category(c.Request.Context(), strings.TrimSpace(c.Param("slug")), visible)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetArtist(c *gin.Context) {
	var query listingQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req, err := query.toRequest()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.catalogSvc.Artist(c.Request.Context(), strings.TrimSpace(c.Param("slug")), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) Search(c *gin.Context) {
	var query listingQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req, err := query.toRequest()
	if err != nil {
		AbortWithError(c, err)
		return
	}
	// Member filtering only exists on artist pages.
	req.Member = ""

	resp, err := s.catalogSvc.Search(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetProductByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.catalogSvc.Product(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
