package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	collectiondomain "github.com/smallbiznis/storefront/internal/collection/domain"
	"github.com/smallbiznis/storefront/pkg/db/option"
)

func (s *Server) CreateCollection(c *gin.Context) {
	var req collectiondomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.collectionSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateCollection(c *gin.Context) {
	var req collectiondomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = c.Param("id")

	resp, err := s.collectionSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetCollection(c *gin.Context) {
	resp, err := s.collectionSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListCollections(c *gin.Context) {
	var query struct {
		option.Pagination
		Title   string `form:"title"`
		Handle  string `form:"handle"`
		SortBy  string `form:"sort_by"`
		OrderBy string `form:"order_by"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.collectionSvc.List(c.Request.Context(), collectiondomain.ListRequest{
		Title:   query.Title,
		Handle:  query.Handle,
		SortBy:  query.SortBy,
		OrderBy: query.OrderBy,
		Page:    query.Page,
		Limit:   query.Limit,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteCollections(c *gin.Context) {
	var req deleteRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.IDs) == 0 {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.collectionSvc.Delete(c.Request.Context(), req.IDs); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": req.IDs}})
}

type collectionProductsRequest struct {
	ProductIDs []string `json:"product_ids"`
}

func (s *Server) LinkCollectionProducts(c *gin.Context) {
	var req collectionProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.ProductIDs) == 0 {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.collectionSvc.LinkProducts(c.Request.Context(), c.Param("id"), req.ProductIDs); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"linked": req.ProductIDs}})
}

func (s *Server) UnlinkCollectionProducts(c *gin.Context) {
	var req collectionProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.ProductIDs) == 0 {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.collectionSvc.UnlinkProducts(c.Request.Context(), c.Param("id"), req.ProductIDs); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"unlinked": req.ProductIDs}})
}
