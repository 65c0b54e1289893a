package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	saleschanneldomain "github.com/smallbiznis/storefront/internal/saleschannel/domain"
	"github.com/smallbiznis/storefront/pkg/db/option"
)

func (s *Server) CreateSalesChannel(c *gin.Context) {
	var req saleschanneldomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.salesChannelSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateSalesChannel(c *gin.Context) {
	var req saleschanneldomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = c.Param("id")

	resp, err := s.salesChannelSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetSalesChannel(c *gin.Context) {
	resp, err := s.salesChannelSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListSalesChannels(c *gin.Context) {
	var query struct {
		option.Pagination
		Name    string `form:"name"`
		SortBy  string `form:"sort_by"`
		OrderBy string `form:"order_by"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.salesChannelSvc.List(c.Request.Context(), saleschanneldomain.ListRequest{
		Name:    query.Name,
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

func (s *Server) DeleteSalesChannel(c *gin.Context) {
	if err := s.salesChannelSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": c.Param("id")}})
}
