package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	attrdomain "github.com/smallbiznis/storefront/internal/attribute/domain"
	"github.com/smallbiznis/storefront/pkg/db/option"
)

func (s *Server) CreateAttributeGroup(c *gin.Context) {
	var req attrdomain.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.attributeSvc.CreateGroup(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetAttributeGroup(c *gin.Context) {
	resp, err := s.attributeSvc.GetGroup(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListAttributeGroups(c *gin.Context) {
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

	resp, err := s.attributeSvc.ListGroups(c.Request.Context(), attrdomain.ListGroupsRequest{
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

func (s *Server) DeleteAttributeGroup(c *gin.Context) {
	if err := s.attributeSvc.DeleteGroup(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": c.Param("id")}})
}

type assignAttributesRequest struct {
	AttributeIDs []string `json:"attribute_ids"`
}

func (s *Server) AssignAttributes(c *gin.Context) {
	var req assignAttributesRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.AttributeIDs) == 0 {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.attributeSvc.AssignAttributes(c.Request.Context(), c.Param("id"), req.AttributeIDs)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UnassignAttributes(c *gin.Context) {
	var req assignAttributesRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.AttributeIDs) == 0 {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.attributeSvc.UnassignAttributes(c.Request.Context(), c.Param("id"), req.AttributeIDs); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"unassigned": req.AttributeIDs}})
}

func (s *Server) CreateAttribute(c *gin.Context) {
	var req attrdomain.CreateAttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.attributeSvc.CreateAttribute(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListAttributes(c *gin.Context) {
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

	resp, err := s.attributeSvc.ListAttributes(c.Request.Context(), attrdomain.ListAttributesRequest{
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
