package server

import (
	"net/http"
	"strings"

	checkoutconfigdomain "github.com/elzapay/elza/internal/checkoutconfig/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) CreateCheckoutConfig(c *gin.Context) {
	var req checkoutconfigdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.checkoutConfigSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListCheckoutConfigs(c *gin.Context) {
	resp, err := s.checkoutConfigSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetCheckoutConfig(c *gin.Context) {
	resp, err := s.checkoutConfigSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateCheckoutConfig(c *gin.Context) {
	var req checkoutconfigdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	resp, err := s.checkoutConfigSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteCheckoutConfig(c *gin.Context) {
	if err := s.checkoutConfigSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) CheckSlugAvailability(c *gin.Context) {
	var query struct {
		Slug      string `form:"slug"`
		ExcludeID string `form:"exclude_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	available, err := s.checkoutConfigSvc.SlugAvailable(
		c.Request.Context(),
		strings.TrimSpace(query.Slug),
		strings.TrimSpace(query.ExcludeID),
	)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"available": available}})
}
