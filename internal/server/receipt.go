package server

import (
	"net/http"
	"strings"

	"github.com/elzapay/elza/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

func (s *Server) ListReceipts(c *gin.Context) {
	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.receiptSvc.List(c.Request.Context(), page)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      resp.Receipts,
		"page_info": resp.PageInfo,
	})
}

func (s *Server) GetReceipt(c *gin.Context) {
	resp, err := s.receiptSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
