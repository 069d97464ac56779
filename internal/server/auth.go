package server

import (
	"net/http"
	"strings"

	merchantdomain "github.com/elzapay/elza/internal/merchant/domain"
	"github.com/elzapay/elza/internal/merchantctx"
	"github.com/gin-gonic/gin"
)

type connectWalletRequest struct {
	WalletAddress string `json:"wallet_address"`
}

// ConnectWallet signs a wallet in and returns a bearer token. The
// merchant account is created on first connect.
func (s *Server) ConnectWallet(c *gin.Context) {
	var req connectWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	session, err := s.authSvc.Connect(c.Request.Context(), strings.TrimSpace(req.WalletAddress))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": session})
}

func (s *Server) GetProfile(c *gin.Context) {
	merchantID, ok := merchantctx.MerchantIDFromContext(c.Request.Context())
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	profile, err := s.merchantSvc.GetProfile(c.Request.Context(), merchantID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": profile})
}

func (s *Server) UpdateProfile(c *gin.Context) {
	merchantID, ok := merchantctx.MerchantIDFromContext(c.Request.Context())
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req merchantdomain.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	profile, err := s.merchantSvc.UpdateProfile(c.Request.Context(), merchantID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": profile})
}
