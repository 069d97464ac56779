package server

import (
	"net/http"
	"strings"

	checkoutdomain "github.com/elzapay/elza/internal/checkout/domain"
	"github.com/elzapay/elza/internal/checkout/session"
	checkoutconfigdomain "github.com/elzapay/elza/internal/checkoutconfig/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) ResolveCheckoutByID(c *gin.Context) {
	s.resolveCheckout(c, checkoutconfigdomain.PublicKey{ID: strings.TrimSpace(c.Param("id"))})
}

func (s *Server) ResolveCheckoutBySlug(c *gin.Context) {
	s.resolveCheckout(c, checkoutconfigdomain.PublicKey{Slug: strings.TrimSpace(c.Param("slug"))})
}

func (s *Server) ResolveCheckoutByDomain(c *gin.Context) {
	s.resolveCheckout(c, checkoutconfigdomain.PublicKey{Domain: strings.TrimSpace(c.Param("domain"))})
}

func (s *Server) resolveCheckout(c *gin.Context, key checkoutconfigdomain.PublicKey) {
	resolved, err := s.checkoutSvc.Resolve(c.Request.Context(), key)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resolved})
}

type quoteCheckoutRequest struct {
	Quantities map[string]int `json:"quantities"`
}

// QuoteCheckout reprices the cart with buyer-chosen quantities without
// submitting a payment.
func (s *Server) QuoteCheckout(c *gin.Context) {
	var req quoteCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	quote, err := s.checkoutSvc.Quote(c.Request.Context(), strings.TrimSpace(c.Param("id")), req.Quantities)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": quote})
}

type submitCheckoutRequest struct {
	Email         string         `json:"email"`
	FirstName     string         `json:"first_name"`
	LastName      string         `json:"last_name"`
	WalletAddress *string        `json:"wallet_address"`
	Quantities    map[string]int `json:"quantities"`
}

func (s *Server) SubmitCheckout(c *gin.Context) {
	var req submitCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.checkoutSvc.Submit(c.Request.Context(), checkoutdomain.SubmitRequest{
		CheckoutID: strings.TrimSpace(c.Param("id")),
		Contact: session.Contact{
			Email:     strings.TrimSpace(req.Email),
			FirstName: strings.TrimSpace(req.FirstName),
			LastName:  strings.TrimSpace(req.LastName),
		},
		WalletAddress: req.WalletAddress,
		Quantities:    req.Quantities,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}
