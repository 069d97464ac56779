package server

import (
	"strings"

	"github.com/elzapay/elza/internal/merchantctx"
	"github.com/gin-gonic/gin"
)

const contextMerchantIDKey = "merchant_id"

// AuthRequired verifies the bearer token and injects the merchant
// identity into the request context.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		merchantID, err := s.authSvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(contextMerchantIDKey, merchantID.String())
		c.Request = c.Request.WithContext(
			merchantctx.WithMerchantID(c.Request.Context(), int64(merchantID)),
		)
		c.Next()
	}
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
