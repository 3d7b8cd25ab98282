package webhook

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yuvraj13742/dodo-payments/internal/logger"
)

const (
	signatureHeader = "x-dodo-signature"
	rawBodyKey      = "webhook_raw_body"
)

// SignatureMiddleware authenticates webhook deliveries. The digest is
// HMAC-SHA256 over the exact bytes received, never a re-serialized
// form, and the comparison is constant-time. When verification is
// disabled the raw body is still captured for the handler.
func SignatureMiddleware(enabled bool, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawBody, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(rawBody))
		c.Set(rawBodyKey, rawBody)

		if !enabled {
			c.Next()
			return
		}

		if secret == "" {
			logger.Error("webhook signature verification enabled but no secret configured")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "webhook signing secret not configured"})
			return
		}

		signature := c.GetHeader(signatureHeader)
		if signature == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing signature header"})
			return
		}

		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write(rawBody)
		computed := hex.EncodeToString(mac.Sum(nil))

		if !hmac.Equal([]byte(computed), []byte(signature)) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
			return
		}

		c.Next()
	}
}

// RawBody returns the request bytes captured by SignatureMiddleware.
func RawBody(c *gin.Context) ([]byte, bool) {
	v, exists := c.Get(rawBodyKey)
	if !exists {
		return nil, false
	}
	b, ok := v.([]byte)
	return b, ok
}

// Sign computes the hex digest a sender would attach. Test helper and
// reference for provider configuration.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
