package api

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Domenick1991/skybook/internal/auth"
	"github.com/Domenick1991/skybook/internal/authz"
	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDKey = "request_id"
	identityKey  = "identity"
)

// TokenParser validates bearer access tokens.
type TokenParser interface {
	Parse(tokenString, tokenType string) (*auth.Claims, error)
}

// Policy decides whether a request may proceed.
type Policy interface {
	Allow(ctx context.Context, req authz.Request) (bool, error)
}

// RequestID ensures every request has an ID for tracing and logs.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.Request.Header.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(requestIDKey, rid)
		c.Writer.Header().Set("X-Request-ID", rid)
		c.Next()
	}
}

func requestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Printf("[HTTP] request_id=%s method=%s path=%s status=%d latency_ms=%.3f ip=%s",
			requestID(c),
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			float64(time.Since(start).Microseconds())/1000.0,
			c.ClientIP(),
		)
	}
}

// Authenticate requires a valid "Bearer <access token>" header.
func Authenticate(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			writeError(c, domain.ErrUnauthorized)
			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(token), auth.TokenAccess)
		if err != nil {
			c.Header("WWW-Authenticate", `Bearer realm="api"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, detailResponse{Detail: "Given token not valid for any token type"})
			return
		}
		c.Set(identityKey, claims.Identity())
		c.Next()
	}
}

// Authorize evaluates the access policy for resource. It must run after Authenticate.
func Authorize(policy Policy, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, authenticated := identityFrom(c)
		allowed, err := policy.Allow(c.Request.Context(), authz.Request{
			Method:        c.Request.Method,
			Resource:      resource,
			Authenticated: authenticated,
			IsStaff:       identity.IsStaff,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		if !allowed {
			if !authenticated {
				writeError(c, domain.ErrUnauthorized)
				return
			}
			writeError(c, domain.ErrForbidden)
			return
		}
		c.Next()
	}
}

func identityFrom(c *gin.Context) (domain.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return domain.Identity{}, false
	}
	identity, ok := v.(domain.Identity)
	return identity, ok
}
