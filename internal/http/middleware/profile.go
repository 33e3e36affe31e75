package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adilet/gigpay-ledger/internal/model"
)

const (
	// ProfileHeader identifies the caller. Resolution of this id is
	// the whole of authentication here: upstream is expected to have
	// verified it.
	ProfileHeader = "Profile-Id"

	profileKey = "profile"
)

type ProfileLoader interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*model.Profile, error)
}

// Profile resolves the caller from the Profile-Id header and puts the
// loaded profile on the request context. Missing or unknown ids get a
// 401 before any handler runs.
func Profile(loader ProfileLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(ProfileHeader))
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing profile id"})
			return
		}

		id, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid profile id"})
			return
		}

		profile, err := loader.GetProfile(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown profile"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.Set(profileKey, *profile)
		c.Next()
	}
}

func MustProfile(c *gin.Context) (model.Profile, bool) {
	value, ok := c.Get(profileKey)
	if !ok {
		return model.Profile{}, false
	}
	profile, ok := value.(model.Profile)
	return profile, ok
}
