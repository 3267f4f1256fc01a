package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/noah-isme/lesson-board-api/internal/middleware"
	"github.com/noah-isme/lesson-board-api/internal/models"
	appErrors "github.com/noah-isme/lesson-board-api/pkg/errors"
	"github.com/noah-isme/lesson-board-api/pkg/response"
)

// requireScope resolves the caller's access scope or writes a 401.
func requireScope(c *gin.Context) (models.AccessScope, bool) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return models.AccessScope{}, false
	}
	return claims.Scope(), true
}

func bindError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}

func queryInt(c *gin.Context, key string) int {
	value, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return value
}

func claimsOrAbort(c *gin.Context) (*models.JWTClaims, bool) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return nil, false
	}
	return claims, true
}

// pathUUID reads a uuid path parameter or writes a 400.
func pathUUID(c *gin.Context, name string) (string, bool) {
	raw := c.Param(name)
	if _, err := uuid.Parse(raw); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid "+name))
		return "", false
	}
	return raw, true
}
