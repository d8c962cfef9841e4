package response

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domainerrors "careconnect.backend/internal/domain/errors"
	"careconnect.backend/pkg/logger"
	"careconnect.backend/pkg/utils"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Paginated sends a page of items with pagination meta
func Paginated(c *gin.Context, status int, key string, items interface{}, total int64, pagination utils.PaginationParams) {
	c.JSON(status, gin.H{
		key:    items,
		"meta": utils.CalculateMeta(total, pagination.Page, pagination.Limit),
	})
}

// Error classifies err and writes {"error","code"}. Server errors are logged
// with the cause and reported to the caller without it.
func Error(c *gin.Context, err error) {
	appErr := domainerrors.FromError(err)
	if appErr == nil {
		appErr = domainerrors.InternalError(errors.New("nil error rendered"))
	}

	if appErr.Status >= 500 {
		logger.Error(c.Request.Context(), "Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}

	c.AbortWithStatusJSON(appErr.Status, gin.H{
		"error": appErr.Message,
		"code":  appErr.Code,
	})
}

// BindError reports a request binding or validation failure as 400
func BindError(c *gin.Context, err error) {
	Error(c, domainerrors.BadRequest(describeBindError(err)))
}

func describeBindError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request body"
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
