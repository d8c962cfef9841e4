package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"careconnect.backend/internal/domain/entities"
	domainerrors "careconnect.backend/internal/domain/errors"
	"careconnect.backend/internal/interfaces/http/middleware"
	"careconnect.backend/internal/interfaces/http/response"
	"careconnect.backend/pkg/utils"
)

func currentIdentity(c *gin.Context) (entities.Identity, bool) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return entities.Identity{}, false
	}
	return identity, true
}

func uuidParam(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid "+label+" ID"))
		return uuid.Nil, false
	}
	return id, true
}

func paginationParams(c *gin.Context) (utils.PaginationParams, bool) {
	var q utils.PaginationParams
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid pagination parameters"))
		return q, false
	}
	return utils.GetPaginationParams(q.Page, q.Limit), true
}

func bookingStatusQuery(c *gin.Context) (entities.BookingStatus, bool) {
	status := entities.BookingStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		response.Error(c, domainerrors.BadRequest("Invalid booking status"))
		return "", false
	}
	return status, true
}
