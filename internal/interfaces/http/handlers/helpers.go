package handlers

import (
	"encoding/json"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/volatiletech/null/v8"
	domainerrors "gaswatch.backend/internal/domain/errors"
	"gaswatch.backend/pkg/utils"
)

// paginationFromQuery extracts page/limit query parameters with defaults
func paginationFromQuery(c *gin.Context) utils.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	return utils.GetPaginationParams(page, limit)
}

// optString maps an empty payload field to a null string
func optString(s string) null.String {
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}

// optJSON encodes a payload map into a nullable JSON field
func optJSON(m map[string]interface{}) (null.JSON, error) {
	if len(m) == 0 {
		return null.JSON{}, nil
	}
	encoded, err := json.Marshal(m)
	if err != nil {
		return null.JSON{}, domainerrors.ErrInvalidInput
	}
	return null.JSONFrom(encoded), nil
}
