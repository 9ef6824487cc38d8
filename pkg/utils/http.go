package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

func ParseIDParam(c *gin.Context, param string) (uint, error) {
	idStr := c.Param(param)
	idUint64, err := strconv.ParseUint(idStr, 10, 64)
	return uint(idUint64), err
}

// ParseQueryIntParam reads an optional non-negative integer query parameter,
// falling back when the value is absent or malformed.
func ParseQueryIntParam(c *gin.Context, param string, fallback int) int {
	valStr := c.Query(param)
	if valStr == "" {
		return fallback
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val < 0 {
		return fallback
	}
	return val
}
