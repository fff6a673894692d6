package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Failure kinds: stable, machine-readable, one per error taxonomy entry.
const (
	KindNotFound         = "not_found"
	KindConflict         = "conflict"
	KindValidationFailed = "validation_failed"
	KindInternal         = "internal"
)

type ErrorBody struct {
	Kind    string                 `json:"kind"`
	Message string                 `json:"message"`
	Detail  map[string]interface{} `json:"detail,omitempty"`
}

func RespondError(c *gin.Context, status int, kind, message string, detail map[string]interface{}) {
	c.JSON(status, gin.H{
		"error": ErrorBody{
			Kind:    kind,
			Message: message,
			Detail:  detail,
		},
	})
}

func BindJson(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		RespondError(c, http.StatusBadRequest, KindValidationFailed, "Invalid request format", nil)
		return err
	}
	return nil
}

func BindQuery(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindQuery(obj); err != nil {
		RespondError(c, http.StatusBadRequest, KindValidationFailed, "Invalid request format", nil)
		return err
	}
	return nil
}

func BindUri(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindUri(obj); err != nil {
		RespondError(c, http.StatusBadRequest, KindValidationFailed, "Invalid request format", nil)
		return err
	}
	return nil
}
