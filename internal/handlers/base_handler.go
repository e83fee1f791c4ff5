package handlers

import (
	"fmt"
	"strconv"

	"guestbook_backend/internal/logger"
	"guestbook_backend/internal/validator"
	"guestbook_backend/pkg/apperrors"
	"guestbook_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{
		validator: v,
	}
}

// GetDB extracts the *gorm.DB (pool or transaction) placed into the gin
// context by DBMiddleware. Every handler that reaches a service must go
// through here.
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	dbKey := string(contextkeys.DBContextKey)

	val, ok := c.Get(dbKey)
	if !ok {
		// Can only happen when DBMiddleware is not installed; the
		// application is misconfigured.
		logger.FromContext(c.Request.Context()).Error("db key not found in context", "key", dbKey)
		panic("critical error: DBMiddleware did not set the db key")
	}

	db, ok := val.(*gorm.DB)
	if !ok {
		logger.FromContext(c.Request.Context()).Error("db in context has wrong type", "type", fmt.Sprintf("%T", val))
		panic("critical error: db in context has incorrect type")
	}

	return db
}

// HandleServiceError resolves a service failure to a JSON error response.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		logger.FromContext(ctx).Warn("Service error",
			"error", appErr.Message,
			"path", c.Request.URL.Path,
		)
		apperrors.HandleError(c, appErr)
	} else {
		logger.FromContext(ctx).Error("Internal server error", "error", err.Error(), "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.InternalError(err))
	}
}

// HandleServiceErrorString is the plain-text sibling of HandleServiceError,
// used by the form endpoints that answer with short human-readable strings.
func (h *BaseHandler) HandleServiceErrorString(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		// Validation and media rejections are the caller's problem; only
		// persistence failures are server errors worth a log entry.
		if appErr.HTTPCode >= 500 {
			logger.FromContext(ctx).Error("Service error",
				"error", appErr.Error(),
				"path", c.Request.URL.Path,
			)
		} else {
			logger.FromContext(ctx).Debug("Request rejected",
				"reason", appErr.Message,
				"path", c.Request.URL.Path,
			)
		}
	}
	apperrors.HandleErrorString(c, err)
}

// --- Parsing helpers ---

func ParseQueryInt(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func ParseParamInt(c *gin.Context, key string) (int, error) {
	valueStr := c.Param(key)
	if valueStr == "" {
		return 0, apperrors.NewBadRequestError("Missing required path parameter: " + key)
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, apperrors.NewBadRequestError("Invalid path parameter: " + key + " is not an integer")
	}
	return value, nil
}
