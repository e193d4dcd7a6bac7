package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/fekuna/omnipos-cafe-service/internal/pkg/apperr"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/i18n"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int        `json:"count,omitempty"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Responder writes the JSON envelopes and maps errors to status codes.
type Responder struct {
	tr     *i18n.Translator
	logger logger.ZapLogger
}

func NewResponder(tr *i18n.Translator, log logger.ZapLogger) *Responder {
	return &Responder{tr: tr, logger: log}
}

func (r *Responder) localize(c *gin.Context, id string, data map[string]interface{}, fallback string) string {
	if r.tr == nil {
		return fallback
	}
	return r.tr.Localize(c.GetHeader("Accept-Language"), id, data, fallback)
}

func (r *Responder) OK(c *gin.Context, messageID string, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{
		Message: r.localize(c, messageID, nil, messageID),
		Data:    data,
	})
}

// Page writes a list together with its total count.
func (r *Responder) Page(c *gin.Context, data interface{}, count int) {
	c.JSON(http.StatusOK, SuccessResponse{
		Message: r.localize(c, "OK", nil, "OK"),
		Data:    data,
		Count:   &count,
	})
}

func StatusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation, apperr.KindInsufficientStock:
		return http.StatusBadRequest
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (r *Responder) Error(c *gin.Context, err error) {
	status := StatusOf(err)

	var stock *apperr.InsufficientStockError
	var appErr *apperr.Error
	switch {
	case errors.As(err, &stock):
		msg := r.localize(c, "InsufficientStock", map[string]interface{}{
			"Name":      stock.MaterialName,
			"Available": stock.Available,
			"Remaining": stock.Remaining,
			"Action":    stock.Action(),
		}, stock.Error())
		c.AbortWithStatusJSON(status, ErrorResponse{Message: msg, Error: stock.Error()})
	case errors.As(err, &appErr) && appErr.Kind != apperr.KindInternal:
		if appErr.Kind == apperr.KindTransactionFailure {
			r.logger.Error("transaction failed", zap.String("path", c.FullPath()), zap.Error(err))
			c.AbortWithStatusJSON(status, ErrorResponse{Message: r.localize(c, appErr.MessageID, nil, appErr.Message)})
			return
		}
		c.AbortWithStatusJSON(status, ErrorResponse{
			Message: r.localize(c, appErr.MessageID, appErr.Data, appErr.Message),
			Error:   appErr.Message,
		})
	default:
		r.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.AbortWithStatusJSON(status, ErrorResponse{Message: r.localize(c, "InternalError", nil, "internal error")})
	}
}

// BindError reports a failed ShouldBind* call as a validation error.
func (r *Responder) BindError(c *gin.Context, err error) {
	r.Error(c, apperr.Validation(describeBindError(err)))
}

func describeBindError(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		parts := make([]string, 0, len(ve))
		for _, fe := range ve {
			parts = append(parts, fmt.Sprintf("%s failed on %s", fe.Namespace(), fe.Tag()))
		}
		return strings.Join(parts, "; ")
	}
	return err.Error()
}

// ParamID reads a positive int64 path parameter.
func ParamID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation(fmt.Sprintf("invalid %s", name))
	}
	return id, nil
}

// ParamUUID reads a UUID path parameter in canonical form.
func ParamUUID(c *gin.Context, name string) (string, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return "", apperr.Validation(fmt.Sprintf("invalid %s", name))
	}
	return id.String(), nil
}
