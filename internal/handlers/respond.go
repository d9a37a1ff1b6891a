package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/justsurfingit/job-tracker-api/internal/dtos"
	"github.com/justsurfingit/job-tracker-api/internal/middleware"
	"github.com/justsurfingit/job-tracker-api/internal/services"
)

var statusByKind = map[services.Kind]int{
	services.KindInvalidArgument: http.StatusBadRequest,
	services.KindUnauthenticated: http.StatusUnauthorized,
	services.KindForbidden:       http.StatusForbidden,
	services.KindNotFound:        http.StatusNotFound,
	services.KindConflict:        http.StatusConflict,
	services.KindInternal:        http.StatusInternalServerError,
}

// respondError writes err as {message} with the status for its kind. Internal
// causes are logged and never sent.
func respondError(c *gin.Context, err error) {
	var se *services.Error
	if !errors.As(err, &se) {
		se = services.Internal(err)
	}
	status, ok := statusByKind[se.Kind]
	if !ok {
		status = http.StatusInternalServerError
	}

	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		middleware.Log(c).WithError(err).Error("request failed")
		c.AbortWithStatusJSON(status, dtos.MessageResponse{Message: "Server error"})
		return
	}
	c.AbortWithStatusJSON(status, dtos.MessageResponse{Message: se.Message})
}

// bindJSON decodes the body into dst. An empty body is allowed when allowEmpty is
// set; any other decode or validation failure becomes InvalidArgument.
func bindJSON(c *gin.Context, dst interface{}, allowEmpty bool) error {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return nil
	}
	if allowEmpty && errors.Is(err, io.EOF) {
		return nil
	}
	return services.InvalidArgument(bindingMessage(err))
}

func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid JSON format"
	}
	fe := verrs[0]
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return field + " is invalid"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
