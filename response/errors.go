package response

import (
	"errors"
	"net/http"

	"hostel-shop-api/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

const (
	CodeInvalidInput       = "INVALID_INPUT"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeInternalError      = "INTERNAL_ERROR"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeExpiredToken       = "EXPIRED_TOKEN"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeDuplicateName      = "DUPLICATE_NAME"
	CodeCategoryInUse      = "CATEGORY_IN_USE"
)

func WriteError(c *gin.Context, status int, message, code string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message, Code: code})
}

func WriteErrorWithDetails(c *gin.Context, status int, message, code string, details any) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message, Code: code, Details: details})
}

func BadRequest(c *gin.Context, message string) {
	WriteError(c, http.StatusBadRequest, message, CodeInvalidInput)
}

func Unauthorized(c *gin.Context, message string) {
	WriteError(c, http.StatusUnauthorized, message, CodeUnauthorized)
}

func Forbidden(c *gin.Context, message string) {
	WriteError(c, http.StatusForbidden, message, CodeForbidden)
}

func NotFound(c *gin.Context, message string) {
	WriteError(c, http.StatusNotFound, message, CodeNotFound)
}

func InternalError(c *gin.Context, message string) {
	WriteError(c, http.StatusInternalServerError, message, CodeInternalError)
}

// Error maps a service error onto its HTTP status and code. Unknown errors
// are logged and reported as 500 without leaking the cause.
func Error(c *gin.Context, err error) {
	var (
		authErr    *services.AuthError
		notFound   *services.NotFoundError
		conflict   *services.ConflictError
		validation *services.ValidationError
	)
	switch {
	case errors.As(err, &authErr):
		WriteError(c, http.StatusUnauthorized, authErr.Error(), authCode(authErr.Kind))
	case errors.As(err, &notFound):
		WriteError(c, http.StatusNotFound, notFound.Error(), CodeNotFound)
	case errors.As(err, &conflict):
		if conflict.Kind == services.ConflictCategoryInUse {
			WriteErrorWithDetails(c, http.StatusConflict, conflict.Error(), CodeCategoryInUse,
				gin.H{"count": conflict.Count})
			return
		}
		WriteErrorWithDetails(c, http.StatusConflict, conflict.Error(), CodeDuplicateName,
			gin.H{"name": conflict.Name})
	case errors.As(err, &validation):
		if validation.Field != "" {
			WriteErrorWithDetails(c, http.StatusBadRequest, validation.Error(), CodeInvalidInput,
				gin.H{"field": validation.Field})
			return
		}
		BadRequest(c, validation.Error())
	default:
		logrus.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Error("Request failed")
		InternalError(c, "Internal server error")
	}
}

func authCode(kind services.AuthErrorKind) string {
	switch kind {
	case services.AuthInvalidCredentials:
		return CodeInvalidCredentials
	case services.AuthExpired:
		return CodeExpiredToken
	case services.AuthUserNotFound:
		return CodeUserNotFound
	default:
		return CodeInvalidToken
	}
}
