package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/hospital-api/internal/access"
	"github.com/harentsoaR/hospital-api/internal/apperr"
	"github.com/harentsoaR/hospital-api/internal/middleware"
	"github.com/harentsoaR/hospital-api/internal/models"
	"github.com/harentsoaR/hospital-api/internal/utils"
	"github.com/sirupsen/logrus"
)

// Handler holds what every endpoint needs.
type Handler struct {
	Access *access.Service
	Tokens *utils.TokenIssuer
	Log    *logrus.Logger
}

func NewHandler(svc *access.Service, tokens *utils.TokenIssuer, logger *logrus.Logger) *Handler {
	return &Handler{Access: svc, Tokens: tokens, Log: logger}
}

// actor reads the caller set by the auth middleware.
func actor(c *gin.Context) access.Actor {
	a := access.Actor{ID: c.GetString(middleware.UserIDKey)}
	if role, ok := c.Get(middleware.UserRoleKey); ok {
		a.Role, _ = role.(models.Role)
	}
	return a
}

var statusByKind = map[apperr.Kind]int{
	apperr.KindValidation:     http.StatusBadRequest,
	apperr.KindNotFound:       http.StatusNotFound,
	apperr.KindAuth:           http.StatusUnauthorized,
	apperr.KindWrite:          http.StatusInternalServerError,
	apperr.KindPartialFailure: http.StatusInternalServerError,
	apperr.KindConflict:       http.StatusConflict,
	apperr.KindForbidden:      http.StatusForbidden,
}

// fail writes err as {"error", "kind"} with the status of its kind.
func (h *Handler) fail(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	status, ok := statusByKind[kind]
	if !ok {
		status = http.StatusInternalServerError
	}

	body := gin.H{"error": apperr.Message(err), "kind": kind.String()}
	if id, ok := apperr.CommittedID(err); ok {
		body["partial"] = true
		body["committedId"] = id
	}
	if status >= http.StatusInternalServerError {
		middleware.Logger(c, h.Log).WithError(err).Error("request failed")
		if kind == apperr.KindUnknown || kind == apperr.KindWrite {
			body["error"] = "internal error"
		}
	}
	c.AbortWithStatusJSON(status, body)
}

// bind decodes the JSON body or answers 400.
func bind(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "kind": apperr.KindValidation.String()})
		return false
	}
	return true
}
