// Package api exposes the validation components over HTTP. Every response,
// success or failure, is wrapped in the standard envelope.
package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/veridian-dev/veridian/internal/account"
	"github.com/veridian-dev/veridian/pkg/envelope"
	"github.com/veridian-dev/veridian/pkg/normalize"
	"github.com/veridian-dev/veridian/pkg/validate"
)

// Handler bundles the components the HTTP layer serves.
type Handler struct {
	Emails    *validate.EmailValidator
	Passwords validate.PasswordPolicy
	Records   *normalize.Normalizer
	Accounts  *account.Service
}

// respond writes an envelope, stamping the measured handling time if the
// timing middleware recorded a start.
func respond(c *gin.Context, env envelope.Envelope) {
	if start, ok := c.Get(startTimeKey); ok {
		env = env.WithResponseTime(time.Since(start.(time.Time)))
	}
	c.JSON(env.StatusCode, env)
}

// Home is the hello route kept from the original service.
func (h *Handler) Home(c *gin.Context) {
	respond(c, envelope.New(http.StatusOK, "Hello World from Veridian", gin.H{
		"message": "Hello World from Veridian",
	}))
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	respond(c, envelope.New(http.StatusOK, "ok", gin.H{"status": "ok"}))
}

// GetItem echoes a numeric item ID, rejecting non-integer input.
func (h *Handler) GetItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respond(c, envelope.New(http.StatusBadRequest, "item id must be an integer", nil))
		return
	}
	respond(c, envelope.New(http.StatusOK, "Success", gin.H{"item_id": id}))
}

// ValidateEmail classifies the submitted address.
func (h *Handler) ValidateEmail(c *gin.Context) {
	var input struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respond(c, envelope.New(http.StatusBadRequest, "invalid request body", nil).
			WithErrorDetails(err.Error()))
		return
	}

	respond(c, envelope.New(http.StatusOK, "Success", gin.H{
		"email": input.Email,
		"valid": h.Emails.Validate(input.Email),
	}))
}

// ValidatePassword returns the full strength assessment.
func (h *Handler) ValidatePassword(c *gin.Context) {
	var input struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respond(c, envelope.New(http.StatusBadRequest, "invalid request body", nil).
			WithErrorDetails(err.Error()))
		return
	}

	respond(c, envelope.New(http.StatusOK, "Success", h.Passwords.Assess(input.Password)))
}

// NormalizeRecords cleans a JSON array of loose records. Items that cannot
// be normalized are omitted, never rejected.
func (h *Handler) NormalizeRecords(c *gin.Context) {
	var items []any
	if err := c.ShouldBindJSON(&items); err != nil {
		respond(c, envelope.New(http.StatusBadRequest, "request body must be a JSON array", nil).
			WithErrorDetails(err.Error()))
		return
	}

	respond(c, envelope.New(http.StatusOK, "Success", h.Records.Normalize(items)))
}

// CreateUser registers a user, translating validation failures into 400s
// that name the offending field.
func (h *Handler) CreateUser(c *gin.Context) {
	var input struct {
		Name  string `json:"name" binding:"required"`
		Email string `json:"email" binding:"required"`
		Age   int    `json:"age"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respond(c, envelope.New(http.StatusBadRequest, "invalid request body", nil).
			WithErrorDetails(err.Error()))
		return
	}

	user, err := h.Accounts.Register(input.Name, input.Email, input.Age)
	if err != nil {
		var verr *account.ValidationError
		if errors.As(err, &verr) {
			respond(c, envelope.New(http.StatusBadRequest, verr.Message, nil).
				WithErrorDetails(gin.H{"field": verr.Field}))
			return
		}
		respond(c, envelope.New(http.StatusInternalServerError, err.Error(), nil))
		return
	}

	respond(c, envelope.New(http.StatusCreated, "User created", user))
}

// ListUsers returns every registered user.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.Accounts.List()
	if err != nil {
		respond(c, envelope.New(http.StatusInternalServerError, err.Error(), nil))
		return
	}
	respond(c, envelope.New(http.StatusOK, "Success", users))
}

// GetUser returns a single registered user.
func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.Accounts.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, account.ErrUserNotFound) {
			respond(c, envelope.New(http.StatusNotFound, "user not found", nil))
			return
		}
		respond(c, envelope.New(http.StatusInternalServerError, err.Error(), nil))
		return
	}
	respond(c, envelope.New(http.StatusOK, "Success", user))
}

// DeleteUser removes a registered user.
func (h *Handler) DeleteUser(c *gin.Context) {
	if err := h.Accounts.Delete(c.Param("id")); err != nil {
		if errors.Is(err, account.ErrUserNotFound) {
			respond(c, envelope.New(http.StatusNotFound, "user not found", nil))
			return
		}
		respond(c, envelope.New(http.StatusInternalServerError, err.Error(), nil))
		return
	}
	respond(c, envelope.New(http.StatusOK, "User deleted", nil))
}
