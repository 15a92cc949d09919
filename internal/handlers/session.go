package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SW2PDEPLOY/front/internal/auth"
	"github.com/SW2PDEPLOY/front/internal/generator"
	"github.com/SW2PDEPLOY/front/internal/middleware"
	"github.com/SW2PDEPLOY/front/internal/models"
	"github.com/SW2PDEPLOY/front/internal/workflow"
)

// sessionFromContext rebuilds the caller's session from what the auth
// middleware stored. It writes the 401 response itself when the request
// carries no identity.
func sessionFromContext(c *gin.Context) (*auth.Session, bool) {
	userIDVal, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return nil, false
	}
	tokenVal, _ := c.Get(middleware.TokenKey)

	userID, _ := userIDVal.(string)
	token, _ := tokenVal.(string)
	if userID == "" || token == "" {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return nil, false
	}

	return &auth.Session{Token: token, UserID: userID}, true
}

// writeWorkflowError maps a workflow or client failure onto the HTTP
// envelope: validation and codec problems belong to the caller, everything
// the generation service caused comes back as an upstream error.
func writeWorkflowError(c *gin.Context, err error) {
	if errors.Is(err, generator.ErrUnauthorized) {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "session rejected by generation service",
			Message: err.Error(),
		})
		return
	}
	if errors.Is(err, auth.ErrNoIdentity) {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "user id not found",
			Message: err.Error(),
		})
		return
	}

	switch workflow.Classify(err) {
	case workflow.ClassValidation:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation failed",
			Message: err.Error(),
		})
	case workflow.ClassCodec:
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error:   "image processing failed",
			Message: err.Error(),
		})
	case workflow.ClassServer:
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "generation service reported an error",
			Message: err.Error(),
		})
	case workflow.ClassTransport:
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "generation service unavailable",
			Message: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "workflow failed",
			Message: err.Error(),
		})
	}
}
