package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lab-portal-api/internal/middleware"
	"github.com/noah-isme/lab-portal-api/internal/models"
)

func actorFromContext(c *gin.Context) *models.Actor {
	return middleware.ActorFromContext(c)
}
