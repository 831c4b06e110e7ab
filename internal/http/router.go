// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"atlas/internal/http/handlers"
	"atlas/internal/http/middleware"
	"atlas/internal/modules/conversation"
	"atlas/internal/modules/profile"
	"atlas/internal/service"
)

func NewRouter(
	chatService *service.ChatService,
	turns conversation.Log,
	profiles *profile.Service,
) http.Handler {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery(), middleware.Auth())

	chatHandler := handlers.NewChatHandler(chatService)
	r.POST("/api/chat", chatHandler.Handle)

	sessionHandler := handlers.NewSessionHandler(turns)
	r.GET("/api/sessions/:id/history", sessionHandler.History)

	profileHandler := handlers.NewProfileHandler(profiles)
	r.GET("/api/users/:id/profile", profileHandler.Get)
	r.PUT("/api/users/:id/profile", profileHandler.Update)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
