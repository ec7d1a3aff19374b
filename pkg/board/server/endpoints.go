package server

import (
	"github.com/freetocompute/mindboard/pkg/middleware"
	"github.com/gin-gonic/gin"
)

func (s *Server) SetupEndpoints(r *gin.Engine) {
	g := s.guard

	r.GET("/health", s.health)

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/signup", s.signup)
	authGroup.POST("/signin", s.signin)
	authGroup.GET("/status", s.userStatus)
	authGroup.POST("/logout", s.userLogout)
	authGroup.POST("/forgot-password", s.forgotPassword)
	authGroup.POST("/reset-password", s.resetPassword)

	signups := authGroup.Group("/signup-requests", g.Require(middleware.RoleAdmin))
	signups.GET("", s.listSignupRequests)
	signups.POST("/:id/approve", s.approveSignupRequest)
	signups.POST("/:id/decline", s.declineSignupRequest)

	admin := api.Group("/admin")
	admin.POST("/login", s.adminLogin)
	admin.POST("/logout", s.adminLogout)
	admin.GET("/status", s.adminStatus)
	admin.POST("/self-register", s.selfRegisterAdmin)

	owner := admin.Group("", g.Require(middleware.RoleOwner))
	owner.GET("/users", s.listAdmins)
	owner.POST("/register", s.registerAdmin)
	owner.DELETE("/users/:id", s.deleteAdmin)

	moderators := admin.Group("", g.Require(middleware.RoleAdmin))
	moderators.GET("/all-users", s.listUsers)
	moderators.DELETE("/delete-user/:id", s.deleteUser)

	messages := api.Group("/messages")
	messages.POST("", s.postMessage)
	messages.GET("", g.Require(middleware.RoleAdmin), s.listMessages)
	messages.DELETE("/:id", g.Require(middleware.RoleAdmin), s.deleteMessage)
	messages.PUT("/:id/pin", g.Require(middleware.RoleAdmin), s.pinMessage)
	messages.GET("/:id/poster", g.Require(middleware.RoleSuperModerator), s.messagePoster)

	public := api.Group("/public-messages")
	public.POST("", g.Identify(), s.postPublicMessage)
	public.GET("", g.Identify(), s.listPublicMessages)
	public.DELETE("/:id", g.Require(middleware.RoleAdmin), s.deletePublicMessage)
	public.GET("/:id/poster", g.Require(middleware.RoleSuperModerator), s.publicMessagePoster)
	public.POST("/:id/react", g.Identify(), s.react)
	public.GET("/:id/comments", s.listComments)
	public.POST("/:id/comments", g.Identify(), s.addComment)
}
