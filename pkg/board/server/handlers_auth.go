package server

import (
	"net/http"

	"github.com/freetocompute/mindboard/pkg/auth"
	"github.com/freetocompute/mindboard/pkg/board/requests"
	"github.com/freetocompute/mindboard/pkg/board/responses"
	"github.com/gin-gonic/gin"
)

var sessionMaxAge = int(auth.SessionTTL.Seconds())

func (s *Server) health(c *gin.Context) {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, &responses.Health{Status: "unavailable"})
		return
	}
	c.JSON(http.StatusOK, &responses.Health{Status: "ok"})
}

func (s *Server) signup(c *gin.Context) {
	var req requests.Signup
	if !bind(c, &req) {
		return
	}

	if _, err := s.signups.Submit(req.Username, req.Password, req.Gmail); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, &responses.Envelope{
		Success: true,
		Message: "Sign up request submitted. An admin will review it shortly.",
	})
}

func (s *Server) signin(c *gin.Context) {
	var req requests.Credentials
	if !bind(c, &req) {
		return
	}

	user, token, err := s.authn.LoginUser(req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	s.setCookie(c, s.guard.UserCookie(), token, sessionMaxAge)
	c.JSON(http.StatusOK, &responses.UserLogin{
		Success: true,
		UserStatus: responses.UserStatus{
			Authenticated: true,
			UserID:        &user.ID,
			Username:      user.Username,
			Gmail:         user.Gmail,
		},
	})
}

func (s *Server) userStatus(c *gin.Context) {
	token, _ := c.Cookie(s.guard.UserCookie())
	user, err := s.authn.ResolveUser(token)
	if err != nil {
		c.JSON(http.StatusOK, &responses.UserStatus{Authenticated: false})
		return
	}

	c.JSON(http.StatusOK, &responses.UserStatus{
		Authenticated: true,
		UserID:        &user.ID,
		Username:      user.Username,
		Gmail:         user.Gmail,
	})
}

func (s *Server) userLogout(c *gin.Context) {
	token, _ := c.Cookie(s.guard.UserCookie())
	if err := s.authn.Logout(token); err != nil {
		respondError(c, err)
		return
	}
	s.clearCookie(c, s.guard.UserCookie())
	ok(c, "Logged out")
}

func (s *Server) forgotPassword(c *gin.Context) {
	var req requests.ForgotPassword
	if !bind(c, &req) {
		return
	}

	if _, err := s.recovery.RequestReset(req.Gmail); err != nil {
		respondError(c, err)
		return
	}
	ok(c, "Password reset link created")
}

func (s *Server) resetPassword(c *gin.Context) {
	var req requests.ResetPassword
	if !bind(c, &req) {
		return
	}

	if err := s.recovery.ResetPassword(req.Token, req.Password); err != nil {
		respondError(c, err)
		return
	}
	ok(c, "Password updated")
}

func (s *Server) adminLogin(c *gin.Context) {
	var req requests.Credentials
	if !bind(c, &req) {
		return
	}

	admin, token, err := s.authn.LoginAdmin(req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	s.setCookie(c, s.guard.AdminCookie(), token, sessionMaxAge)
	c.JSON(http.StatusOK, &responses.AdminLogin{
		Success: true,
		AdminStatus: responses.AdminStatus{
			Authenticated:    true,
			UserID:           &admin.ID,
			Username:         admin.Username,
			IsOwner:          &admin.IsOwner,
			IsSuperModerator: &admin.IsSuperModerator,
		},
	})
}

func (s *Server) adminLogout(c *gin.Context) {
	token, _ := c.Cookie(s.guard.AdminCookie())
	if err := s.authn.Logout(token); err != nil {
		respondError(c, err)
		return
	}
	s.clearCookie(c, s.guard.AdminCookie())
	ok(c, "Logged out")
}

func (s *Server) adminStatus(c *gin.Context) {
	token, _ := c.Cookie(s.guard.AdminCookie())
	admin, err := s.authn.ResolveAdmin(token)
	if err != nil {
		c.JSON(http.StatusOK, &responses.AdminStatus{Authenticated: false})
		return
	}

	c.JSON(http.StatusOK, &responses.AdminStatus{
		Authenticated:    true,
		UserID:           &admin.ID,
		Username:         admin.Username,
		IsOwner:          &admin.IsOwner,
		IsSuperModerator: &admin.IsSuperModerator,
	})
}
