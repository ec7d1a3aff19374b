package server

import (
	"net/http"

	"github.com/freetocompute/mindboard/pkg/board/requests"
	"github.com/freetocompute/mindboard/pkg/board/responses"
	"github.com/freetocompute/mindboard/pkg/middleware"
	"github.com/gin-gonic/gin"
)

func (s *Server) listSignupRequests(c *gin.Context) {
	pending, err := s.signups.ListPending()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pending)
}

func (s *Server) approveSignupRequest(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}

	if _, err := s.signups.Approve(id); err != nil {
		respondError(c, err)
		return
	}
	ok(c, "Sign up request approved")
}

func (s *Server) declineSignupRequest(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}

	if err := s.signups.Decline(id); err != nil {
		respondError(c, err)
		return
	}
	ok(c, "Sign up request declined")
}

func (s *Server) listAdmins(c *gin.Context) {
	admins, err := s.moderation.ListAdmins(middleware.GetAdmin(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, admins)
}

func (s *Server) registerAdmin(c *gin.Context) {
	var req requests.Credentials
	if !bind(c, &req) {
		return
	}

	admin, err := s.moderation.CreateAdmin(middleware.GetAdmin(c), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, &responses.Created{Success: true, ID: admin.ID})
}

func (s *Server) selfRegisterAdmin(c *gin.Context) {
	var req requests.SelfRegister
	if !bind(c, &req) {
		return
	}

	admin, err := s.moderation.SelfRegisterAdmin(req.Username, req.Password, req.InviteCode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, &responses.Created{Success: true, ID: admin.ID})
}

func (s *Server) deleteAdmin(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}

	if err := s.moderation.DeleteAdmin(middleware.GetAdmin(c), id); err != nil {
		respondError(c, err)
		return
	}
	ok(c, "Admin deleted")
}

func (s *Server) listUsers(c *gin.Context) {
	users, err := s.moderation.ListUsers()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (s *Server) deleteUser(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}

	if err := s.moderation.DeleteUser(id); err != nil {
		respondError(c, err)
		return
	}
	ok(c, "User deleted")
}
