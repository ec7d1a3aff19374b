package server

import (
	"net/http"
	"strconv"

	"github.com/freetocompute/mindboard/pkg/apperror"
	"github.com/freetocompute/mindboard/pkg/board/responses"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const visitorCookieMaxAge = 365 * 24 * 60 * 60

// respondError sends the client-facing form of err. Store failures are
// logged with their cause and reported generically.
func respondError(c *gin.Context, err error) {
	status := apperror.Status(err)
	if status == http.StatusInternalServerError {
		logrus.Errorf("%s %s: %s", c.Request.Method, c.Request.URL.Path, err)
	} else {
		logrus.Debugf("%s %s: %s", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, &responses.Envelope{Success: false, Error: apperror.PublicMessage(err)})
}

func ok(c *gin.Context, message string) {
	c.JSON(http.StatusOK, &responses.Envelope{Success: true, Message: message})
}

// bind decodes the JSON body into v, reporting a ValidationError on
// malformed input.
func bind(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		respondError(c, apperror.Validation("Invalid request body"))
		return false
	}
	return true
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, apperror.Validation("Invalid id"))
		return 0, false
	}
	return uint(id), true
}

func (s *Server) setCookie(c *gin.Context, name string, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", s.opts.SecureCookie, true)
}

func (s *Server) clearCookie(c *gin.Context, name string) {
	s.setCookie(c, name, "", -1)
}
