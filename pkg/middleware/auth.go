package middleware

import (
	"net/http"

	"github.com/freetocompute/mindboard/pkg/apperror"
	"github.com/freetocompute/mindboard/pkg/auth"
	"github.com/freetocompute/mindboard/pkg/models"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Role int

const (
	RoleUser Role = iota
	RoleAdmin
	RoleOwner
	RoleSuperModerator
)

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAdmin:
		return "admin"
	case RoleOwner:
		return "owner"
	case RoleSuperModerator:
		return "super-moderator"
	}
	return "unknown"
}

const (
	adminKey = "admin"
	userKey  = "user"
)

// Guard resolves session cookies into accounts for the gin handlers.
type Guard struct {
	authn       *auth.Authenticator
	adminCookie string
	userCookie  string
}

func NewGuard(authn *auth.Authenticator, adminCookie string, userCookie string) *Guard {
	return &Guard{authn: authn, adminCookie: adminCookie, userCookie: userCookie}
}

func (g *Guard) AdminCookie() string { return g.adminCookie }
func (g *Guard) UserCookie() string  { return g.userCookie }

func abort(c *gin.Context, err error) {
	if apperror.KindOf(err) == apperror.KindStore {
		logrus.Error(err)
	}
	c.AbortWithStatusJSON(apperror.Status(err), gin.H{"success": false, "error": apperror.PublicMessage(err)})
}

func (g *Guard) resolveAdmin(c *gin.Context) (*models.AdminAccount, error) {
	token, _ := c.Cookie(g.adminCookie)
	return g.authn.ResolveAdmin(token)
}

func (g *Guard) resolveUser(c *gin.Context) (*models.UserAccount, error) {
	token, _ := c.Cookie(g.userCookie)
	return g.authn.ResolveUser(token)
}

// Require aborts with 401 when the request carries no valid session for the
// role, and with 403 when the session's account lacks the role.
func (g *Guard) Require(role Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if role == RoleUser {
			user, err := g.resolveUser(c)
			if err != nil {
				abort(c, err)
				return
			}
			c.Set(userKey, user)
			c.Next()
			return
		}

		admin, err := g.resolveAdmin(c)
		if err != nil {
			abort(c, err)
			return
		}

		switch {
		case role == RoleOwner && !admin.IsOwner:
			abort(c, apperror.Permission("Owner access required"))
			return
		case role == RoleSuperModerator && !admin.IsSuperModerator:
			abort(c, apperror.Permission("Super-moderator access required"))
			return
		}

		logrus.Tracef("%s %s allowed for %s %s", c.Request.Method, c.FullPath(), role, admin.Username)
		c.Set(adminKey, admin)
		c.Next()
	}
}

// Identify puts whatever accounts the request's cookies resolve to on the
// context without rejecting anonymous requests.
func (g *Guard) Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		if admin, err := g.resolveAdmin(c); err == nil {
			c.Set(adminKey, admin)
		} else if !apperror.Is(err, apperror.KindAuth) {
			abort(c, err)
			return
		}

		if user, err := g.resolveUser(c); err == nil {
			c.Set(userKey, user)
		} else if !apperror.Is(err, apperror.KindAuth) {
			abort(c, err)
			return
		}
		c.Next()
	}
}

// RedirectAnonymous sends GET requests for pages without a signed-in user
// to target. Other paths pass through untouched.
func (g *Guard) RedirectAnonymous(target string, pages ...string) gin.HandlerFunc {
	protected := make(map[string]bool, len(pages))
	for _, p := range pages {
		protected[p] = true
	}

	return func(c *gin.Context) {
		method := c.Request.Method
		if (method != http.MethodGet && method != http.MethodHead) || !protected[c.Request.URL.Path] {
			c.Next()
			return
		}

		if _, err := g.resolveUser(c); err != nil {
			if !apperror.Is(err, apperror.KindAuth) {
				abort(c, err)
				return
			}
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}
		c.Next()
	}
}

func GetAdmin(c *gin.Context) *models.AdminAccount {
	if v, exists := c.Get(adminKey); exists {
		if admin, ok := v.(*models.AdminAccount); ok {
			return admin
		}
	}
	return nil
}

func GetUser(c *gin.Context) *models.UserAccount {
	if v, exists := c.Get(userKey); exists {
		if user, ok := v.(*models.UserAccount); ok {
			return user
		}
	}
	return nil
}
