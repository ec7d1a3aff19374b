package server

import (
	"crypto/rand"
	"fmt"
	"net/http"

	"github.com/freetocompute/mindboard/config"
	"github.com/freetocompute/mindboard/config/configkey"
	"github.com/freetocompute/mindboard/pkg/auth"
	"github.com/freetocompute/mindboard/pkg/board/responses"
	"github.com/freetocompute/mindboard/pkg/database"
	"github.com/freetocompute/mindboard/pkg/feed"
	"github.com/freetocompute/mindboard/pkg/middleware"
	"github.com/freetocompute/mindboard/pkg/moderation"
	"github.com/freetocompute/mindboard/pkg/recovery"
	"github.com/freetocompute/mindboard/pkg/repositories"
	"github.com/freetocompute/mindboard/pkg/signup"
	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

// SignInPage is where anonymous visitors of the board page are sent.
const SignInPage = "/auth.html"

// Options carries everything the board needs that does not come from the
// database.
type Options struct {
	RootKey       []byte
	Location      string
	AdminCookie   string
	UserCookie    string
	VisitorCookie string
	SecureCookie  bool

	AdminUsername        string
	AdminPassword        string
	SuperModerator       string
	InviteCode           string
	RequireVerifiedGmail bool

	FrontendURL    string
	AllowedOrigins []string
	StaticDir      string
	RequestLogger  bool
	Debug          bool
}

func OptionsFromConfig() Options {
	rootKey := []byte(viper.GetString(configkey.SessionRootKey))
	if len(rootKey) == 0 {
		logrus.Warnf("%s is not set, sessions will not survive a restart", configkey.SessionRootKey)
		rootKey = make([]byte, 32)
		if _, err := rand.Read(rootKey); err != nil {
			panic(err)
		}
	}

	return Options{
		RootKey:              rootKey,
		Location:             viper.GetString(configkey.SessionLocation),
		AdminCookie:          config.MustGetString(configkey.SessionAdminCookie),
		UserCookie:           config.MustGetString(configkey.SessionUserCookie),
		VisitorCookie:        config.MustGetString(configkey.SessionVisitorCookie),
		SecureCookie:         viper.GetBool(configkey.SessionSecureCookie),
		AdminUsername:        config.MustGetString(configkey.AdminUsername),
		AdminPassword:        config.MustGetString(configkey.AdminPassword),
		SuperModerator:       viper.GetString(configkey.SuperModerator),
		InviteCode:           viper.GetString(configkey.AdminInviteCode),
		RequireVerifiedGmail: viper.GetBool(configkey.SignupRequireVerifiedGmail),
		FrontendURL:          viper.GetString(configkey.FrontendURL),
		AllowedOrigins:       viper.GetStringSlice(configkey.AllowedOrigins),
		StaticDir:            viper.GetString(configkey.StaticDir),
		RequestLogger:        viper.GetBool(configkey.RequestLogger),
		Debug:                viper.GetBool(configkey.DebugMode),
	}
}

type Server struct {
	engine *gin.Engine
	port   int
	db     *gorm.DB
	opts   Options

	authn      *auth.Authenticator
	guard      *middleware.Guard
	signups    *signup.Workflow
	moderation *moderation.Service
	feed       *feed.Service
	recovery   *recovery.Service
}

// NewServer wires the services over db, creates the bootstrap owner and
// registers every route.
func NewServer(db *gorm.DB, opts Options) (*Server, error) {
	repos := repositories.New(db)
	authn := auth.NewAuthenticator(repos, opts.RootKey, opts.Location)

	if err := auth.EnsureOwner(repos, opts.AdminUsername, opts.AdminPassword, opts.SuperModerator); err != nil {
		return nil, err
	}
	if removed, err := authn.PurgeSessions(); err != nil {
		logrus.Error(err)
	} else if removed > 0 {
		logrus.Infof("Removed %d stale sessions", removed)
	}

	s := &Server{
		db:         db,
		opts:       opts,
		authn:      authn,
		guard:      middleware.NewGuard(authn, opts.AdminCookie, opts.UserCookie),
		signups:    signup.NewWorkflow(repos, opts.RequireVerifiedGmail),
		moderation: moderation.NewService(repos, authn, opts.SuperModerator, opts.InviteCode),
		feed:       feed.NewService(repos),
		recovery:   recovery.NewService(repos, opts.FrontendURL),
	}

	var r *gin.Engine
	if opts.Debug {
		logrus.Info("Debug mode enabled")
		r = gin.Default()
	} else {
		r = gin.New()
		r.Use(gin.Recovery())
	}
	if opts.RequestLogger {
		r.Use(middleware.RequestLoggerMiddleware())
	}
	r.Use(middleware.CORS(opts.AllowedOrigins))

	if opts.StaticDir != "" {
		logrus.Infof("Serving static files from %s", opts.StaticDir)
		r.Use(s.guard.RedirectAnonymous(SignInPage, "/", "/index.html"))
		r.Use(static.Serve("/", static.LocalFile(opts.StaticDir, true)))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, &responses.Envelope{Success: false, Error: "Not found"})
	})

	s.SetupEndpoints(r)
	s.engine = r
	return s, nil
}

func (s *Server) Init() {
	config.LoadConfig()
	config.ConfigureLogging()
	if !viper.GetBool(configkey.DebugMode) {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.CreateDatabase()
	if err != nil {
		logrus.Fatalf("could not open database: %s", err)
	}

	server, err := NewServer(db, OptionsFromConfig())
	if err != nil {
		logrus.Fatalf("could not start server: %s", err)
	}

	*s = *server
	s.port = viper.GetInt(configkey.ServerPort)
}

func (s *Server) Run() {
	logrus.Infof("Listening on port %d", s.port)
	if err := s.engine.Run(fmt.Sprintf(":%d", s.port)); err != nil {
		logrus.Fatal(err)
	}
}

func (s *Server) Handler() http.Handler {
	return s.engine
}
