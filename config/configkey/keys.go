package configkey

const (
	LogLevel      = "log.level"
	DebugMode     = "debug"
	RequestLogger = "requestlogger"

	ServerPort     = "server.port"
	StaticDir      = "static.dir"
	FrontendURL    = "frontend.url"
	AllowedOrigins = "cors.origins"

	DatabaseDriver   = "database.driver"
	DatabaseURL      = "database.url"
	DatabaseUsername = "database.username"
	DatabaseDatabase = "database.database"
	DatabaseHost     = "database.host"
	DatabasePort     = "database.port"
	DatabaseSSLMode  = "database.sslmode"
	DatabaseTimezone = "database.timezone"
	DatabasePassword = "database.password"
	DatabasePath     = "database.path"

	SessionRootKey       = "session.root.key"
	SessionLocation      = "session.location"
	SessionAdminCookie   = "session.admin.cookie"
	SessionUserCookie    = "session.user.cookie"
	SessionVisitorCookie = "session.visitor.cookie"
	SessionSecureCookie  = "session.secure"

	AdminUsername   = "admin.username"
	AdminPassword   = "admin.password"
	AdminInviteCode = "admin.invitecode"

	SuperModerator = "moderation.supermoderator"

	SignupRequireVerifiedGmail = "signup.requireverifiedgmail"

	MinioAccessKey     = "minio.access.key"
	MinioSecretKey     = "minio.secret.key"
	MinioHost          = "minio.host"
	MinioSecure        = "minio.secure"
	MinioArchiveBucket = "minio.archive.bucket"

	AdminCLIServerURL = "admin.server.url"
)
