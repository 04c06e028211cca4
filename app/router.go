// Package app wires every endpoint, middleware and dependency together.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"goit/contacts-api/app/auth"
	"goit/contacts-api/app/contact"
	"goit/contacts-api/app/root"
	"goit/contacts-api/app/user"
	"goit/contacts-api/db"
	"goit/contacts-api/internal"
	authn "goit/contacts-api/internal/auth"
	"goit/contacts-api/internal/cache"
	"goit/contacts-api/internal/model"
	"goit/contacts-api/internal/service"
	"goit/contacts-api/internal/storage"
	"goit/contacts-api/internal/store"
	"goit/contacts-api/pkg/middleware"

	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

func NewRouter() (*gin.Engine, error) {
	d := &internal.Deps{}

	makeLogger()

	database, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	d.DB = database
	d.Users = store.NewUserStore(database)
	d.Contacts = store.NewContactStore(database)

	redisClient, err := cache.NewRedisClient(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis, %w", err)
	}
	d.Cache = cache.NewUserCache(redisClient)

	d.Tokens, err = authn.NewTokenManager(
		viper.GetString("jwt.secret"),
		viper.GetString("jwt.algorithm"),
	)
	if err != nil {
		return nil, err
	}

	if viper.GetString("aws.bucket") != "" {
		s3, err := storage.NewS3()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 client, %w", err)
		}
		d.S3 = s3
	} else {
		zap.L().Warn("No S3 bucket configured, avatar uploads are disabled")
	}

	router := gin.New()

	origins := strings.Split(viper.GetString("host.cors"), ",")

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true

	rateLimit := viper.GetInt("security.rate_limit")

	resolver := authn.NewUserResolver(d.Tokens, d.Cache, d.Users)
	authed := middleware.NewAuthMiddleware(resolver)
	admin := middleware.NewRoleMiddleware(model.RoleAdmin)
	rateLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: rateLimit,
		Burst:             rateLimit * 2,
		CleanupInterval:   time.Second,
	})

	m := router.Group("/api", rateLimiter)
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		m.HEAD("/heartbeat", root.Heartbeat)

		// GET /api/healthchecker	-> Checks the database connection
		m.GET("/healthchecker", func(c *gin.Context) { root.Healthchecker(c, d) })
	}

	a := m.Group("/auth", middleware.BodySizeLimiter(1<<20))
	{
		// POST /api/auth/signup 	-> Registers a new user and mails a confirmation link
		a.POST("/signup", func(c *gin.Context) { auth.Signup(c, d) })

		// POST /api/auth/login 	-> Logs in a user and returns an access/refresh token pair
		a.POST("/login", func(c *gin.Context) { auth.Login(c, d) })

		// GET /api/auth/refresh_token	-> Rotates a refresh token into a fresh pair
		a.GET("/refresh_token", func(c *gin.Context) { auth.Refresh(c, d) })

		// GET /api/auth/confirmed_email/:token -> Confirms an email address
		a.GET("/confirmed_email/:token", func(c *gin.Context) { auth.Confirm(c, d) })

		// POST /api/auth/request_email	-> Resends the confirmation mail
		a.POST("/request_email", func(c *gin.Context) { auth.Resend(c, d) })
	}

	u := m.Group("/users", authed)
	{
		// GET /api/users/me		-> Returns the current user
		u.GET("/me", func(c *gin.Context) { user.Me(c, d) })

		// PATCH /api/users/avatar	-> Uploads a new avatar image
		u.PATCH("/avatar", middleware.BodySizeLimiter(viper.GetInt64("avatar.max_size")),
			func(c *gin.Context) { user.AvatarUpdate(c, d) })
	}

	ct := m.Group("/contacts", authed, middleware.BodySizeLimiter(1<<20))
	{
		// GET /api/contacts		-> Returns the user's contacts in bulk
		ct.GET("", func(c *gin.Context) { contact.FetchBulk(c, d) })

		// GET /api/contacts/all	-> Returns everyone's contacts (admin)
		ct.GET("/all", admin, func(c *gin.Context) { contact.FetchAll(c, d) })

		// GET /api/contacts/search	-> Searches the user's contacts
		ct.GET("/search", func(c *gin.Context) { contact.Search(c, d) })

		// GET /api/contacts/birthdays	-> Lists upcoming birthdays within a week
		ct.GET("/birthdays", func(c *gin.Context) { contact.Birthdays(c, d) })

		// GET /api/contacts/:id	-> Returns one contact if the user owns it
		ct.GET("/:id", func(c *gin.Context) { contact.Fetch(c, d) })

		// POST /api/contacts		-> Creates a new contact
		ct.POST("", func(c *gin.Context) { contact.Create(c, d) })

		// PUT /api/contacts/:id	-> Updates a contact owned by the user
		ct.PUT("/:id", func(c *gin.Context) { contact.Edit(c, d) })

		// DELETE /api/contacts/:id	-> Deletes a contact owned by the user
		ct.DELETE("/:id", func(c *gin.Context) { contact.Delete(c, d) })
	}

	// Unconfirmed accounts have a week to verify, so sweeping daily is enough
	service.AccountCleanup(time.Hour*24, d.Users)

	return router, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}
