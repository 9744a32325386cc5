package httpapp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	appmiddleware "taxblog/internal/middleware"
	httprouters "taxblog/internal/transport/http"

	"github.com/arl/statsviz"
	"github.com/go-playground/validator/v10"
	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

type Server struct {
	m       *http.ServeMux
	log     *slog.Logger
	e       *echo.Echo
	routers *httprouters.Routers
	env     string
	host    string
	port    string
	token   string
}

func New(log *slog.Logger, env, token, sessionSecret, host, port string, routers *httprouters.Routers) *Server {
	e := echo.New()
	e.HideBanner = true

	validate := validator.New()
	e.Validator = &CustomValidator{validator: validate}

	e.Use(session.Middleware(sessions.NewCookieStore([]byte(sessionSecret))))

	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(appmiddleware.PrometheusMetrics)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("URI", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote ip", v.RemoteIP),
			)

			return nil
		},
	}))

	mux := http.NewServeMux()
	if err := statsviz.Register(mux); err != nil {
		log.Info("statsviz start with error", slog.Any("error:", err.Error()))
	}

	return &Server{
		m:       mux,
		log:     log,
		e:       e,
		routers: routers,
		env:     env,
		host:    host,
		port:    port,
		token:   token,
	}
}

// Echo exposes the underlying router, used by the tests.
func (s *Server) Echo() *echo.Echo {
	return s.e
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info(op, slog.String("Start", "server"))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(fmt.Sprintf(":%s", s.port)); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "http.Server.Stop"

	optCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	s.log.Info("stopping", op, "http server")

	if err := s.e.Shutdown(optCtx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefuly: %w", op, err)
	}

	return nil
}

func (s *Server) BuildRouters() {
	api := s.e.Group("/api")
	{
		api.GET("", s.routers.Health)

		api.POST("/register", s.routers.Register)
		api.POST("/login", s.routers.Login)

		// public reading surface
		api.GET("/posts", s.routers.ListPublishedPosts)
		api.GET("/posts/category/:category", s.routers.ListPostsByCategory)
		api.GET("/posts/:slug", s.routers.ReadPost)

		api.GET("/seo/guidelines", s.routers.ListGuidelines)
		api.GET("/seo/guidelines/active", s.routers.GetActiveGuideline)

		aiGroup := api.Group("/ai")
		aiGroup.Use(echojwt.WithConfig(echojwt.Config{
			SigningKey: []byte(s.token),
		}))
		{
			aiGroup.POST("/generate", s.routers.GenerateContent)
			if s.env != "prod" {
				aiGroup.GET("/test", s.routers.TestConnection)
			}
		}

		adminGroup := api.Group("/admin")
		adminGroup.Use(echojwt.WithConfig(echojwt.Config{
			SigningKey: []byte(s.token),
		}))
		adminGroup.Use(s.adminOnlyMiddleware)
		{
			adminGroup.GET("/posts", s.routers.ListAllPosts)
			adminGroup.POST("/posts", s.routers.CreatePost)
			adminGroup.GET("/posts/:post_id", s.routers.GetPost)
			adminGroup.PUT("/posts/:post_id", s.routers.UpdatePost)
			adminGroup.DELETE("/posts/:post_id", s.routers.DeletePost)

			adminGroup.GET("/scheduled", s.routers.ListScheduledPosts)
			adminGroup.POST("/scheduled/publish-due", s.routers.PublishDuePosts)
			adminGroup.DELETE("/scheduled/:scheduled_id", s.routers.DeleteScheduledPost)
			adminGroup.POST("/scheduled/:scheduled_id/publish", s.routers.PublishScheduledPost)

			adminGroup.POST("/seo/guidelines", s.routers.CreateGuideline)
			adminGroup.PUT("/seo/guidelines/:guideline_id", s.routers.UpdateGuideline)
			adminGroup.POST("/seo/guidelines/:guideline_id/activate", s.routers.ActivateGuideline)

			adminGroup.GET("/templates", s.routers.ListTemplates)
			adminGroup.POST("/templates", s.routers.CreateTemplate)
			adminGroup.GET("/templates/:template_id", s.routers.GetTemplate)
			adminGroup.PUT("/templates/:template_id", s.routers.UpdateTemplate)

			adminGroup.GET("/bulk-jobs", s.routers.ListBulkJobs)
			adminGroup.POST("/bulk-jobs", s.routers.CreateBulkJob)
			adminGroup.GET("/bulk-jobs/:job_id", s.routers.GetBulkJob)
			adminGroup.DELETE("/bulk-jobs/:job_id", s.routers.DeleteBulkJob)
		}

		// unknown API paths answer JSON, not the echo HTML 404
		api.Any("/*", s.routers.NotFound)
	}

	s.e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	debug := s.e.Group("/debug")
	{
		debug.GET("/statsviz/", echo.WrapHandler(s.m))
		debug.GET("/statsviz/*", echo.WrapHandler(s.m))
	}

	swagger := s.e.Group("/swag")
	{
		swagger.GET("/swagger/*", echoSwagger.WrapHandler)
	}
}

func (s *Server) adminOnlyMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := c.Get("user").(*jwtgo.Token)
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		}

		claims, ok := token.Claims.(jwtgo.MapClaims)
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		}

		if isAdmin, _ := claims["is_admin"].(bool); !isAdmin {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "admin access required"})
		}

		return next(c)
	}
}
