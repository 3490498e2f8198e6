package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/talentbridge/job-portal/docs"
	"github.com/talentbridge/job-portal/internal/api/handler"
	"github.com/talentbridge/job-portal/internal/api/middleware"
	"github.com/talentbridge/job-portal/internal/core/domain"
	"github.com/talentbridge/job-portal/internal/core/ports"
)

// Dependencies is everything the router hands to handlers and middleware.
type Dependencies struct {
	DB       *mongo.Database
	Redis    *redis.Client
	Tokens   handler.Tokens
	Sessions ports.SessionService
	Portal   ports.PortalService
	Storage  ports.ObjectStorage
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("portal"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Sessions, d.Tokens)
	profileHandler := handler.NewProfileHandler(d.Portal, d.Sessions)
	jobHandler := handler.NewJobHandler(d.Portal)
	uploadHandler := handler.NewUploadHandler(d.Portal, d.Storage)
	dashboardHandler := handler.NewDashboardHandler(d.Portal)

	requireAuth := middleware.Auth(d.Tokens)
	anyProfile := middleware.Guard(d.Sessions)
	companyOnly := middleware.Guard(d.Sessions, domain.RoleCompany)
	vendorOnly := middleware.Guard(d.Sessions, domain.RoleVendor)
	jobSeekerOnly := middleware.Guard(d.Sessions, domain.RoleJobSeeker)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/signup", authHandler.SignUp)
	auth.POST("/login", authHandler.SignIn)
	auth.POST("/confirm", authHandler.Confirm)
	auth.POST("/logout", authHandler.SignOut)
	auth.POST("/refresh", authHandler.Refresh, requireAuth)
	auth.GET("/me", authHandler.Me, middleware.OptionalAuth(d.Tokens))

	// --- Portal routes ---
	v1 := e.Group("/v1", requireAuth)
	v1.PATCH("/profile", profileHandler.UpdateProfile, anyProfile)
	v1.POST("/profile/refresh", profileHandler.Refresh)
	v1.PUT("/company", profileHandler.UpdateCompany, companyOnly)
	v1.PUT("/vendor", profileHandler.UpdateVendor, vendorOnly)
	v1.PUT("/job-seeker", profileHandler.UpdateJobSeeker, jobSeekerOnly)

	v1.POST("/jobs", jobHandler.Create, companyOnly)
	v1.GET("/jobs", jobHandler.List, companyOnly)
	v1.PATCH("/jobs/:id", jobHandler.Update, companyOnly)
	v1.DELETE("/jobs/:id", jobHandler.Delete, companyOnly)

	v1.POST("/uploads/:bucket", uploadHandler.Upload, anyProfile)
	v1.DELETE("/uploads/:bucket/*", uploadHandler.Delete, anyProfile)

	v1.GET("/dashboard/company", dashboardHandler.Company, companyOnly)
	v1.GET("/dashboard/job-seeker", dashboardHandler.JobSeeker, jobSeekerOnly)
	v1.GET("/vendors", dashboardHandler.Vendors, companyOnly)

	// Public file URLs.
	e.GET("/storage/:bucket/*", uploadHandler.Serve)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.DB, d.Redis, d.Sessions)

	e.GET("/health", healthHandler.Liveness)            // liveness: is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: are dependencies up?

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
