package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"

	"toiletfinder/internal/auth"
	"toiletfinder/internal/handler"
	"toiletfinder/internal/logging"
	appmiddleware "toiletfinder/internal/middleware"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	logger *logrus.Logger,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	authHandler *handler.AuthHandler,
	toiletHandler *handler.ToiletHandler,
	apiHandler *handler.APIHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(logging.RequestLogger(logger))
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Every page resolves the actor; handlers decide whether one is required.
	web := e.Group("", appmiddleware.Actor(jwtService, tokenStore, logger))

	web.GET("/", authHandler.Index)
	web.GET("/signup", authHandler.SignupPage)
	web.POST("/signup", authHandler.Signup)
	web.GET("/login", authHandler.LoginPage)
	web.POST("/login", authHandler.Login)
	web.GET("/logout", authHandler.Logout)

	web.GET("/main", toiletHandler.Main)
	web.POST("/add_toilet", toiletHandler.AddToilet)
	web.POST("/add_review/:toilet_id", toiletHandler.AddReview)

	api := web.Group("/api")

	api.POST("/auth/signup", authHandler.APISignup)
	api.POST("/auth/login", authHandler.APILogin)
	api.POST("/auth/logout", authHandler.APILogout)
	api.GET("/me", authHandler.Me)

	api.GET("/toilets", apiHandler.ListToilets)
	api.POST("/toilets", apiHandler.CreateToilet)
	api.GET("/toilet/:id", apiHandler.GetToilet)
	api.POST("/toilet/:id/reviews", apiHandler.CreateReview)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
