package webserver

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Devstep613/doshihardware/internal/app"
)

const appContextKey = "doshi_app"

type WebServer struct {
	appctx app.AppContext
	root   *echo.Echo
	api    *echo.Group
	pub    *echo.Group
}

var server *WebServer

// Init builds the global web server instance. Route registration helpers
// (ApiGET etc.) require Init to have been called first.
func Init(appctx app.AppContext) *WebServer {
	server = New(appctx)
	return server
}

func New(appctx app.AppContext) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = NewJSONSerializer()
	e.Validator = NewValidator()

	e.Use(middleware.Recover())
	e.Use(injectAppContext(appctx))
	e.Use(requestLogger())
	if appctx.Config().Web.CorsAll {
		e.Use(middleware.CORS())
	}

	ws := &WebServer{appctx: appctx, root: e}
	ws.pub = e.Group("/public")
	ws.api = e.Group("/api", echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(appctx.Config().Web.Secret),
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Path(), "/api/login")
		},
	}))
	return ws
}

// injectAppContext makes the application handle available to every handler
// through the echo context.
func injectAppContext(appctx app.AppContext) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(appContextKey, appctx)
			return next(c)
		}
	}
}

func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			zap.L().Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
				zap.String("remote", c.RealIP()),
			)
			return nil
		}
	}
}

// GetApp returns the application context bound to the request.
func GetApp(c echo.Context) app.AppContext {
	return c.Get(appContextKey).(app.AppContext)
}

// SetApp binds the application context to a request the way the middleware
// does. Handler tests use it to run handlers without a full server.
func SetApp(c echo.Context, appctx app.AppContext) {
	c.Set(appContextKey, appctx)
}

// GetDB returns the request-scoped database handle.
func GetDB(c echo.Context) *gorm.DB {
	return GetApp(c).DB()
}

func (ws *WebServer) Echo() *echo.Echo {
	return ws.root
}

// Start runs the HTTP listener until the process exits.
func (ws *WebServer) Start() error {
	cfg := ws.appctx.Config().Web
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	zap.L().Info("starting web server", zap.String("listen", addr))
	err := ws.root.Start(addr)
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func Listen() error {
	return server.Start()
}

// Route registration helpers in the style the API packages expect.

func ApiGET(path string, h echo.HandlerFunc)    { server.api.GET(path, h) }
func ApiPOST(path string, h echo.HandlerFunc)   { server.api.POST(path, h) }
func ApiPUT(path string, h echo.HandlerFunc)    { server.api.PUT(path, h) }
func ApiDELETE(path string, h echo.HandlerFunc) { server.api.DELETE(path, h) }

func PubGET(path string, h echo.HandlerFunc)  { server.pub.GET(path, h) }
func PubPOST(path string, h echo.HandlerFunc) { server.pub.POST(path, h) }
