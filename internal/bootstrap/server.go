package bootstrap

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	httpecho "github.com/mohammadpnp/collaborators-api/internal/interfaces/http/echo"
)

type ServerConfig struct {
	BodyLimit string
	Login     httpecho.RateLimitConfig
}

func NewHTTPServer(cfg ServerConfig, handlers httpecho.Handlers, tokens httpecho.TokenParser, reg *prometheus.Registry, logger *logrus.Logger) *echo.Echo {
	server := echo.New()
	server.HideBanner = true
	server.HidePort = true
	server.Logger.SetOutput(logger.Writer())
	server.Validator = httpecho.NewRequestValidator()

	if cfg.BodyLimit == "" {
		cfg.BodyLimit = "10M"
	}

	server.Use(middleware.Recover())
	server.Use(middleware.RequestID())
	server.Use(requestLogger(logger))
	server.Use(middleware.BodyLimit(cfg.BodyLimit))

	httpecho.RegisterRoutes(server, handlers, httpecho.BearerAuth(tokens), httpecho.RateLimiter(cfg.Login))

	server.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	server.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	return server
}

func requestLogger(logger *logrus.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"request_id": v.RequestID,
				"remote_ip":  v.RemoteIP,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request failed")
				return nil
			}
			entry.Info("request")
			return nil
		},
	})
}
