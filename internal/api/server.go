package api

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	gommonlog "github.com/labstack/gommon/log"
	"github.com/rs/zerolog"

	"catalogdash/internal/log"
)

// NewServer builds the echo instance with middleware and routes attached.
func NewServer(h *Handler, logger *log.Logger, corsOrigins []string) *echo.Echo {
	if logger == nil {
		logger = log.Nop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = JSONSerializer{}
	e.Logger.SetLevel(gommonLevel(logger.GetLevel()))

	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: corsOrigins}))
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(RequestLogger(logger.WithComponent(log.ComponentHTTP)))

	h.RegisterRoutes(e)
	return e
}

// RequestLogger writes one zerolog line per request.
func RequestLogger(logger *log.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ev := logger.Info()
			switch {
			case v.Status >= 500:
				ev = logger.Error()
			case v.Status >= 400:
				ev = logger.Warn()
			}
			if v.Error != nil {
				ev = ev.Err(v.Error)
			}
			ev.Str(log.FieldMethod, v.Method).
				Str(log.FieldPath, v.URI).
				Int(log.FieldStatusCode, v.Status).
				Dur(log.FieldDuration, v.Latency.Round(time.Microsecond)).
				Str(log.FieldClientIP, v.RemoteIP).
				Str(log.FieldRequestID, v.RequestID).
				Msg("request")
			return nil
		},
	})
}

func gommonLevel(l zerolog.Level) gommonlog.Lvl {
	switch {
	case l <= zerolog.DebugLevel:
		return gommonlog.DEBUG
	case l == zerolog.InfoLevel:
		return gommonlog.INFO
	case l == zerolog.WarnLevel:
		return gommonlog.WARN
	case l == zerolog.Disabled:
		return gommonlog.OFF
	default:
		return gommonlog.ERROR
	}
}
