package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"toutouchic-api/core/clock"
	"toutouchic-api/core/config"
	"toutouchic-api/core/logger"
	"toutouchic-api/core/middleware"
	"toutouchic-api/modules/appointment"
	appointmentrepo "toutouchic-api/modules/appointment/repository"
	"toutouchic-api/modules/auth"
	authservice "toutouchic-api/modules/auth/service"
	calservice "toutouchic-api/modules/calendar/service"
	"toutouchic-api/modules/contact"
	notifservice "toutouchic-api/modules/notification/service"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 10 * time.Second

// Run builds the application from configuration, wires the modules and
// serves until interrupted.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	loc := cfg.Location()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.Server.FrontendURL},
		AllowCredentials: true,
	}))

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Serveur backend Toutouchic actif!"})
	})

	repo, err := appointmentrepo.NewAppointmentRepository(cfg.Salon.StorePath)
	if err != nil {
		return fmt.Errorf("open appointment store: %w", err)
	}

	clk := clock.NewSystem()
	sender := notifservice.NewSMTPSender(cfg.Email.Host, cfg.Email.Port, cfg.Email.From)
	notifSvc := notifservice.NewNotificationService(sender, cfg.Email, loc)
	calendarSvc := calservice.NewGoogleCalendarService(cfg.Calendar, loc)
	authSvc := authservice.NewAuthService(cfg.Auth.JWTSecret, cfg.Auth.AdminPasswordHash, clk)
	mw := middleware.NewMiddleware(authSvc)

	auth.Init(e, authSvc)
	contact.Init(e, notifSvc)
	appointment.Init(e, repo, calendarSvc, notifSvc, mw, clk, loc)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server:Run:Listening", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("Server:Run:Shutdown", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(ctx)
}
