package api

import (
	"errors"
	"net/http"

	"github.com/quantashield/console/internal/api/console"
	"github.com/quantashield/console/internal/config"
	"github.com/quantashield/console/internal/session"
	"github.com/quantashield/console/internal/storage"
)

// Service represents the console API service
type Service struct {
	Config   *config.Config
	Storage  storage.Driver
	Sessions *session.Store
	OnLogin  func(ses *session.Session)

	console *console.Service
}

// Startup starts up the console API
func (service *Service) Startup(errs chan<- error) {
	consoleService := &console.Service{
		Config:   service.Config,
		Storage:  service.Storage,
		Sessions: service.Sessions,
		OnLogin:  service.OnLogin,
	}
	service.console = consoleService
	go func() {
		if err := consoleService.Startup(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()
}

// Shutdown shuts down the console API
func (service *Service) Shutdown() {
	if service.console != nil {
		service.console.Shutdown()
		service.console = nil
	}
}
