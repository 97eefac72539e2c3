package services

import (
	portsrepo "github.com/Rodfox31/cierre-caja-backend/internal/core/ports/repositories"
	portssvc "github.com/Rodfox31/cierre-caja-backend/internal/core/ports/services"
	"github.com/Rodfox31/cierre-caja-backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Settings first since the closing service needs the policy
	container.Settings = NewSettingsService(repos.Settings)
	container.Closing = NewClosingService(repos.Closing, container.Settings)
	container.Auth = NewAuthService(cfg)

	return container
}
