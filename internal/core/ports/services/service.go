package services

// ServiceContainer holds instances of all the application services. Handlers
// receive this at route registration time.
type ServiceContainer struct {
	Closing  ClosingSvcFacade
	Settings SettingsSvcFacade
	Auth     AuthSvcFacade
}
