package repositories

// RepositoryProvider groups the repository implementations handed to the
// service container at startup.
type RepositoryProvider struct {
	Closing  ClosingRepositoryFacade
	Settings SettingsRepository
}
