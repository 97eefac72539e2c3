package pgsql

import (
	portsrepo "github.com/Rodfox31/cierre-caja-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		Closing:  newPgxClosingRepository(dbPool),
		Settings: newPgxSettingsRepository(dbPool),
	}
}
