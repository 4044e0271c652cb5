package e2e_test

import "github.com/metinatakli/cinescope-autotests/internal/domain"

const (
	dbName      = "cinescope"
	dbUser      = "test_user"
	dbPassword  = "test_password"
	dbImageName = "postgres:17-alpine"

	migrationsSource = "file://../../migrations"

	seedMovies     = 30
	missingMovieID = 999999

	msgMovieNotFound = "Фильм не найден"
	msgForbidden     = "Forbidden resource"
)

// stubSuperAdmin is seeded into the stand-in when no account is configured.
var stubSuperAdmin = domain.Credentials{
	Email:    "superadmin@cinescope.test",
	Password: "SuperAdm1n",
}
