package db

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/medbook/clinic-app/models"
)

// Re-seeding must not reset a role whose grants were edited at runtime:
// once the role holds any permissions, grant leaves it alone.
func TestGrantKeepsExistingRoleGrants(t *testing.T) {
	mock := mockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "roles"`).
		WithArgs(models.RoleDoctor, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(2, models.RoleDoctor))
	mock.ExpectQuery(`SELECT count`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	grant(models.RoleDoctor, func(*models.Permission) bool { return true })

	// No permission listing, no association writes.
	assert.NoError(t, mock.ExpectationsWereMet())
}
