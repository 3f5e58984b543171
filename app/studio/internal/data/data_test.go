package data

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/report_studio/app/studio/internal/conf"
)

func TestNewData_InMemoryWhenUnconfigured(t *testing.T) {
	for _, c := range []*conf.Data{nil, {}, {Database: &conf.Database{Driver: "postgres"}}} {
		d, cleanup, err := NewData(c, log.DefaultLogger)
		require.NoError(t, err)
		assert.Nil(t, d.db)
		cleanup()
	}
}

func TestInitSchema(t *testing.T) {
	d, mock := newMockData(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS reports").WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, initSchema(d.db))
	assert.NoError(t, mock.ExpectationsWereMet())
}
