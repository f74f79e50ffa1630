package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"agrotrack/database"
	"agrotrack/pkg/catalog"
)

type healthResp struct {
	Status struct {
		OK bool `json:"ok"`
	} `json:"status"`
	CatalogSize int            `json:"catalog_size"`
	Checks      map[string]sub `json:"checks"`
}

func call(t *testing.T, h *HealthCtrl) (int, healthResp) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)
	require.NoError(t, h.Health(c))
	var out healthResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return rec.Code, out
}

func TestHealth_OK(t *testing.T) {
	db, err := database.OpenSQLite(database.Memory, zap.NewNop())
	require.NoError(t, err)

	code, out := call(t, NewHealthCtrl(db, catalog.Default()))
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, out.Status.OK)
	assert.True(t, out.Checks["database"].OK)
	assert.True(t, out.Checks["catalog"].OK)
	assert.Equal(t, catalog.Default().Size(), out.CatalogSize)
}

func TestHealth_DatabaseDown(t *testing.T) {
	db, err := database.OpenSQLite(database.Memory, zap.NewNop())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	code, out := call(t, NewHealthCtrl(db, catalog.Default()))
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.False(t, out.Status.OK)
	assert.Contains(t, out.Checks["database"].Err, "ping")
}

func TestHealth_NilDeps(t *testing.T) {
	code, out := call(t, NewHealthCtrl(nil, nil))
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "gorm db is nil", out.Checks["database"].Err)
	assert.False(t, out.Checks["catalog"].OK)
}
