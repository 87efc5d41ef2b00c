package controller_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/tnqbao/gau-bucketlist-service/config"
	"github.com/tnqbao/gau-bucketlist-service/entity"
	"github.com/tnqbao/gau-bucketlist-service/http/controller"
	routes "github.com/tnqbao/gau-bucketlist-service/http/route"
	infraPkg "github.com/tnqbao/gau-bucketlist-service/infra"
	"github.com/tnqbao/gau-bucketlist-service/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

// newTestServer boots the real router over an in-memory sqlite store,
// with the optional infra (Redis, RabbitMQ, telemetry) left unset.
func newTestServer(t *testing.T) (*gin.Engine, *controller.Controller) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.User{}, &entity.Bucketlist{}, &entity.Item{}))

	cfg := &config.Config{EnvConfig: &config.EnvConfig{}}
	cfg.EnvConfig.JWT.SecretKey = testSecret
	cfg.EnvConfig.JWT.Expire = 600

	inf := &infraPkg.Infra{
		Postgres: &infraPkg.PostgresClient{DB: db},
		Logger:   infraPkg.NewStdoutLogger(),
	}

	ctrl := controller.NewController(cfg, inf, repository.InitRepository(inf))
	return routes.SetupRouter(ctrl), ctrl
}

func doRequest(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("token", token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// registerUser registers a fresh user through the API and returns the
// issued token.
func registerUser(t *testing.T, router *gin.Engine, username, password string) string {
	t.Helper()
	w := doRequest(t, router, http.MethodPost, "/api/v1/bucketlist/auth/register", "", gin.H{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, "register %s: %s", username, w.Body.String())
	token, ok := decodeBody(t, w)["auth_token"].(string)
	require.True(t, ok, "register response missing auth_token")
	require.NotEmpty(t, token)
	return token
}

// createBucketlist creates a bucketlist through the API and returns its id.
func createBucketlist(t *testing.T, router *gin.Engine, token, name string) uint {
	t.Helper()
	w := doRequest(t, router, http.MethodPost, "/api/v1/bucketlist/bucketlists", token, gin.H{"name": name})
	require.Equal(t, http.StatusCreated, w.Code, "create bucketlist %s: %s", name, w.Body.String())
	payload, ok := decodeBody(t, w)["bucketlist"].(map[string]interface{})
	require.True(t, ok, "create response missing bucketlist")
	return uint(payload["id"].(float64))
}

// createItem creates an item through the API and returns its id.
func createItem(t *testing.T, router *gin.Engine, token string, bucketlistID uint, name string) uint {
	t.Helper()
	path := fmt.Sprintf("/api/v1/bucketlist/bucketlists/%d/items", bucketlistID)
	w := doRequest(t, router, http.MethodPost, path, token, gin.H{"name": name})
	require.Equal(t, http.StatusCreated, w.Code, "create item %s: %s", name, w.Body.String())
	payload, ok := decodeBody(t, w)["item"].(map[string]interface{})
	require.True(t, ok, "create response missing item")
	return uint(payload["id"].(float64))
}

func countRows(t *testing.T, ctrl *controller.Controller, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var count int64
	tx := ctrl.Infra.Postgres.DB.Model(model)
	if query != "" {
		tx = tx.Where(query, args...)
	}
	require.NoError(t, tx.Count(&count).Error)
	return count
}
