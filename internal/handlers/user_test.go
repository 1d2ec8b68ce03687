package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RamadeviRamkumar/Veeras-Login/internal/models"
)

func authHeader(t *testing.T, env *testEnv) map[string]string {
	t.Helper()

	body := env.login(t, testPhone)
	return map[string]string{"Authorization": "Bearer " + body["token"].(string)}
}

func TestUserRoutesRequireAuth(t *testing.T) {
	env := newTestEnv(t)

	recorder := env.request(t, http.MethodGet, "/api/user", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = env.request(t, http.MethodGet, "/api/user", nil,
		map[string]string{"Authorization": "Bearer not-a-token"})
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestUserList(t *testing.T) {
	env := newTestEnv(t)
	header := authHeader(t, env)

	recorder := env.request(t, http.MethodGet, "/api/user", nil, header)
	require.Equal(t, http.StatusOK, recorder.Code)

	body := decode(t, recorder)
	assert.Equal(t, "Success", body["status"])
	data, ok := body["data"].([]interface{})
	require.True(t, ok)
	assert.Len(t, data, 1)
}

func TestUserViewByPhone(t *testing.T) {
	env := newTestEnv(t)
	header := authHeader(t, env)

	recorder := env.request(t, http.MethodGet, "/api/user/"+testPhone, nil, header)
	require.Equal(t, http.StatusOK, recorder.Code)

	body := decode(t, recorder)
	record := body["data"].(map[string]interface{})
	assert.Equal(t, testPhone, record["phoneNumber"])
}

func TestUserViewUnknownPhone(t *testing.T) {
	env := newTestEnv(t)
	header := authHeader(t, env)

	recorder := env.request(t, http.MethodGet, "/api/user/+19990000000", nil, header)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestUserUpdateFields(t *testing.T) {
	env := newTestEnv(t)
	header := authHeader(t, env)

	recorder := env.request(t, http.MethodPatch, "/api/user/"+testPhone,
		gin.H{"userName": "Ramya"}, header)
	require.Equal(t, http.StatusOK, recorder.Code)

	var user models.User
	require.NoError(t, env.db.Where("phone_number = ?", testPhone).First(&user).Error)
	assert.Equal(t, "Ramya", user.UserName)
}

func TestUserDelete(t *testing.T) {
	env := newTestEnv(t)
	header := authHeader(t, env)

	recorder := env.request(t, http.MethodDelete, "/api/user/"+testPhone, nil, header)
	require.Equal(t, http.StatusOK, recorder.Code)

	var count int64
	env.db.Model(&models.User{}).Where("phone_number = ?", testPhone).Count(&count)
	assert.Equal(t, int64(0), count)

	recorder = env.request(t, http.MethodDelete, "/api/user/"+testPhone, nil, header)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
