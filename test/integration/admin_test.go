package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"recipebook_backend/internal/models"
	"recipebook_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdmin_RequiresStaff(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	token, _ := helpers.LoginAs(t, ts, "Civilian")

	res, _ := ts.SendRequest(t, "GET", "/api/v1/admin/users", token, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, _ = ts.SendRequest(t, "GET", "/api/v1/admin/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestAdmin_ListUsers(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	staffToken, staff := helpers.LoginAsStaff(t, ts)

	res, bodyStr := ts.SendRequest(t, "GET", "/api/v1/admin/users", staffToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, staff.Email)

	var resp struct {
		Users []struct {
			Email string `json:"email"`
		} `json:"users"`
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &resp))
	assert.GreaterOrEqual(t, resp.Total, int64(1))
	assert.NotContains(t, bodyStr, "password")
}

func TestAdmin_CreateUserWithFlags(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	staffToken, _ := helpers.LoginAsStaff(t, ts)

	email := fmt.Sprintf("promoted_%d@example.com", time.Now().UnixNano())
	body := map[string]interface{}{
		"email":    email,
		"password": "password123",
		"name":     "Promoted User",
		"is_staff": true,
	}

	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/admin/users", staffToken, body)
	assert.Equal(t, http.StatusCreated, res.StatusCode, "Response: "+bodyStr)

	var user models.User
	require.NoError(t, ts.DB.Where("email = ?", email).First(&user).Error)
	assert.True(t, user.IsStaff)
	assert.False(t, user.IsSuperuser)
}

func TestAdmin_GetAndDeleteUser(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	staffToken, _ := helpers.LoginAsStaff(t, ts)
	_, victim := helpers.LoginAs(t, ts, "Deletable")

	res, bodyStr := ts.SendRequest(t, "GET", "/api/v1/admin/users/"+victim.ID, staffToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, victim.Email)

	res, _ = ts.SendRequest(t, "DELETE", "/api/v1/admin/users/"+victim.ID, staffToken, nil)
	assert.Equal(t, http.StatusNoContent, res.StatusCode)

	// The row and its token are gone.
	var count int64
	ts.DB.Model(&models.User{}).Where("id = ?", victim.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	var tokenCount int64
	ts.DB.Model(&models.AuthToken{}).Where("user_id = ?", victim.ID).Count(&tokenCount)
	assert.Equal(t, int64(0), tokenCount)

	res, _ = ts.SendRequest(t, "GET", "/api/v1/admin/users/"+victim.ID, staffToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
