package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"recipebook_backend/internal/models"
	"recipebook_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser_Success(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	email := fmt.Sprintf("newuser_%d@Example.COM", time.Now().UnixNano())
	body := map[string]interface{}{
		"email":    email,
		"password": "testpass123",
		"name":     "New User",
	}

	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/user/create", "", body)

	assert.Equal(t, http.StatusCreated, res.StatusCode, "Response: "+bodyStr)

	var resp struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "New User", resp.Name)

	// The stored email is fully lower-cased.
	var user models.User
	err := ts.DB.Where("id = ?", resp.ID).First(&user).Error
	require.NoError(t, err)
	assert.Equal(t, resp.Email, user.Email)
	assert.NotContains(t, user.Email, "Example")
	assert.NotContains(t, bodyStr, "password")
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	email := fmt.Sprintf("dup_%d@example.com", time.Now().UnixNano())
	body := map[string]interface{}{
		"email":    email,
		"password": "testpass123",
	}

	res, _ := ts.SendRequest(t, "POST", "/api/v1/user/create", "", body)
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/user/create", "", body)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "already exists")
}

func TestCreateUser_ShortPassword(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	body := map[string]interface{}{
		"email":    fmt.Sprintf("short_%d@example.com", time.Now().UnixNano()),
		"password": "pw",
	}

	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/user/create", "", body)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "password")
}

func TestCreateUser_EmptyEmail(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	body := map[string]interface{}{
		"email":    "",
		"password": "testpass123",
	}

	res, _ := ts.SendRequest(t, "POST", "/api/v1/user/create", "", body)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestToken_ReusedAcrossLogins(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	email := fmt.Sprintf("tokenreuse_%d@example.com", time.Now().UnixNano())
	token1, _ := helpers.CreateAndLoginUser(t, ts, "Token User", email, "password123")

	// A second exchange returns the same key, not a fresh one.
	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/user/token", "",
		map[string]interface{}{"email": email, "password": "password123"})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &resp))
	assert.Equal(t, token1, resp.Token)
	assert.Len(t, resp.Token, 40)
}

func TestToken_BadCredentials(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	email := fmt.Sprintf("badcreds_%d@example.com", time.Now().UnixNano())
	helpers.CreateAndLoginUser(t, ts, "Bad Creds", email, "password123")

	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/user/token", "",
		map[string]interface{}{"email": email, "password": "wrongpass"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "Unable to authenticate")
	assert.NotContains(t, bodyStr, "token\":")
}

func TestToken_UnknownUser(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	res, _ := ts.SendRequest(t, "POST", "/api/v1/user/token", "",
		map[string]interface{}{"email": "nobody@example.com", "password": "password123"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestToken_UppercaseEmailLogin(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	email := fmt.Sprintf("casing_%d@example.com", time.Now().UnixNano())
	helpers.CreateAndLoginUser(t, ts, "Casing User", email, "password123")

	// The exchange normalizes the submitted email before lookup.
	res, _ := ts.SendRequest(t, "POST", "/api/v1/user/token", "",
		map[string]interface{}{"email": strings.ToUpper(email), "password": "password123"})
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestMe_Get(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	token, user := helpers.LoginAs(t, ts, "Profile")

	res, bodyStr := ts.SendRequest(t, "GET", "/api/v1/user/me", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, user.Email)
	assert.Contains(t, bodyStr, "Profile")
}

func TestMe_Unauthenticated(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	res, _ := ts.SendRequest(t, "GET", "/api/v1/user/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, _ = ts.SendRequest(t, "GET", "/api/v1/user/me", "not-a-real-token", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestMe_PostNotAllowed(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	token, _ := helpers.LoginAs(t, ts, "Poster")

	res, _ := ts.SendRequest(t, "POST", "/api/v1/user/me", token,
		map[string]interface{}{"name": "Nope"})
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
}

func TestMe_Patch(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	email := fmt.Sprintf("patchme_%d@example.com", time.Now().UnixNano())
	token, _ := helpers.CreateAndLoginUser(t, ts, "Old Name", email, "password123")

	res, bodyStr := ts.SendRequest(t, "PATCH", "/api/v1/user/me", token,
		map[string]interface{}{"name": "New Name", "password": "newpassword"})
	assert.Equal(t, http.StatusOK, res.StatusCode, "Response: "+bodyStr)
	assert.Contains(t, bodyStr, "New Name")

	// The new password works and the token survives.
	res, _ = ts.SendRequest(t, "POST", "/api/v1/user/token", "",
		map[string]interface{}{"email": email, "password": "newpassword"})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = ts.SendRequest(t, "GET", "/api/v1/user/me", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestMe_PatchShortPassword(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	token, _ := helpers.LoginAs(t, ts, "Shorty")

	res, _ := ts.SendRequest(t, "PATCH", "/api/v1/user/me", token,
		map[string]interface{}{"password": "pw"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}
