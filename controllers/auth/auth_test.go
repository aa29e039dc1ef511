package authController_test

import (
	"fmt"
	"testing"

	"skillspring/models"
	"skillspring/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup(t *testing.T) {
	app := testutil.SetupApp(t)

	resp, result := testutil.Request(t, app, "POST", "/auth/signup", "", map[string]interface{}{
		"name":     "Ada Lovelace",
		"email":    "ada@test.io",
		"password": "password123",
		"role":     "instructor",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	data := testutil.Data(t, result)
	assert.Equal(t, "instructor", data["role"])
	assert.Equal(t, "ada@test.io", data["email"])
	assert.Nil(t, data["password"])
}

func TestSignupDefaultsToStudent(t *testing.T) {
	app := testutil.SetupApp(t)

	resp, result := testutil.Request(t, app, "POST", "/auth/signup", "", map[string]interface{}{
		"name":     "Grace Hopper",
		"email":    "grace@test.io",
		"password": "password123",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "student", testutil.Data(t, result)["role"])
}

func TestSignupRejectsAdminRole(t *testing.T) {
	app := testutil.SetupApp(t)

	resp, _ := testutil.Request(t, app, "POST", "/auth/signup", "", map[string]interface{}{
		"name":     "Mallory",
		"email":    "mallory@test.io",
		"password": "password123",
		"role":     "admin",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSignupDuplicateEmail(t *testing.T) {
	app := testutil.SetupApp(t)

	body := map[string]interface{}{
		"name":     "Ada Lovelace",
		"email":    "dup@test.io",
		"password": "password123",
	}

	resp, _ := testutil.Request(t, app, "POST", "/auth/signup", "", body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, _ = testutil.Request(t, app, "POST", "/auth/signup", "", body)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	app := testutil.SetupApp(t)

	resp, _ := testutil.Request(t, app, "POST", "/auth/signup", "", map[string]interface{}{
		"name":     "Ada Lovelace",
		"email":    "login@test.io",
		"password": "password123",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, result := testutil.Request(t, app, "POST", "/auth/login", "", map[string]interface{}{
		"email":    "login@test.io",
		"password": "password123",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, testutil.Data(t, result)["token"])

	resp, _ = testutil.Request(t, app, "POST", "/auth/login", "", map[string]interface{}{
		"email":    "login@test.io",
		"password": "wrong-password",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGetProfile(t *testing.T) {
	app := testutil.SetupApp(t)

	user, token := testutil.NewUser(t, "Ada Lovelace", models.RoleStudent)

	resp, result := testutil.Request(t, app, "GET", "/user/profile", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := testutil.Data(t, result)
	assert.Equal(t, user.Email, data["email"])
	assert.Equal(t, "student", data["role"])

	// No token at all
	resp, _ = testutil.Request(t, app, "GET", "/user/profile", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGetProfileMissingRow(t *testing.T) {
	app := testutil.SetupApp(t)

	// Token for a principal whose profile row was removed mid-flight.
	user, token := testutil.NewUser(t, "Ghost", models.RoleStudent)
	testutil.RemoveUser(t, user.ID)

	resp, _ := testutil.Request(t, app, "GET", "/user/profile", token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestUpdateProfile(t *testing.T) {
	app := testutil.SetupApp(t)

	_, token := testutil.NewUser(t, "Ada Lovelace", models.RoleInstructor)

	resp, result := testutil.Request(t, app, "PUT", "/user/profile", token, map[string]interface{}{
		"bio": "Teaching analytical engines since 1843.",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Teaching analytical engines since 1843.", testutil.Data(t, result)["bio"])
}

func TestSignupValidation(t *testing.T) {
	app := testutil.SetupApp(t)

	cases := []map[string]interface{}{
		{"name": "A", "email": "a@test.io", "password": "password123"},
		{"name": "Ada", "email": "not-an-email", "password": "password123"},
		{"name": "Ada", "email": "short@test.io", "password": "short"},
	}
	for i, body := range cases {
		resp, _ := testutil.Request(t, app, "POST", "/auth/signup", "", body)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, fmt.Sprintf("case %d", i))
	}
}
