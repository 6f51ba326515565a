package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/finboard/backend/internal/controllers/v1"
	"github.com/finboard/backend/internal/models"
	"github.com/finboard/backend/test"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestUser(t *testing.T, u v1.UserEditable, expectedStatus ...int) v1.UserResponse {
	if u.Name == "" {
		u.Name = "Test User"
	}

	// Email and username are unique, default to random values
	if u.Email == "" {
		u.Email = uuid.NewString() + "@example.com"
	}

	if u.Username == "" {
		u.Username = uuid.NewString()
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.UserEditable{u}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/users", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.UserCreateResponse
	test.DecodeResponse(t, &r, &response)

	if r.Code == http.StatusCreated {
		return response.Data[0]
	}

	return v1.UserResponse{}
}

// TestUsersDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestUsersDBClosed() {
	tests := []struct {
		name string             // Name of the test
		test func(t *testing.T) // Code to run
	}{
		{
			"Creation fails",
			func(t *testing.T) {
				createTestUser(t, v1.UserEditable{}, http.StatusInternalServerError)
			},
		},
		{
			"GET fails",
			func(t *testing.T) {
				recorder := test.Request(t, http.MethodGet, "http://example.com/v1/users", "")
				test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

				var response v1.UserListResponse
				test.DecodeResponse(t, &recorder, &response)
				assert.Contains(t, *response.Error, models.ErrGeneral.Error())
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			tt.test(t)
		})
	}
}

// TestUsersOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestUsersOptions() {
	tests := []struct {
		name   string
		id     string // path at the users endpoint to test
		status int    // Expected HTTP status code
	}{
		{"No User with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"User exists", createTestUser(suite.T(), v1.UserEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/users", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

// TestUsersCreate verifies user creation including the uniqueness
// constraints and the default currency.
func (suite *TestSuiteStandard) TestUsersCreate() {
	user := createTestUser(suite.T(), v1.UserEditable{Name: "Jane", Email: "jane@example.com", Username: "jane"})
	require.NotNil(suite.T(), user.Data)
	assert.Equal(suite.T(), "Jane", user.Data.Name)
	assert.Equal(suite.T(), "€", user.Data.Currency, "Currency does not default correctly")

	tests := []struct {
		name  string
		user  v1.UserEditable
		error string
	}{
		{"Duplicate email", v1.UserEditable{Name: "Janet", Email: "jane@example.com", Username: "janet"}, models.ErrUserEmailNotUnique.Error()},
		{"Duplicate username", v1.UserEditable{Name: "Janet", Email: "janet@example.com", Username: "jane"}, models.ErrUserUsernameNotUnique.Error()},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/users", []v1.UserEditable{tt.user})
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var response v1.UserCreateResponse
			test.DecodeResponse(t, &r, &response)
			require.Len(t, response.Data, 1)
			assert.Equal(t, tt.error, *response.Data[0].Error)
		})
	}
}

// TestUsersCreateSeedsCategories verifies that a new user starts with the
// default categories.
func (suite *TestSuiteStandard) TestUsersCreateSeedsCategories() {
	user := createTestUser(suite.T(), v1.UserEditable{})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/categories?user=%s", user.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var categories v1.CategoryListResponse
	test.DecodeResponse(suite.T(), &r, &categories)

	assert.Len(suite.T(), categories.Data, 6, "Default categories are not seeded")

	var income int
	for _, category := range categories.Data {
		if category.Type == models.CategoryTypeIncome {
			income++
		}
	}
	assert.Equal(suite.T(), 1, income, "Exactly one default category must be an income category")
}

// TestUsersGetSingle verifies the detail endpoint for users.
func (suite *TestSuiteStandard) TestUsersGetSingle() {
	u := createTestUser(suite.T(), v1.UserEditable{})

	tests := []struct {
		name   string
		id     string
		status int
		method string
	}{
		{"GET Existing User", u.Data.ID.String(), http.StatusOK, http.MethodGet},
		{"GET ID nil", uuid.Nil.String(), http.StatusNotFound, http.MethodGet},
		{"GET Invalid ID (negative number)", "-56", http.StatusBadRequest, http.MethodGet},
		{"PATCH Non-existing User", uuid.New().String(), http.StatusNotFound, http.MethodPatch},
		{"DELETE Non-existing User", uuid.New().String(), http.StatusNotFound, http.MethodDelete},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/users/%s", tt.id), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestUsersUpdate() {
	user := createTestUser(suite.T(), v1.UserEditable{Name: "Before"})

	r := test.Request(suite.T(), http.MethodPatch, user.Data.Links.Self, map[string]any{
		"name": "After",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.UserResponse
	test.DecodeResponse(suite.T(), &r, &updated)

	assert.Equal(suite.T(), "After", updated.Data.Name)
}

func (suite *TestSuiteStandard) TestUsersDelete() {
	user := createTestUser(suite.T(), v1.UserEditable{})

	r := test.Request(suite.T(), http.MethodDelete, user.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	// The user and their seeded categories are gone
	r = test.Request(suite.T(), http.MethodGet, user.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/categories?user=%s", user.Data.ID), "")
	var categories v1.CategoryListResponse
	test.DecodeResponse(suite.T(), &r, &categories)
	assert.Len(suite.T(), categories.Data, 0)
}

// TestUsersLogin verifies the lookup by email or username.
func (suite *TestSuiteStandard) TestUsersLogin() {
	user := createTestUser(suite.T(), v1.UserEditable{Email: "login@example.com", Username: "login-user"})

	tests := []struct {
		name       string
		identifier string
		status     int
	}{
		{"By email", "login@example.com", http.StatusOK},
		{"By username", "login-user", http.StatusOK},
		{"Unknown identifier", "nobody@example.com", http.StatusNotFound},
		{"Empty identifier", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/users/login", v1.LoginRequest{Identifier: tt.identifier})
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusOK {
				var response v1.UserResponse
				test.DecodeResponse(t, &r, &response)
				assert.Equal(t, user.Data.ID, response.Data.ID)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestUsersGetFiltered() {
	_ = createTestUser(suite.T(), v1.UserEditable{Name: "Filter Me", Email: "filter@example.com", Username: "filter"})
	_ = createTestUser(suite.T(), v1.UserEditable{Name: "Someone Else"})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Email", "email=filter@example.com", 1},
		{"Username", "username=filter", 1},
		{"Search", "search=Filter", 1},
		{"No match", "email=missing@example.com", 0},
		{"All", "", 2},
		{"Limit", "limit=1", 1},
		{"Offset", "offset=1", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/users?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.UserListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}
