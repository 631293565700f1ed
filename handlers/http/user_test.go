package httpHandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"user-service/entities"
	"user-service/repositories"
	"user-service/usecases"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type userRepoMock struct{ mock.Mock }

var _ repositories.UserRepository = (*userRepoMock)(nil)

func (m *userRepoMock) ExistsByUsername(username string) (bool, error) {
	args := m.Called(username)
	return args.Bool(0), args.Error(1)
}

func (m *userRepoMock) GetByUID(uid uuid.UUID) (*entities.User, error) {
	args := m.Called(uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *userRepoMock) Create(user *entities.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *userRepoMock) Delete(user *entities.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *userRepoMock) Page(offset, limit int, sortColumn string, descending bool) ([]entities.User, int64, error) {
	args := m.Called(offset, limit, sortColumn, descending)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entities.User), args.Get(1).(int64), args.Error(2)
}

func newTestRouter(repo repositories.UserRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := zap.NewNop().Sugar()
	handler := NewUserHandler(usecases.NewUserUseCase(repo, log), log)

	router := gin.New()
	users := router.Group(URLUserBase)
	{
		users.POST("", handler.CreateUser)
		users.GET("", handler.GetUsersPage)
		users.DELETE("/:uid", handler.DeleteUser)
	}
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(method, path, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestCreateUserReturnsCreated(t *testing.T) {
	repo := &userRepoMock{}
	repo.On("ExistsByUsername", "validuser").Return(false, nil)
	repo.On("Create", mock.AnythingOfType("*entities.User")).Return(nil)

	router := newTestRouter(repo)
	rec := doJSON(t, router, http.MethodPost, URLUserBase, `{"username":"validuser","firstName":"Jane"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, "SUCCESS", body["status"])
	require.Equal(t, "USER_CREATED", body["message"])

	data := body["data"].(map[string]any)
	uid, err := uuid.Parse(data["uid"].(string))
	require.NoError(t, err)
	require.Equal(t, URLUserBase+"/"+uid.String(), rec.Header().Get("Location"))
	require.Equal(t, "validuser", data["username"])
	require.NotContains(t, data, "lastName")
	require.NotContains(t, rec.Body.String(), `"id"`)
}

func TestCreateUserDuplicateReturnsConflict(t *testing.T) {
	repo := &userRepoMock{}
	repo.On("ExistsByUsername", "duplicated").Return(true, nil)

	router := newTestRouter(repo)
	rec := doJSON(t, router, http.MethodPost, URLUserBase, `{"username":"duplicated","firstName":"A"}`)

	require.Equal(t, http.StatusConflict, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, "FAILURE", body["status"])
	require.Equal(t, "USER_ALREADY_EXISTS", body["message"])
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateUserShortUsernameReturnsFieldError(t *testing.T) {
	repo := &userRepoMock{}
	router := newTestRouter(repo)
	rec := doJSON(t, router, http.MethodPost, URLUserBase, `{"username":"shrt","firstName":"A"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, "FAILURE", body["status"])
	require.Equal(t, "USER_CREATION_INVALID_INPUT", body["message"])

	errs := body["errors"].([]any)
	require.NotEmpty(t, errs)
	first := errs[0].(map[string]any)
	require.Equal(t, "username", first["field"])
	require.Equal(t, "min", first["fieldErrorCode"])
	repo.AssertNotCalled(t, "ExistsByUsername", mock.Anything)
}

func TestCreateUserBlankUsernameRejected(t *testing.T) {
	repo := &userRepoMock{}
	router := newTestRouter(repo)
	rec := doJSON(t, router, http.MethodPost, URLUserBase, `{"username":"     ","firstName":"Jane"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, "FAILURE", body["status"])
	require.Equal(t, "USER_CREATION_INVALID_INPUT", body["message"])

	errs := body["errors"].([]any)
	require.NotEmpty(t, errs)
	first := errs[0].(map[string]any)
	require.Equal(t, "username", first["field"])
	require.Equal(t, "notblank", first["fieldErrorCode"])
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateUserBlankFirstNameRejected(t *testing.T) {
	repo := &userRepoMock{}
	router := newTestRouter(repo)
	rec := doJSON(t, router, http.MethodPost, URLUserBase, `{"username":"validuser","firstName":"   "}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, "USER_CREATION_INVALID_INPUT", body["message"])

	fields := map[string]string{}
	for _, raw := range body["errors"].([]any) {
		entry := raw.(map[string]any)
		fields[entry["field"].(string)] = entry["fieldErrorCode"].(string)
	}
	require.Equal(t, "notblank", fields["firstName"])
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateUserCollectsAllViolations(t *testing.T) {
	repo := &userRepoMock{}
	router := newTestRouter(repo)
	longName := strings.Repeat("x", 31)
	rec := doJSON(t, router, http.MethodPost, URLUserBase,
		`{"username":"shrt","firstName":"","lastName":"`+longName+`"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)

	fields := map[string]bool{}
	for _, raw := range body["errors"].([]any) {
		entry := raw.(map[string]any)
		fields[entry["field"].(string)] = true
	}
	require.True(t, fields["username"])
	require.True(t, fields["firstName"])
	require.True(t, fields["lastName"])
}

func TestCreateUserMalformedBodyReturnsBadRequest(t *testing.T) {
	repo := &userRepoMock{}
	router := newTestRouter(repo)
	rec := doJSON(t, router, http.MethodPost, URLUserBase, `{"username":`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, "USER_CREATION_INVALID_INPUT", body["message"])
}

func TestGetUsersPageDefaults(t *testing.T) {
	repo := &userRepoMock{}
	repo.On("Page", 0, 15, "created_date_time", true).Return([]entities.User{}, int64(0), nil)

	router := newTestRouter(repo)
	rec := doJSON(t, router, http.MethodGet, URLUserBase, "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, float64(0), body["totalElements"])
	require.Empty(t, body["content"])
	require.NotNil(t, body["content"])
	repo.AssertExpectations(t)
}

func TestGetUsersPageReturnsRequestedPage(t *testing.T) {
	users := make([]entities.User, 0, 20)
	for i := 0; i < 20; i++ {
		u, err := entities.NewUser("listeduser"+string(rune('a'+i)), "First", "")
		require.NoError(t, err)
		users = append(users, *u)
	}

	repo := &userRepoMock{}
	repo.On("Page", 0, 20, "created_date_time", true).Return(users, int64(20), nil)

	router := newTestRouter(repo)
	rec := doJSON(t, router, http.MethodGet, URLUserBase+"?page=0&size=20", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	require.Len(t, body["content"], 20)
	require.Equal(t, float64(20), body["totalElements"])
	require.Equal(t, float64(1), body["totalPages"])
}

func TestGetUsersPageParsesSortParameter(t *testing.T) {
	repo := &userRepoMock{}
	repo.On("Page", 0, 15, "username", false).Return([]entities.User{}, int64(0), nil)

	router := newTestRouter(repo)
	rec := doJSON(t, router, http.MethodGet, URLUserBase+"?sort=username,asc", "")

	require.Equal(t, http.StatusOK, rec.Code)
	repo.AssertExpectations(t)
}

func TestDeleteUserReturnsNoContent(t *testing.T) {
	user, err := entities.NewUser("validuser", "Jane", "")
	require.NoError(t, err)

	repo := &userRepoMock{}
	repo.On("GetByUID", user.UID).Return(user, nil)
	repo.On("Delete", user).Return(nil)

	router := newTestRouter(repo)
	rec := doJSON(t, router, http.MethodDelete, URLUserBase+"/"+user.UID.String(), "")

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, rec.Body.String())
}

func TestDeleteUserAbsentReturnsNotFound(t *testing.T) {
	uid := uuid.New()
	repo := &userRepoMock{}
	repo.On("GetByUID", uid).Return(nil, entities.ErrUserNotFound)

	router := newTestRouter(repo)

	// Repeated deletes of the same absent id must fail identically.
	for i := 0; i < 2; i++ {
		rec := doJSON(t, router, http.MethodDelete, URLUserBase+"/"+uid.String(), "")
		require.Equal(t, http.StatusNotFound, rec.Code)
		body := decodeBody(t, rec)
		require.Equal(t, "FAILURE", body["status"])
		require.Equal(t, "USER_NOT_FOUND", body["message"])
	}
}

func TestDeleteUserMalformedIdentifierReturnsNotFound(t *testing.T) {
	repo := &userRepoMock{}
	router := newTestRouter(repo)
	rec := doJSON(t, router, http.MethodDelete, URLUserBase+"/not-a-uuid", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, "USER_NOT_FOUND", body["message"])
	repo.AssertNotCalled(t, "GetByUID", mock.Anything)
}

func TestStorageFaultReturnsGenericFailure(t *testing.T) {
	repo := &userRepoMock{}
	repo.On("Page", 0, 15, "created_date_time", true).Return(nil, int64(0), errors.New("connection refused"))

	router := newTestRouter(repo)
	rec := doJSON(t, router, http.MethodGet, URLUserBase, "")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, "FAILURE", body["status"])
	require.Equal(t, "SOMETHING_WENT_WRONG", body["message"])
	require.NotContains(t, rec.Body.String(), "connection")
}
