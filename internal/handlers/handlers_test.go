package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todolist/internal/i18n"
	"todolist/internal/middleware"
	"todolist/internal/models"
	"todolist/internal/repositories"
	"todolist/internal/resources"
	"todolist/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any)   {}
func (nopLogger) Verbose(string, ...any) {}
func (nopLogger) Log(string, ...any)     {}
func (nopLogger) Warn(string, ...any)    {}
func (nopLogger) Error(string, ...any)   {}
func (nopLogger) Fatal(string, ...any)   {}

// taken answers Exists for "table.column=value" keys.
type taken map[string]bool

func (t taken) Exists(_ context.Context, table, column string, value any) (bool, error) {
	return t[fmt.Sprintf("%s.%s=%v", table, column, value)], nil
}

type fakeAuth struct {
	err error
}

func (f fakeAuth) Login(_ context.Context, email, _ string) (*models.LoginResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.LoginResponse{AccessToken: "token-for-" + email}, nil
}

type fakeUserService struct {
	users   map[int64]*models.User
	created *models.CreateUserRequest
	updated *models.UpdateUserRequest
	err     error
}

func (f *fakeUserService) Create(_ context.Context, req models.CreateUserRequest) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = &req
	return &models.User{ID: 10, Name: req.Name, Email: req.Email, Role: models.RoleCommon, Status: models.UserStatusPending}, nil
}

func (f *fakeUserService) FindAll(context.Context) ([]*models.User, error) {
	out := make([]*models.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, f.err
}

func (f *fakeUserService) FindOneByID(_ context.Context, id int64) (*models.User, error) {
	return f.users[id], f.err
}

func (f *fakeUserService) Update(_ context.Context, id int64, req models.UpdateUserRequest) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.updated = &req
	u := *f.users[id]
	if req.Name != nil {
		u.Name = *req.Name
	}
	return &u, nil
}

func (f *fakeUserService) SetEmailActivation(_ context.Context, id int64, _ bool) (*models.User, error) {
	return f.users[id], f.err
}

func (f *fakeUserService) Remove(_ context.Context, id int64) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, services.NotFound("User not found")
	}
	return u, nil
}

func (f *fakeUserService) ResendEmailActivationCode(context.Context, string) error { return f.err }

type fakeOtpService struct {
	verified *models.User
	resent   []string
	err      error
}

func (f *fakeOtpService) WithTx(repositories.DBTX) services.OtpService { return f }

func (f *fakeOtpService) Create(context.Context, int64, models.OtpUseCase) (*models.Otp, error) {
	return nil, f.err
}

func (f *fakeOtpService) CreateWith(context.Context, int64, models.OtpUseCase, int, string) (*models.Otp, error) {
	return nil, f.err
}

func (f *fakeOtpService) Validate(context.Context, int64, string) (*models.Otp, error) {
	return nil, f.err
}

func (f *fakeOtpService) Delete(context.Context, int64, int64, string) error { return f.err }

func (f *fakeOtpService) VerifyOtp(_ context.Context, userID int64, code string, _ models.OtpUseCase) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.verified = &models.User{ID: userID, Name: code, Status: models.UserStatusActive, IsEmailActivated: true}
	return f.verified, nil
}

func (f *fakeOtpService) ResendOtp(_ context.Context, email string, _ models.OtpUseCase) error {
	if f.err != nil {
		return f.err
	}
	f.resent = append(f.resent, email)
	return nil
}

type fakeTaskService struct {
	tasks   []models.TodoTask
	updated *models.UpdateTodoTaskRequest
	status  models.TodoTaskStatus
	err     error
}

func (f *fakeTaskService) FindAll(_ context.Context, userID int64) ([]models.TodoTask, error) {
	var out []models.TodoTask
	for _, t := range f.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, f.err
}

func (f *fakeTaskService) FindAllWithStatus(ctx context.Context, userID int64, status models.TodoTaskStatus) ([]models.TodoTask, error) {
	f.status = status
	return f.FindAll(ctx, userID)
}

func (f *fakeTaskService) Create(_ context.Context, req models.CreateTodoTaskRequest, userID int64) (*models.TodoTask, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.TodoTask{ID: 1, UserID: userID, Name: req.Name, Description: req.Description, Status: models.TodoTaskPending}, nil
}

func (f *fakeTaskService) Update(_ context.Context, req models.UpdateTodoTaskRequest, userID int64) (*models.TodoTask, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.updated = &req
	return &models.TodoTask{ID: req.ID, UserID: userID, Name: req.Name, Description: req.Description, Status: req.Status}, nil
}

func (f *fakeTaskService) Delete(_ context.Context, id, userID int64) (*models.TodoTask, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.TodoTask{ID: id, UserID: userID}, nil
}

func (f *fakeTaskService) ExportPDF(_ context.Context, user *models.User) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte(fmt.Sprintf("%%PDF user %d", user.ID)), nil
}

func testCatalog(t *testing.T) *i18n.Catalog {
	t.Helper()
	catalog, err := i18n.Load("../../assets/i18n", "en-US")
	require.NoError(t, err)
	return catalog
}

var alice = &models.User{ID: 7, Name: "alice", Email: "alice@example.com", Role: models.RoleCommon, Status: models.UserStatusActive}

// asUser stands in for the JWT guard.
func asUser(u *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.SetUser(c, u)
		c.Next()
	}
}

func newEngine(catalog *i18n.Catalog) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Language(catalog))
	return r
}

func do(r http.Handler, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	var rd *bytes.Reader
	switch b := body.(type) {
	case nil:
		rd = bytes.NewReader(nil)
	case string:
		rd = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func messages(t *testing.T, w *httptest.ResponseRecorder) []string {
	t.Helper()
	raw, ok := decode(t, w)["message"].([]any)
	require.True(t, ok, "message is not a list: %s", w.Body.String())
	out := make([]string, 0, len(raw))
	for _, m := range raw {
		out = append(out, m.(string))
	}
	return out
}

func TestRespondErrorMapping(t *testing.T) {
	catalog := testCatalog(t)
	cases := []struct {
		name   string
		err    error
		lang   string
		status int
		msg    string
	}{
		{"plain service error", services.ErrTaskNotFound, "", http.StatusBadRequest, "Task not found."},
		{"not found", services.NotFound("User not found"), "", http.StatusNotFound, "User not found"},
		{"unauthorized", services.Unauthorized("Invalid password"), "", http.StatusUnauthorized, "Invalid password"},
		{"translated key", services.ErrOtpExpired, "pt-BR", http.StatusBadRequest, "Código OTP expirado."},
		{"wrapped", fmt.Errorf("update: %w", services.ErrTaskNameExists), "", http.StatusBadRequest, "Task name already exists."},
		{"unknown", errors.New("db down"), "", http.StatusInternalServerError, "Internal server error"},
		{"unknown translated", errors.New("db down"), "pt-BR", http.StatusInternalServerError, "Erro interno do servidor"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := base{catalog: catalog, log: nopLogger{}}
			r := newEngine(catalog)
			r.GET("/x", func(c *gin.Context) { h.respondError(c, tc.err) })

			w := do(r, http.MethodGet, "/x", nil, "Accept-Language", tc.lang)
			assert.Equal(t, tc.status, w.Code)
			body := decode(t, w)
			assert.Equal(t, tc.msg, body["message"])
			assert.EqualValues(t, tc.status, body["statusCode"])
		})
	}
}

func TestLogin(t *testing.T) {
	catalog := testCatalog(t)
	r := newEngine(catalog)
	r.POST("/auth/login", NewAuthHandler(fakeAuth{}, catalog, nopLogger{}).Login)

	w := do(r, http.MethodPost, "/auth/login", map[string]any{"email": "alice@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "token-for-alice@example.com", decode(t, w)["accessToken"])

	w = do(r, http.MethodPost, "/auth/login", map[string]any{"email": "bad", "password": "short"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{
		"email must be an email",
		"password must be longer than or equal to 8 characters",
	}, messages(t, w))
	assert.Equal(t, "Bad Request", decode(t, w)["error"])

	w = do(r, http.MethodPost, "/auth/login", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"Request body must be valid JSON"}, messages(t, w))

	r2 := newEngine(catalog)
	r2.POST("/auth/login", NewAuthHandler(fakeAuth{err: services.Unauthorized("Invalid password")}, catalog, nopLogger{}).Login)
	w = do(r2, http.MethodPost, "/auth/login", map[string]any{"email": "alice@example.com", "password": "wrongpass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid password", decode(t, w)["message"])
}

func userRouter(t *testing.T, svc *fakeUserService, exists taken) *gin.Engine {
	catalog := testCatalog(t)
	h := NewUserHandler(svc, exists, catalog, nopLogger{})
	r := newEngine(catalog)
	r.POST("/users", h.Create)
	r.GET("/users/me", h.Me)
	r.GET("/users/:id", h.Get)
	r.PATCH("/users/:id", h.Update)
	r.DELETE("/users/:id", h.Delete)
	authed := r.Group("/authed", asUser(alice))
	authed.GET("/me", h.Me)
	return r
}

func TestCreateUser(t *testing.T) {
	svc := &fakeUserService{}
	r := userRouter(t, svc, taken{"users.email=taken@example.com": true})

	w := do(r, http.MethodPost, "/users", map[string]any{
		"name": "bob", "email": "bob@example.com", "password": "secret123", "passwordConfirm": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NotNil(t, svc.created)
	assert.Equal(t, "bob@example.com", svc.created.Email)
	assert.Equal(t, "Pending", decode(t, w)["status"])
	assert.NotContains(t, w.Body.String(), "password")

	w = do(r, http.MethodPost, "/users", map[string]any{
		"name": "bob", "email": "taken@example.com", "password": "secret123", "passwordConfirm": "secret124",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{
		"email taken@example.com already exists",
		"passwordConfirm must match password",
	}, messages(t, w))
}

func TestGetUser(t *testing.T) {
	svc := &fakeUserService{users: map[int64]*models.User{7: alice}}
	r := userRouter(t, svc, taken{})

	w := do(r, http.MethodGet, "/users/7", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", decode(t, w)["name"])

	w = do(r, http.MethodGet, "/users/8", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", decode(t, w)["message"])

	w = do(r, http.MethodGet, "/users/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Validation failed (numeric string is expected). Param id (abc)", body["message"])
	assert.Equal(t, "Bad Request", body["error"])

	w = do(r, http.MethodGet, "/users/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthorized", decode(t, w)["message"])

	w = do(r, http.MethodGet, "/authed/me", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 7, decode(t, w)["id"])
}

func TestUpdateUserIsPartial(t *testing.T) {
	svc := &fakeUserService{users: map[int64]*models.User{7: alice}}
	r := userRouter(t, svc, taken{})

	w := do(r, http.MethodPatch, "/users/7", map[string]any{"name": "alicia"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NotNil(t, svc.updated)
	assert.Equal(t, "alicia", *svc.updated.Name)
	assert.Nil(t, svc.updated.Email)
	assert.Nil(t, svc.updated.Password)

	w = do(r, http.MethodPatch, "/users/7", map[string]any{"role": "Admin"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"role must be one of the following values: Common, Root"}, messages(t, w))

	w = do(r, http.MethodPatch, "/users/7", map[string]any{"isEmailActivated": "yes"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteUser(t *testing.T) {
	svc := &fakeUserService{users: map[int64]*models.User{7: alice}}
	r := userRouter(t, svc, taken{})

	w := do(r, http.MethodDelete, "/users/7", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodDelete, "/users/9", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func otpRouter(t *testing.T, svc *fakeOtpService) *gin.Engine {
	catalog := testCatalog(t)
	h := NewOtpHandler(svc, catalog, nopLogger{})
	r := newEngine(catalog)
	r.GET("/otp/verify", h.Verify)
	r.POST("/otp/resend", h.Resend)
	return r
}

func TestVerifyOtp(t *testing.T) {
	svc := &fakeOtpService{}
	r := otpRouter(t, svc)

	w := do(r, http.MethodGet, "/otp/verify?userId=3&otpCode=123456&otpUseCase=AccountActivation", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 3, decode(t, w)["id"])
	assert.Equal(t, true, decode(t, w)["isEmailActivated"])

	w = do(r, http.MethodGet, "/otp/verify?userId=abc&otpCode=1&otpUseCase=AccountActivation", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Validation failed (numeric string is expected). Param userId (abc)", decode(t, w)["message"])

	w = do(r, http.MethodGet, "/otp/verify?userId=3&otpUseCase=AccountActivation", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"otpCode must be a string", "otpCode should not be empty"}, messages(t, w))

	w = do(r, http.MethodGet, "/otp/verify?userId=0&otpCode=1&otpUseCase=AccountActivation", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"userId must be greater than zero"}, messages(t, w))

	r = otpRouter(t, &fakeOtpService{err: services.ErrOtpNotFound})
	w = do(r, http.MethodGet, "/otp/verify?userId=3&otpCode=000000&otpUseCase=AccountActivation", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Unable to validate OTP code.", decode(t, w)["message"])
}

func TestResendOtp(t *testing.T) {
	svc := &fakeOtpService{}
	r := otpRouter(t, svc)

	w := do(r, http.MethodPost, "/otp/resend", map[string]any{"userEmail": "alice@example.com", "otpUseCase": "AccountActivation"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, []string{"alice@example.com"}, svc.resent)

	w = do(r, http.MethodPost, "/otp/resend", map[string]any{"userEmail": "nope", "otpUseCase": "AccountActivation"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"userEmail must be an email"}, messages(t, w))
}

func taskRouter(t *testing.T, svc *fakeTaskService, exists taken) *gin.Engine {
	catalog := testCatalog(t)
	h := NewTodoTaskHandler(svc, exists, catalog, nopLogger{})
	r := newEngine(catalog)
	g := r.Group("/todo-task", asUser(alice))
	g.POST("", h.Create)
	g.PATCH("", h.Update)
	g.GET("/all", h.FindAll)
	g.GET("/all/:status", h.FindAllWithStatus)
	g.GET("/export", h.Export)
	g.DELETE("/:id", h.Delete)
	return r
}

func TestCreateTodoTask(t *testing.T) {
	r := taskRouter(t, &fakeTaskService{}, taken{"todo_tasks.name=groceries": true})

	w := do(r, http.MethodPost, "/todo-task", map[string]any{"name": "laundry", "description": "whites"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.EqualValues(t, 7, body["userId"])
	assert.Equal(t, "Pending", body["status"])

	w = do(r, http.MethodPost, "/todo-task", map[string]any{"name": "groceries", "description": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{
		"name groceries already exists",
		"description should not be empty",
	}, messages(t, w))

	w = do(r, http.MethodPost, "/todo-task", map[string]any{"name": strings.Repeat("x", 51), "description": "d"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"name must be shorter than or equal to 50 characters"}, messages(t, w))
}

func TestUpdateTodoTask(t *testing.T) {
	svc := &fakeTaskService{}
	r := taskRouter(t, svc, taken{})

	w := do(r, http.MethodPatch, "/todo-task", map[string]any{"id": 4, "name": "n", "description": "d", "status": "Completed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NotNil(t, svc.updated)
	assert.Equal(t, int64(4), svc.updated.ID)
	assert.Equal(t, models.TodoTaskCompleted, svc.updated.Status)

	w = do(r, http.MethodPatch, "/todo-task", map[string]any{"id": 4, "name": "n", "description": "d", "status": "Done"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"status must be one of the following values: Pending, Completed"}, messages(t, w))

	w = do(r, http.MethodPatch, "/todo-task", map[string]any{"id": "4", "name": "n", "description": "d", "status": "Pending"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, messages(t, w), "id must be a number")

	r = taskRouter(t, &fakeTaskService{err: services.ErrTaskNotFound}, taken{})
	w = do(r, http.MethodPatch, "/todo-task", map[string]any{"id": 4, "name": "n", "description": "d", "status": "Pending"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Task not found.", decode(t, w)["message"])
}

func TestFindTodoTasks(t *testing.T) {
	svc := &fakeTaskService{tasks: []models.TodoTask{
		{ID: 1, UserID: 7, Name: "mine", Status: models.TodoTaskPending},
		{ID: 2, UserID: 8, Name: "theirs", Status: models.TodoTaskPending},
	}}
	r := taskRouter(t, svc, taken{})

	w := do(r, http.MethodGet, "/todo-task/all", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tasks []models.TodoTask
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "mine", tasks[0].Name)

	w = do(r, http.MethodGet, "/todo-task/all/Completed", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.TodoTaskCompleted, svc.status)

	w = do(r, http.MethodGet, "/todo-task/all/Done", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Validation failed (enum string is expected). Param status (Done)", decode(t, w)["message"])
}

func TestDeleteTodoTask(t *testing.T) {
	r := taskRouter(t, &fakeTaskService{}, taken{})

	w := do(r, http.MethodDelete, "/todo-task/12", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 12, decode(t, w)["id"])

	w = do(r, http.MethodDelete, "/todo-task/twelve", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Validation failed (numeric string is expected). Param id (twelve)", decode(t, w)["message"])
}

func TestExportTodoTasks(t *testing.T) {
	r := taskRouter(t, &fakeTaskService{}, taken{})

	w := do(r, http.MethodGet, "/todo-task/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="todo-tasks-7.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF user 7", w.Body.String())
}

func fileRouter(t *testing.T) (*gin.Engine, *resources.Resources) {
	catalog := testCatalog(t)
	res, err := resources.New(t.TempDir())
	require.NoError(t, err)
	h := NewFileHandler(res, catalog, nopLogger{})
	r := newEngine(catalog)
	r.GET("/file/*filePath", h.Serve)
	r.POST("/file/upload", asUser(alice), h.Upload)
	return r, res
}

func TestUploadAndServeFile(t *testing.T) {
	r, res := fileRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "note.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("remember the milk"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/file/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	public, _ := decode(t, w)["path"].(string)
	assert.True(t, strings.HasPrefix(public, "todolist/users/7/"), public)
	assert.True(t, strings.HasSuffix(public, "-note.txt"), public)

	stored, err := os.ReadFile(res.FromPublicFileUploadPath(public))
	require.NoError(t, err)
	assert.Equal(t, "remember the milk", string(stored))

	w = do(r, http.MethodGet, "/file/"+public, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "remember the milk", w.Body.String())
}

func TestServeFileErrors(t *testing.T) {
	r, _ := fileRouter(t)

	w := do(r, http.MethodGet, "/file/todolist/users/7/missing.png", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "File not found.", decode(t, w)["message"])

	w = do(r, http.MethodGet, "/file/a/../../secret", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid file path.", decode(t, w)["message"])

	req := httptest.NewRequest(http.MethodPost, "/file/upload", strings.NewReader("x"))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "File is required.", decode(t, rec)["message"])
}

func TestWrongJSONTypesAreValidationErrors(t *testing.T) {
	catalog := testCatalog(t)

	r := newEngine(catalog)
	r.POST("/auth/login", NewAuthHandler(fakeAuth{}, catalog, nopLogger{}).Login)
	for _, password := range []any{true, []any{"secret123"}, map[string]any{"p": "secret123"}} {
		w := do(r, http.MethodPost, "/auth/login", map[string]any{"email": "alice@example.com", "password": password})
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		assert.Contains(t, messages(t, w), "password must be a string")
	}

	tasks := taskRouter(t, &fakeTaskService{}, taken{})
	w := do(tasks, http.MethodPatch, "/todo-task", map[string]any{"id": true, "name": "n", "description": "d", "status": 3})
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Contains(t, messages(t, w), "id must be a number")
	assert.Contains(t, messages(t, w), "status must be a string")

	w = do(tasks, http.MethodPost, "/todo-task", map[string]any{"name": map[string]any{"a": 1}, "description": false})
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Contains(t, messages(t, w), "name must be a string")
	assert.Contains(t, messages(t, w), "description must be a string")
}

func TestCreateUserWithNonScalarNameSkipsLookup(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	catalog := testCatalog(t)
	h := NewUserHandler(&fakeUserService{}, repositories.NewStore(db), catalog, nopLogger{})
	r := newEngine(catalog)
	r.POST("/users", h.Create)

	for _, name := range []any{[]any{"x"}, true} {
		mock.ExpectQuery(`SELECT EXISTS`).WithArgs("a@b.co").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		w := do(r, http.MethodPost, "/users", map[string]any{
			"name": name, "email": "a@b.co", "password": "secret123", "passwordConfirm": "secret123",
		})
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		assert.Contains(t, messages(t, w), "name must be a string")
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
