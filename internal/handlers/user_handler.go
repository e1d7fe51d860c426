package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"todolist/internal/i18n"
	"todolist/internal/logger"
	"todolist/internal/models"
	"todolist/internal/services"
	v "todolist/internal/validation"
)

type UserHandler struct {
	base
	users  services.UserService
	exists v.ExistenceChecker
}

func NewUserHandler(users services.UserService, exists v.ExistenceChecker, catalog *i18n.Catalog, log logger.Logger) *UserHandler {
	return &UserHandler{base: base{catalog: catalog, log: log}, users: users, exists: exists}
}

func (h *UserHandler) nameRules() []v.Rule {
	return []v.Rule{v.IsString(), v.NotEmpty(), v.MaxLength(50), v.DontExist(h.exists, "users", "name")}
}

func (h *UserHandler) emailRules() []v.Rule {
	return []v.Rule{v.IsString(), v.NotEmpty(), v.MaxLength(50), v.IsEmail(), v.DontExist(h.exists, "users", "email")}
}

func passwordRules() []v.Rule {
	return []v.Rule{v.IsString(), v.NotEmpty(), v.MinLength(6), v.MaxLength(50)}
}

func passwordConfirmRules(password any) []v.Rule {
	return []v.Rule{v.IsString(), v.NotEmpty(), v.MinLength(8), v.MaxLength(50), v.Match("password", password)}
}

// @Summary      Register
// @Description  Creates a Pending user and e-mails an account activation code
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        user  body      models.CreateUserRequest  true  "New user"
// @Success      201   {object}  models.User
// @Failure      400   {object}  map[string]interface{}
// @Failure      500   {object}  map[string]interface{}
// @Router       /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	b, ok := h.bindBody(c)
	if !ok {
		return
	}
	if !h.validate(c,
		v.F("name", b.value("name"), h.nameRules()...),
		v.F("email", b.value("email"), h.emailRules()...),
		v.F("password", b.value("password"), passwordRules()...),
		v.F("passwordConfirm", b.value("passwordConfirm"), passwordConfirmRules(b.value("password"))...),
	) {
		return
	}

	user, err := h.users.Create(c.Request.Context(), models.CreateUserRequest{
		Name:            b.str("name"),
		Email:           b.str("email"),
		Password:        b.str("password"),
		PasswordConfirm: b.str("passwordConfirm"),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// @Summary      Current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.User
// @Failure      401  {object}  map[string]interface{}
// @Router       /users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	current, ok := h.user(c)
	if !ok {
		return
	}
	h.respondUser(c, current.ID)
}

// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.User
// @Failure      401  {object}  map[string]interface{}
// @Router       /users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.FindAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// @Summary      Get user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  models.User
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}
	h.respondUser(c, id)
}

func (h *UserHandler) respondUser(c *gin.Context, id int64) {
	user, err := h.users.FindOneByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if user == nil {
		h.respondError(c, services.NotFound("User not found"))
		return
	}
	c.JSON(http.StatusOK, user)
}

// @Summary      Update user
// @Description  Partial update; only the fields present are validated and changed.
// @Description  Besides name, email and password this admin route also accepts role, status and isEmailActivated.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                       true  "User ID"
// @Param        user  body      models.UpdateUserRequest  true  "Fields to change"
// @Success      200   {object}  models.User
// @Failure      400   {object}  map[string]interface{}
// @Failure      401   {object}  map[string]interface{}
// @Failure      404   {object}  map[string]interface{}
// @Router       /users/{id} [patch]
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}
	b, ok := h.bindBody(c)
	if !ok {
		return
	}

	var fields []v.Field
	var req models.UpdateUserRequest
	if b.has("name") {
		fields = append(fields, v.F("name", b.value("name"), h.nameRules()...))
		s := b.str("name")
		req.Name = &s
	}
	if b.has("email") {
		fields = append(fields, v.F("email", b.value("email"), h.emailRules()...))
		s := b.str("email")
		req.Email = &s
	}
	if b.has("password") {
		fields = append(fields,
			v.F("password", b.value("password"), passwordRules()...),
			v.F("passwordConfirm", b.value("passwordConfirm"), passwordConfirmRules(b.value("password"))...),
		)
		s := b.str("password")
		req.Password = &s
	}
	if b.has("role") {
		fields = append(fields, v.F("role", b.value("role"), v.IsString(), v.OneOf(string(models.RoleCommon), string(models.RoleRoot))))
		r := models.UserRole(b.str("role"))
		req.Role = &r
	}
	if b.has("status") {
		fields = append(fields, v.F("status", b.value("status"), v.IsString(),
			v.OneOf(string(models.UserStatusActive), string(models.UserStatusPending), string(models.UserStatusBlocked))))
		s := models.UserStatus(b.str("status"))
		req.Status = &s
	}
	if b.has("isEmailActivated") {
		activated, isBool := b["isEmailActivated"].(bool)
		if !isBool {
			h.respondError(c, &v.Errors{Violations: []v.Violation{{
				Field:   "isEmailActivated",
				Rule:    "is_boolean",
				Message: "isEmailActivated must be a boolean value",
			}}})
			return
		}
		req.IsEmailActivated = &activated
	}
	if !h.validate(c, fields...) {
		return
	}

	user, err := h.users.Update(c.Request.Context(), id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// @Summary      Delete user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  models.User
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}
	user, err := h.users.Remove(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
