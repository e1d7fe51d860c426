package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"todolist/internal/i18n"
	"todolist/internal/logger"
	"todolist/internal/services"
	v "todolist/internal/validation"
)

type AuthHandler struct {
	base
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService, catalog *i18n.Catalog, log logger.Logger) *AuthHandler {
	return &AuthHandler{base: base{catalog: catalog, log: log}, authService: authService}
}

// @Summary      Sign in
// @Description  Checks the credentials and returns a bearer access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Credentials"
// @Success      201    {object}  models.LoginResponse
// @Failure      400    {object}  map[string]interface{}
// @Failure      401    {object}  map[string]interface{}
// @Failure      404    {object}  map[string]interface{}
// @Failure      500    {object}  map[string]interface{}
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	b, ok := h.bindBody(c)
	if !ok {
		return
	}
	if !h.validate(c,
		v.F("email", b.value("email"), v.IsEmail(), v.NotEmpty()),
		v.F("password", b.value("password"), v.IsString(), v.NotEmpty(), v.MinLength(8), v.MaxLength(50)),
	) {
		return
	}

	email := strings.TrimSpace(b.str("email"))
	res, err := h.authService.Login(c.Request.Context(), email, b.str("password"))
	if err != nil {
		h.log.Debug("[auth][login] rejected email=%q: %v", email, err)
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}
