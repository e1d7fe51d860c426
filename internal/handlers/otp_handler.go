package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"todolist/internal/i18n"
	"todolist/internal/logger"
	"todolist/internal/models"
	"todolist/internal/services"
	v "todolist/internal/validation"
)

type OtpHandler struct {
	base
	otp services.OtpService
}

func NewOtpHandler(otp services.OtpService, catalog *i18n.Catalog, log logger.Logger) *OtpHandler {
	return &OtpHandler{base: base{catalog: catalog, log: log}, otp: otp}
}

func query(c *gin.Context, key string) any {
	if s, ok := c.GetQuery(key); ok {
		return s
	}
	return nil
}

// @Summary      Verify OTP
// @Description  Target of the activation link sent by e-mail
// @Tags         otp
// @Produce      json
// @Param        userId      query     int     true  "User ID"
// @Param        otpCode     query     string  true  "Code"
// @Param        otpUseCase  query     string  true  "Use case"  Enums(AccountActivation)
// @Success      200         {object}  models.User
// @Failure      400         {object}  map[string]interface{}
// @Failure      500         {object}  map[string]interface{}
// @Router       /otp/verify [get]
func (h *OtpHandler) Verify(c *gin.Context) {
	userID, err := v.ParseSafeInt("userId", c.Query("userId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !h.validate(c,
		v.F("userId", userID, v.IsNumber(), v.GreaterThanZero()),
		v.F("otpCode", query(c, "otpCode"), v.IsString(), v.NotEmpty()),
		v.F("otpUseCase", query(c, "otpUseCase"), v.IsString(), v.NotEmpty()),
	) {
		return
	}

	user, err := h.otp.VerifyOtp(c.Request.Context(), userID,
		strings.TrimSpace(c.Query("otpCode")), models.OtpUseCase(c.Query("otpUseCase")))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// @Summary      Resend OTP
// @Tags         otp
// @Accept       json
// @Param        body  body  models.ResendOtpRequest  true  "Recipient"
// @Success      200
// @Failure      400  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /otp/resend [post]
func (h *OtpHandler) Resend(c *gin.Context) {
	b, ok := h.bindBody(c)
	if !ok {
		return
	}
	if !h.validate(c,
		v.F("userEmail", b.value("userEmail"), v.IsString(), v.NotEmpty(), v.IsEmail()),
		v.F("otpUseCase", b.value("otpUseCase"), v.IsString(), v.NotEmpty()),
	) {
		return
	}
	err := h.otp.ResendOtp(c.Request.Context(), strings.TrimSpace(b.str("userEmail")), models.OtpUseCase(b.str("otpUseCase")))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
