package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"todolist/internal/models"
	"todolist/internal/services"
)

const userKey = "user"

type TokenParser interface {
	Parse(token string) (*services.Claims, error)
}

type UserFinder interface {
	FindOneByID(ctx context.Context, id int64) (*models.User, error)
}

// BearerToken returns the token from "Authorization: Bearer <token>".
func BearerToken(c *gin.Context) (string, bool) {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*models.User)
	return u, ok && u != nil
}

func SetUser(c *gin.Context, u *models.User) {
	c.Set(userKey, u)
}

func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msg, "statusCode": http.StatusUnauthorized})
}

// JWTGuard verifies the bearer token, loads its user and requires the user
// to be Active. Failure details are never sent to the client.
func JWTGuard(tokens TokenParser, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c)
		if !ok {
			unauthorized(c, "Unauthorized")
			return
		}
		claims, err := tokens.Parse(token)
		if err != nil {
			unauthorized(c, "Unauthorized")
			return
		}
		user, err := users.FindOneByID(c.Request.Context(), claims.UserID)
		if err != nil || user == nil {
			unauthorized(c, "Unauthorized")
			return
		}
		if user.Status != models.UserStatusActive {
			unauthorized(c, fmt.Sprintf("Unauthorized (%s)", user.Status))
			return
		}
		SetUser(c, user)
		c.Next()
	}
}
