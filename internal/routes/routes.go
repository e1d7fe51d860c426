package routes

import (
	"github.com/gin-gonic/gin"

	"todolist/internal/handlers"
	"todolist/internal/middleware"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	Users    *handlers.UserHandler
	Otp      *handlers.OtpHandler
	TodoTask *handlers.TodoTaskHandler
	Files    *handlers.FileHandler
}

// Guards are applied per route, JWT first.
type Guards struct {
	JWT   gin.HandlerFunc
	Admin gin.HandlerFunc
}

func with(chain []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(chain)+1)
	return append(append(out, chain...), h)
}

func SetupRoutes(r *gin.Engine, h Handlers, g Guards) *gin.Engine {
	authed := middleware.Chain(g.JWT)
	admin := middleware.Chain(g.JWT, g.Admin)

	// ---- public
	r.POST("/auth/login", h.Auth.Login)
	r.POST("/users", h.Users.Create)
	r.GET("/otp/verify", h.Otp.Verify)
	r.POST("/otp/resend", h.Otp.Resend)
	r.GET("/file/*filePath", h.Files.Serve)

	// USERS
	users := r.Group("/users")
	{
		users.GET("/me", with(authed, h.Users.Me)...)
		users.GET("", with(admin, h.Users.List)...)
		users.GET("/:id", with(admin, h.Users.Get)...)
		users.PATCH("/:id", with(admin, h.Users.Update)...)
		users.DELETE("/:id", with(admin, h.Users.Delete)...)
	}

	// TASKS
	tasks := r.Group("/todo-task", authed...)
	{
		tasks.POST("", h.TodoTask.Create)
		tasks.PATCH("", h.TodoTask.Update)
		tasks.GET("/all", h.TodoTask.FindAll)
		tasks.GET("/all/:status", h.TodoTask.FindAllWithStatus)
		tasks.GET("/export", h.TodoTask.Export)
		tasks.DELETE("/:id", h.TodoTask.Delete)
	}

	r.POST("/file/upload", with(authed, h.Files.Upload)...)

	return r
}
