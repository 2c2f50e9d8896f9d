package router

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"clinic-admin/config"
	"clinic-admin/internal/api/handler"
	"clinic-admin/internal/api/middleware"
	"clinic-admin/internal/dto"
	"clinic-admin/pkg/jwt"
	"clinic-admin/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)

	// 自定义校验标签（clock）
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil, errors.New("gin 校验引擎不是 validator/v10")
	}
	if err := dto.RegisterValidations(v); err != nil {
		return nil, fmt.Errorf("注册自定义校验失败: %w", err)
	}

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	admin := middleware.RoleAuth(middleware.RoleAdmin)
	writeLimit := middleware.RateLimit(rdb, cfg.RateLimit.WriteLimit, cfg.RateLimit.Window, logger)

	// ── API v1（全部需要认证）──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(jwtMgr, rdb, logger))
	{
		// 星期
		v1.GET("/weekdays", h.WorkSchedule.ListWeekdays)

		// 排班模块
		schedules := v1.Group("/work-schedules")
		{
			schedules.GET("/weekly", h.WorkSchedule.GetWeekly)
			schedules.GET("/weekly/export", h.WorkSchedule.ExportWeekly)
			schedules.GET("/conflict", h.WorkSchedule.CheckConflict)
			schedules.PUT("", admin, writeLimit, h.WorkSchedule.Upsert)
		}

		// 分院 / 楼层
		branches := v1.Group("/branches")
		{
			branches.GET("", h.Clinic.ListBranches)
			branches.GET("/:id", h.Clinic.GetBranch)
			branches.POST("", admin, h.Clinic.CreateBranch)
			branches.PUT("/:id", admin, h.Clinic.UpdateBranch)
			branches.DELETE("/:id", admin, h.Clinic.DeleteBranch)
			branches.GET("/:id/floors", h.Clinic.ListFloors)
			branches.POST("/:id/floors", admin, h.Clinic.CreateFloor)
		}

		// 诊室
		rooms := v1.Group("/consulting-rooms")
		{
			rooms.GET("", h.Clinic.ListRooms)
			rooms.GET("/:id", h.Clinic.GetRoom)
			rooms.POST("", admin, h.Clinic.CreateRoom)
			rooms.PUT("/:id", admin, h.Clinic.UpdateRoom)
		}

		// 医生目录
		doctors := v1.Group("/doctors")
		{
			doctors.GET("", h.Doctor.ListDoctors)
			doctors.GET("/:id", h.Doctor.GetDoctor)
			doctors.POST("", admin, h.Doctor.CreateDoctor)
			doctors.GET("/:id/specialties", h.Doctor.ListDoctorSpecialties)
			doctors.POST("/:id/specialties", admin, h.Doctor.AssignSpecialty)
			doctors.GET("/:id/assignments", h.Doctor.ListAssignments)
		}

		specialties := v1.Group("/specialties")
		{
			specialties.GET("", h.Doctor.ListSpecialties)
			specialties.POST("", admin, h.Doctor.CreateSpecialty)
		}

		assignments := v1.Group("/doctor-room-assignments")
		{
			assignments.GET("/:id", h.Doctor.GetAssignment)
			assignments.POST("", admin, h.Doctor.CreateAssignment)
		}

		// 通知推送
		v1.POST("/notifications/push", admin, writeLimit, h.Notification.Push)
	}

	return r, nil
}
