package employee

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/Shivshady23/employee-payroll-system/internal/accesspolicy"
	"github.com/Shivshady23/employee-payroll-system/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, policy *accesspolicy.Policy, rdb *redis.Client) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("",
			accesspolicy.Authorize(policy, accesspolicy.ActionListEmployees),
			handler.GetAll,
		)
		employees.GET("/options",
			accesspolicy.Authorize(policy, accesspolicy.ActionListEmployees),
			handler.GetOptions,
		)
		employees.POST("",
			middleware.RateLimitByUser(5, 10),
			accesspolicy.Authorize(policy, accesspolicy.ActionCreateEmployee),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		employees.DELETE("/:id",
			accesspolicy.Authorize(policy, accesspolicy.ActionDeleteEmployee),
			handler.Delete,
		)
	}
}
