package employeesalary

import (
	"github.com/gin-gonic/gin"

	"github.com/Shivshady23/employee-payroll-system/internal/accesspolicy"
	"github.com/Shivshady23/employee-payroll-system/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, policy *accesspolicy.Policy) {
	salaries := r.Group("/employees/:id/salary")
	salaries.Use(middleware.AuthMiddleware())
	{
		salaries.PUT("",
			middleware.RateLimitByUser(5, 10),
			accesspolicy.Authorize(policy, accesspolicy.ActionUpsertSalary),
			handler.Upsert,
		)

		// Ownership is resolved in the service, where the record's owner is
		// known; no route-level fence here beyond authentication.
		salaries.GET("", handler.Get)
	}
}
