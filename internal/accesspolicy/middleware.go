package accesspolicy

import (
	"github.com/gin-gonic/gin"

	"github.com/Shivshady23/employee-payroll-system/internal/shared/apperror"
	"github.com/Shivshady23/employee-payroll-system/internal/shared/response"
)

// FromGin rebuilds the principal the auth middleware stored on the request.
func FromGin(c *gin.Context) Principal {
	return Principal{
		UserID:     c.GetString("user_id"),
		Role:       Role(c.GetString("role")),
		EmployeeID: c.GetString("employee_id"),
	}
}

// Authorize gates a route on a role-level action. Ownership-scoped actions
// are enforced again inside the services, which see the actual resource
// owner; this middleware is the outer fence only.
func Authorize(policy *Policy, action Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := FromGin(c)

		allowed, err := policy.Can(principal, action, "")
		if err != nil {
			httpErr := apperror.ToHTTP(err)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c,
				apperror.ErrForbidden.HTTPStatus,
				apperror.ErrForbidden.Code,
				apperror.ErrForbidden.Message,
				nil,
			)
			c.Abort()
			return
		}

		c.Next()
	}
}
