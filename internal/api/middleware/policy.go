package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/driveline/dealership-system/internal/core/domain"
)

// Capability names a guarded action. Routes declare the capability they
// need; role checks happen here, once, never inside handlers or services.
type Capability string

const (
	CapUsersRead  Capability = "users:read"
	CapUsersWrite Capability = "users:write"
	CapCarsRead   Capability = "cars:read"
	CapCarsWrite  Capability = "cars:write"
	CapSalesRead  Capability = "sales:read"
	CapSalesWrite Capability = "sales:write"
	CapLogsRead   Capability = "logs:read"
)

// grants maps each capability to the roles allowed to exercise it. Roles
// outside this table (deployment-specific account types) hold no staff
// capabilities and are treated like CLIENT.
var grants = map[Capability]map[string]struct{}{
	CapUsersRead:  roleSet(domain.RoleAdmin, domain.RoleAgent),
	CapUsersWrite: roleSet(domain.RoleAdmin),
	CapCarsRead:   roleSet(domain.RoleAdmin, domain.RoleAgent, domain.RoleClient),
	CapCarsWrite:  roleSet(domain.RoleAdmin, domain.RoleAgent),
	CapSalesRead:  roleSet(domain.RoleAdmin, domain.RoleAgent),
	CapSalesWrite: roleSet(domain.RoleAdmin, domain.RoleAgent),
	CapLogsRead:   roleSet(domain.RoleAdmin),
}

func roleSet(roles ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

// Require enforces a capability for the route. It must run after Auth.
func Require(cap Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextKeyRole).(string)
			if _, ok := grants[cap][role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
