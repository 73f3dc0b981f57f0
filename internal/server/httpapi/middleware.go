package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/dogcatalog/internal/server/access"
	"github.com/labstack/echo/v4"
)

// RequireAccess guards a route with policy. Denied requests get 401 and the
// handler never runs; admitted ones carry the access.Identity in the request
// context.
func RequireAccess(policy access.Policy, policyName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if policy == nil {
				access.RecordDecision(policyName, false)
				return c.JSON(http.StatusUnauthorized, message("Unauthorized"))
			}

			id, err := policy.Authorize(c.Request())
			if err != nil {
				access.RecordDecision(policyName, false)
				return c.JSON(http.StatusUnauthorized, message("Unauthorized"))
			}
			access.RecordDecision(policyName, true)

			req := c.Request()
			c.SetRequest(req.WithContext(access.WithIdentity(req.Context(), id)))
			return next(c)
		}
	}
}
