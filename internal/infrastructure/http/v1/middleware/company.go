package middleware

import (
	"github.com/gin-gonic/gin"

	"buildledger/internal/core/apperror"
	appctx "buildledger/internal/core/context"
	"buildledger/internal/core/id"
)

const (
	// HeaderCompanyID selects the tenant for the request. Every business
	// endpoint requires it; data is partitioned by company.
	HeaderCompanyID = "X-Company-ID"

	// HeaderUserID optionally identifies the acting user for audit trails.
	HeaderUserID = "X-User-ID"
)

// CompanyContext resolves the company from the X-Company-ID header and
// stores it, along with the acting user, in the request context.
func CompanyContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(HeaderCompanyID)
		if raw == "" {
			_ = c.Error(apperror.NewValidation("missing " + HeaderCompanyID + " header"))
			c.Abort()
			return
		}

		companyID, err := id.Parse(raw)
		if err != nil || id.IsNil(companyID) {
			_ = c.Error(apperror.NewValidation("invalid " + HeaderCompanyID + " header").
				WithDetail("value", raw))
			c.Abort()
			return
		}

		actor := &appctx.ActorContext{
			UserID:    c.GetHeader(HeaderUserID),
			CompanyID: companyID,
		}

		ctx := appctx.WithActor(c.Request.Context(), actor)
		c.Request = c.Request.WithContext(ctx)
		c.Set("company_id", companyID.String())

		c.Next()
	}
}
