package middleware

import (
	"context"
	"net/http"
	"strings"

	"job-portal/internal/data/entity"
	"job-portal/pkg/auth"
	"job-portal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserLoader fetches the current account for a token subject.
type UserLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

// Auth validates the bearer access token, then re-reads the account so
// the context always carries the current role and status. A token claim
// is only proof of who signed in, not of what they may still do; an
// admin decision takes effect on the next request, not at token expiry.
func Auth(secret string, users UserLoader, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := bearerClaims(w, r, secret, logger)
			if !ok {
				return
			}

			userID, err := utils.ParseUUID(claims.Subject)
			if err != nil {
				utils.ResponseUnauthorized(w, "Invalid token subject")
				return
			}

			user, err := users.FindByID(r.Context(), userID)
			if err != nil {
				logger.Error("Failed to load account for request", zap.Error(err), zap.String("path", r.URL.Path))
				utils.ResponseInternalError(w, "Something went wrong")
				return
			}
			if user == nil {
				utils.ResponseUnauthorized(w, "Account no longer exists")
				return
			}
			if !user.IsActive {
				utils.ResponseForbidden(w, "Account is deactivated")
				return
			}

			ctx := utils.SetUserContext(r.Context(), user.ID, string(user.Role), string(user.AccountStatus))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth loads the viewer when a valid token is present but lets
// anonymous requests through. Used on public reads that personalize
// output for signed-in viewers; a stale or deactivated account simply
// browses as anonymous.
func OptionalAuth(secret string, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := auth.Parse(token, secret)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			if userID, parseErr := utils.ParseUUID(claims.Subject); parseErr == nil {
				if user, loadErr := users.FindByID(r.Context(), userID); loadErr == nil && user != nil && user.IsActive {
					ctx := utils.SetUserContext(r.Context(), user.ID, string(user.Role), string(user.AccountStatus))
					r = r.WithContext(ctx)
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearerClaims(w http.ResponseWriter, r *http.Request, secret string, logger *zap.Logger) (*auth.Claims, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		utils.ResponseUnauthorized(w, "Missing authorization token")
		return nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
		return nil, false
	}

	claims, err := auth.Parse(parts[1], secret)
	if err != nil {
		if err == auth.ErrTokenExpired {
			utils.ResponseUnauthorized(w, "Token expired")
			return nil, false
		}
		logger.Warn("Rejected token", zap.Error(err), zap.String("path", r.URL.Path))
		utils.ResponseUnauthorized(w, "Invalid token")
		return nil, false
	}

	return claims, true
}

// Admin gates admin-only routes; requires Auth upstream
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := utils.GetRoleFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if role != string(entity.RoleAdmin) {
				logger.Warn("Non-admin access attempt",
					zap.String("role", role),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RecruiterGate blocks unapproved recruiters from job-mutating routes.
// Pending, rejected, and blocked recruiters can still browse and manage
// their profile; they just cannot post or edit jobs.
func RecruiterGate(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := utils.GetRoleFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			status, _ := utils.GetAccountStatusFromContext(r.Context())
			if !entity.CanPerformRecruiterAction(entity.UserRole(role), entity.AccountStatus(status), true) {
				logger.Warn("Unapproved recruiter blocked from mutating route",
					zap.String("status", status),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Recruiter account must be approved to perform this action")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole restricts a route to a single role
func RequireRole(role entity.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			current, ok := utils.GetRoleFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if current != string(role) && current != string(entity.RoleAdmin) {
				utils.ResponseForbidden(w, "Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
