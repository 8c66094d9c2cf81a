package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey        contextKey = "user_id"
	RoleKey          contextKey = "role"
	AccountStatusKey contextKey = "account_status"
)

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userIDVal := ctx.Value(UserIDKey)
	if userIDVal == nil {
		return uuid.Nil, false
	}

	userIDStr, ok := userIDVal.(string)
	if !ok {
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, false
	}

	return userID, true
}

func GetRoleFromContext(ctx context.Context) (string, bool) {
	roleVal := ctx.Value(RoleKey)
	if roleVal == nil {
		return "", false
	}

	role, ok := roleVal.(string)
	return role, ok
}

func GetAccountStatusFromContext(ctx context.Context) (string, bool) {
	statusVal := ctx.Value(AccountStatusKey)
	if statusVal == nil {
		return "", false
	}

	status, ok := statusVal.(string)
	return status, ok
}

func SetUserContext(ctx context.Context, userID uuid.UUID, role, accountStatus string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID.String())
	ctx = context.WithValue(ctx, RoleKey, role)
	ctx = context.WithValue(ctx, AccountStatusKey, accountStatus)
	return ctx
}
