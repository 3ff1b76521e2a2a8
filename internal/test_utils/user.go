package test_utils

import (
	"context"

	"github.com/shiftbook/shiftbook/pkg/user"
)

// TestUser is the owner identity used by repository and service tests.
var TestUser = user.User{
	Id:          123,
	Username:    "test_user",
	DisplayName: "Test User",
}

// ContextWithTestUser returns a context carrying TestUser, matching what the
// identity middleware produces for authenticated requests.
func ContextWithTestUser() context.Context {
	return user.WithUser(context.Background(), TestUser)
}
