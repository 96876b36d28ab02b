package api

import "github.com/gin-gonic/gin"

// User identifies the authenticated caller.
type User struct {
	ID    uint
	Email string
}

// currentUser resolves the request's user. Authentication is not wired yet;
// every request maps to the shared demo account, matching the one-tenant
// development setup.
// TODO: replace with JWT middleware once the auth provider is chosen.
func currentUser(_ *gin.Context) User {
	return User{ID: 1, Email: "demo@tenant-rights.com"}
}
