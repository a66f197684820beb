package router

import "github.com/gin-gonic/gin"

// Module is a feature area (users, habits, debug) that knows how to
// mount its own routes on a group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
