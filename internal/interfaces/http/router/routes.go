package router

import (
	"github.com/gin-gonic/gin"

	"edu-studio/internal/interfaces/http/handler"
)

// RegisterV1Routes 注册 v1 版本路由
func RegisterV1Routes(v1 *gin.RouterGroup, studio *handler.StudioHandler) {
	v1.GET("/forms", studio.ListForms)
	v1.POST("/actions/:form", studio.RunAction)
	v1.POST("/memory/reset", studio.ResetMemory)
}
