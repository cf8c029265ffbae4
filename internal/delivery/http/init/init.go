package http_init

import (
	"log"

	"github.com/gin-gonic/gin"
)

const apiPrefix = "/api/v1"

type Controller interface {
	RegisterRoutes(router *gin.RouterGroup)
}

// ControllerPool owns the gin engine and mounts every controller under the
// shared API prefix.
type ControllerPool struct {
	engine *gin.Engine
	api    *gin.RouterGroup
}

func NewControllerPool() *ControllerPool {
	engine := gin.Default()
	return &ControllerPool{
		engine: engine,
		api:    engine.Group(apiPrefix),
	}
}

// Add mounts the controllers' routes immediately.
func (p *ControllerPool) Add(controllers ...Controller) {
	for _, c := range controllers {
		c.RegisterRoutes(p.api)
	}
}

func (p *ControllerPool) RunAll(port string) {
	if err := p.engine.Run(":" + port); err != nil {
		log.Fatalf("failed to run HTTP server: %v", err)
	}
}
