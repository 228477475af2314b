package register

import (
	"github.com/gin-gonic/gin"

	"relay/ticket/config"
	"relay/ticket/pkg/logticket"
	"relay/tools/ioc"
	"relay/tools/middleware"
)

type RegisterHandler struct {
	tickets logticket.Service
}

func init() {
	ioc.Api.RegisterContainer("HealthRegister", &RegisterHandler{})
}

func (h *RegisterHandler) Init() error {
	c, err := config.LoadConfig()
	if err != nil {
		return err
	}
	h.tickets, _ = ioc.ConController.GetMapContainer(logticket.AppName).(logticket.Service)

	h.Register(c.Application.CorsRouter(""))
	return nil
}

func (h *RegisterHandler) Register(r gin.IRouter) {
	r.GET("/health", h.Health)
}

// Health convex 未配置不算不健康，打印仍可用
func (h *RegisterHandler) Health(ctx *gin.Context) {
	middleware.Success(gin.H{
		"message":           "ok",
		"convex_configured": h.tickets != nil && h.tickets.Configured(),
	}, ctx)
}
