package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"relay/ticket/config"
	"relay/ticket/pkg/logticket"
	"relay/tools/ioc"
	"relay/tools/logger"
	"relay/tools/middleware"
)

// NetlifyGroup 前端沿用的 Netlify 函数路径前缀
const NetlifyGroup = "/.netlify/functions"

var errServiceMissing = errors.New("logticket service not registered")

// routers 工单接口只挂在不带 cors 的分组上
type routers interface {
	GinServer() *gin.Engine
	GinRootRouter() gin.IRouter
}

func init() {
	ioc.Api.RegisterContainer(logticket.AppName, &TicketHandler{})
}

type TicketHandler struct {
	svc    logticket.Service
	logger *logger.Logger
}

func NewTicketHandler(svc logticket.Service, log *logger.Logger) *TicketHandler {
	return &TicketHandler{svc: svc, logger: log}
}

func (h *TicketHandler) Init() error {
	c, err := config.LoadConfig()
	if err != nil {
		return err
	}

	svc, ok := ioc.ConController.GetMapContainer(logticket.AppName).(logticket.Service)
	if !ok {
		return errServiceMissing
	}
	*h = *NewTicketHandler(svc, c.Logger())
	h.mount(c.Application)
	return nil
}

func (h *TicketHandler) mount(app routers) {
	h.Register(app.GinRootRouter().Group("ticket"))
	h.Register(app.GinServer().Group(NetlifyGroup))
}

// Register 所有方法都进入处理函数，由处理函数自己返回 405
func (h *TicketHandler) Register(r gin.IRouter) {
	r.Any("/log-ticket", middleware.CrsMiddleware(), h.LogTicket)
}

// LogTicket 除方法不对外，一律 200
func (h *TicketHandler) LogTicket(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		middleware.WriteJSON(c, http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		h.logger.Warn("Failed to read ticket body: %v", err)
		body = nil
	}

	ctx := logticket.WithRequestID(c.Request.Context(), middleware.GetRequestID(c))
	middleware.WriteJSON(c, http.StatusOK, h.svc.LogTicket(ctx, body))
}
