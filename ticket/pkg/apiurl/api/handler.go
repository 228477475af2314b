package api

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"

	"relay/ticket/config"
	"relay/ticket/pkg/apiurl"
	"relay/tools/ioc"
	"relay/tools/middleware"
)

func init() {
	ioc.Api.RegisterContainer(apiurl.AppName, &FrontendHandler{})
}

// FrontendHandler 给浏览器下发 API 地址
type FrontendHandler struct {
	endpoints apiurl.Endpoints
}

func NewFrontendHandler(e apiurl.Endpoints) *FrontendHandler {
	return &FrontendHandler{endpoints: e}
}

func (h *FrontendHandler) Init() error {
	c, err := config.LoadConfig()
	if err != nil {
		return err
	}

	h.endpoints = apiurl.Endpoints{Local: c.LocalAPIURL, Production: c.ProductionAPIURL}
	h.Register(c.Application.CorsRouter("frontend"))
	return nil
}

func (h *FrontendHandler) Register(r gin.IRouter) {
	r.GET("/config", h.Config)
}

type configResponse struct {
	Hostname string `json:"hostname"`
	APIURL   string `json:"api_url"`
}

// Config ?hostname= 优先，否则取请求 Host 去掉端口
func (h *FrontendHandler) Config(c *gin.Context) {
	hostname := c.Query("hostname")
	if hostname == "" {
		hostname = requestHostname(c.Request.Host)
	}

	middleware.Success(configResponse{
		Hostname: hostname,
		APIURL:   apiurl.Resolve(hostname, h.endpoints),
	}, c)
}

func requestHostname(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return strings.TrimSuffix(strings.TrimPrefix(host, "["), "]")
}
