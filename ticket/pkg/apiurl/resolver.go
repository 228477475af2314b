package apiurl

const (
	AppName = "apiurl"

	// FallbackPath 生产环境未配置地址时走同源代理
	FallbackPath = "/api"
)

// Endpoints 前端可选的两个 API 地址
type Endpoints struct {
	Local      string `json:"local"`
	Production string `json:"production"`
}

// Resolve 本地开发返回 Local，其余返回 Production，未配置时退回 FallbackPath
func Resolve(hostname string, e Endpoints) string {
	if hostname == "localhost" || hostname == "127.0.0.1" {
		return e.Local
	}
	if e.Production != "" {
		return e.Production
	}
	return FallbackPath
}
