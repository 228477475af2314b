package logticket

import (
	"context"
)

const (
	AppName = "logticket"
)

// Service 将浏览器提交的工单转发到 Convex
//
// LogTicket 永不返回错误：任何失败都折叠为 logged=false 的结果，
// 打印流程不能被入库失败阻塞。
type Service interface {
	LogTicket(ctx context.Context, body []byte) *ForwardResult
	Configured() bool
}
