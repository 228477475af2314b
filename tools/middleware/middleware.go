package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader 请求追踪头
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// CrsMiddleware 跨域响应头，浏览器任意来源可调用
// 不拦截 OPTIONS，由处理函数决定状态码
func CrsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		c.Next()
	}
}

// RequestID 为每个请求分配追踪ID，沿用客户端传入的值
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.New().String()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID 读取当前请求的追踪ID
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// WriteJSON 以精确的 application/json 类型输出，gin 的 c.JSON 会追加 charset
func WriteJSON(c *gin.Context, status int, data any) {
	b, err := json.Marshal(data)
	if err != nil {
		Failed(ErrServerInternal("encode response: %v", err), c)
		return
	}
	c.Data(status, "application/json", b)
}

// 成功, 怎么把 对象 -->  HTTP Reponse
func Success(data any, c *gin.Context) {
	c.JSON(http.StatusOK, data)
}

// 统一返回的数据结构: ApiException
func Failed(err error, c *gin.Context) {
	// 非200 状态, 接口报错, 返回内容: ApiException对象

	httpCode := http.StatusInternalServerError
	if v, ok := err.(*ApiException); ok {
		if v.HttpCode != 0 {
			httpCode = v.HttpCode
		}
	} else {
		// 非业务异常，支持转化为 指定的内部报错异常
		err = ErrServerInternal("%s", err.Error())
	}

	c.JSON(httpCode, err)
	c.Abort()
}

// 用于描述业务异常
type ApiException struct {
	// 业务异常的编码
	Code int `json:"code"`
	// 异常描述信息
	Message string `json:"message"`
	// 不会出现在Body里面, 写入 http response 状态码
	HttpCode int `json:"-"`
}

func (e *ApiException) Error() string {
	return e.Message
}

func ErrServerInternal(format string, a ...any) *ApiException {
	return &ApiException{
		Code:     50000,
		Message:  fmt.Sprintf(format, a...),
		HttpCode: http.StatusInternalServerError,
	}
}
