package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"relay/tools/httpclient"
	"relay/tools/logger"
	"relay/tools/middleware"
)

// Config 应用配置结构
type Config struct {
	// Convex 部署地址，缺省时工单只打印不入库
	// 非法地址不阻止启动，由转发器降级处理
	ConvexURL string

	// 前端 API 地址
	LocalAPIURL      string `validate:"omitempty,url"`
	ProductionAPIURL string

	// 服务器配置
	Port            string        `validate:"required,numeric"`
	ReadTimeout     time.Duration `validate:"gt=0"`
	WriteTimeout    time.Duration `validate:"gt=0"`
	ShutdownTimeout time.Duration `validate:"gt=0"`

	// 日志配置
	LogLevel  string `validate:"oneof=debug info warn error fatal"`
	LogFormat string `validate:"oneof=console json"`

	// 出站连接配置
	ForwardTimeout      time.Duration `validate:"gte=0"`
	MaxIdleConns        int           `validate:"gte=0"`
	MaxIdleConnsPerHost int           `validate:"gte=0"`
	IdleConnTimeout     time.Duration `validate:"gte=0"`

	Application *application `validate:"-"`
}

// 应用服务

type application struct {
	server *gin.Engine
	lock   sync.Mutex
	root   gin.IRouter
	cors   gin.HandlerFunc
}

var (
	cfg  *Config
	once sync.Once

	validate = validator.New()
)

// LoadConfig 加载配置，进程内只解析一次环境变量
func LoadConfig() (*Config, error) {
	var err error
	once.Do(func() {
		cfg, err = loadFromEnv()
	})
	if err == nil && cfg == nil {
		err = fmt.Errorf("config not loaded")
	}

	return cfg, err
}

func loadFromEnv() (*Config, error) {
	c := &Config{
		ConvexURL: strings.TrimSpace(os.Getenv("CONVEX_DEPLOYMENT")),

		LocalAPIURL:      getEnv("LOCAL_API_URL", "http://localhost:5000"),
		ProductionAPIURL: getEnv("PRODUCTION_API_URL", ""),

		Port:      getEnv("PORT", "8080"),
		LogLevel:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", logger.FormatConsole)),

		// 超时配置
		ReadTimeout:     getDurationEnv("READ_TIMEOUT", 10*time.Second),
		WriteTimeout:    getDurationEnv("WRITE_TIMEOUT", 15*time.Second),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 5*time.Second),

		// 连接池配置
		ForwardTimeout:      getDurationEnv("FORWARD_TIMEOUT", 10*time.Second),
		MaxIdleConns:        getIntEnv("MAX_IDLE_CONNS", 100),
		MaxIdleConnsPerHost: getIntEnv("MAX_IDLE_CONNS_PER_HOST", 10),
		IdleConnTimeout:     getDurationEnv("IDLE_CONN_TIMEOUT", 90*time.Second),

		Application: &application{},
	}

	// 验证必需的配置
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return c, nil
}

// Validate 验证配置
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param()))
		case "url":
			msgs = append(msgs, fmt.Sprintf("%s must be an absolute URL, got %q", fe.Field(), fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

// Logger 按配置创建日志记录器
func (c *Config) Logger() *logger.Logger {
	return logger.NewLogger(c.LogLevel, logger.WithFormat(c.LogFormat))
}

// ClientOptions 转发 Convex 使用的出站客户端参数
func (c *Config) ClientOptions() httpclient.Options {
	return httpclient.Options{
		Timeout:             c.ForwardTimeout,
		MaxIdleConns:        c.MaxIdleConns,
		MaxIdleConnsPerHost: c.MaxIdleConnsPerHost,
		IdleConnTimeout:     c.IdleConnTimeout,
	}
}

// Address 监听地址
func (c *Config) Address() string {
	return ":" + c.Port
}

func (a *application) GinServer() *gin.Engine {
	a.lock.Lock()
	defer a.lock.Unlock()

	if a.server == nil {
		a.server = gin.Default()
		a.server.Use(middleware.RequestID(), middleware.Metrics())
	}

	return a.server
}

// CorsRouter 根路由下带 cors 的分组
// 工单接口不挂在这里，OPTIONS 必须落到处理函数返回 405
func (a *application) CorsRouter(relativePath string) gin.IRouter {
	root := a.GinRootRouter()

	a.lock.Lock()
	defer a.lock.Unlock()
	if a.cors == nil {
		a.cors = cors.New(cors.Config{
			AllowAllOrigins: true,
			AllowMethods:    []string{"GET", "OPTIONS"},
			AllowHeaders:    []string{"Content-Type"},
			MaxAge:          12 * time.Hour,
		})
	}

	return root.Group(relativePath, a.cors)
}

func (a *application) GinRootRouter() gin.IRouter {
	r := a.GinServer()

	a.lock.Lock()
	defer a.lock.Unlock()
	if a.root == nil {
		a.root = r.Group("app").Group("api").Group("v1")
	}

	return a.root
}

// getEnv 获取环境变量，如果不存在则返回默认值
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv 获取整数类型的环境变量
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getDurationEnv 获取时间间隔类型的环境变量（秒）
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return time.Duration(intValue) * time.Second
		}
	}
	return defaultValue
}
