package impl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"relay/ticket/config"
	"relay/ticket/pkg/logticket"
	"relay/tools/httpclient"
	"relay/tools/ioc"
	"relay/tools/logger"
)

const addTicketPath = "/addTicket"

func init() {
	ioc.ConController.RegisterContainer(logticket.AppName, &Forwarder{})
}

// Forwarder 把工单转发到 Convex 的 addTicket HTTP action
type Forwarder struct {
	baseURL string
	urlErr  error
	client  *http.Client
	logger  *logger.Logger
	now     func() time.Time
}

type Option func(*Forwarder)

// WithClock 替换时间源
func WithClock(now func() time.Time) Option {
	return func(f *Forwarder) { f.now = now }
}

// WithLogger 替换日志记录器
func WithLogger(l *logger.Logger) Option {
	return func(f *Forwarder) { f.logger = l }
}

// NewForwarder baseURL 为空时所有工单都按未配置处理
// 非法 URL 不阻止启动，每次转发时降级
func NewForwarder(baseURL string, client *http.Client, opts ...Option) *Forwarder {
	f := &Forwarder{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  client,
		logger:  logger.NewLogger("info"),
		now:     time.Now,
	}
	if f.baseURL != "" {
		f.urlErr = checkBaseURL(f.baseURL)
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func checkBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid Convex URL %q: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid Convex URL %q: want http(s)://host", raw)
	}
	return nil
}

func (f *Forwarder) Init() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	*f = *NewForwarder(cfg.ConvexURL, httpclient.NewClient(cfg.ClientOptions()), WithLogger(cfg.Logger()))
	switch {
	case f.baseURL == "":
		f.logger.Warn("CONVEX_DEPLOYMENT is not set, tickets will print without being logged")
	case f.urlErr != nil:
		f.logger.Warn("CONVEX_DEPLOYMENT is unusable, tickets will print without being logged: %v", f.urlErr)
	default:
		f.logger.Info("Ticket forwarder ready: %s%s", f.baseURL, addTicketPath)
	}
	return nil
}

func (f *Forwarder) Configured() bool {
	return f.baseURL != "" && f.urlErr == nil
}

// LogTicket 配置缺失、请求体非法、Convex 不可用都折叠为同一降级结果
func (f *Forwarder) LogTicket(ctx context.Context, body []byte) *logticket.ForwardResult {
	start := time.Now()
	log := f.logger
	if id := logticket.RequestIDFrom(ctx); id != "" {
		log = log.With("request_id", id)
	}

	id, err := f.forward(ctx, body)
	if err != nil {
		cause := logticket.CauseOf(err)
		observeFailure(cause, start)
		log.Error("Error logging ticket [%s]: %v", cause, err)
		return logticket.NewDegradedResult(err)
	}

	observeLogged(start)
	log.Info("Ticket logged to convex: %s", id)
	return logticket.NewLoggedResult(id)
}

func (f *Forwarder) forward(ctx context.Context, body []byte) (json.RawMessage, error) {
	if f.baseURL == "" {
		return nil, logticket.NewForwardError(logticket.CauseConfig, logticket.ErrNotConfigured)
	}

	sub, err := logticket.ParseSubmission(body)
	if err != nil {
		return nil, err
	}
	if f.urlErr != nil {
		return nil, logticket.NewForwardError(logticket.CauseConfig, f.urlErr)
	}

	data, err := json.Marshal(logticket.NewPayload(sub, f.now()))
	if err != nil {
		return nil, logticket.NewForwardError(logticket.CauseMalformedInput, fmt.Errorf("encode ticket: %w", err))
	}

	resp, status, err := httpclient.RequestC(ctx, f.client, http.MethodPost, f.baseURL+addTicketPath,
		bytes.NewReader(data), map[string]string{"Content-Type": "application/json"})
	if err != nil {
		return nil, logticket.NewForwardError(logticket.CauseDownstreamNetwork, fmt.Errorf("Convex request failed: %w", err))
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return nil, logticket.NewForwardError(logticket.CauseDownstreamStatus,
			fmt.Errorf("Convex error: %d %s", status, http.StatusText(status)))
	}

	resp = bytes.TrimSpace(resp)
	if !json.Valid(resp) {
		return nil, logticket.NewForwardError(logticket.CauseDownstreamResponse, errInvalidResponse)
	}
	return json.RawMessage(resp), nil
}

var errInvalidResponse = errors.New("Convex returned a non-JSON response")
