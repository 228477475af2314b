package logticket

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// TimestampLayout UTC 毫秒精度 ISO-8601，与浏览器 toISOString 一致
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Submission 浏览器提交的工单，字段原样透传，缺失字段保持缺失
type Submission struct {
	FromName json.RawMessage `json:"from_name,omitempty"`
	Question json.RawMessage `json:"question,omitempty"`
}

// Payload 发往 Convex addTicket 的请求体
type Payload struct {
	FromName  json.RawMessage `json:"from_name,omitempty"`
	Question  json.RawMessage `json:"question,omitempty"`
	Timestamp string          `json:"timestamp"`
}

// NewPayload 时间戳由服务端生成，不信任客户端
func NewPayload(s *Submission, now time.Time) *Payload {
	return &Payload{
		FromName:  s.FromName,
		Question:  s.Question,
		Timestamp: now.UTC().Format(TimestampLayout),
	}
}

// ForwardResult 响应体，success 恒为 true
type ForwardResult struct {
	Success bool            `json:"success"`
	Logged  *bool           `json:"logged,omitempty"`
	ID      json.RawMessage `json:"id,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// NewLoggedResult Convex 已入库
func NewLoggedResult(id json.RawMessage) *ForwardResult {
	return &ForwardResult{Success: true, ID: id}
}

// NewDegradedResult 入库失败但不阻塞调用方
func NewDegradedResult(err error) *ForwardResult {
	logged := false
	return &ForwardResult{Success: true, Logged: &logged, Error: err.Error()}
}

// IsLogged 是否确认入库
func (r *ForwardResult) IsLogged() bool {
	return r.Logged == nil || *r.Logged
}

// Cause 失败原因，只用于日志与指标，不出现在响应里
type Cause string

const (
	CauseConfig             Cause = "config"
	CauseMalformedInput     Cause = "malformed_input"
	CauseDownstreamStatus   Cause = "downstream_status"
	CauseDownstreamNetwork  Cause = "downstream_network"
	CauseDownstreamResponse Cause = "downstream_response"
)

// ForwardError 带原因标签的转发错误
type ForwardError struct {
	Cause Cause
	Err   error
}

func (e *ForwardError) Error() string {
	return e.Err.Error()
}

func (e *ForwardError) Unwrap() error {
	return e.Err
}

func NewForwardError(cause Cause, err error) *ForwardError {
	return &ForwardError{Cause: cause, Err: err}
}

// CauseOf 提取失败原因，未标记的错误归为下游网络错误
func CauseOf(err error) Cause {
	var fe *ForwardError
	if errors.As(err, &fe) {
		return fe.Cause
	}
	return CauseDownstreamNetwork
}

var (
	ErrNotConfigured = errors.New("Convex URL not configured")
	ErrInvalidJSON   = errors.New("invalid ticket JSON")
	ErrNullTicket    = errors.New("ticket body is null")
)

// ParseSubmission 只要求 JSON 语法合法；数组、标量视为两个字段都缺失，顶层 null 无法取字段
func ParseSubmission(body []byte) (*Submission, error) {
	body = bytes.TrimSpace(body)
	if !json.Valid(body) {
		return nil, NewForwardError(CauseMalformedInput, ErrInvalidJSON)
	}
	if bytes.Equal(body, []byte("null")) {
		return nil, NewForwardError(CauseMalformedInput, ErrNullTicket)
	}

	s := &Submission{}
	if body[0] != '{' {
		return s, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, NewForwardError(CauseMalformedInput, fmt.Errorf("%w: %v", ErrInvalidJSON, err))
	}
	s.FromName = fields["from_name"]
	s.Question = fields["question"]
	return s, nil
}
