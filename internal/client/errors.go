package client

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the client and the report layer. Their
// Error() strings are shown to end users verbatim, so they are written
// in the panel's display language.
var (
	// ErrNoBaseURL means no panel address is configured. It is returned
	// before any network call is attempted.
	ErrNoBaseURL = errors.New("服务器地址未设置")

	// ErrRealtimeTimeout means the realtime socket produced no message
	// within the read deadline.
	ErrRealtimeTimeout = errors.New("获取实时数据超时")

	// ErrNoNodes means /api/nodes answered successfully with zero nodes.
	ErrNoNodes = errors.New("未找到任何节点。")
)

// StatusError is returned when the panel answers with a non-2xx HTTP
// status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("请求失败,HTTP 状态码:%d", e.Code)
}

// APIError is returned when the panel answers HTTP 200 but the response
// envelope reports a non-success status.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return "接口返回失败"
	}
	return "接口返回失败:" + e.Message
}
