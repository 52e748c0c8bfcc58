package server

import (
	nethttp "net/http"

	"github.com/go-kratos/kratos/v2/encoding"
	"github.com/go-kratos/kratos/v2/encoding/json"
	"github.com/go-kratos/kratos/v2/errors"
)

// errorReply 客户端依赖的错误格式
type errorReply struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Reason  string `json:"reason,omitempty"`
}

// encodeError 把所有错误编码成 {"success": false, "error": ...}，HTTP 状态码取 Kratos 错误码
func encodeError(w nethttp.ResponseWriter, r *nethttp.Request, err error) {
	se := errors.FromError(err)
	body, mErr := encoding.GetCodec(json.Name).Marshal(&errorReply{
		Success: false,
		Error:   se.Message,
		Reason:  se.Reason,
	})
	if mErr != nil {
		w.WriteHeader(nethttp.StatusInternalServerError)
		return
	}

	code := int(se.Code)
	if code < 400 || code > 599 {
		code = nethttp.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(body)
}
