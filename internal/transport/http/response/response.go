package response

import (
	"errors"

	"property-alerts/internal/domain"
)

type Resp struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

// New 构造函数（保证 data 不为 null）
func New(code int, msg string, data interface{}) Resp {
	if data == nil {
		data = struct{}{}
	}
	return Resp{Code: code, Msg: msg, Data: data}
}

// OK 成功响应
func OK(data interface{}) Resp {
	return New(CodeOK, CodeMsgMap[CodeOK], data)
}

// Error 失败响应（可以传自定义 msg 覆盖默认）
func Error(code int, customMsg string) Resp {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	return New(code, msg, struct{}{})
}

// CodeOf 领域错误类别 → 业务码
func CodeOf(err error) int {
	switch domain.KindOf(err) {
	case domain.KindInvalidPostalCode, domain.KindInvalidPrice, domain.KindInvalidRange, domain.KindInvalidAlertType:
		return CodeBadRequest
	case domain.KindInvalidUserID:
		return CodeNotFound
	case domain.KindStoreUnavailable:
		return CodeUnavailable
	}
	return CodeServerError
}

// FromError 校验类错误原样返回消息；存储不可用不暴露内部细节
func FromError(err error) Resp {
	code := CodeOf(err)
	switch code {
	case CodeUnavailable:
		return Error(code, "")
	case CodeServerError:
		return Error(code, err.Error())
	}
	var de *domain.Error
	if errors.As(err, &de) {
		return Error(code, de.Msg)
	}
	return Error(code, err.Error())
}
