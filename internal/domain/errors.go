package domain

import "errors"

// Kind 领域错误类别
type Kind string

const (
	KindInvalidPostalCode Kind = "INVALID_POSTAL_CODE"
	KindInvalidPrice      Kind = "INVALID_PRICE"
	KindInvalidRange      Kind = "INVALID_RANGE"
	KindInvalidAlertType  Kind = "INVALID_ALERT_TYPE"
	KindInvalidUserID     Kind = "INVALID_USER_ID"
	KindStoreUnavailable  Kind = "STORE_UNAVAILABLE"
)

// Error 带类别的领域错误，Error() 只返回 Msg
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return string(e.Kind)
}

// Is 按 Kind 比较，errors.Is(err, ErrInvalidPrice) 即可判断类别
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func newError(kind Kind, msg string) *Error { return &Error{Kind: kind, Msg: msg} }

// 哨兵值，仅用于 errors.Is
var (
	ErrInvalidPostalCode = &Error{Kind: KindInvalidPostalCode}
	ErrInvalidPrice      = &Error{Kind: KindInvalidPrice}
	ErrInvalidRange      = &Error{Kind: KindInvalidRange}
	ErrInvalidAlertType  = &Error{Kind: KindInvalidAlertType}
	ErrInvalidUserID     = &Error{Kind: KindInvalidUserID}
	ErrStoreUnavailable  = &Error{Kind: KindStoreUnavailable}
)

// KindOf 取出错误链上的领域类别，非领域错误返回空串
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
