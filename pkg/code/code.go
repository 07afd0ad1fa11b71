package code

import (
	"fmt"
	"net/http"
)

// Code is a response outcome: numeric code, localized message, optional
// payload and the HTTP status to send it with.
// Code 响应状态码，带多语言消息、数据与 HTTP 状态
type Code struct {
	// 状态码
	code int
	// 是否成功
	status bool
	// 多语言消息
	Lang lang
	// HTTP 状态码
	httpStatus int
	// 数据
	data interface{}
	// 是否含有Data
	haveData bool
	// 错误详细信息
	details []string
	// 是否含有详情
	haveDetails bool
}

var codes = map[int]string{}
var sussCodes = map[int]string{}

// NewError registers an error code. Codes must be unique.
func NewError(code int, httpStatus int, l lang) *Code {
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("error code %d already exists", code))
	}
	codes[code] = l.GetMessage()
	return &Code{code: code, status: false, Lang: l, httpStatus: httpStatus}
}

// NewSuss registers a success code.
func NewSuss(code int, l lang) *Code {
	if _, ok := sussCodes[code]; ok {
		panic(fmt.Sprintf("success code %d already exists", code))
	}
	sussCodes[code] = l.GetMessage()
	return &Code{code: code, status: true, Lang: l, httpStatus: http.StatusOK}
}

// Clone 创建一个新的 Code 副本，不带数据与详情
func (e *Code) Clone() *Code {
	return &Code{
		code:       e.code,
		status:     e.status,
		Lang:       e.Lang,
		httpStatus: e.httpStatus,
	}
}

func (e *Code) Error() string {
	return e.Msg()
}

func (e *Code) Code() int {
	return e.code
}

func (e *Code) Status() bool {
	return e.status
}

func (e *Code) Msg() string {
	return e.Lang.GetMessage()
}

// MsgIn returns the message in language, or the global language when empty.
func (e *Code) MsgIn(language string) string {
	if language == "" {
		return e.Msg()
	}
	return e.Lang.In(language)
}

func (e *Code) Details() []string {
	return e.details
}

func (e *Code) Data() interface{} {
	return e.data
}

func (e *Code) HaveDetails() bool {
	return e.haveDetails
}

func (e *Code) HaveData() bool {
	return e.haveData
}

// WithData returns a copy carrying data. The registered code is never mutated,
// so the package-level values are safe to share between requests.
func (e *Code) WithData(data interface{}) *Code {
	c := e.Clone()
	c.details, c.haveDetails = e.details, e.haveDetails
	c.haveData = true
	c.data = data
	return c
}

// WithDetails returns a copy carrying details.
func (e *Code) WithDetails(details ...string) *Code {
	c := e.Clone()
	c.data, c.haveData = e.data, e.haveData
	c.haveDetails = true
	c.details = append([]string{}, details...)
	return c
}

// Is reports whether err is this code, comparing by numeric value.
func (e *Code) Is(err error) bool {
	c, ok := err.(*Code)
	return ok && c.code == e.code
}

func (e *Code) StatusCode() int {
	if e.httpStatus == 0 {
		return http.StatusOK
	}
	return e.httpStatus
}
