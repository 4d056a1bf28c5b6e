// Package printerr 定义打印过程中可能出现的错误类别。
// 所有错误都是确定性的输入校验失败，不存在可重试的临时错误。
package printerr

import "fmt"

// Kind 标识错误类别。
type Kind int

const (
	InvalidSize Kind = iota + 1
	InvalidTypeface
	UnknownEscape
	MalformedDirective
	UnterminatedDirective
	UnsupportedCharacter
	InvalidGeometry
)

var kindNames = map[Kind]string{
	InvalidSize:           "InvalidSize",
	InvalidTypeface:       "InvalidTypeface",
	UnknownEscape:         "UnknownEscape",
	MalformedDirective:    "MalformedDirective",
	UnterminatedDirective: "UnterminatedDirective",
	UnsupportedCharacter:  "UnsupportedCharacter",
	InvalidGeometry:       "InvalidGeometry",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// 哨兵错误，仅用于 errors.Is 按类别匹配。
var (
	ErrInvalidSize           = &Error{Kind: InvalidSize}
	ErrInvalidTypeface       = &Error{Kind: InvalidTypeface}
	ErrUnknownEscape         = &Error{Kind: UnknownEscape}
	ErrMalformedDirective    = &Error{Kind: MalformedDirective}
	ErrUnterminatedDirective = &Error{Kind: UnterminatedDirective}
	ErrUnsupportedCharacter  = &Error{Kind: UnsupportedCharacter}
	ErrInvalidGeometry       = &Error{Kind: InvalidGeometry}
)

// Error 记录错误类别与触发错误的输入片段。
// Offset 为片段在原始字符串中的字节偏移；与字符串无关的错误（尺寸、字体）为 -1。
type Error struct {
	Kind     Kind
	Fragment string
	Offset   int
}

// New 创建一个带有片段与偏移的错误。
func New(kind Kind, fragment string, offset int) *Error {
	return &Error{Kind: kind, Fragment: fragment, Offset: offset}
}

func (e *Error) Error() string {
	if e.Offset >= 0 && e.Fragment != "" {
		return fmt.Sprintf("%s: %q (offset %d)", e.Kind, e.Fragment, e.Offset)
	}
	if e.Fragment != "" {
		return fmt.Sprintf("%s: %q", e.Kind, e.Fragment)
	}
	return e.Kind.String()
}

// Is 让 errors.Is 只比较类别，忽略片段与偏移。
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}
