package layout

// 该文件定义排版引擎的输出指令与游标，供打印调度、渲染与调试 JSON 共用。

import (
	"time"

	"github.com/ByLCY/printer/metrics"
)

// Placement 是一次字形放置的只读快照，坐标为字形格左上角（px）。
type Placement struct {
	Rune        rune             `json:"rune"`
	Name        string           `json:"name"` // 字形造型名称
	Typeface    metrics.Typeface `json:"typeface"`
	Size        metrics.Size     `json:"size"`
	X           float64          `json:"x"`
	Y           float64          `json:"y"`
	Width       float64          `json:"width"`
	Height      float64          `json:"height"`
	Line        int              `json:"line"`
	Index       int              `json:"index"`                 // 本次打印中的第几个字形
	Substituted bool             `json:"substituted,omitempty"` // 缺字时使用了替换字形
}

// Pause 要求调度方挂起 Millis 毫秒。Delay 标记来自 \D 指令。
type Pause struct {
	Millis int  `json:"ms"`
	Delay  bool `json:"delay,omitempty"`
}

// Duration 返回挂起时长。
func (p Pause) Duration() time.Duration {
	return time.Duration(p.Millis) * time.Millisecond
}

// Instruction 是排版引擎的输出单元，Place 与 Pause 恰有一个非空。
type Instruction struct {
	Place *Placement `json:"place,omitempty"`
	Pause *Pause     `json:"pause,omitempty"`
}

// Kind 返回指令类型名称，用于日志与调试。
func (in Instruction) Kind() string {
	switch {
	case in.Place != nil:
		return "place"
	case in.Pause != nil:
		return "pause"
	default:
		return "unknown"
	}
}

// Cursor 记录一次排版过程中的位置。
type Cursor struct {
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Line         int     `json:"line"`
	LineHeight   float64 `json:"lineHeight"`
	GlyphAdvance float64 `json:"glyphAdvance"` // 字号的字形格宽
}
