// Package printer 串联校验、词法解析、排版与放置，完成一次打印。
package printer

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/ByLCY/printer/escape"
	"github.com/ByLCY/printer/glyph"
	"github.com/ByLCY/printer/layout"
	"github.com/ByLCY/printer/logger"
	"github.com/ByLCY/printer/metrics"
	"github.com/ByLCY/printer/printerr"
)

// Placer 是外部放置原语，假定不会失败。
type Placer interface {
	Place(p layout.Placement)
}

// Request 是一次打印的全部输入，调用期间不会被修改。
type Request struct {
	Text      string  `json:"text"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Size      string  `json:"size"`
	Typeface  string  `json:"typeface"`
	Margin    float64 `json:"margin"`
	WrapWidth float64 `json:"wrapWidth"` // 0 表示不自动换行
}

// Options 配置打印所需的协作者。
type Options struct {
	Placer  Placer        // 必填
	Sleeper Sleeper       // 为空时使用 TimerSleeper
	Catalog glyph.Catalog // 为空时使用等宽造型目录
	// Substitute 为 true 时缺字使用替换字形，否则以 UnsupportedCharacter 失败。
	Substitute bool
	// Trace 为 true 时在 Summary 中保留全部指令。
	Trace bool
}

// Summary 描述一次打印已经完成的部分；出错时同样有效。
type Summary struct {
	Placed       int                  `json:"placed"`
	Substituted  int                  `json:"substituted"`
	Pauses       int                  `json:"pauses"`
	Paused       time.Duration        `json:"paused"`
	Lines        int                  `json:"lines"`
	Cursor       layout.Cursor        `json:"cursor"`
	Instructions []layout.Instruction `json:"instructions,omitempty"`
}

// Printer 可以被多个 goroutine 同时使用：每次 Print 拥有独立的游标与错误，
// 只共享 Placer、Sleeper 与 Catalog。
type Printer struct {
	opts Options
}

// New 创建打印调度器。
func New(opts Options) *Printer {
	if opts.Sleeper == nil {
		opts.Sleeper = TimerSleeper{}
	}
	if opts.Catalog == nil {
		opts.Catalog = glyph.NewCostumeCatalog()
	}
	return &Printer{opts: opts}
}

// Print 校验请求后逐条执行指令：放置指令交给 Placer，暂停指令交给 Sleeper。
// 遇到第一个错误立即停止，已放置的字形不会回滚。词法、排版与校验错误以
// *printerr.Error 原样返回；ctx 在指令之间检查，取消时返回包装后的 ctx.Err()。
func (p *Printer) Print(ctx context.Context, req Request) (Summary, error) {
	if p.opts.Placer == nil {
		return Summary{}, fmt.Errorf("printer: 缺少放置原语 Placer")
	}
	params, err := p.resolve(req)
	if err != nil {
		return Summary{}, err
	}

	engine := layout.NewEngine(escape.NewTokenizer(req.Text), params)
	var sum Summary
	finish := func(err error) (Summary, error) {
		sum.Cursor = engine.Cursor()
		sum.Lines = sum.Cursor.Line + 1
		return sum, err
	}

	for {
		if err := ctx.Err(); err != nil {
			return finish(fmt.Errorf("打印已取消: %w", err))
		}
		in, err := engine.Next()
		if err == io.EOF {
			return finish(nil)
		}
		if err != nil {
			return finish(err)
		}
		if p.opts.Trace {
			sum.Instructions = append(sum.Instructions, in)
		}

		switch {
		case in.Place != nil:
			if in.Place.Substituted {
				sum.Substituted++
				logger.WarningLogger.Printf("字体 %s 缺少字符 %q，已使用替换字形", req.Typeface, in.Place.Rune)
			}
			p.opts.Placer.Place(*in.Place)
			sum.Placed++
		case in.Pause != nil:
			sum.Pauses++
			d := in.Pause.Duration()
			if err := p.opts.Sleeper.Sleep(ctx, d); err != nil {
				return finish(fmt.Errorf("暂停被中断: %w", err))
			}
			sum.Paused += d
		}
	}
}

// resolve 在处理任何字符之前完成全部校验。
func (p *Printer) resolve(req Request) (layout.Params, error) {
	size, err := metrics.LookupSize(req.Size)
	if err != nil {
		return layout.Params{}, err
	}
	tf, err := metrics.LookupTypeface(req.Typeface)
	if err != nil {
		return layout.Params{}, err
	}
	if err := validateGeometry(req); err != nil {
		return layout.Params{}, err
	}
	params := layout.Params{
		Typeface:  tf,
		Size:      size,
		X:         req.X,
		Y:         req.Y,
		Margin:    req.Margin,
		WrapWidth: req.WrapWidth,
		Catalog:   p.opts.Catalog,
	}
	if p.opts.Substitute {
		params.Replacement = glyph.Replacement
	}
	return params, nil
}

func validateGeometry(req Request) error {
	fields := []struct {
		name   string
		value  float64
		nonNeg bool
	}{
		{"x", req.X, false},
		{"y", req.Y, false},
		{"margin", req.Margin, true},
		{"wrap", req.WrapWidth, true},
	}
	for _, f := range fields {
		bad := math.IsNaN(f.value) || math.IsInf(f.value, 0) || (f.nonNeg && f.value < 0)
		if bad {
			fragment := f.name + "=" + strconv.FormatFloat(f.value, 'g', -1, 64)
			return printerr.New(printerr.InvalidGeometry, fragment, -1)
		}
	}
	return nil
}
