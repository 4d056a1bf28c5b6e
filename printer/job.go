package printer

import (
	"context"
	"fmt"

	"github.com/ByLCY/printer/binding"
	"github.com/ByLCY/printer/dsl"
	"github.com/ByLCY/printer/layout"
	"github.com/ByLCY/printer/logger"
)

// 脚本未指定时使用的参数。
const (
	DefaultSize     = "medium"
	DefaultTypeface = "Sans Serif"
)

// Job 是由脚本转换而来的一组有序打印请求。
type Job struct {
	Width  float64 `json:"width"` // px；脚本未声明 canvas 时为 0
	Height float64 `json:"height"`
	Steps  []Step  `json:"steps"`
}

// Step 是一次打印。Continue 为 true 时忽略 Request 的 X/Y，
// 从上一次打印结束时的游标继续。
type Step struct {
	Request  Request `json:"request"`
	Continue bool    `json:"continue"`
	Line     int     `json:"line"` // 脚本中的行号
}

type settings struct {
	size     string
	typeface string
	margin   float64
	wrap     *float64
	at       *[2]float64
}

// FromScript 根据脚本 AST 生成打印任务。data 非空时插值 ${...} 占位符。
// 参数的合法性（字号、字体、几何）留到打印时校验。
func FromScript(doc *dsl.Script, data any) (*Job, error) {
	if doc == nil {
		return nil, fmt.Errorf("脚本为空")
	}
	job := &Job{}
	defaults := settings{size: DefaultSize, typeface: DefaultTypeface}

	for _, st := range doc.Statements {
		switch {
		case st.Canvas != nil:
			w, err := parsePX(st.Canvas.Width)
			if err != nil {
				return nil, fmt.Errorf("第 %d 行 canvas 宽度: %w", st.Canvas.Pos.Line, err)
			}
			h, err := parsePX(st.Canvas.Height)
			if err != nil {
				return nil, fmt.Errorf("第 %d 行 canvas 高度: %w", st.Canvas.Pos.Line, err)
			}
			if w <= 0 || h <= 0 {
				return nil, fmt.Errorf("第 %d 行 canvas 尺寸必须为正数", st.Canvas.Pos.Line)
			}
			job.Width, job.Height = w, h
		case st.Defaults != nil:
			if err := defaults.apply(st.Defaults.Options); err != nil {
				return nil, fmt.Errorf("第 %d 行 defaults: %w", st.Defaults.Pos.Line, err)
			}
			// 默认值不携带位置
			defaults.at = nil
		case st.Print != nil:
			step, err := buildStep(st.Print, defaults, job.Width, data)
			if err != nil {
				return nil, err
			}
			job.Steps = append(job.Steps, step)
		}
	}
	return job, nil
}

func buildStep(ps *dsl.PrintStatement, defaults settings, canvasWidth float64, data any) (Step, error) {
	s := defaults
	if err := s.apply(ps.Options); err != nil {
		return Step{}, fmt.Errorf("第 %d 行 print: %w", ps.Pos.Line, err)
	}
	text := string(ps.Text)
	if data != nil {
		text = binding.Interpolate(text, data)
	}
	req := Request{
		Text:      text,
		Size:      s.size,
		Typeface:  s.typeface,
		Margin:    s.margin,
		WrapWidth: s.wrapWidth(canvasWidth),
	}
	step := Step{Request: req, Continue: s.at == nil, Line: ps.Pos.Line}
	if s.at != nil {
		step.Request.X, step.Request.Y = s.at[0], s.at[1]
	}
	return step, nil
}

// wrapWidth 未显式指定时取画布剩余宽度，没有画布则不自动换行。
func (s *settings) wrapWidth(canvasWidth float64) float64 {
	if s.wrap != nil {
		return *s.wrap
	}
	if canvasWidth > 0 && canvasWidth > s.margin {
		return canvasWidth - s.margin
	}
	return 0
}

func (s *settings) apply(opts []*dsl.Option) error {
	for _, opt := range opts {
		switch {
		case opt.At != nil:
			x, err := parsePX(opt.At.X)
			if err != nil {
				return fmt.Errorf("at x: %w", err)
			}
			y, err := parsePX(opt.At.Y)
			if err != nil {
				return fmt.Errorf("at y: %w", err)
			}
			s.at = &[2]float64{x, y}
		case opt.Size != nil:
			s.size = *opt.Size
		case opt.Font != nil:
			s.typeface = string(*opt.Font)
		case opt.Margin != nil:
			m, err := parsePX(*opt.Margin)
			if err != nil {
				return fmt.Errorf("margin: %w", err)
			}
			s.margin = m
		case opt.Wrap != nil:
			w, err := parsePX(*opt.Wrap)
			if err != nil {
				return fmt.Errorf("wrap: %w", err)
			}
			s.wrap = &w
		}
	}
	return nil
}

func parsePX(value string) (float64, error) {
	l, err := layout.ParseLength(value)
	if err != nil {
		return 0, err
	}
	return l.ToPX(), nil
}

// Run 依次执行任务中的打印。遇到第一个错误即停止，返回已完成部分的摘要。
func (p *Printer) Run(ctx context.Context, job *Job) ([]Summary, error) {
	if job == nil {
		return nil, fmt.Errorf("打印任务为空")
	}
	var (
		out    []Summary
		last   layout.Cursor
		cursor bool
	)
	for i, step := range job.Steps {
		req := step.Request
		if step.Continue {
			if cursor {
				req.X, req.Y = last.X, last.Y
			} else {
				req.X, req.Y = req.Margin, 0
			}
		}
		logger.ProgressLogger.Printf("打印第 %d/%d 段（脚本第 %d 行）", i+1, len(job.Steps), step.Line)
		sum, err := p.Print(ctx, req)
		out = append(out, sum)
		if err != nil {
			return out, fmt.Errorf("脚本第 %d 行打印失败: %w", step.Line, err)
		}
		last, cursor = sum.Cursor, true
	}
	return out, nil
}
