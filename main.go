package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/ByLCY/printer/dsl"
	"github.com/ByLCY/printer/fonts"
	"github.com/ByLCY/printer/glyph"
	"github.com/ByLCY/printer/layout"
	"github.com/ByLCY/printer/printer"
	"github.com/ByLCY/printer/renderer"
	canvasrenderer "github.com/ByLCY/printer/renderer/canvas"
)

type config struct {
	input        string
	output       string
	debug        string
	data         any
	pauses       bool
	proportional bool
	substitute   bool
}

func main() {
	input := flag.String("in", "examples/demo.prn", "打印脚本路径")
	output := flag.String("out", "output/demo.pdf", "PDF 输出路径")
	debug := flag.String("debug", "", "指令序列调试 JSON 输出路径")
	dataJSON := flag.String("data", "", "绑定到脚本的 JSON 数据")
	pauses := flag.Bool("pauses", false, "真实等待 \\P 与 \\D 暂停（默认跳过）")
	proportional := flag.Bool("proportional", false, "按字体实际字宽排版，而不是等宽造型")
	substitute := flag.Bool("substitute", false, "缺字时使用替换字形")
	flag.Parse()

	cfg := config{
		input:        *input,
		output:       *output,
		debug:        *debug,
		pauses:       *pauses,
		proportional: *proportional,
		substitute:   *substitute,
	}
	if *dataJSON != "" {
		if err := json.Unmarshal([]byte(*dataJSON), &cfg.data); err != nil {
			log.Fatalf("解析 data JSON 失败: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("生成 PDF 失败: %v", err)
	}
	fmt.Printf("已生成 PDF：%s\n", cfg.output)
}

// run 串联脚本解析、打印调度与渲染。
func run(ctx context.Context, cfg config) error {
	file, err := os.Open(cfg.input)
	if err != nil {
		return fmt.Errorf("无法打开脚本文件 %s: %w", cfg.input, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(file)
	if err != nil {
		return fmt.Errorf("解析脚本失败: %w", err)
	}
	job, err := printer.FromScript(doc, cfg.data)
	if err != nil {
		return fmt.Errorf("生成打印任务失败: %w", err)
	}

	r := canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{Width: job.Width, Height: job.Height})
	opts, err := printerOptions(cfg, r)
	if err != nil {
		return err
	}

	sums, runErr := printer.New(opts).Run(ctx, job)
	if cfg.debug != "" {
		if err := writeDebug(sums, cfg.debug); err != nil {
			return err
		}
	}
	if runErr != nil {
		return runErr
	}

	if err := os.MkdirAll(filepath.Dir(cfg.output), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	pdfBytes, err := r.Render()
	if err != nil {
		return fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	if err := os.WriteFile(cfg.output, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("写入 PDF 文件失败: %w", err)
	}
	return nil
}

func printerOptions(cfg config, r renderer.Renderer) (printer.Options, error) {
	opts := printer.Options{
		Placer:     r,
		Sleeper:    &printer.NopSleeper{},
		Substitute: cfg.substitute,
		Trace:      cfg.debug != "",
	}
	if cfg.pauses {
		opts.Sleeper = printer.TimerSleeper{}
	}
	if cfg.proportional {
		catalog, err := glyph.NewFontCatalog(fonts.All())
		if err != nil {
			return opts, fmt.Errorf("加载字体字宽失败: %w", err)
		}
		opts.Catalog = catalog
	}
	return opts, nil
}

// writeDebug 输出所有已执行打印的指令序列，出错时同样输出已完成的部分。
func writeDebug(sums []printer.Summary, debugPath string) error {
	var instructions []layout.Instruction
	for _, s := range sums {
		instructions = append(instructions, s.Instructions...)
	}
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(instructions, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
