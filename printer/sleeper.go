package printer

import (
	"context"
	"sync"
	"time"
)

// Sleeper 是挂起原语。实现必须让出执行权（协作式挂起），不能忙等，
// 并在 ctx 取消时尽快返回 ctx.Err()。
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// TimerSleeper 用定时器挂起当前 goroutine。
//
// 注意：挂起只让出了调度权，并不会触发宿主的重绘。若放置原语只在结束时才
// 输出（例如 canvasrenderer），暂停在视觉上不可见；很短的暂停在交互式宿主中
// 也可能看不出效果。
type TimerSleeper struct{}

// Sleep 实现 Sleeper。
func (TimerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NopSleeper 跳过所有暂停，只累计被跳过的时长，用于离线渲染。
type NopSleeper struct {
	mu      sync.Mutex
	skipped time.Duration
}

// Sleep 实现 Sleeper。
func (s *NopSleeper) Sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	s.skipped += d
	s.mu.Unlock()
	return ctx.Err()
}

// Skipped 返回累计跳过的时长。
func (s *NopSleeper) Skipped() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.skipped
}
