package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// NotifyContext 返回在收到 SIGINT/SIGTERM 时取消的 context
//
// 第一次信号调用 onSignal（可为 nil）并取消 context；
// 之后恢复默认行为，再次按 Ctrl+C 会直接终止进程。
func NotifyContext(parent context.Context, onSignal func(os.Signal)) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-signals:
			signal.Stop(signals)
			if onSignal != nil {
				onSignal(sig)
			}
			cancel()
		case <-ctx.Done():
			signal.Stop(signals)
		}
	}()

	return ctx, cancel
}
