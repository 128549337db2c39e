// Package metrics 提供搜索过程的监控指标
//
// 基于 prometheus/client_golang，每个应用实例使用独立的 Registry：
//   - vanity_searches_total{outcome}        结束的搜索（found/cancelled/failed）
//   - vanity_attempts_total                 生成的候选密钥数
//   - vanity_matches_total                  地址命中的候选数
//   - vanity_verification_failures_total    签名自检失败的候选数
//   - vanity_active_workers                 运行中的工作线程数
//   - vanity_search_duration_seconds        搜索耗时直方图
//   - vanity_keys_per_second                滑动窗口生成速率
//
// SearchMetrics 实现 search.Recorder，可直接交给 search.WithRecorder。
//
// # 快速开始
//
//	reg := prometheus.NewRegistry()
//	m := metrics.New(reg, clock.New())
//	coord, _ := search.New(cfg, provider, matcher, search.WithRecorder(m))
//
//	srv := metrics.NewServer("127.0.0.1:9108", reg)
//	_ = srv.Start(ctx)
//	defer srv.Stop(ctx)
//
// # Fx 模块
//
// Module() 提供 *prometheus.Registry、*SearchMetrics 和 search.Recorder；
// 当 config.Metrics.ListenAddr 非空时随应用生命周期启停 HTTP 服务。
package metrics
