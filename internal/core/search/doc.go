// Package search 实现并行靓号密钥搜索
//
// # 核心职责
//
//   - 固定大小的 worker 池并发生成候选密钥对
//   - 命中模式的候选可选做签名验证，首个写入结果槽的候选胜出
//   - 协作式取消：context 取消或 Cancel 调用后所有 worker 在一次迭代内退出
//   - 难度估计：期望尝试次数、中位尝试次数、成功概率
//
// # 状态
//
//	Running ──▶ Found
//	        └─▶ Cancelled
//	        └─▶ Failed（随机源等不可恢复错误）
//
// Coordinator 只能 Run 一次，再次搜索需要新建实例。
//
// # 使用示例
//
//	m := matcher.Compile(pattern)
//	c, err := search.New(search.DefaultConfig(), crypto.NewEd25519Provider(), m)
//	res, err := c.Run(ctx, func(attempts uint64, elapsed time.Duration) {
//	    fmt.Printf("%d keys in %v\n", attempts, elapsed)
//	})
//	if errors.Is(err, search.ErrCancelled) { ... }
//	defer res.Destroy()
//
// # 并发约定
//
// 进度回调在越过间隔边界的 worker 上直接调用，可能被并发调用，
// 必须快速返回且不得 panic。间隔边界存在竞争，回调是尽力而为的。
//
// 两个 worker 几乎同时命中时，先拿到结果槽锁的一方胜出，
// 与谁先在墙钟时间上命中无关。
package search
