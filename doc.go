// Package vanity 生成地址带有指定前缀或后缀的 Ed25519 密钥对
//
// 地址为 32 字节公钥的 Base58 编码（与 Solana 地址一致）。
// 搜索在多个 worker 上并行进行，第一个通过校验的命中即为结果，其余 worker 立即停止。
//
// # 快速开始
//
//	import "github.com/dep2p/go-vanity"
//
//	result, err := vanity.GenerateWithPrefix(ctx, "Sol")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer result.Destroy()
//
//	fmt.Println(result.Address, result.Attempts, result.Elapsed)
//
// # 模式
//
// 前缀和后缀各 1~8 个 Base58 字符（不含 0、O、I、l）。
// 大小写不敏感匹配时难度从 58^L 降到约 34^L：
//
//	result, err := vanity.Generate(ctx, "abc", "xyz", vanity.WithIgnoreCase())
//
// # 批量生成
//
//	results, err := vanity.GenerateMany(ctx, "A", "", 3)
//	for _, r := range results {
//	    defer r.Destroy()
//	}
//
// # 秘密材料
//
// Result.Keypair 持有种子，格式化输出与日志只显示地址。
// 调用方在持久化（keyfile.Write）后必须调用 Result.Destroy 清零。
package vanity
