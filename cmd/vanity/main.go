// Package main 提供 vanity 命令行入口
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	vanity "github.com/dep2p/go-vanity"
	"github.com/dep2p/go-vanity/config"
	"github.com/dep2p/go-vanity/internal/app"
	"github.com/dep2p/go-vanity/internal/core/integrity"
	"github.com/dep2p/go-vanity/internal/core/keyfile"
	"github.com/dep2p/go-vanity/internal/core/matcher"
	"github.com/dep2p/go-vanity/internal/core/search"
	"github.com/dep2p/go-vanity/internal/util/logger"
	"github.com/dep2p/go-vanity/pkg/lib/crypto"
)

var log = logger.Logger("cmd")

// ═══════════════════════════════════════════════════════════════════════════
// 命令行参数
// ═══════════════════════════════════════════════════════════════════════════
//
//   命令行参数：这次生成的模式与输出
//   JSON 配置文件：线程数、安全检查、指标等长期设置
//
// 优先级：命令行参数 > 环境变量 > 配置文件 > 默认值
//
// ═══════════════════════════════════════════════════════════════════════════

// cliFlags 解析后的命令行参数
type cliFlags struct {
	// ─────────────────────────────────────────────────────────────────────
	// 模式
	// ─────────────────────────────────────────────────────────────────────
	prefix     string
	suffix     string
	ignoreCase bool

	// ─────────────────────────────────────────────────────────────────────
	// 搜索与输出
	// ─────────────────────────────────────────────────────────────────────
	threads     int
	count       int
	output      string
	overwrite   bool
	report      bool
	verify      bool
	dryRun      bool
	keystore    string
	metricsAddr string
	configFile  string
	check       string
	list        bool

	// ─────────────────────────────────────────────────────────────────────
	// 日志与信息显示
	// ─────────────────────────────────────────────────────────────────────
	verbose     bool
	quiet       bool
	showVersion bool
	showHelp    bool
}

// environment 进程环境（测试中可替换）
type environment struct {
	stdin  int
	stdout io.Writer
	stderr io.Writer
	getenv func(string) string
}

func main() {
	env := environment{
		stdin:  int(os.Stdin.Fd()),
		stdout: os.Stdout,
		stderr: os.Stderr,
		getenv: os.Getenv,
	}
	if err := run(context.Background(), os.Args[1:], env); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

// newFlagSet 注册全部命令行参数
func newFlagSet(f *cliFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("vanity", flag.ContinueOnError)

	fs.StringVar(&f.prefix, "prefix", "", "地址前缀（1-8 个 Base58 字符）")
	fs.StringVar(&f.suffix, "suffix", "", "地址后缀（1-8 个 Base58 字符）")
	fs.BoolVar(&f.ignoreCase, "ignore-case", false, "忽略大小写匹配")

	fs.IntVar(&f.threads, "threads", 0, "工作线程数（默认: 全部 CPU）")
	fs.IntVar(&f.count, "count", 1, "生成的地址数量")
	fs.StringVar(&f.output, "output", "", "密钥文件路径（默认: <地址>.json）")
	fs.BoolVar(&f.overwrite, "overwrite", false, "覆盖已存在的密钥文件")
	fs.BoolVar(&f.report, "report", false, "同时写入文本报告（<输出>.txt）")
	fs.BoolVar(&f.verify, "verify", false, "写入后重新加载并校验密钥文件")
	fs.BoolVar(&f.dryRun, "dry-run", false, "只估算难度与耗时，不生成密钥")
	fs.StringVar(&f.keystore, "keystore", "", "加密备份目录（口令取自 "+keyfile.EnvPassphrase+" 或终端输入）")
	fs.StringVar(&f.metricsAddr, "metrics-addr", "", "Prometheus 指标监听地址，例如 127.0.0.1:9100")
	fs.StringVar(&f.configFile, "config", "", "配置文件路径")
	fs.StringVar(&f.check, "check", "", "校验已有的密钥文件后退出")
	fs.BoolVar(&f.list, "list", false, "列出加密备份目录中的地址后退出（需要 -keystore）")

	fs.BoolVar(&f.verbose, "verbose", false, "输出调试日志")
	fs.BoolVar(&f.quiet, "quiet", false, "只输出地址")
	fs.BoolVar(&f.showVersion, "version", false, "显示版本信息")
	fs.BoolVar(&f.showHelp, "help", false, "显示帮助信息")

	return fs
}

func run(ctx context.Context, args []string, env environment) error {
	var f cliFlags
	fs := newFlagSet(&f)
	fs.SetOutput(env.stderr)
	fs.Usage = func() { printHelp(env.stderr, fs) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("未知参数: %v", fs.Args())
	}

	// 显示版本
	if f.showVersion {
		printVersion(env.stdout)
		return nil
	}

	// 显示帮助
	if f.showHelp {
		printHelp(env.stdout, fs)
		return nil
	}

	setupLogging(&f)

	// 校验已有文件
	if f.check != "" {
		return checkFile(env.stdout, f.check)
	}

	// 列出加密备份
	if f.list {
		cfg, err := loadConfig(&f, fs, env.getenv)
		if err != nil {
			return fmt.Errorf("配置错误: %w", err)
		}
		return listKeystore(env.stdout, cfg.Output.KeystoreDir)
	}

	pattern, err := matcher.New(f.prefix, f.suffix, f.ignoreCase)
	if err != nil {
		return fmt.Errorf("无效的模式: %s", matcher.Hint(err))
	}
	if f.count < 1 {
		return fmt.Errorf("count 必须至少为 1，当前为 %d", f.count)
	}

	cfg, err := loadConfig(&f, fs, env.getenv)
	if err != nil {
		return fmt.Errorf("配置错误: %w", err)
	}

	if f.dryRun {
		return dryRun(ctx, env.stdout, cfg, pattern)
	}

	if cfg.Security.WarnIfElevated && integrity.WarnIfElevated() {
		fmt.Fprintln(env.stderr, "警告: 正在以 root 身份运行，生成的密钥文件将归 root 所有")
	}

	var ks *keyfile.Keystore
	if cfg.Output.KeystoreDir != "" {
		ks, err = openKeystore(cfg.Output.KeystoreDir, env)
		if err != nil {
			return err
		}
		defer func() { _ = ks.Close() }()
	}

	ctx, cancel := app.NotifyContext(ctx, func(os.Signal) {
		fmt.Fprintln(env.stderr, "\n收到中断信号，正在取消...")
	})
	defer cancel()

	// 取消只作用于搜索，运行时由 defer 统一停止
	rt, err := app.NewBootstrap(cfg).Start(context.WithoutCancel(ctx))
	if err != nil {
		return fmt.Errorf("启动失败: %w", err)
	}
	defer func() { _ = rt.Stop(context.Background()) }()

	log.Info("vanity started", "version", vanity.Version, "pattern", pattern.Description(), "count", f.count)

	sc := rt.SearchConfig()
	difficulty := search.EstimateDifficulty(pattern)
	if !f.quiet {
		printHeader(env.stdout, pattern, difficulty, sc.Threads, f.count)
	}

	for i := 1; i <= f.count; i++ {
		if f.count > 1 && !f.quiet {
			fmt.Fprintf(env.stdout, "正在生成第 %d/%d 个地址\n", i, f.count)
		}

		coord, err := rt.NewCoordinator(pattern)
		if err != nil {
			return err
		}

		var progress search.ProgressFunc
		var printer *progressPrinter
		if !f.quiet {
			printer = newProgressPrinter(env.stderr, difficulty, progressRefresh)
			progress = printer.report
		}

		res, err := coord.Run(ctx, progress)
		printer.finish()
		if search.IsCancelled(err) {
			if !f.quiet {
				fmt.Fprintln(env.stdout, "生成已取消")
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("搜索失败: %w", err)
		}

		err = save(env.stdout, &f, cfg, rt.Provider, ks, res, i)
		res.Destroy()
		if err != nil {
			return err
		}
	}
	return nil
}

// setupLogging 按 -verbose / -quiet 调整全局日志级别
func setupLogging(f *cliFlags) {
	switch {
	case f.quiet:
		logger.SetGlobalLevel(slog.LevelError)
	case f.verbose:
		logger.SetGlobalLevel(slog.LevelDebug)
	}
}

// openKeystore 读取口令并打开加密备份目录
func openKeystore(dir string, env environment) (*keyfile.Keystore, error) {
	pass, err := keyfile.ReadPassphrase(env.stdin, env.stderr, env.getenv)
	if err != nil {
		return nil, fmt.Errorf("读取备份口令失败: %w", err)
	}
	defer crypto.SecureZero(pass)

	ks, err := keyfile.NewKeystore(dir, pass)
	if err != nil {
		return nil, fmt.Errorf("打开备份目录失败: %w", err)
	}
	return ks, nil
}

// checkFile 重新加载密钥文件并打印校验结果
func checkFile(w io.Writer, path string) error {
	report, err := keyfile.VerifyFile(crypto.NewEd25519Provider(), path)
	if err != nil {
		return fmt.Errorf("校验密钥文件失败: %w", err)
	}
	printVerification(w, report)
	if !report.OK() {
		return fmt.Errorf("密钥文件 %s 未通过校验", path)
	}
	return nil
}

// listKeystore 打印备份目录中的地址，每行一个
func listKeystore(w io.Writer, dir string) error {
	if dir == "" {
		return errors.New("-list 需要指定 -keystore 目录")
	}
	addrs, err := keyfile.ListKeystore(dir)
	if err != nil {
		return fmt.Errorf("读取备份目录失败: %w", err)
	}
	for _, addr := range addrs {
		fmt.Fprintln(w, addr)
	}
	return nil
}

// printVersion 打印版本信息
func printVersion(w io.Writer) {
	fmt.Fprintln(w, vanity.VersionInfo())
}

// printHelp 打印帮助信息
func printHelp(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintf(w, `vanity - Ed25519 靓号地址生成器

用法:
  vanity -prefix <前缀> [-suffix <后缀>] [选项]

示例:
  vanity -prefix abc                       # 地址以 abc 开头
  vanity -suffix xyz -ignore-case          # 地址以 xyz 结尾，忽略大小写
  vanity -prefix ab -count 3 -output k.json  # 生成 k-1.json ... k-3.json
  vanity -prefix abcde -dry-run            # 只估算耗时
  vanity -check wallet.json                # 校验已有的密钥文件
  vanity -keystore backup -list            # 列出加密备份中的地址

选项:
`)
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintf(w, `
环境变量:
  %[1]sTHREADS, %[1]sOUTPUT, %[1]sOVERWRITE, %[1]sREPORT,
  %[1]sKEYSTORE_DIR, %[1]sMETRICS_ADDR, %[2]s
`, config.EnvPrefix, keyfile.EnvPassphrase)
}
