package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dep2p/go-vanity/config"
	"github.com/dep2p/go-vanity/internal/core/integrity"
	"github.com/dep2p/go-vanity/internal/core/keyfile"
	"github.com/dep2p/go-vanity/internal/core/matcher"
	"github.com/dep2p/go-vanity/internal/core/search"
	"github.com/dep2p/go-vanity/pkg/lib/crypto"
)

// printHeader 打印本次生成的概要
func printHeader(w io.Writer, p matcher.Pattern, d search.Difficulty, threads, count int) {
	fmt.Fprintln(w, "Ed25519 靓号地址生成器")
	fmt.Fprintln(w, "══════════════════════")
	fmt.Fprintf(w, "模式:     %s\n", p.Description())
	fmt.Fprintf(w, "难度:     期望 %s 次尝试\n", formatCount(d.ExpectedAttempts))
	fmt.Fprintf(w, "线程数:   %d\n", threads)
	fmt.Fprintf(w, "数量:     %d\n", count)
	fmt.Fprintln(w)
}

// outputPath 返回第 index 个结果（从 1 开始）的密钥文件路径
//
// 未指定输出路径时使用 <地址>.json；批量生成时在指定路径中插入序号。
func outputPath(explicit, address string, index, count int) string {
	if explicit == "" {
		return keyfile.DefaultPath(address)
	}
	if count > 1 {
		return keyfile.IndexedPath(explicit, index)
	}
	return explicit
}

// save 落盘一个搜索结果并打印摘要
//
// 依次写入密钥文件、文本报告和加密备份，任一步失败即返回。
func save(w io.Writer, f *cliFlags, cfg *config.Config, provider crypto.Provider, ks *keyfile.Keystore, res *search.Result, index int) error {
	path := outputPath(cfg.Output.Path, res.Address, index, f.count)
	opts := integrity.WriteOptions{Overwrite: cfg.Output.Overwrite}

	if err := keyfile.Write(path, res.Keypair, opts); err != nil {
		if errors.Is(err, integrity.ErrFileExists) {
			return fmt.Errorf("%s 已存在（使用 -overwrite 覆盖）: %w", path, err)
		}
		return fmt.Errorf("写入密钥文件失败: %w", err)
	}
	log.Info("keypair saved", "address", res.Address, "path", path)

	var reportPath string
	if cfg.Output.Report {
		reportPath = keyfile.ReportPath(path)
		if err := integrity.WriteSecureFile(reportPath, []byte(renderReport(res)), opts); err != nil {
			return fmt.Errorf("写入报告失败: %w", err)
		}
	}

	var backupPath string
	if ks != nil {
		var err error
		if backupPath, err = ks.Put(res.Keypair); err != nil {
			return fmt.Errorf("写入加密备份失败: %w", err)
		}
	}

	if f.quiet {
		fmt.Fprintln(w, res.Address)
	} else {
		printResult(w, res, path, reportPath, backupPath)
	}

	if f.verify {
		report, err := keyfile.VerifyFile(provider, path)
		if err != nil {
			return fmt.Errorf("校验密钥文件失败: %w", err)
		}
		printVerification(w, report)
		if !report.OK() {
			return fmt.Errorf("密钥文件 %s 未通过校验", path)
		}
	}
	return nil
}

// printResult 打印命中结果
func printResult(w io.Writer, res *search.Result, path, reportPath, backupPath string) {
	fmt.Fprintln(w, "找到匹配的地址")
	fmt.Fprintf(w, "  地址:     %s\n", res.Address)
	fmt.Fprintf(w, "  尝试次数: %s\n", formatCount(float64(res.Attempts)))
	fmt.Fprintf(w, "  耗时:     %s\n", res.Elapsed.Round(timeResolution))
	fmt.Fprintf(w, "  速率:     %s 次/秒\n", formatCount(res.Rate()))
	fmt.Fprintf(w, "  已保存:   %s\n", path)
	if reportPath != "" {
		fmt.Fprintf(w, "  报告:     %s\n", reportPath)
	}
	if backupPath != "" {
		fmt.Fprintf(w, "  加密备份: %s\n", backupPath)
	}
	fmt.Fprintln(w)
}

// printVerification 打印密钥文件校验结果
func printVerification(w io.Writer, r *keyfile.VerificationReport) {
	fmt.Fprintln(w, "密钥文件校验")
	fmt.Fprintf(w, "  公钥:     %s\n", r.PublicKey)
	fmt.Fprintf(w, "  签名:     %s\n", mark(r.SignatureValid, "有效", "无效"))
	fmt.Fprintf(w, "  格式:     %s\n", mark(r.KeypairFormatValid, "有效", "无效"))
	fmt.Fprintf(w, "  文件权限: %s\n", mark(r.FilePermissionsSecure, "安全 (0600)", "不安全"))
	fmt.Fprintln(w)
}

func mark(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}

// ============================================================================
//                              文本报告
// ============================================================================

// timeResolution 终端输出中耗时的精度
const timeResolution = time.Millisecond

const reportRule = "================================================================================"

// renderReport 生成随密钥文件保存的文本报告，不含任何秘密材料
func renderReport(res *search.Result) string {
	var b strings.Builder
	b.WriteString(reportRule + "\n")
	b.WriteString("                     ED25519 VANITY ADDRESS GENERATION REPORT\n")
	b.WriteString(reportRule + "\n\n")

	fmt.Fprintf(&b, "Public Key: %s\n", res.Address)
	fmt.Fprintf(&b, "Run ID:     %s\n\n", res.RunID)

	b.WriteString("Statistics:\n")
	fmt.Fprintf(&b, "  - Attempts: %15d\n", res.Attempts)
	fmt.Fprintf(&b, "  - Time:     %15.2f seconds\n", res.Elapsed.Seconds())
	fmt.Fprintf(&b, "  - Rate:     %15.2f keys/second\n\n", res.Rate())

	b.WriteString("Security Notes:\n")
	b.WriteString("  - The keypair file is a JSON array of 64 bytes (seed followed by public key)\n")
	b.WriteString("  - The keypair file should have permissions 0600 (owner read/write only)\n")
	b.WriteString("  - Store your keypair file securely and create backups\n")
	b.WriteString("  - NEVER share your secret key with anyone\n\n")

	b.WriteString("Verification:\n")
	b.WriteString("  - To verify this keypair, run: vanity -check <keypair-file>\n\n")
	b.WriteString(reportRule + "\n")
	return b.String()
}
