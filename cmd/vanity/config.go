package main

import (
	"flag"
	"fmt"

	"github.com/dep2p/go-vanity/config"
)

// loadConfig 构建最终配置
//
// 依次应用默认值、配置文件、环境变量和显式指定的命令行参数。
func loadConfig(f *cliFlags, fs *flag.FlagSet, getenv func(string) string) (*config.Config, error) {
	cfg := config.NewConfig()
	if f.configFile != "" {
		loaded, err := config.LoadFile(f.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := config.ApplyEnv(cfg, getenv); err != nil {
		return nil, err
	}

	if err := applyFlags(cfg, f, fs); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags 用显式指定的命令行参数覆盖配置
//
// 未指定的参数保留配置文件和环境变量中的值。
func applyFlags(cfg *config.Config, f *cliFlags, fs *flag.FlagSet) error {
	set := visited(fs)

	if set["threads"] {
		if f.threads < 1 {
			return fmt.Errorf("threads 必须至少为 1，当前为 %d", f.threads)
		}
		cfg.Search = cfg.Search.WithThreads(f.threads)
	}
	if set["output"] {
		cfg.Output = cfg.Output.WithPath(f.output)
	}
	if set["overwrite"] {
		cfg.Output = cfg.Output.WithOverwrite(f.overwrite)
	}
	if set["report"] {
		cfg.Output = cfg.Output.WithReport(f.report)
	}
	if set["keystore"] {
		cfg.Output = cfg.Output.WithKeystoreDir(f.keystore)
	}
	if set["metrics-addr"] {
		cfg.Metrics = cfg.Metrics.WithListenAddr(f.metricsAddr)
	}
	return nil
}

// visited 返回命令行中显式出现过的参数名
func visited(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) {
		set[fl.Name] = true
	})
	return set
}
