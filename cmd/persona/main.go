// Package main 是 PersonaCore 的 CLI 入口
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/KodaTao/PersonaCore/pkg/app"
	"github.com/KodaTao/PersonaCore/pkg/observability"
	"github.com/KodaTao/PersonaCore/pkg/server"
)

var cfgFile string

func main() {
	rootCmd := &cobra.Command{
		Use:   "persona",
		Short: "PersonaCore - Schema-validated generation core for generative agents",
		Long: `PersonaCore turns an unreliable text-generation service into typed,
validated, retried, fail-safe-bounded operations for agent simulations.`,
	}

	// 全局 flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	// 添加子命令
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// serveCmd 启动 HTTP 服务器
func serveCmd() *cobra.Command {
	var port int
	var host string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long:  `Start the PersonaCore HTTP server to handle generation requests.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// 加载配置
			config, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			// 命令行参数覆盖配置
			if port != 0 {
				config.Server.Port = port
			}
			if host != "" {
				config.Server.Host = host
			}

			// 创建应用
			a := app.New(
				app.WithServerPort(config.Server.Port),
				app.WithServerMode(config.Server.Mode),
				app.WithLLMConfig(config.LLM),
				app.WithLogLevel(config.Log.Level),
				app.WithDatabasePath(config.Database.Path),
				app.WithGeneration(config.Generation),
				app.WithCache(config.Cache),
			)

			// 初始化
			if err := a.Initialize(); err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}

			// 创建 HTTP 服务器
			srv := server.NewServer(a, &server.Config{
				Host: config.Server.Host,
				Port: config.Server.Port,
				Mode: config.Server.Mode,
			})

			// 优雅关闭
			go func() {
				sigCh := make(chan os.Signal, 1)
				signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
				<-sigCh

				observability.Info("Received shutdown signal")
				a.Shutdown()
				os.Exit(0)
			}()

			// 启动服务器
			return srv.Run()
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Server port (default 8080)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Server host (default 0.0.0.0)")

	return cmd
}

// versionCmd 显示版本信息
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("PersonaCore v0.1.0")
			fmt.Println("Schema-validated generation core for generative agents")
		},
	}
}

// loadConfig 加载配置文件
func loadConfig() (*app.Config, error) {
	v := viper.New()

	// 设置默认值
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")

	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.base_url", "https://api.openai.com/v1")
	v.SetDefault("llm.model", "gpt-5-nano-2025-08-07")
	v.SetDefault("llm.embedding_model", "text-embedding-ada-002")
	v.SetDefault("llm.timeout", 60)

	v.SetDefault("database.path", "~/.personacore/data.db")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("generation.retry_budget", 5)
	v.SetDefault("generation.pause_ms", 100)
	v.SetDefault("generation.tail_merge_width", 5)

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", "720h")

	// 配置文件
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.personacore")
	}

	// 环境变量
	v.SetEnvPrefix("PC")
	v.AutomaticEnv()

	// 读取配置文件（如果存在）
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// 配置文件不存在时使用默认值
	}

	// 解析配置
	config := &app.Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, err
	}

	return config, nil
}
