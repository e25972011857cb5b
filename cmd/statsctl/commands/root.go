package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"social-stats-service/internal/bootstrap"
	"social-stats-service/internal/config"
	"social-stats-service/internal/domain/entities"
	"social-stats-service/internal/services"
	"social-stats-service/pkg/logger"
)

// Resolver 命令行需要的统计服务能力
type Resolver interface {
	ResolveStats(ctx context.Context, platform, username string) *entities.ProfileStats
	SupportedPlatforms() services.PlatformList
}

var (
	configPath string
	logLevel   string
	resolver   Resolver
)

var rootCmd = &cobra.Command{
	Use:           "statsctl",
	Short:         "statsctl 获取社交平台账号的粉丝数和显示名称",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if resolver != nil {
			return nil
		}

		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}

		log, err := logger.NewLogger(logger.Config{
			Level:       logLevel,
			ServiceName: "statsctl",
			Output:      cmd.ErrOrStderr(),
		})
		if err != nil {
			return err
		}

		resolver = bootstrap.NewStatsService(cfg, log)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "配置文件路径")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logger.LevelWarn, "日志级别")
}

// ExecuteContext 执行命令
func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
