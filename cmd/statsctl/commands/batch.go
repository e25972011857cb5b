package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(batchCmd)
}

var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "按行读取 platform,username 并逐个获取统计数据，文件为 - 时读取标准输入",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var in io.Reader = cmd.InOrStdin()
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("打开文件失败: %w", err)
			}
			defer f.Close()
			in = f
		}
		return runBatch(cmd.Context(), resolver, in, cmd.OutOrStdout())
	},
}

// batchResult 批量模式下每行的输出
type batchResult struct {
	Platform      string  `json:"platform"`
	Username      string  `json:"username"`
	FollowerCount *int64  `json:"follower_count"`
	DisplayName   *string `json:"display_name"`
	Error         string  `json:"error,omitempty"`
}

// parseBatchLine 解析 "platform,username"，平台名称中可以有空格
func parseBatchLine(line string) (platform, username string, ok bool) {
	idx := strings.LastIndex(line, ",")
	if idx < 0 {
		return "", "", false
	}
	platform = strings.TrimSpace(line[:idx])
	username = strings.TrimSpace(line[idx+1:])
	return platform, username, platform != "" && username != ""
}

// runBatch 顺序处理每一行，空行和 # 开头的行会被跳过
func runBatch(ctx context.Context, r Resolver, in io.Reader, out io.Writer) error {
	enc := json.NewEncoder(out)
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		platform, username, ok := parseBatchLine(line)
		result := batchResult{Platform: platform, Username: username}
		if !ok {
			result.Error = "Missing required fields: platform, username"
		} else {
			stats := r.ResolveStats(ctx, platform, username)
			result.FollowerCount = stats.FollowerCount
			result.DisplayName = stats.DisplayName
		}

		if err := enc.Encode(result); err != nil {
			return err
		}
	}

	return scanner.Err()
}
