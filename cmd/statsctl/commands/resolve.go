package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var pretty bool

func init() {
	resolveCmd.Flags().BoolVar(&pretty, "pretty", false, "格式化输出JSON")
	rootCmd.AddCommand(resolveCmd)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <platform> <username>",
	Short: "获取单个账号的统计数据",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		stats := resolver.ResolveStats(cmd.Context(), args[0], args[1])

		var (
			out []byte
			err error
		)
		if pretty {
			out, err = json.MarshalIndent(stats, "", "  ")
		} else {
			out, err = json.Marshal(stats)
		}
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return err
	},
}
