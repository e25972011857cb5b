package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(platformsCmd)
}

var platformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "列出支持的平台",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		list := resolver.SupportedPlatforms()
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, "专用适配器:")
		for _, p := range list.Dedicated {
			fmt.Fprintf(out, "  %s\n", p)
		}
		fmt.Fprintln(out, "通用兜底:")
		for _, p := range list.Fallback {
			fmt.Fprintf(out, "  %s\n", p)
		}
		return nil
	},
}
