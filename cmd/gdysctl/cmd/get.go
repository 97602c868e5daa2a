package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Fetch a resource or collection",
	Long: `Fetch any GDYS resource by its API path. The /api prefix is optional.

Example:
  gdysctl get vessels
  gdysctl get vessels/1b4e28ba-2fa1-11d2-883f-0016d3cca427
  gdysctl get certificates/expiring --query days=60
  gdysctl get logbook --query voyageId=<id>`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		queryFlags, _ := cmd.Flags().GetStringSlice("query")

		c, err := newClient()
		if err != nil {
			cmd.Printf("Error: %v\n", err)
			return
		}

		var result json.RawMessage
		if err := c.Get(cmd.Context(), args[0], parseQuery(queryFlags), &result); err != nil {
			reportError(cmd, err)
			return
		}

		var pretty any
		if err := json.Unmarshal(result, &pretty); err != nil {
			cmd.Println(string(result))
			return
		}
		printJSON(cmd, pretty)
	},
}

func init() {
	getCmd.Flags().StringSliceP("query", "q", nil, "Query parameter as key=value (repeatable)")

	rootCmd.AddCommand(getCmd)
}
