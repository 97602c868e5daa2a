package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

// readPayload resolves the request body from --data or --file.
func readPayload(cmd *cobra.Command) (json.RawMessage, bool) {
	data, _ := cmd.Flags().GetString("data")
	file, _ := cmd.Flags().GetString("file")

	raw := []byte(data)
	if file != "" {
		var err error
		raw, err = os.ReadFile(file)
		if err != nil {
			cmd.Printf("Error: %v\n", err)
			return nil, false
		}
	}
	if len(raw) == 0 {
		cmd.Println("Error: --data or --file is required")
		return nil, false
	}
	if !json.Valid(raw) {
		cmd.Println("Error: payload is not valid JSON")
		return nil, false
	}
	return raw, true
}

var createCmd = &cobra.Command{
	Use:   "create <path>",
	Short: "Create a resource",
	Long: `Create a GDYS resource with a JSON payload.

Example:
  gdysctl create vessels --data '{"name":"MV Aurora","imoNumber":"9321483","vesselType":"BULK_CARRIER","flag":"MT"}'
  gdysctl create maintenance/tasks --file task.json`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		payload, ok := readPayload(cmd)
		if !ok {
			return
		}

		c, err := newClient()
		if err != nil {
			cmd.Printf("Error: %v\n", err)
			return
		}

		var result json.RawMessage
		if err := c.Post(cmd.Context(), args[0], nil, payload, &result); err != nil {
			reportError(cmd, err)
			return
		}

		cmd.Println("✓ Created")
		var pretty any
		if json.Unmarshal(result, &pretty) == nil {
			printJSON(cmd, pretty)
		}
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <path>",
	Short: "Update a resource",
	Long: `Update a GDYS resource. Only the fields present in the payload change.

Example:
  gdysctl update vessels/<id> --data '{"status":"LAID_UP"}'
  gdysctl update inventory/items/<id> --data '{"minQuantity":6}'`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		payload, ok := readPayload(cmd)
		if !ok {
			return
		}

		c, err := newClient()
		if err != nil {
			cmd.Printf("Error: %v\n", err)
			return
		}

		var result json.RawMessage
		if err := c.Put(cmd.Context(), args[0], nil, payload, &result); err != nil {
			reportError(cmd, err)
			return
		}

		cmd.Println("✓ Updated")
		var pretty any
		if json.Unmarshal(result, &pretty) == nil {
			printJSON(cmd, pretty)
		}
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <path>",
	Short: "Delete a resource",
	Long: `Delete a GDYS resource by its API path.

Example:
  gdysctl delete inventory/items/<id>`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := newClient()
		if err != nil {
			cmd.Printf("Error: %v\n", err)
			return
		}

		if err := c.Delete(cmd.Context(), args[0], nil); err != nil {
			reportError(cmd, err)
			return
		}
		cmd.Println("✓ Deleted")
	},
}

func init() {
	for _, c := range []*cobra.Command{createCmd, updateCmd} {
		c.Flags().StringP("data", "d", "", "JSON request body")
		c.Flags().StringP("file", "f", "", "Read the JSON request body from a file")
	}

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
}
