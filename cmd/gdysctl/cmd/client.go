package cmd

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gdys/pkg/client"
)

// newClient builds an API client from the resolved configuration.
func newClient() (*client.Client, error) {
	sessions, err := client.NewFileSessionStore(viper.GetString("session"))
	if err != nil {
		return nil, err
	}
	return client.New(viper.GetString("url"), sessions), nil
}

// parseQuery turns repeated key=value flags into a query map.
func parseQuery(pairs []string) map[string]string {
	if len(pairs) == 0 {
		return nil
	}
	query := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, _ := strings.Cut(p, "=")
		query[k] = v
	}
	return query
}

// printJSON pretty-prints a decoded response.
func printJSON(cmd *cobra.Command, v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		cmd.Printf("Error: %v\n", err)
		return
	}
	cmd.Println(string(out))
}

// reportError prints API errors with their status code.
func reportError(cmd *cobra.Command, err error) {
	if apiErr, ok := err.(*client.APIError); ok {
		cmd.Printf("Error (%d): %s\n", apiErr.StatusCode, apiErr.Message)
		return
	}
	cmd.Printf("Error: %v\n", err)
}
