package cmd

import (
	"bufio"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the GDYS API and persist the session",
	Long: `Authenticate with email and password. The returned token is stored in the
session file and reused by every other command until it expires.

Example:
  gdysctl login --email captain@example.com --password secret
  gdysctl login --email captain@example.com        (prompts for the password)`,
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.Flags()
		email, _ := flags.GetString("email")
		password, _ := flags.GetString("password")

		if email == "" {
			cmd.Println("Error: --email is required")
			return
		}
		if password == "" {
			cmd.Print("Password: ")
			line, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil {
				cmd.Printf("Error: %v\n", err)
				return
			}
			password = strings.TrimSpace(line)
		}

		c, err := newClient()
		if err != nil {
			cmd.Printf("Error: %v\n", err)
			return
		}

		resp, err := c.Login(cmd.Context(), email, password)
		if err != nil {
			reportError(cmd, err)
			return
		}

		if resp.User.VesselID != "" {
			cmd.Printf("✓ Logged in as %s (%s), vessel %s\n", resp.User.Name, resp.User.Role, resp.User.VesselID)
		} else {
			cmd.Printf("✓ Logged in as %s (%s), fleet-wide\n", resp.User.Name, resp.User.Role)
		}
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the persisted session",
	Run: func(cmd *cobra.Command, args []string) {
		c, err := newClient()
		if err != nil {
			cmd.Printf("Error: %v\n", err)
			return
		}
		if err := c.Logout(); err != nil {
			cmd.Printf("Error: %v\n", err)
			return
		}
		cmd.Println("✓ Logged out")
	},
}

func init() {
	flags := loginCmd.Flags()
	flags.StringP("email", "e", "", "Account email (required)")
	flags.StringP("password", "p", "", "Account password (prompted when omitted)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}
