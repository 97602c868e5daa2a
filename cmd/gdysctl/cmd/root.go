package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "gdysctl",
	Short: "gdysctl is a command line tool for the GDYS fleet management API",
	Long: `gdysctl is the command-line interface for the GDYS ship and fleet
management platform.

Log in once and the session is persisted; subsequent commands reuse it. Crew
accounts are scoped to their own vessel automatically, office accounts
(SYSTEM_ADMIN, DPA_OFFICE) see the whole fleet.

Common workflows:

  Log in:
    gdysctl login --email captain@example.com

  List resources:
    gdysctl get vessels
    gdysctl get certificates/expiring --query days=60
    gdysctl get maintenance/tasks/overdue

  Create a record:
    gdysctl create incidents --data '{"incidentType":"NEAR_MISS","description":"..."}'

  Update and delete:
    gdysctl update vessels/<id> --data '{"status":"LAID_UP"}'
    gdysctl delete inventory/items/<id>

Configuration:
  Set the API endpoint via flag, environment variable or config file:
    GDYS_URL    API endpoint (default: http://localhost:8080)`,
}

func Execute() error {
	return rootCmd.Execute()
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".gdysctl"
		viper.AddConfigPath(home)
		viper.SetConfigName(".gdysctl")
		viper.SetConfigType("yaml")
	}

	// Read environment variables that match "GDYS_VARNAME"
	viper.SetEnvPrefix("GDYS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.gdysctl.yaml)")

	rootCmd.PersistentFlags().String("url", "http://localhost:8080", "GDYS API URL")
	viper.BindPFlag("url", rootCmd.PersistentFlags().Lookup("url"))

	rootCmd.PersistentFlags().String("session", "", "Session file path (default: gdys/session.json under the user config dir)")
	viper.BindPFlag("session", rootCmd.PersistentFlags().Lookup("session"))
}
