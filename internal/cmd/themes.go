package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wethinkt/seslog/internal/tui/theme"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available themes",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("built-in: dark, light")

		themesDir, err := theme.ThemesDir()
		if err != nil {
			return nil
		}
		entries, err := os.ReadDir(themesDir)
		if err != nil {
			return nil // no user themes yet
		}
		var names []string
		for _, e := range entries {
			if name, ok := strings.CutSuffix(e.Name(), ".json"); ok {
				names = append(names, name)
			}
		}
		if len(names) > 0 {
			fmt.Printf("user (%s): %s\n", themesDir, strings.Join(names, ", "))
		}
		return nil
	},
}

var themesExportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Write a theme file to the user themes directory for customization",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		t, err := theme.LoadByName(name)
		if err != nil {
			return err
		}
		if err := theme.Save(name, t); err != nil {
			return err
		}
		themesDir, err := theme.ThemesDir()
		if err != nil {
			return err
		}
		fmt.Println("Wrote", filepath.Join(themesDir, name+".json"))
		return nil
	},
}

func init() {
	themesCmd.AddCommand(themesExportCmd)
	rootCmd.AddCommand(themesCmd)
}
