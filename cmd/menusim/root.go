package main

import (
	"github.com/spf13/cobra"
)

type rootOptions struct {
	ConfigPath string
	LogLevel   string
	MenuDir    string
	Start      string
	Storage    string
}

func addRootArgs(cmd *cobra.Command, o *rootOptions) {
	cmd.PersistentFlags().StringVarP(&o.ConfigPath, "config", "c", "",
		"Path to the TOML configuration (default $ROTAMENU_CONFIG or ~/.config/rotamenu/config.toml).")
	cmd.PersistentFlags().StringVar(&o.LogLevel, "log-level", "",
		"Log level: debug, info, warn, error.")
	cmd.PersistentFlags().StringVar(&o.MenuDir, "menus", "",
		"Directory on storage holding the menu files.")
	cmd.PersistentFlags().StringVar(&o.Start, "start", "",
		"Name of the first page.")
	cmd.PersistentFlags().StringVar(&o.Storage, "storage", "",
		"Host directory served to the menu as its storage root.")
}

func newRootCommand() *cobra.Command {
	o := &rootOptions{}

	root := &cobra.Command{
		Use:   "menusim",
		Short: "Run rotary encoder menus without the hardware",
		Example: `
menusim run --storage ./sd
menusim render --storage ./sd --steps 2,p,-1 --out menu.png
`,
		SilenceUsage: true,
	}
	addRootArgs(root, o)

	root.AddCommand(newRunCommand(o))
	root.AddCommand(newRenderCommand(o))
	return root
}
