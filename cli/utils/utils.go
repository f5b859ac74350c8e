package utils

import (
	"github.com/spf13/cobra"
)

var UtilsCLI = &cobra.Command{
	Use:   "utils",
	Short: "Utils CLI",
	Long:  "Root command for spoke pool utility commands",
}

func init() {
	UtilsCLI.AddCommand(addressesCMD, selectorsCMD)
}
