package utils

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/sprintertech/svm-spoke/crossdomain"
)

var (
	selectorsCMD = &cobra.Command{
		Use:   "selectors",
		Short: "List cross domain admin selectors",
		Long:  "Lists the remote function selectors the spoke pool accepts from the cross domain admin",
		Run: func(cmd *cobra.Command, args []string) {
			selectors := crossdomain.Selectors()
			names := make([]string, 0, len(selectors))
			for name := range selectors {
				names = append(names, name)
			}
			sort.Strings(names)

			label := color.New(color.FgGreen).SprintFunc()
			for _, name := range names {
				fmt.Printf("%s 0x%x\n", label(fmt.Sprintf("%-28s", name)), selectors[name])
			}
		},
	}
)
