// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package cli

import (
	"github.com/spf13/cobra"
	"github.com/sprintertech/svm-spoke/app"
)

var (
	runCMD = &cobra.Command{
		Use:   "run",
		Short: "Run spoke host",
		Long:  "Opens the program account store and serves the spoke pool query API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run()
		},
	}
)
