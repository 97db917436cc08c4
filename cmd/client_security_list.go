// Copyright (c) 2024 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/sitegate-io/sitegate/internal/cli"
)

var (
	securityListLimit  int
	securityListOffset int
)

// clientSecurityListCmd represents the clientSecurityList command.
var clientSecurityListCmd = &cobra.Command{
	Use:   "list",
	Short: "List security audit log entries",
	Long: `List security audit log entries with pagination.

Displays a table of recorded security events including action, resource,
severity, and source IP. Requires security:read permission.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		entries, total, err := apiClient.ListAuditEntries(ctx, securityListLimit, securityListOffset)
		if err != nil {
			cli.LogFatal(logger, "failed to list audit entries", err)
		}

		if jsonOutput {
			out, merr := json.MarshalIndent(entries, "", "  ")
			if merr != nil {
				cli.LogFatal(logger, "failed to marshal audit entries", merr)
			}
			fmt.Println(string(out))
			return
		}

		fmt.Println()
		cli.PrintKV("Total", strconv.Itoa(total))

		if len(entries) == 0 {
			fmt.Println("  No audit entries found.")
			return
		}

		cli.PrintCompactTable([]cli.Section{
			{
				Title: "Audit Entries",
				Headers: []string{
					"ID",
					"ACTION",
					"RESOURCE",
					"SEVERITY",
					"SOURCE IP",
					"AGE",
				},
				Rows: cli.BuildAuditRows(entries, time.Now()),
			},
		})
	},
}

func init() {
	clientSecurityCmd.AddCommand(clientSecurityListCmd)
	clientSecurityListCmd.Flags().
		IntVar(&securityListLimit, "limit", 20, "Maximum number of entries to return")
	clientSecurityListCmd.Flags().
		IntVar(&securityListOffset, "offset", 0, "Number of entries to skip")
}
