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

	"github.com/spf13/cobra"

	"github.com/sitegate-io/sitegate/internal/cli"
)

// clientSecurityGetCmd represents the clientSecurityGet command.
var clientSecurityGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Get a single security audit log entry",
	Long: `Get a single security audit log entry by its ID.

Requires security:read permission.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()
		auditID, _ := cmd.Flags().GetString("audit-id")

		entry, err := apiClient.GetAuditEntry(ctx, auditID)
		if err != nil {
			cli.LogFatal(logger, "failed to get audit entry", err)
		}

		if jsonOutput {
			out, merr := json.MarshalIndent(entry, "", "  ")
			if merr != nil {
				cli.LogFatal(logger, "failed to marshal audit entry", merr)
			}
			fmt.Println(string(out))
			return
		}

		cli.DisplayAuditEntry(*entry)
	},
}

func init() {
	clientSecurityCmd.AddCommand(clientSecurityGetCmd)

	clientSecurityGetCmd.PersistentFlags().
		StringP("audit-id", "", "", "Audit entry ID to retrieve")

	_ = clientSecurityGetCmd.MarkPersistentFlagRequired("audit-id")
}
