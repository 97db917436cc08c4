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
	contactListLimit  int
	contactListOffset int
)

// clientContactListCmd represents the clientContactList command.
var clientContactListCmd = &cobra.Command{
	Use:   "list",
	Short: "List contact form submissions",
	Long: `List contact form submissions with pagination.

Requires security:read permission.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		submissions, total, err := apiClient.ListContactSubmissions(
			ctx, contactListLimit, contactListOffset,
		)
		if err != nil {
			cli.LogFatal(logger, "failed to list contact submissions", err)
		}

		if jsonOutput {
			out, merr := json.MarshalIndent(submissions, "", "  ")
			if merr != nil {
				cli.LogFatal(logger, "failed to marshal contact submissions", merr)
			}
			fmt.Println(string(out))
			return
		}

		fmt.Println()
		cli.PrintKV("Total", strconv.Itoa(total))

		if len(submissions) == 0 {
			fmt.Println("  No contact submissions found.")
			return
		}

		rows := make([][]string, 0, len(submissions))
		for _, s := range submissions {
			rows = append(rows, []string{
				s.ID,
				s.Name,
				s.Email,
				s.Subject,
				s.SourceIP,
				cli.FormatAge(time.Since(s.CreatedAt)),
			})
		}

		cli.PrintCompactTable([]cli.Section{
			{
				Title: "Contact Submissions",
				Headers: []string{
					"ID",
					"NAME",
					"EMAIL",
					"SUBJECT",
					"SOURCE IP",
					"AGE",
				},
				Rows: rows,
			},
		})
	},
}

func init() {
	clientContactCmd.AddCommand(clientContactListCmd)
	clientContactListCmd.Flags().
		IntVar(&contactListLimit, "limit", 20, "Maximum number of submissions to return")
	clientContactListCmd.Flags().
		IntVar(&contactListOffset, "offset", 0, "Number of submissions to skip")
}
