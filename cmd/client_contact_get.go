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
	"time"

	"github.com/spf13/cobra"

	"github.com/sitegate-io/sitegate/internal/cli"
)

// clientContactGetCmd represents the clientContactGet command.
var clientContactGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Get a single contact form submission",
	Long: `Get a single contact form submission by its ID.

Requires security:read permission.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()
		contactID, _ := cmd.Flags().GetString("contact-id")

		submission, err := apiClient.GetContactSubmission(ctx, contactID)
		if err != nil {
			cli.LogFatal(logger, "failed to get contact submission", err)
		}

		if jsonOutput {
			out, merr := json.MarshalIndent(submission, "", "  ")
			if merr != nil {
				cli.LogFatal(logger, "failed to marshal contact submission", merr)
			}
			fmt.Println(string(out))
			return
		}

		fmt.Println()
		cli.PrintKV("ID", submission.ID)
		cli.PrintKV("Name", submission.Name, "Email", submission.Email)
		cli.PrintKV("Subject", submission.Subject)
		cli.PrintKV("Source IP", submission.SourceIP)
		cli.PrintKV("Received", submission.CreatedAt.Format(time.RFC3339))
		fmt.Println()
		fmt.Println(submission.Message)
	},
}

func init() {
	clientContactCmd.AddCommand(clientContactGetCmd)

	clientContactGetCmd.PersistentFlags().
		StringP("contact-id", "", "", "Contact submission ID to retrieve")

	_ = clientContactGetCmd.MarkPersistentFlagRequired("contact-id")
}
