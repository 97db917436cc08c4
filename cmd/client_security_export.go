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
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sitegate-io/sitegate/internal/audit/export"
	"github.com/sitegate-io/sitegate/internal/cli"
)

var (
	securityExportOutput string
	securityExportType   string
	securityExportBatch  int
)

// clientSecurityExportCmd represents the clientSecurityExport command.
var clientSecurityExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export security audit log entries to a file",
	Long: `Export all security audit log entries to a file for long-term retention.

Pages through the audit log via the REST API and writes each entry as a
JSON line (JSONL format). Requires security:read permission.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		var exporter export.Exporter
		switch securityExportType {
		case "file":
			exporter = export.NewFileExporter(appFs, securityExportOutput)
		default:
			cli.LogFatal(
				logger,
				"unsupported export type",
				fmt.Errorf("type %q is not supported, use \"file\"", securityExportType),
			)
		}

		result, err := export.Run(
			ctx,
			logger,
			apiClient.ListAuditEntries,
			exporter,
			securityExportBatch,
			nil,
		)
		if err != nil {
			cli.LogFatal(logger, "export failed", err)
		}

		fmt.Println()
		cli.PrintKV(
			"Exported", strconv.Itoa(result.ExportedEntries),
			"Total", strconv.Itoa(result.TotalEntries),
		)
		cli.PrintKV("Output", securityExportOutput)
	},
}

func init() {
	clientSecurityCmd.AddCommand(clientSecurityExportCmd)
	clientSecurityExportCmd.Flags().
		StringVar(&securityExportOutput, "output", "", "Output file path (required)")
	clientSecurityExportCmd.Flags().
		StringVar(&securityExportType, "type", "file", "Export backend type")
	clientSecurityExportCmd.Flags().
		IntVar(&securityExportBatch, "batch-size", 100, "Entries fetched per API request")
	_ = clientSecurityExportCmd.MarkFlagRequired("output")
}
