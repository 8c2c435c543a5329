/*
Copyright © 2025 docmindhq
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/docmindhq/docmind-be/service"
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract text, pages, tables or sheets from a local file",
	Run: func(cmd *cobra.Command, args []string) {
		filePath, _ := cmd.Flags().GetString("file")
		mode, _ := cmd.Flags().GetString("mode")
		sheet, _ := cmd.Flags().GetString("sheet")

		data, err := os.ReadFile(filePath)
		if err != nil {
			log.Fatalf("Failed to read file: %v", err)
		}

		pdf := service.NewPDFService()
		excel := service.NewExcelService()

		var result any
		switch mode {
		case "text":
			result, err = pdf.ExtractText(data)
		case "pages":
			result, err = pdf.ExtractPages(data)
		case "tables":
			result, err = pdf.ExtractTables(data)
		case "sheets":
			result, err = excel.ListSheets(data)
		case "rows":
			result, err = excel.SheetRows(data, sheet)
		case "records":
			result, err = excel.SheetRecords(data, sheet)
		default:
			log.Fatalf("Unknown mode: %s", mode)
		}
		if err != nil {
			log.Fatalf("Extraction failed: %v", err)
		}

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			log.Fatalf("Failed to encode result: %v", err)
		}
		fmt.Println(string(out))
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringP("file", "f", "", "path to the file")
	extractCmd.Flags().StringP("mode", "m", "text", "text|pages|tables|sheets|rows|records")
	extractCmd.Flags().String("sheet", "", "sheet name for rows/records modes")
	extractCmd.MarkFlagRequired("file")
}
