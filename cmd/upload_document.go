/*
Copyright © 2025 docmindhq
*/
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/docmindhq/docmind-be/config"
	"github.com/docmindhq/docmind-be/service"
)

// uploadDocumentCmd represents the upload-document command
var uploadDocumentCmd = &cobra.Command{
	Use:   "upload-document",
	Short: "Upload a document to the hosted document service",
	Run: func(cmd *cobra.Command, args []string) {
		filePath, _ := cmd.Flags().GetString("file")
		documentID, _ := cmd.Flags().GetString("document-id")
		ttlSeconds, _ := cmd.Flags().GetInt("ttl")

		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		docOps, err := service.NewDocumentOperations(cfg.Platform)
		if err != nil {
			log.Fatalf("Failed to create document operations: %v", err)
		}

		data, err := os.ReadFile(filePath)
		if err != nil {
			log.Fatalf("Failed to read file: %v", err)
		}

		ref, err := docOps.UploadDocument(
			context.Background(),
			filepath.Base(filePath),
			data,
			documentID,
			time.Duration(ttlSeconds)*time.Second,
		)
		if err != nil {
			log.Fatalf("Upload failed: %v", err)
		}
		fmt.Println("Uploaded document:", ref.DocumentID)
	},
}

func init() {
	rootCmd.AddCommand(uploadDocumentCmd)
	uploadDocumentCmd.Flags().StringP("file", "f", "", "path to the file to upload")
	uploadDocumentCmd.Flags().String("document-id", "", "document id to assign (service picks one when empty)")
	uploadDocumentCmd.Flags().Int("ttl", 900, "document time-to-live in seconds")
	uploadDocumentCmd.MarkFlagRequired("file")
}
