/*
Copyright © 2025 docmindhq
*/
package cmd

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/docmindhq/docmind-be/config"
	"github.com/docmindhq/docmind-be/database"
	"github.com/docmindhq/docmind-be/service"
	"github.com/docmindhq/docmind-be/types"
)

// indexDocumentCmd represents the index-document command
var indexDocumentCmd = &cobra.Command{
	Use:   "index-document",
	Short: "Chunk a PDF and index it into the local vector store",
	Run: func(cmd *cobra.Command, args []string) {
		filePath, _ := cmd.Flags().GetString("file")
		title, _ := cmd.Flags().GetString("title")
		tags, _ := cmd.Flags().GetStringArray("tags")
		reinit, _ := cmd.Flags().GetBool("reinit")
		embed, _ := cmd.Flags().GetBool("embed")

		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		store, err := database.NewWeaviateStore(cfg.Weaviate)
		if err != nil {
			log.Fatalf("Failed to connect to weaviate: %v", err)
		}
		if reinit {
			if err := store.ReInit(); err != nil {
				log.Fatalf("Failed to reinitialize vector store: %v", err)
			}
		}

		var embedder service.EmbeddingService
		if embed {
			aiProcessor, err := service.NewAIProcessor(cfg.AI)
			if err != nil {
				log.Fatalf("Failed to create AI processor: %v", err)
			}
			embedder = aiProcessor
		}

		indexer := service.NewIndexService(
			cfg.UploadDir,
			store,
			embedder,
			service.NewPDFService(),
			service.NewChunker(chunkerConfig(cfg)),
		)

		data, err := os.ReadFile(filePath)
		if err != nil {
			log.Fatalf("Failed to read file: %v", err)
		}
		if title == "" {
			title = filepath.Base(filePath)
		}

		count, err := indexer.IndexDocument(context.Background(), types.UploadRequest{
			Title:  title,
			Source: filePath,
			Tags:   tags,
		}, filepath.Base(filePath), data)
		if err != nil {
			log.Fatalf("Indexing failed: %v", err)
		}
		log.Printf("Indexed %d chunks from %s", count, filePath)
	},
}

func chunkerConfig(cfg *config.Config) types.ChunkerConfig {
	return types.ChunkerConfig{
		MaxChunkSize: cfg.Chunker.MaxChunkSize,
		OverlapSize:  cfg.Chunker.OverlapSize,
	}
}

func init() {
	rootCmd.AddCommand(indexDocumentCmd)
	indexDocumentCmd.Flags().StringP("file", "f", "", "path to the PDF to index")
	indexDocumentCmd.Flags().String("title", "", "document title (defaults to the file name)")
	indexDocumentCmd.Flags().StringArray("tags", nil, "tags attached to every chunk")
	indexDocumentCmd.Flags().Bool("reinit", false, "drop and recreate the chunk class first")
	indexDocumentCmd.Flags().Bool("embed", false, "embed chunks client-side instead of the server vectorizer")
	indexDocumentCmd.MarkFlagRequired("file")
}
