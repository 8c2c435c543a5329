/*
Copyright © 2025 docmindhq
*/
package cmd

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/docmindhq/docmind-be/config"
	"github.com/docmindhq/docmind-be/database"
	"github.com/docmindhq/docmind-be/handler"
	"github.com/docmindhq/docmind-be/middleware"
	"github.com/docmindhq/docmind-be/service"
)

// startServerCmd represents the start command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the docmind HTTP server",
	Long:  `Starts a server exposing completion, embedding, document and extraction endpoints`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		aiProcessor, err := service.NewAIProcessor(cfg.AI)
		if err != nil {
			log.Fatalf("Failed to create AI processor: %v", err)
		}

		corsHandler := handler.NewCorsHandler()
		chatHandler := handler.NewChatHandler(aiProcessor)
		wsService := service.NewWebSocketService(aiProcessor)

		router := gin.Default()
		router.Use(corsHandler.CorsMiddleware)
		router.Use(middleware.RequestID())

		apiV1 := router.Group("/api/v1")
		apiV1.Use(middleware.APIKeyAuth(cfg.ServerAPIKey))

		apiV1.POST("/chat", chatHandler.HandleCompletion)
		apiV1.POST("/embeddings", chatHandler.HandleEmbeddings)
		router.GET("/ws/chat", func(c *gin.Context) {
			wsService.HandleChat(c.Writer, c.Request)
		})

		if cfg.Platform.BaseURL != "" {
			docOps, err := service.NewDocumentOperations(cfg.Platform)
			if err != nil {
				log.Fatalf("Failed to create document operations: %v", err)
			}
			docHandler := handler.NewDocumentHandler(docOps)
			extractHandler := handler.NewExtractHandler(docOps)

			apiV1.POST("/documents", docHandler.HandleUpload)
			apiV1.GET("/documents/:id", docHandler.HandleGet)
			apiV1.POST("/documents/search", docHandler.HandleSearch)
			apiV1.POST("/extract/text", extractHandler.HandleText)
			apiV1.POST("/extract/pages", extractHandler.HandlePages)
			apiV1.POST("/extract/tables", extractHandler.HandleTables)
			apiV1.POST("/extract/sheets", extractHandler.HandleSheets)
			apiV1.POST("/extract/sheet-rows", extractHandler.HandleSheetRows)
		}

		if cfg.Weaviate.Host != "" {
			store, err := database.NewWeaviateStore(cfg.Weaviate)
			if err != nil {
				log.Fatalf("Failed to connect to weaviate: %v", err)
			}
			indexer := service.NewIndexService(
				cfg.UploadDir,
				store,
				aiProcessor,
				service.NewPDFService(),
				service.NewChunker(chunkerConfig(cfg)),
			)
			apiV1.POST("/index", handler.NewIndexHandler(indexer).HandleIndex)
			apiV1.POST("/search", handler.NewSearchHandler(store).HandleSearch)
		}

		port := cfg.Port
		if port == "" {
			port = "8080"
		}
		log.Println("Starting server on port", port)
		if err := router.Run(":" + port); err != nil {
			log.Fatalf("Server stopped: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(startServerCmd)
}
