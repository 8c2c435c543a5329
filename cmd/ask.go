/*
Copyright © 2025 docmindhq
*/
package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/docmindhq/docmind-be/config"
	"github.com/docmindhq/docmind-be/service"
	"github.com/docmindhq/docmind-be/types"
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Run one completion against the configured model",
	Run: func(cmd *cobra.Command, args []string) {
		systemPrompt, _ := cmd.Flags().GetString("system")
		userPrompt, _ := cmd.Flags().GetString("prompt")
		model, _ := cmd.Flags().GetString("model")
		temperature, _ := cmd.Flags().GetFloat32("temperature")
		maxTokens, _ := cmd.Flags().GetInt("max-tokens")
		stream, _ := cmd.Flags().GetBool("stream")

		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		aiProcessor, err := service.NewAIProcessor(cfg.AI)
		if err != nil {
			log.Fatalf("Failed to create AI processor: %v", err)
		}

		req := types.CompletionRequest{
			SystemPrompt: systemPrompt,
			UserPrompt:   userPrompt,
			Model:        model,
			Temperature:  temperature,
			MaxTokens:    maxTokens,
		}

		if stream {
			err := aiProcessor.GenerateStream(context.Background(), req, func(chunk string) {
				fmt.Print(chunk)
			})
			if err != nil {
				log.Fatalf("Completion failed: %v", err)
			}
			fmt.Println()
			return
		}

		result, err := aiProcessor.GenerateCompletion(context.Background(), req)
		if err != nil {
			log.Fatalf("Completion failed: %v", err)
		}
		fmt.Println(result.Content)
		log.Printf("Tokens: prompt=%d completion=%d total=%d",
			result.Usage.PromptTokens, result.Usage.CompletionTokens, result.Usage.TotalTokens)
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().String("system", "You are a helpful assistant.", "system prompt")
	askCmd.Flags().StringP("prompt", "p", "", "user prompt")
	askCmd.Flags().String("model", "", "model override")
	askCmd.Flags().Float32("temperature", 0, "sampling temperature")
	askCmd.Flags().Int("max-tokens", 0, "response token limit (0 = service default)")
	askCmd.Flags().Bool("stream", false, "stream the response")
	askCmd.MarkFlagRequired("prompt")
}
