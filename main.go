/*
Copyright © 2025 docmindhq
*/
package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/docmindhq/docmind-be/cmd"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on process environment")
	}
	cmd.Execute()
}
