package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/Astemirdum/book-tracker/cmd/books/commands"
)

// @title                       Book tracker API
// @version                     1.0
// @description                 Personal reading list: register, log in and manage your own books.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	// .env is optional, the environment wins either way
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintln(os.Stderr, "load .env:", err)
	}
	commands.Execute()
}
