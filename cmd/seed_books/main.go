package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"flipshelf/store"
)

// seedBook mirrors the listing fields as they appear in the seed file.
type seedBook struct {
	Title       string `yaml:"title"`
	Author      string `yaml:"author"`
	Price       string `yaml:"price"`
	Category    string `yaml:"category"`
	Subcategory string `yaml:"subcategory"`
	Year        string `yaml:"year"`
	Publisher   string `yaml:"publisher"`
	City        string `yaml:"city"`
	PostalCode  string `yaml:"postalCode"`
	Description string `yaml:"description"`
}

func main() {
	dbFile := "flipshelf.db"
	if v := os.Getenv("FLIPSHELF_DB"); v != "" {
		dbFile = v
	}
	seedFile := "seed/books.yaml"
	if len(os.Args) > 1 {
		seedFile = os.Args[1]
	}

	// Start from a clean database.
	fmt.Println("Cleaning up existing database files...")
	for _, file := range []string{dbFile, dbFile + "-shm", dbFile + "-wal"} {
		if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
			fmt.Printf("Warning: Could not remove %s: %v\n", file, err)
		}
	}

	mgr, err := store.Open(dbFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating store: %v\n", err)
		os.Exit(1)
	}
	defer mgr.Close()

	data, err := os.ReadFile(seedFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading seed file: %v\n", err)
		os.Exit(1)
	}
	var seeds []seedBook
	if err := yaml.Unmarshal(data, &seeds); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing seed file: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	successCount := 0
	errorCount := 0

	fmt.Printf("Importing %d listings from %s...\n", len(seeds), seedFile)
	for _, s := range seeds {
		fmt.Printf("Importing: %s by %s... ", s.Title, s.Author)
		_, err := mgr.Books.Append(ctx, store.Book{
			Title:       s.Title,
			Author:      s.Author,
			Price:       s.Price,
			Category:    s.Category,
			Subcategory: s.Subcategory,
			Year:        s.Year,
			Publisher:   s.Publisher,
			City:        s.City,
			PostalCode:  s.PostalCode,
			Description: s.Description,
		})
		if err != nil {
			var ve *store.ValidationError
			if errors.As(err, &ve) {
				fmt.Printf("SKIPPED - %v\n", ve)
			} else {
				fmt.Printf("ERROR - %v\n", err)
			}
			errorCount++
			continue
		}
		fmt.Println("SUCCESS")
		successCount++
	}

	fmt.Printf("\nImport complete!\n")
	fmt.Printf("Successfully imported: %d listings\n", successCount)
	fmt.Printf("Errors: %d\n", errorCount)

	if successCount > 0 {
		fmt.Println("\nCurrent listings:")
		books, err := mgr.Books.List(ctx)
		if err != nil {
			fmt.Printf("Error retrieving listings: %v\n", err)
			return
		}
		fmt.Print(store.FormatBookTable(books))
	}
}
