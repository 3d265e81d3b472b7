package store

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// FormatBookTable renders listings as the browse table. Columns are
// padded by rune count, not bytes, so Danish titles line up.
func FormatBookTable(books []Book) string {
	if len(books) == 0 {
		return "No listings yet.\n"
	}

	var sb strings.Builder
	writeBookRow(&sb, "Title", "Author", "Price", "Category", "Year")
	sb.WriteString(strings.Repeat("-", 84))
	sb.WriteString("\n")
	for _, b := range books {
		writeBookRow(&sb,
			truncateString(b.Title, 30),
			truncateString(b.Author, 22),
			b.Price+" DKK",
			truncateString(b.Category, 16),
			b.Year)
	}
	return sb.String()
}

func writeBookRow(sb *strings.Builder, title, author, price, category, year string) {
	fmt.Fprintf(sb, "%s %s %s %s %s\n",
		padRight(title, 30),
		padRight(author, 22),
		padRight(price, 10),
		padRight(category, 16),
		year)
}

func padRight(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// FormatBookSummaries renders the short home-screen rows.
func FormatBookSummaries(books []Book) string {
	if len(books) == 0 {
		return "No listings yet.\n"
	}
	var sb strings.Builder
	for _, b := range books {
		fmt.Fprintf(&sb, "%s\n  %s (%s DKK)\n", b.Title, b.Author, b.Price)
	}
	return sb.String()
}

// FormatBookDetail renders the detail view for a single listing.
func FormatBookDetail(b Book) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", b.Title)
	fmt.Fprintf(&sb, "By: %s\n", b.Author)
	fmt.Fprintf(&sb, "Price: %s DKK\n", b.Price)
	fmt.Fprintf(&sb, "Category: %s\n", b.Category)
	if b.Subcategory != "" {
		fmt.Fprintf(&sb, "Subject: %s\n", b.Subcategory)
	}
	fmt.Fprintf(&sb, "Year: %s\n", b.Year)
	fmt.Fprintf(&sb, "Publisher: %s\n", b.Publisher)
	fmt.Fprintf(&sb, "Location: %s, %s\n", b.City, b.PostalCode)
	fmt.Fprintf(&sb, "Description: %s\n", b.Description)
	if b.ImageURI != "" {
		fmt.Fprintf(&sb, "Image: %s\n", b.ImageURI)
	}
	return sb.String()
}

func truncateString(s string, maxLength int) string {
	r := []rune(s)
	if len(r) <= maxLength {
		return s
	}
	return string(r[:maxLength-3]) + "..."
}
