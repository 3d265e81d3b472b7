package main

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"flipshelf/reviews"
	"flipshelf/store"
)

const defaultDBFile = "flipshelf.db"

// homeCategories is the category strip on the home screen.
var homeCategories = []string{"Fiktion", "Non-fiktion", "Børnebøger", "Klassikere", "Fantasy"}

// sellCategories are the categories the sell form offers.
var sellCategories = []string{
	"Studiebøger", "Fantasy", "Romantisk", "Thriller", "Scifi", "Romcom",
	"Krimi", "Biografier", "Sundhed", "Mad og Drikke", "Økonomi",
	"Erhverv og ledelse",
}

// rootOptions holds global flags for all commands.
type rootOptions struct {
	Database string
	Verbose  bool
}

func main() {
	_ = godotenv.Load()

	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "flipshelf",
		Short: "FlipShelf - share and discover used books",
		Long:  "A local marketplace for used books: list your own, browse and save others, all stored on this device.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if opts.Verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
		SilenceUsage: true,
	}

	dbDefault := defaultDBFile
	if v := os.Getenv("FLIPSHELF_DB"); v != "" {
		dbDefault = v
	}
	cmd.PersistentFlags().StringVar(&opts.Database, "db", dbDefault, "path to the local store")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(newHomeCommand(opts))
	cmd.AddCommand(newBrowseCommand(opts))
	cmd.AddCommand(newShowCommand(opts))
	cmd.AddCommand(newSellCommand(opts))
	cmd.AddCommand(newDeleteCommand(opts))
	cmd.AddCommand(newSaveCommand(opts))
	cmd.AddCommand(newUnsaveCommand(opts))
	cmd.AddCommand(newSavedCommand(opts))
	cmd.AddCommand(newProfileCommand(opts))
	cmd.AddCommand(newCreateUserCommand(opts))
	cmd.AddCommand(newLoginCommand(opts))
	cmd.AddCommand(newLogoutCommand(opts))
	cmd.AddCommand(newReviewsCommand(opts))

	return cmd
}

// openManager opens the store fresh for each command, the way every
// screen reloads its collection on becoming visible.
func openManager(opts *rootOptions) (*store.Manager, error) {
	mgr, err := store.Open(opts.Database)
	if err != nil {
		return nil, fmt.Errorf("open store at %s: %w", opts.Database, err)
	}
	return mgr, nil
}

func newHomeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "home",
		Short: "Categories and current listings",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := openManager(opts)
			if err != nil {
				return err
			}
			defer mgr.Close()

			books, err := mgr.Books.List(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Println("FlipShelf")
			fmt.Println("Del og opdag brugte bøger")
			fmt.Println()
			fmt.Println("Categories:", strings.Join(homeCategories, " | "))
			fmt.Println()
			fmt.Println("Books for sale:")
			fmt.Print(store.FormatBookSummaries(books))
			return nil
		},
	}
}

func newBrowseCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "browse [term]",
		Short: "All listings, optionally filtered by title",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := openManager(opts)
			if err != nil {
				return err
			}
			defer mgr.Close()

			term := ""
			if len(args) == 1 {
				term = args[0]
			}
			books, err := mgr.Books.SearchByTitle(cmd.Context(), term)
			if err != nil {
				return err
			}
			if term != "" && len(books) == 0 {
				fmt.Printf("No listings matching %q.\n", term)
				return nil
			}
			fmt.Print(store.FormatBookTable(books))
			return nil
		},
	}
}

func newShowCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <title>",
		Short: "Details for one listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := openManager(opts)
			if err != nil {
				return err
			}
			defer mgr.Close()

			book, err := mgr.Books.GetByTitle(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Print(store.FormatBookDetail(book))

			saved, err := mgr.Saved.IsSaved(cmd.Context(), book.Title)
			if err != nil {
				return err
			}
			if saved {
				fmt.Println("(saved)")
			}
			return nil
		},
	}
}

func newSellCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sell",
		Short: "Put a book up for sale",
		Long: "Prompts for the listing fields and stores the book. " +
			"Requires being logged in.\nCategories: " + strings.Join(sellCategories, ", "),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := openManager(opts)
			if err != nil {
				return err
			}
			defer mgr.Close()

			if err := mgr.Session.RequireLogin(cmd.Context()); err != nil {
				return err
			}

			sc := bufio.NewScanner(os.Stdin)
			book := store.Book{
				Title:       promptLine(sc, "Title: "),
				Author:      promptLine(sc, "Author: "),
				Category:    promptLine(sc, "Category: "),
				Subcategory: promptLine(sc, "Subject (optional): "),
				Year:        promptLine(sc, "Year: "),
				Publisher:   promptLine(sc, "Publisher: "),
				Price:       promptLine(sc, "Price (DKK): "),
				PostalCode:  promptLine(sc, "Postal code: "),
				City:        promptLine(sc, "City: "),
				Description: promptLine(sc, "Description (optional): "),
				ImageURI:    promptLine(sc, "Image path (optional): "),
			}

			created, err := mgr.Books.Append(cmd.Context(), book)
			if err != nil {
				return err
			}
			fmt.Printf("Listing created: %s by %s\n", created.Title, created.Author)
			return nil
		},
	}
}

func newDeleteCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <title>",
		Short: "Remove one of your listings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := openManager(opts)
			if err != nil {
				return err
			}
			defer mgr.Close()

			if err := mgr.Session.RequireLogin(cmd.Context()); err != nil {
				return err
			}
			if err := mgr.Books.RemoveByTitle(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Listing deleted: %s\n", args[0])
			return nil
		},
	}
}

func newSaveCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "save <title>",
		Short: "Toggle a listing in your saved books",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := openManager(opts)
			if err != nil {
				return err
			}
			defer mgr.Close()

			book, err := mgr.Books.GetByTitle(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			saved, err := mgr.Saved.Toggle(cmd.Context(), book)
			if err != nil {
				return err
			}
			if saved {
				fmt.Printf("Saved: %s\n", book.Title)
			} else {
				fmt.Printf("Removed from saved: %s\n", book.Title)
			}
			return nil
		},
	}
}

func newUnsaveCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "unsave <title>",
		Short: "Remove a book from your saved list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := openManager(opts)
			if err != nil {
				return err
			}
			defer mgr.Close()

			if err := mgr.Saved.Remove(cmd.Context(), args[0]); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return fmt.Errorf("%q is not in your saved books", args[0])
				}
				return err
			}
			fmt.Printf("Removed from saved: %s\n", args[0])
			return nil
		},
	}
}

func newSavedCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "saved",
		Short: "Your saved books",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := openManager(opts)
			if err != nil {
				return err
			}
			defer mgr.Close()

			books, err := mgr.Saved.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(books) == 0 {
				fmt.Println("No saved books.")
				return nil
			}
			fmt.Print(store.FormatBookSummaries(books))
			return nil
		},
	}
}

func newProfileCommand(opts *rootOptions) *cobra.Command {
	var edit bool

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit your seller contact profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := openManager(opts)
			if err != nil {
				return err
			}
			defer mgr.Close()

			if edit {
				sc := bufio.NewScanner(os.Stdin)
				p := store.Profile{
					Name:    promptLine(sc, "Name: "),
					Address: promptLine(sc, "Address: "),
					Phone:   promptLine(sc, "Phone: "),
					Email:   promptLine(sc, "Email: "),
				}
				if err := mgr.Profile.Save(cmd.Context(), p); err != nil {
					return err
				}
				fmt.Println("Profile saved.")
				return nil
			}

			p, err := mgr.Profile.Load(cmd.Context())
			if err != nil {
				return err
			}
			if p == (store.Profile{}) {
				fmt.Println("No profile yet. Run 'flipshelf profile --edit' to create one.")
				return nil
			}
			fmt.Printf("Name:    %s\n", p.Name)
			fmt.Printf("Address: %s\n", p.Address)
			fmt.Printf("Phone:   %s\n", p.Phone)
			fmt.Printf("Email:   %s\n", p.Email)
			return nil
		},
	}
	cmd.Flags().BoolVar(&edit, "edit", false, "prompt for and overwrite the profile")
	return cmd
}

func newCreateUserCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "create-user",
		Short: "Create the account (replaces any existing one)",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := openManager(opts)
			if err != nil {
				return err
			}
			defer mgr.Close()

			sc := bufio.NewScanner(os.Stdin)
			username := promptLine(sc, "Username: ")
			password, err := readPassword("Password: ")
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}

			if err := mgr.Session.CreateAccount(cmd.Context(), username, password); err != nil {
				return err
			}
			fmt.Println("User created successfully!")
			return nil
		},
	}
}

func newLoginCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := openManager(opts)
			if err != nil {
				return err
			}
			defer mgr.Close()

			sc := bufio.NewScanner(os.Stdin)
			username := promptLine(sc, "Username: ")
			password, err := readPassword("Password: ")
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}

			if err := mgr.Session.Login(cmd.Context(), username, password); err != nil {
				return err
			}
			fmt.Println("You are now logged in!")
			return nil
		},
	}
}

func newLogoutCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := openManager(opts)
			if err != nil {
				return err
			}
			defer mgr.Close()

			if err := mgr.Session.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func newReviewsCommand(opts *rootOptions) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "reviews",
		Short: "Current best-seller list",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := reviews.NewClient(os.Getenv("NYT_API_KEY"))
			list := os.Getenv("NYT_LIST")
			if list == "" {
				list = reviews.DefaultList
			}

			books, err := client.CurrentList(cmd.Context(), list)
			if err != nil {
				return err
			}
			books = reviews.FilterByTitle(books, search)
			if len(books) == 0 {
				fmt.Println("No books found.")
				return nil
			}
			for _, b := range books {
				fmt.Printf("%2d. %s\n    By %s (%s)\n", b.Rank, b.Title, b.Author, b.Publisher)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "filter titles by substring")
	return cmd
}

// promptLine reads one trimmed line of input.
func promptLine(sc *bufio.Scanner, prompt string) string {
	fmt.Print(prompt)
	if !sc.Scan() {
		return ""
	}
	return strings.TrimSpace(sc.Text())
}

// readPassword reads a password without echoing it.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Println()
	return strings.TrimSpace(string(bytePassword)), nil
}
