package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wordwatch/internal/adapters/driven/config/file"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Manage words queries",
	Long:  `Add, remove, or list the words and phrases a user watches.`,
}

var queryAddCmd = &cobra.Command{
	Use:   "add [text]",
	Short: "Watch a word or phrase",
	Long: `Stores a new words query for a user. The text matches whole words
only and supports * (any run of characters) and ? (exactly one
character) wildcards; prefix a wildcard with \ to match it literally.`,
	Args: cobra.ExactArgs(1),
	RunE: runQueryAdd,
}

var queryRemoveCmd = &cobra.Command{
	Use:   "remove [text]",
	Short: "Stop watching a word or phrase",
	Args:  cobra.ExactArgs(1),
	RunE:  runQueryRemove,
}

var queryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a user's queries",
	Args:  cobra.NoArgs,
	RunE:  runQueryList,
}

var queryUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List users with at least one query",
	Args:  cobra.NoArgs,
	RunE:  runQueryUsers,
}

// queryUser is the user flag shared by the query subcommands.
var queryUser string

func init() {
	for _, c := range []*cobra.Command{queryAddCmd, queryRemoveCmd, queryListCmd} {
		c.Flags().StringVarP(&queryUser, "user", "u", "", "user the query belongs to")
	}

	queryCmd.AddCommand(queryAddCmd)
	queryCmd.AddCommand(queryRemoveCmd)
	queryCmd.AddCommand(queryListCmd)
	queryCmd.AddCommand(queryUsersCmd)
	rootCmd.AddCommand(queryCmd)
}

// resolveUser returns the --user flag value, falling back to the
// configured author.
func resolveUser() (string, error) {
	if queryUser != "" {
		return queryUser, nil
	}
	if configStore != nil {
		if author := configStore.GetString(file.KeyAuthor); author != "" {
			return author, nil
		}
	}
	return "", errors.New("no user given: pass --user or configure watch.author")
}

func runQueryAdd(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	user, err := resolveUser()
	if err != nil {
		return err
	}

	query, err := queryService.Add(context.Background(), user, args[0])
	if err != nil {
		return fmt.Errorf("failed to add query: %w", err)
	}

	cmd.Printf("Watching %q for %s.\n", query.Text, query.Owner)
	return nil
}

func runQueryRemove(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	user, err := resolveUser()
	if err != nil {
		return err
	}

	if err := queryService.Remove(context.Background(), user, args[0]); err != nil {
		return fmt.Errorf("failed to remove query: %w", err)
	}

	cmd.Printf("Stopped watching %q for %s.\n", args[0], user)
	return nil
}

func runQueryList(cmd *cobra.Command, _ []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	user, err := resolveUser()
	if err != nil {
		return err
	}

	queries, err := queryService.List(context.Background(), user)
	if err != nil {
		return fmt.Errorf("failed to list queries: %w", err)
	}

	if len(queries) == 0 {
		cmd.Printf("No queries for %s.\n", user)
		return nil
	}

	cmd.Printf("Queries for %s:\n\n", user)
	for i := range queries {
		cmd.Printf("  %q (added %s)\n", queries[i].Text, queries[i].CreatedAt.Format("2006-01-02 15:04:05"))
	}
	cmd.Printf("\nTotal: %d\n", len(queries))
	return nil
}

func runQueryUsers(cmd *cobra.Command, _ []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	users, err := queryService.Users(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	if len(users) == 0 {
		cmd.Println("No users are watching anything.")
		return nil
	}

	for _, user := range users {
		cmd.Println(user)
	}
	return nil
}
