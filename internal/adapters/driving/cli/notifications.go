package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wordwatch/internal/adapters/driven/notify"
)

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "List recorded notifications",
	Long:  `Lists mention and removal notifications, newest first.`,
	Args:  cobra.NoArgs,
	RunE:  runNotifications,
}

var (
	notificationsUser  string
	notificationsLimit int
)

func init() {
	notificationsCmd.Flags().StringVarP(&notificationsUser, "user", "u", "", "only notifications targeting this user")
	notificationsCmd.Flags().IntVarP(&notificationsLimit, "limit", "n", 20, "maximum number of notifications")
	rootCmd.AddCommand(notificationsCmd)
}

func runNotifications(cmd *cobra.Command, _ []string) error {
	if notificationReader == nil {
		return errors.New("notification store not configured")
	}

	notifications, err := notificationReader.List(context.Background(), notificationsUser, notificationsLimit)
	if err != nil {
		return fmt.Errorf("failed to list notifications: %w", err)
	}

	if len(notifications) == 0 {
		cmd.Println("No notifications.")
		return nil
	}

	for i := range notifications {
		cmd.Printf("%s  %s\n",
			notifications[i].CreatedAt.Format("2006-01-02 15:04:05"),
			notify.FormatLine(&notifications[i]))
	}
	return nil
}
