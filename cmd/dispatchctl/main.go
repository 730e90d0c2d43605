package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"dispatch/entities"
	"dispatch/logging"
	"dispatch/pkg/apiclient"
	"dispatch/pkg/feed"
)

func main() {
	if err := newRootCmd(viper.New()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	root := &cobra.Command{
		Use:          "dispatchctl",
		Short:        "Command line client for the dispatch schedule API",
		SilenceUsage: true,
	}
	v.AutomaticEnv()
	v.SetDefault("API_URL", "http://localhost:8080")
	v.SetDefault("STATE_PATH", defaultStatePath())

	root.PersistentFlags().String("api-url", "", "API base URL (env API_URL)")
	root.PersistentFlags().String("token", "", "access token (env API_TOKEN)")
	root.PersistentFlags().String("state", "", "local state file (env STATE_PATH)")
	_ = v.BindPFlag("API_URL", root.PersistentFlags().Lookup("api-url"))
	_ = v.BindPFlag("API_TOKEN", root.PersistentFlags().Lookup("token"))
	_ = v.BindPFlag("STATE_PATH", root.PersistentFlags().Lookup("state"))

	root.AddCommand(loginCmd(v), notificationsCmd(v), themeCmd(v))
	return root
}

func defaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "dispatch", "state.json")
}

func client(v *viper.Viper) *apiclient.Client {
	return apiclient.New(v.GetString("API_URL"), v.GetString("API_TOKEN"))
}

func store(v *viper.Viper) *feed.LastReadStore {
	return feed.NewLastReadStore(v.GetString("STATE_PATH"))
}

func loginCmd(v *viper.Viper) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and print an access token for API_TOKEN",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := client(v).Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sess.AccessToken)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "login e-mail")
	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func notificationsCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"n"},
		Short:   "Read the task change feed",
	}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "Show the newest events",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := client(v).Notifications(cmd.Context(), limit)
			if err != nil {
				return err
			}
			printItems(cmd, items)
			return nil
		},
	}
	list.Flags().IntVar(&limit, "limit", 20, "number of events (max 100)")

	unread := &cobra.Command{
		Use:   "unread",
		Short: "Report whether there are unread events",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := feed.NewReader(client(v), store(v)).UnreadCount(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d unread\n", n)
			return nil
		},
	}

	read := &cobra.Command{
		Use:   "read",
		Short: "Mark everything as read on this device",
		RunE: func(cmd *cobra.Command, args []string) error {
			return feed.NewReader(client(v), store(v)).MarkRead()
		},
	}

	watch := &cobra.Command{
		Use:   "watch",
		Short: "Poll for unread events and session validity",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.Must("info", "console")
			defer log.Sync() //nolint:errcheck

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			c := client(v)
			last := false
			return feed.Watch(ctx, feed.NewReader(c, store(v)), c, feed.WatchConfig{
				OnUnread: func(unread bool) {
					if unread != last {
						log.Info("unread state", zap.Bool("unread", unread))
						last = unread
					}
				},
				OnSessionInvalid: func(err error) {
					if errors.Is(err, apiclient.ErrUnauthorized) {
						log.Warn("session expired, run dispatchctl login")
					}
				},
			}, log)
		},
	}

	cmd.AddCommand(list, unread, read, watch)
	return cmd
}

func themeCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark|system]",
		Short:     "Show or set the stored theme preference",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: feed.Themes,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := store(v)
			if len(args) == 1 {
				return s.SetTheme(args[0])
			}
			th, err := s.Theme()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), th)
			return nil
		},
	}
}

func printItems(cmd *cobra.Command, items []entities.NotificationItem) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tACTION\tCUSTOMER\tSITE\tBY")
	for _, it := range items {
		snap := it.TaskData.Data()
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			it.CreatedAt.In(time.Local).Format("01/02 15:04"),
			it.ActionType.Label(), snap.CustomerName, snap.SiteName, it.UserName)
	}
	_ = w.Flush()
}

