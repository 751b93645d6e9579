package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/amishk599/autoapply/internal/dashboard"
	"github.com/amishk599/autoapply/internal/notifier"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Check how application batches are reported",
}

var notifyTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Report a sample application batch through the configured notifier",
	Long:  "Sends a two-application sample batch (one applied, one failed) to the log or Slack webhook from the config.",
	RunE:  runNotifyTest,
}

var notifyPreviewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print the sample application batch without sending it",
	RunE:  runNotifyPreview,
}

func init() {
	rootCmd.AddCommand(notifyCmd)
	notifyCmd.AddCommand(notifyTestCmd, notifyPreviewCmd)
}

func runNotifyTest(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	n := setupNotifier(cfg, newHTTPClient(), logger)
	if err := notifier.SendTestMessage(n); err != nil {
		logger.Error("sample batch not delivered", "notifier", cfg.Notification.Type, "error", err)
		os.Exit(1)
	}
	logger.Info("sample batch delivered", "notifier", cfg.Notification.Type)
	return nil
}

func runNotifyPreview(cmd *cobra.Command, args []string) error {
	fmt.Fprint(cmd.OutOrStdout(), dashboard.Summary(notifier.SampleBatch(time.Now())))
	return nil
}
