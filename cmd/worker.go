/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pius706975/poolseek-be/config"
	"github.com/pius706975/poolseek-be/internal/mail"
	"github.com/pius706975/poolseek-be/internal/mq"
	"github.com/spf13/cobra"
)

// workerCmd represents the worker command
var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Runs the mail worker",
	Long: `Runs the mail worker: consumes email jobs from the configured
queue and delivers them over SMTP. Usage:

	poolseek worker
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.LoadConfig()
		logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

		queue, err := mq.NewFromConfig(cmd.Context(), cfg.MQ)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to connect to mail queue: %v\n", err)
			os.Exit(1)
		}
		defer func() {
			_ = queue.Close()
		}()

		sender := mail.NewSMTPSender(cfg.Mailer)
		logger.Info("mail worker started", slog.String("queue", cfg.MQ.MailQueue))

		if err := mail.Consume(cmd.Context(), queue, cfg.MQ.MailQueue, sender); err != nil {
			fmt.Fprintf(os.Stderr, "mail worker error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
