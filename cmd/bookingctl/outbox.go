package main

import (
	"errors"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nekogravitycat/freight-booking-backend/internal/db"
	"github.com/nekogravitycat/freight-booking-backend/internal/event"
)

var outboxCmd = &cobra.Command{
	Use:   "drain-outbox",
	Short: "Publish every pending lifecycle event and exit",
	RunE:  runDrainOutbox,
}

func init() {
	rootCmd.AddCommand(outboxCmd)
}

func runDrainOutbox(cmd *cobra.Command, args []string) error {
	env, err := setup(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	if env.cfg.AMQPURL == "" {
		return errors.New("AMQP_URL is required")
	}
	publisher, err := event.NewAMQPPublisher(env.cfg.AMQPURL, env.cfg.EventExchange)
	if err != nil {
		return err
	}
	defer func() { _ = publisher.Close() }()

	relay := event.NewRelay(event.NewPgxRepository(env.pool), db.NewTxManager(env.pool), publisher,
		env.log, time.Second, env.cfg.OutboxBatchSize)

	total := 0
	for {
		n, err := relay.RelayOnce(cmd.Context())
		total += n
		if err != nil {
			return err
		}
		if n == 0 {
			break
		}
	}
	env.log.Info("outbox drained", zap.Int("published", total))
	return nil
}
