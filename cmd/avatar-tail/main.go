// Comando avatar-tail sigue el stream de eventos de avatar e imprime cada
// entrada. Herramienta de diagnóstico local: une un consumer group efímero
// (o uno nombrado, para inspeccionar redelivery) y ackea todo lo que lee.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/sp1ral-dev/veridian/internal/events"
	"github.com/sp1ral-dev/veridian/internal/events/redisbus"
)

func main() {
	var (
		addr     string
		db       int
		stream   string
		group    string
		consumer string
	)

	root := &cobra.Command{
		Use:   "avatar-tail",
		Short: "Sigue el stream de eventos de avatar",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			rdb := redis.NewClient(&redis.Options{Addr: addr, DB: db})
			defer func() { _ = rdb.Close() }()

			c := redisbus.NewConsumer(rdb, stream, group, consumer)
			if err := c.EnsureGroup(ctx); err != nil {
				return fmt.Errorf("consumer group: %w", err)
			}

			fmt.Fprintf(os.Stderr, "siguiendo %s (grupo %s)...\n", stream, group)
			return c.Run(ctx, func(_ context.Context, ev events.Event) error {
				fmt.Printf("%s\t%s\n", ev.Action, ev.Key)
				return nil
			})
		},
	}

	root.Flags().StringVar(&addr, "addr", "localhost:6379", "dirección de redis")
	root.Flags().IntVar(&db, "db", 0, "base de redis")
	root.Flags().StringVar(&stream, "stream", redisbus.DefaultStream, "stream a seguir")
	root.Flags().StringVar(&group, "group", "avatar-tail", "consumer group")
	root.Flags().StringVar(&consumer, "consumer", "tail-1", "nombre del consumidor")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
