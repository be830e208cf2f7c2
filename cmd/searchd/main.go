package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/zuhaus/house-search/pkg/address"
	"github.com/zuhaus/house-search/pkg/common"
	"github.com/zuhaus/house-search/pkg/house"
	"github.com/zuhaus/house-search/pkg/indexer"
	"github.com/zuhaus/house-search/pkg/messaging"
	"github.com/zuhaus/house-search/pkg/search"
	"github.com/zuhaus/house-search/pkg/server"
)

var (
	topicPrefix = ""
	indexName   = "xunwu"
	listenAddr  = ":8080"
)

func init() {
	if v, ok := os.LookupEnv("TOPIC_PREFIX"); ok {
		topicPrefix = v
	}
	if v, ok := os.LookupEnv("INDEX_NAME"); ok {
		indexName = v
	}
	if v, ok := os.LookupEnv("LISTEN_ADDR"); ok {
		listenAddr = v
	}
}

func mustEnv(name string) string {
	v, ok := os.LookupEnv(name)
	if !ok {
		log.Fatalf("%s environment variable is not set", name)
	}
	return v
}

type amqpCheck struct {
	conn *amqp.Connection
}

func (a amqpCheck) Ping(context.Context) error {
	if a.conn.IsClosed() {
		return errors.New("amqp connection closed")
	}
	return nil
}

func main() {
	amqpUrl := mustEnv("RABBIT_HOST")
	conn, err := amqp.DialConfig(amqpUrl, amqp.Config{
		Properties: amqp.NewConnectionProperties(),
	})
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("Failed to open a channel: %v", err)
	}
	if err := messaging.DefineTopic(ch, topicPrefix, messaging.TopicHouseBuild); err != nil {
		log.Fatalf("Failed to declare topic %s: %v", messaging.TopicHouseBuild, err)
	}
	ch.Close()

	store, err := house.OpenStore(mustEnv("DB_DSN"))
	if err != nil {
		log.Fatalf("Failed to open house store: %v", err)
	}
	defer store.Close()

	searchClient, err := search.NewClient([]string{mustEnv("ES_URL")}, indexName)
	if err != nil {
		log.Fatalf("Failed to create search client: %v", err)
	}

	redisDb := 0
	if v, ok := os.LookupEnv("REDIS_DB"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			redisDb = n
		}
	}
	locations := address.NewLocationIndex(mustEnv("REDIS_ADDR"), os.Getenv("REDIS_PASSWORD"), redisDb)
	resolver := address.NewResolver(address.NewGeocoder(mustEnv("GEOCODER_AK")), locations)

	// The admin endpoints reconcile inline, so the query binary carries the
	// full indexing stack as well.
	builder := indexer.NewDocumentBuilder(store, resolver)
	suggester := indexer.NewSuggestionBuilder(searchClient)
	reconciler := indexer.NewReconciler(searchClient, builder, suggester, resolver)
	dispatcher := indexer.NewDispatcher(reconciler, func(msg messaging.ChangeMessage) error {
		return messaging.SendChange(conn, topicPrefix, messaging.TopicHouseBuild, msg)
	})

	ws := server.NewWebServer(searchClient, dispatcher, store)
	ws.AddHealthCheck("db", store)
	ws.AddHealthCheck("redis", locations)
	ws.AddHealthCheck("search", searchClient)
	ws.AddHealthCheck("rabbit", amqpCheck{conn})

	timeouts := common.LoadTimeoutConfig(common.TimeoutConfig{
		ReadHeader: 5 * time.Second,
		Read:       10 * time.Second,
		Write:      10 * time.Second,
		Idle:       60 * time.Second,
		Shutdown:   15 * time.Second,
		Hook:       5 * time.Second,
	})
	srv := common.NewServerWithTimeouts(&http.Server{Addr: listenAddr, Handler: ws.Handler()}, timeouts)
	common.RunServerWithShutdown(srv, "search api", timeouts.Shutdown, timeouts.Hook,
		func(ctx context.Context) error { return conn.Close() },
		func(ctx context.Context) error { return store.Close() },
	)
}
