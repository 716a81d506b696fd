package messaging

import (
	"fmt"
	"hyperschedule-service/internal/app/config"
	"log"
	"strconv"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

const (
	rabbitMQConnectionName = "hyperschedule-service"
	rabbitMQHeartbeat      = 10 * time.Second
	rabbitMQLocale         = "en_US"
)

// rabbitMQURL escapes credentials and the vhost, which may contain '@', ':'
// or '/'.
func rabbitMQURL(driverConfig *config.DriverConfig) (string, error) {
	port, err := strconv.Atoi(driverConfig.RabbitMQ.Port)
	if err != nil {
		return "", fmt.Errorf("invalid rabbitMQ port %q: %w", driverConfig.RabbitMQ.Port, err)
	}

	vhost := driverConfig.RabbitMQ.VHost
	if vhost == "" {
		vhost = "/"
	}

	uri := amqp091.URI{
		Scheme:   "amqp",
		Host:     driverConfig.RabbitMQ.Host,
		Port:     port,
		Username: driverConfig.RabbitMQ.Username,
		Password: driverConfig.RabbitMQ.Password,
		Vhost:    vhost,
	}
	return uri.String(), nil
}

func NewRabbitMQ(driverConfig *config.DriverConfig) *amqp091.Connection {
	connectionString, err := rabbitMQURL(driverConfig)
	if err != nil {
		log.Fatalf("Failed to configure rabbitMQ: %s", err.Error())
	}

	properties := amqp091.NewConnectionProperties()
	properties["connection_name"] = rabbitMQConnectionName

	conn, err := amqp091.DialConfig(connectionString, amqp091.Config{
		Heartbeat:  rabbitMQHeartbeat,
		Locale:     rabbitMQLocale,
		Properties: properties,
	})
	if err != nil {
		log.Fatalf("Failed to connect to rabbitMQ at %s:%s: %s", driverConfig.RabbitMQ.Host, driverConfig.RabbitMQ.Port, err.Error())
	}
	log.Println("Successfully connected to rabbitMQ")
	return conn
}
