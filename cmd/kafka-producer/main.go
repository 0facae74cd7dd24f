// Command kafka-producer feeds the order topic with synthetic order
// commands, either generated or loaded from a JSON file. It exists for local
// load testing of the matching engine; nothing in production uses it.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	orderreaderv1 "github.com/hyyu189/SVM-CLOB-sub000/internal/domain/order-reader/v1"
	orderbookv1 "github.com/hyyu189/SVM-CLOB-sub000/internal/domain/orderbook/v1"
	"github.com/segmentio/kafka-go"
)

func generateRandomID(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"
	var result strings.Builder
	for i := 0; i < length; i++ {
		result.WriteByte(charset[rand.Intn(len(charset))])
	}
	return result.String()
}

// generateCommands creates count place commands around basePrice. Prices are
// scaled fixed-point integers aligned to tickSize; sides and types follow a
// rough real-traffic mix.
func generateCommands(count int, basePrice, priceSpread, tickSize int64, owners int) []*orderreaderv1.Command {
	commands := make([]*orderreaderv1.Command, count)

	ownerIDs := make([]string, owners)
	for i := range ownerIDs {
		ownerIDs[i] = generateRandomID(8)
	}

	for i := 0; i < count; i++ {
		orderType := orderbookv1.OrderTypeLimit
		if rand.Float64() < 0.2 {
			orderType = orderbookv1.OrderTypeMarket
		}

		side := orderbookv1.SideBid
		if rand.Float64() < 0.5 {
			side = orderbookv1.SideAsk
		}

		var price int64
		if orderType == orderbookv1.OrderTypeLimit {
			offset := rand.Int63n(priceSpread)
			if side == orderbookv1.SideBid {
				price = basePrice - offset
			} else {
				price = basePrice + offset
			}
			price -= price % tickSize
			if price <= 0 {
				price = tickSize
			}
		}

		quantity := 1 + rand.Int63n(100)

		commands[i] = &orderreaderv1.Command{
			Type:      orderreaderv1.CommandTypePlace,
			RequestID: generateRandomID(12),
			Place: &orderbookv1.PlaceOrderRequest{
				Owner:    ownerIDs[rand.Intn(len(ownerIDs))],
				Side:     side,
				Type:     orderType,
				Price:    price,
				Quantity: quantity,
			},
		}
	}

	return commands
}

func main() {
	var (
		brokers     = flag.String("brokers", "localhost:9092", "Kafka broker addresses (comma-separated)")
		topic       = flag.String("topic", "orders", "Kafka topic name")
		pair        = flag.String("pair", "SOL/USDC", "Market pair used as the message key")
		file        = flag.String("file", "", "JSON file with commands (optional, generates commands if not provided)")
		delay       = flag.Duration("delay", 100*time.Millisecond, "Delay between sending commands")
		count       = flag.Int("count", 1000, "Number of commands to generate")
		basePrice   = flag.Int64("base-price", 150_000_000, "Base price in scaled integer units")
		priceSpread = flag.Int64("price-spread", 2_000_000, "Price spread range in scaled integer units")
		tickSize    = flag.Int64("tick-size", 1_000, "Tick size prices are aligned to")
		owners      = flag.Int("owners", 20, "Number of distinct owners to spread commands across")
	)
	flag.Parse()

	writer := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(*brokers, ",")...),
		Topic:        *topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
	defer writer.Close()

	ctx := context.Background()

	var commands []*orderreaderv1.Command
	if *file != "" {
		data, err := os.ReadFile(*file)
		if err != nil {
			log.Fatalf("Failed to read file %s: %v", *file, err)
		}
		if err := json.Unmarshal(data, &commands); err != nil {
			log.Fatalf("Failed to parse JSON from file: %v", err)
		}
		log.Printf("Loaded %d commands from file: %s", len(commands), *file)
	} else {
		log.Printf("Generating %d commands...", *count)
		commands = generateCommands(*count, *basePrice, *priceSpread, *tickSize, *owners)
	}

	log.Printf("Sending commands to Kafka broker: %s, topic: %s, delay: %v", *brokers, *topic, *delay)

	sent := 0
	for i, cmd := range commands {
		msg := kafka.Message{
			Key:   []byte(*pair),
			Value: orderreaderv1.ToBytes(cmd),
			Time:  time.Now(),
		}

		if err := writer.WriteMessages(ctx, msg); err != nil {
			log.Printf("Failed to send command %d (%s): %v", i+1, cmd.RequestID, err)
			continue
		}
		sent++

		if (i+1)%100 == 0 || i == len(commands)-1 {
			log.Printf("Sent %d/%d: %s", i+1, len(commands), describe(cmd))
		}

		if i < len(commands)-1 {
			time.Sleep(*delay)
		}
	}

	log.Printf("Done: %d/%d commands sent", sent, len(commands))
}

func describe(cmd *orderreaderv1.Command) string {
	switch cmd.Type {
	case orderreaderv1.CommandTypePlace:
		if cmd.Place == nil {
			return "place <empty>"
		}
		if cmd.Place.Type == orderbookv1.OrderTypeMarket {
			return fmt.Sprintf("place %s market qty=%d", cmd.Place.Side, cmd.Place.Quantity)
		}
		return fmt.Sprintf("place %s %s qty=%d @ %d", cmd.Place.Side, cmd.Place.Type, cmd.Place.Quantity, cmd.Place.Price)
	case orderreaderv1.CommandTypeCancel:
		if cmd.Cancel == nil {
			return "cancel <empty>"
		}
		return fmt.Sprintf("cancel order=%d", cmd.Cancel.OrderID)
	case orderreaderv1.CommandTypeModify:
		if cmd.Modify == nil {
			return "modify <empty>"
		}
		return fmt.Sprintf("modify order=%d", cmd.Modify.OrderID)
	default:
		return string(cmd.Type)
	}
}
