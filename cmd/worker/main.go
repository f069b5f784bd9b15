package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"

	"campus/config"
	"campus/infras/kafka"
	bookingService "campus/internal/domains/booking/service"
	"campus/shared/logger"
)

// The worker tails the booking-events topic and logs every lifecycle
// event. It is the hook point for downstream notification channels.
func main() {
	cfg := config.Get()

	logger.InitLogger()
	logger.SetLogLevel(cfg)

	topic := cfg.Kafka.Topics.BookingEvents
	if topic == "" {
		log.Fatal().Msg("No booking events topic configured")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		log.Info().Msg("Received shutdown signal, stopping consumer.")
		cancel()
	}()

	client := kafka.New(cfg)

	log.Info().Str("topic", topic).Msg("Starting booking events worker.")

	client.Consume(ctx, cfg.Kafka.ConsumerGroup, topic, handleBookingEvent)
}

func handleBookingEvent(msg kafkaGo.Message) {
	decoded, err := kafka.DecodeKafkaMessage[bookingService.BookingEvent](msg)
	if err != nil {
		log.Error().Err(err).Str("key", string(msg.Key)).Msg("Failed to decode booking event")

		return
	}

	event, ok := decoded.Value.(bookingService.BookingEvent)
	if !ok {
		log.Error().Str("key", decoded.Key).Msg("Unexpected booking event payload")

		return
	}

	log.Info().
		Str("type", event.Type).
		Str("bookingID", event.BookingID).
		Str("day", event.Day).
		Str("start", event.StartTime).
		Str("end", event.EndTime).
		Str("teacherID", event.TeacherID).
		Str("roomID", event.RoomID).
		Str("status", event.Status).
		Msg("Booking event received")
}
