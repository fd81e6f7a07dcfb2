package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"roamly/config"
	"roamly/models"
	"roamly/services/tasks"
	"roamly/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitNotificationWorker runs the async worker in background. It consumes
// cancellation-requested tasks and mails the ops inbox so the
// admin-processing side can pick the request up.
func InitNotificationWorker(mailer *utils.Mailer) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeCancellationRequested, handleCancellationRequestedTask(mailer))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[NotificationWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[NotificationWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[NotificationWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleCancellationRequestedTask(mailer *utils.Mailer) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var notice models.CancellationNotice
		if err := json.Unmarshal(task.Payload(), &notice); err != nil {
			log.Printf("[NotificationWorker] invalid payload: %v", err)
			return err
		}

		subject := fmt.Sprintf("Cancellation request for order %s", notice.OrderNumber)
		body := fmt.Sprintf(
			"A cancellation request is awaiting review.\n\n"+
				"Request:  %s\n"+
				"Booking:  %s\n"+
				"Order:    %s\n"+
				"Customer: %s <%s>\n"+
				"Reason:   %s\n"+
				"Received: %s\n",
			notice.RequestID,
			notice.BookingID,
			notice.OrderNumber,
			notice.CustomerName,
			notice.CustomerEmail,
			notice.Reason,
			notice.RequestedAt.Format(time.RFC1123),
		)

		if err := mailer.Send(config.AppConfig.OpsEmail, subject, body); err != nil {
			log.Printf("[NotificationWorker] failed to send mail for request %s: %v", notice.RequestID, err)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[NotificationWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
