package email

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"
	"time"

	"memberpay/internal/logger"

	"github.com/redis/go-redis/v9"
)

const (
	queueKey       = "receipts"
	failedQueueKey = "receipts:failed"
	maxTries       = 3
)

// ReceiptJob is one queued receipt email.
type ReceiptJob struct {
	To      string    `json:"to"`
	Name    string    `json:"name"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

// Service queues receipt emails on redis and drains the queue in a background
// worker. Delivery failures are retried up to maxTries and then parked on a
// failed-jobs list.
type Service struct {
	redis    *redis.Client
	from     string
	smtpHost string
	smtpPort string
	smtpUser string
	smtpPass string
}

func New(fromEmail, smtpHost, smtpPort, smtpUser, smtpPass, redisAddr string) *Service {
	return &Service{
		redis: redis.NewClient(&redis.Options{
			Addr: redisAddr,
		}),
		from:     fromEmail,
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		smtpUser: smtpUser,
		smtpPass: smtpPass,
	}
}

func (s *Service) Send(ctx context.Context, to, name, subject, body string) error {
	job := ReceiptJob{
		To:      to,
		Name:    name,
		Subject: subject,
		Body:    body,
		Created: time.Now(),
	}

	data, err := json.Marshal(job)
	if err != nil {
		return err
	}

	if err := s.redis.LPush(ctx, queueKey, data).Err(); err != nil {
		logger.Errorf("Failed to queue receipt to %s: %v", to, err)
		return err
	}

	logger.Infof("Receipt queued: %s to %s", subject, to)
	return nil
}

func (s *Service) Start(ctx context.Context) {
	logger.Info("Receipt mailer started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Receipt mailer stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		return
	}

	var job ReceiptJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Errorf("Bad receipt job data: %v", err)
		return
	}

	job.Tries++
	if err := s.sendNow(job); err != nil {
		logger.Errorf("Failed to send receipt to %s: %v", job.To, err)

		if job.Tries < maxTries {
			time.Sleep(5 * time.Second)
			data, _ := json.Marshal(job)
			s.redis.LPush(context.Background(), queueKey, data)
			return
		}

		logger.Errorf("Receipt to %s failed after %d attempts", job.To, maxTries)
		s.saveFailed(job, err)
		return
	}

	logger.Infof("Receipt sent to %s", job.To)
}

func (s *Service) sendNow(job ReceiptJob) error {
	if s.smtpHost == "" {
		// No SMTP configured; treat as delivered so local setups work.
		logger.Debugf("SMTP not configured, dropping receipt to %s", job.To)
		return nil
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\nHi %s,\r\n\r\n%s\r\n",
		s.from, job.To, job.Subject, job.Name, job.Body)

	addr := s.smtpHost + ":" + s.smtpPort
	auth := smtp.PlainAuth("", s.smtpUser, s.smtpPass, s.smtpHost)
	return smtp.SendMail(addr, auth, s.from, []string{job.To}, []byte(msg))
}

func (s *Service) saveFailed(job ReceiptJob, sendErr error) {
	failed := struct {
		ReceiptJob
		Error    string    `json:"error"`
		FailedAt time.Time `json:"failed_at"`
	}{
		ReceiptJob: job,
		Error:      sendErr.Error(),
		FailedAt:   time.Now(),
	}

	data, err := json.Marshal(failed)
	if err != nil {
		return
	}
	s.redis.LPush(context.Background(), failedQueueKey, data)
}

// QueueLength reports how many receipts are waiting for delivery.
func (s *Service) QueueLength(ctx context.Context) int64 {
	length, err := s.redis.LLen(ctx, queueKey).Result()
	if err != nil {
		return 0
	}
	return length
}

func (s *Service) Close() error {
	return s.redis.Close()
}
