package email

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fuazim/fitcamp/internal/logger"
	"github.com/fuazim/fitcamp/internal/metrics"
	"github.com/fuazim/fitcamp/internal/money"
	"github.com/fuazim/fitcamp/internal/qr"

	"github.com/redis/go-redis/v9"
	"gopkg.in/gomail.v2"
)

const (
	queueKey   = "emails"
	failedKey  = "emails:failed"
	maxTries   = 3
	qrFilename = "booking-qr.png"
)

type EmailJob struct {
	Type    string    `json:"type"`
	To      string    `json:"to"`
	Name    string    `json:"name"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	QRCode  string    `json:"qr_code,omitempty"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type Service struct {
	redis      *redis.Client
	dialer     dialer
	from       string
	fromName   string
	retryDelay time.Duration
}

type Options struct {
	From          string
	FromName      string
	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPass      string
	RedisAddr     string
	RedisPassword string
}

func New(opts Options) *Service {
	return &Service{
		redis: redis.NewClient(&redis.Options{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
		}),
		dialer:     gomail.NewDialer(opts.SMTPHost, opts.SMTPPort, opts.SMTPUser, opts.SMTPPass),
		from:       opts.From,
		fromName:   opts.FromName,
		retryDelay: 5 * time.Second,
	}
}

func (s *Service) enqueue(ctx context.Context, job EmailJob) error {
	job.Created = time.Now()

	data, err := json.Marshal(job)
	if err != nil {
		logger.Errorf("Failed to marshal email job: %v", err)
		return err
	}

	if err := s.redis.LPush(ctx, queueKey, string(data)).Err(); err != nil {
		logger.Error("failed to queue email", "to", job.To, "type", job.Type, "error", err)
		return err
	}

	logger.Info("email queued", "to", job.To, "type", job.Type)
	return nil
}

func (s *Service) Send(ctx context.Context, to, name, subject, body string) error {
	return s.enqueue(ctx, EmailJob{Type: "generic", To: to, Name: name, Subject: subject, Body: body})
}

func (s *Service) Start(ctx context.Context) {
	logger.Info("Email worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Email worker stopped")
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

	var job EmailJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Errorf("Bad email data: %v", err)
		return
	}

	job.Tries++
	if err := s.deliver(job); err != nil {
		logger.Error("failed to send email", "to", job.To, "attempt", job.Tries, "error", err)
		metrics.RecordEmail(job.Type, "failed")

		if job.Tries < maxTries {
			if s.retryDelay > 0 {
				time.Sleep(s.retryDelay)
			}
			data, _ := json.Marshal(job)
			s.redis.LPush(context.Background(), queueKey, string(data))
		} else {
			s.saveFailed(job, err)
		}
		return
	}

	metrics.RecordEmail(job.Type, "success")
	logger.Info("email sent", "to", job.To, "type", job.Type)
}

func (s *Service) deliver(job EmailJob) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, s.fromName)
	m.SetAddressHeader("To", job.To, job.Name)
	m.SetHeader("Subject", job.Subject)
	m.SetBody("text/plain", job.Body)

	if job.QRCode != "" {
		png, err := qr.PNG(job.QRCode, qr.DefaultSize)
		if err != nil {
			return fmt.Errorf("render qr: %w", err)
		}
		m.Attach(qrFilename, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(png)
			return err
		}), gomail.SetHeader(map[string][]string{"Content-Type": {"image/png"}}))
	}

	return s.dialer.DialAndSend(m)
}

func (s *Service) saveFailed(job EmailJob, err error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": err.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	s.redis.LPush(context.Background(), failedKey, string(data))
	logger.Error("email moved to failed queue", "to", job.To, "type", job.Type)
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, _ := s.redis.LLen(ctx, queueKey).Result()
	return length
}

func (s *Service) Close() error {
	return s.redis.Close()
}

func (s *Service) SendOrderCreated(ctx context.Context, to, name, bookingCode, planName string, totalCents int64) error {
	body := fmt.Sprintf(`Hi %s,

Thank you for ordering the %s membership.

Booking code: %s
Amount due: %s

Please transfer the amount and upload your payment proof. Keep the booking
code, you will need it together with your phone number to check the order.

- FitCamp Team`, name, planName, bookingCode, money.Rupiah(totalCents))

	return s.enqueue(ctx, EmailJob{
		Type:    "order_created",
		To:      to,
		Name:    name,
		Subject: "Your FitCamp order " + bookingCode,
		Body:    body,
	})
}

func (s *Service) SendPaymentApproved(ctx context.Context, to, name, bookingCode string, startsAt, endsAt time.Time) error {
	body := fmt.Sprintf(`Hi %s,

Your payment for %s has been confirmed and your membership is active.

Valid from: %s
Valid until: %s

Show the attached QR code at the front desk.

- FitCamp Team`, name, bookingCode, startsAt.Format("Jan 2, 2006"), endsAt.Format("Jan 2, 2006"))

	return s.enqueue(ctx, EmailJob{
		Type:    "payment_approved",
		To:      to,
		Name:    name,
		Subject: "Membership active - " + bookingCode,
		Body:    body,
		QRCode:  bookingCode,
	})
}

func (s *Service) SendPaymentRejected(ctx context.Context, to, name, bookingCode, reason string) error {
	body := fmt.Sprintf(`Hi %s,

We could not verify the payment proof for %s.`, name, bookingCode)
	if reason != "" {
		body += "\n\nReason: " + reason
	}
	body += "\n\nPlease upload a new proof from the payment page.\n\n- FitCamp Team"

	return s.enqueue(ctx, EmailJob{
		Type:    "payment_rejected",
		To:      to,
		Name:    name,
		Subject: "Payment proof rejected - " + bookingCode,
		Body:    body,
	})
}
