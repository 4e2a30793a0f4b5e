package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/harentsoaR/hospital-api/internal/models"
	"github.com/sirupsen/logrus"
)

const DefaultTextbeltURL = "https://textbelt.com/text"

// NotificationService sends SMS acknowledgements through Textbelt.
type NotificationService struct {
	endpoint string
	apiKey   string
	client   *http.Client
	log      *logrus.Logger
	wg       sync.WaitGroup
}

// NewNotificationService returns a service that only logs when apiKey is empty.
func NewNotificationService(endpoint, apiKey string, logger *logrus.Logger) *NotificationService {
	if endpoint == "" {
		endpoint = DefaultTextbeltURL
	}
	return &NotificationService{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 10 * time.Second},
		log:      logger,
	}
}

// AppointmentRequested texts the patient that their request was received.
// The SMS goes out in the background so it never holds up the response.
func (s *NotificationService) AppointmentRequested(patient *models.Account, req *models.AppointmentRequest) {
	logger := s.log.WithFields(logrus.Fields{"patientId": patient.ID, "requestId": req.ID.Hex()})
	if patient.PhoneNumber == "" {
		logger.Info("SMS not sent: patient has no phone number")
		return
	}
	if s.apiKey == "" {
		logger.Debug("SMS not sent: Textbelt is not configured")
		return
	}

	body := fmt.Sprintf("Hello %s, your appointment request (%s) was received. We will text you once a doctor picks it up.",
		req.PatientName, req.Problem)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.SendSMS(ctx, patient.PhoneNumber, body); err != nil {
			logger.WithError(err).Warn("failed to send SMS via Textbelt")
			return
		}
		logger.Info("sent SMS via Textbelt")
	}()
}

type textbeltResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// SendSMS posts one message to Textbelt and reports its verdict.
func (s *NotificationService) SendSMS(ctx context.Context, phone, message string) error {
	postBody, err := json.Marshal(map[string]string{
		"phone":   phone,
		"message": message,
		"key":     s.apiKey,
	})
	if err != nil {
		return err
	}

	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(postBody))
	if err != nil {
		return err
	}
	hreq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(hreq)
	if err != nil {
		return fmt.Errorf("textbelt request: %w", err)
	}
	defer resp.Body.Close()

	var result textbeltResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("textbelt response: %w", err)
	}
	if !result.Success {
		if result.Error == "" {
			return errors.New("textbelt rejected the message")
		}
		return errors.New(result.Error)
	}
	return nil
}

// Wait blocks until background sends have finished.
func (s *NotificationService) Wait() {
	s.wg.Wait()
}
