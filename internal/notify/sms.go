package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/internship-platform/internal/config"
)

// SMSNotifier delivers a short alert to a phone number.
type SMSNotifier interface {
	Notify(ctx context.Context, phone, body string) error
}

// GatewaySMS posts alerts to an HTTP SMS gateway.
type GatewaySMS struct {
	cfg    config.SMSConfig
	client *http.Client
	logger *zap.Logger
}

// NewGatewaySMS constructs the notifier.
func NewGatewaySMS(cfg config.SMSConfig, logger *zap.Logger) *GatewaySMS {
	return &GatewaySMS{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

type gatewayPayload struct {
	To      string `json:"to"`
	Message string `json:"message"`
	Sender  string `json:"sender,omitempty"`
}

// Notify submits the alert to the gateway.
func (g *GatewaySMS) Notify(ctx context.Context, phone, body string) error {
	if g.cfg.GatewayURL == "" {
		return errors.New("sms gateway not configured")
	}
	if phone == "" {
		return errors.New("empty phone number")
	}

	payload, err := json.Marshal(gatewayPayload{To: phone, Message: body, Sender: g.cfg.Sender})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.GatewayURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Error("sms gateway unreachable", zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		err := fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
		g.logger.Error("sms send failed", zap.String("to", phone), zap.Error(err))
		return err
	}

	g.logger.Info("sms sent", zap.String("to", phone))
	return nil
}
