// Package mqtt publishes staged-plan events for external collectors. The
// publisher is fire-and-forget: a lost event never fails a staging request.
package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	coremetrics "github.com/betsim/betroute/core/metrics"
	"github.com/betsim/betroute/infra/logger"
)

// Config defines the connection parameters for the plan publisher.
type Config struct {
	Enabled   bool   `json:"enabled"`
	Broker    string `json:"broker"`
	ClientID  string `json:"client_id"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Topic     string `json:"topic"`
	QoS       byte   `json:"qos"`
	TimeoutMS int    `json:"timeout_ms"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Topic == "" {
		c.Topic = "betroute/plans"
	}
	if c.TimeoutMS <= 0 {
		c.TimeoutMS = 5000
	}
	if c.ClientID == "" {
		c.ClientID = "betroute-" + uuid.NewString()
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.Enabled && c.Broker == "" {
		return fmt.Errorf("mqtt: broker is required")
	}
	return nil
}

// PlanMessage is the JSON payload published per staging request.
type PlanMessage struct {
	PlanID      string   `json:"plan_id"`
	PersonID    string   `json:"person_id"`
	VehicleID   string   `json:"vehicle_id"`
	Outcome     string   `json:"outcome"`
	StopReasons []string `json:"stop_reasons,omitempty"`
	Legs        int      `json:"legs"`
	ArrivalTime float64  `json:"arrival_time"`
}

// PlanPublisher sends staged-plan events over MQTT.
type PlanPublisher struct {
	cli     paho.Client
	topic   string
	qos     byte
	timeout time.Duration
	log     logger.Logger
}

// NewPlanPublisher connects to the broker and returns a publisher.
func NewPlanPublisher(cfg Config) (*PlanPublisher, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	cli := paho.NewClient(opts)
	timeout := time.Duration(cfg.TimeoutMS) * time.Millisecond
	tok := cli.Connect()
	if !tok.WaitTimeout(timeout) {
		return nil, fmt.Errorf("mqtt: connect timeout after %s", timeout)
	}
	if err := tok.Error(); err != nil {
		return nil, fmt.Errorf("mqtt: connect: %w", err)
	}
	return &PlanPublisher{
		cli:     cli,
		topic:   cfg.Topic,
		qos:     cfg.QoS,
		timeout: timeout,
		log:     logger.New("plan-publisher"),
	}, nil
}

// PublishResult converts a staging result into a plan message and publishes
// it. Errors are logged, not returned: observers must not fail requests.
func (p *PlanPublisher) PublishResult(res coremetrics.StagingResult) {
	reasons := make([]string, len(res.StopReasons))
	for i, r := range res.StopReasons {
		reasons[i] = r.String()
	}
	p.Publish(PlanMessage{
		PlanID:      res.PlanID,
		PersonID:    res.PersonID,
		VehicleID:   res.VehicleID,
		Outcome:     string(res.Outcome),
		StopReasons: reasons,
		Legs:        res.Legs,
		ArrivalTime: res.ArrivalTime,
	})
}

// Publish sends one plan message.
func (p *PlanPublisher) Publish(msg PlanMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		p.log.Errorf("marshal plan message: %v", err)
		return
	}
	tok := p.cli.Publish(p.topic, p.qos, false, payload)
	if !tok.WaitTimeout(p.timeout) {
		p.log.Warnf("publish timeout on %s", p.topic)
		return
	}
	if err := tok.Error(); err != nil {
		p.log.Errorf("publish: %v", err)
	}
}

// Close disconnects from the broker.
func (p *PlanPublisher) Close() {
	p.cli.Disconnect(250)
}
