// Package mqtt defines how production setpoints leave the service.
package mqtt

import (
	"context"
	"errors"
)

// ErrNotConnected is returned when a setpoint is published while the broker
// connection is down.
var ErrNotConnected = errors.New("mqtt client not connected")

// Setpoint is the power a plant must produce under a given plan.
type Setpoint struct {
	PlanID  string
	Plant   string
	PowerMW float64
}

// SetpointPublisher sends setpoints to the plants.
type SetpointPublisher interface {
	// PublishSetpoint sends sp and returns the command identifier attached
	// to the message.
	PublishSetpoint(ctx context.Context, sp Setpoint) (commandID string, err error)
}
