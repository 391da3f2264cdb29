package email

import (
	"context"
	"errors"

	"flowsense/internal/domain"
)

// Sender define la interfaz para el envio del resumen de screening.
// La programacion de notificaciones vive fuera de este servicio; aca solo
// se entrega el correo.
type Sender interface {
	SendScreeningSummary(ctx context.Context, toEmail string, report domain.HealthScreeningReport) error
}

type disabledSender struct {
	reason string
}

func NewDisabledSender(reason string) Sender {
	return &disabledSender{reason: reason}
}

func (s *disabledSender) SendScreeningSummary(_ context.Context, _ string, _ domain.HealthScreeningReport) error {
	if s.reason == "" {
		return errors.New("email sender disabled")
	}
	return errors.New(s.reason)
}
