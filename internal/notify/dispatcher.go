package notify

import (
	"context"
	"log"
	"time"

	"github.com/RodrigobSilva/PsicoCare-sub000/internal/models"
)

type EventType string

const (
	EventCreated   EventType = "appointment_created"
	EventCancelled EventType = "appointment_cancelled"
)

// Event carrega um snapshot do agendamento no momento da mutação.
// A entrega (e-mail/WhatsApp) é problema do colaborador; falha lá
// nunca desfaz o agendamento.
type Event struct {
	Type        EventType
	Appointment models.Appointment
	Patient     models.Patient
}

type Notifier interface {
	Send(ctx context.Context, ev Event) error
}

type Dispatcher struct {
	notifier Notifier
	queue    chan Event
}

func NewDispatcher(notifier Notifier) *Dispatcher {
	d := &Dispatcher{
		notifier: notifier,
		queue:    make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if d.notifier == nil {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := d.notifier.Send(ctx, ev); err != nil {
			log.Println("notify error:", err)
		}
		cancel()
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
		// enviado
	default:
		log.Println("notify queue full, dropping event")
	}
}
