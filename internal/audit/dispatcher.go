package audit

import "github.com/sirupsen/logrus"

type Event struct {
	TenantID  string
	ProfileID *string
	Action    string
	Entity    string
	EntityID  string
	Metadata  any
}

type Dispatcher struct {
	logger *Logger
	queue  chan Event
}

func NewDispatcher(logger *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100), // buffer seguro
	}

	go d.worker()
	return d
}

// NopDispatcher descarta todos os eventos. Para testes e ferramentas
// que não têm base de dados.
func NopDispatcher() *Dispatcher {
	d := &Dispatcher{queue: make(chan Event, 100)}

	go func() {
		for range d.queue {
		}
	}()

	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.TenantID,
			ev.ProfileID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			logrus.WithError(err).Warn("audit error")
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
		// enviado
	default:
		// fila cheia → descartamos audit (nunca quebrar API)
		logrus.Warn("audit queue full, dropping event")
	}
}
