package domain

import "strings"

// Status is the lifecycle state of a delivery. The string value is the wire value.
type Status string

// Delivery statuses. EmRota and Producao are the two active slots.
const (
	StatusPendente  Status = "Pendente"
	StatusEmRota    Status = "Em Rota"
	StatusProducao  Status = "Producao"
	StatusEntregue  Status = "Entregue"
	StatusCancelada Status = "Cancelada"
)

// ActiveStatuses lists the slot statuses in promotion priority order.
var ActiveStatuses = []Status{StatusEmRota, StatusProducao}

var transitions = map[Status][]Status{
	StatusPendente: {StatusEmRota, StatusProducao, StatusEntregue, StatusCancelada},
	StatusEmRota:   {StatusProducao, StatusEntregue, StatusCancelada},
	StatusProducao: {StatusEmRota, StatusEntregue, StatusCancelada},
}

// ParseStatus parses a wire value. "EmRota" is accepted as an alias of "Em Rota".
func ParseStatus(s string) (Status, error) {
	switch strings.TrimSpace(s) {
	case string(StatusPendente):
		return StatusPendente, nil
	case string(StatusEmRota), "EmRota":
		return StatusEmRota, nil
	case string(StatusProducao):
		return StatusProducao, nil
	case string(StatusEntregue):
		return StatusEntregue, nil
	case string(StatusCancelada):
		return StatusCancelada, nil
	}
	return "", ErrInvalidStatus
}

// IsActive reports whether the status occupies one of the two slots.
func (s Status) IsActive() bool {
	return s == StatusEmRota || s == StatusProducao
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == StatusEntregue || s == StatusCancelada
}

// CanTransitionTo reports whether a caller may move a delivery from s to target.
// Pendente is never a valid target; it is only assigned at creation.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

func (s Status) String() string {
	return string(s)
}
