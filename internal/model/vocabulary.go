package model

import (
	"errors"
	"fmt"
)

// Status is the workflow state of a task. The literal values are the ones
// clients send and receive on the wire.
type Status string

const (
	StatusPending      Status = "Pendiente"
	StatusInProgress   Status = "En curso"
	StatusReadyToStart Status = "Listo para empezar"
	StatusDone         Status = "Terminado"
	StatusStopped      Status = "Detenido"
)

// Priority is the urgency of a task.
type Priority string

const (
	PriorityLow       Priority = "Baja"
	PriorityMedium    Priority = "Media"
	PriorityHigh      Priority = "Alta"
	PriorityCritical  Priority = "Critica"
	PriorityMaxEffort Priority = "Maximo esfuerzo"
)

var (
	ErrUnknownStatus   = errors.New("unknown status")
	ErrUnknownPriority = errors.New("unknown priority")
)

var statuses = map[Status]struct{}{
	StatusPending:      {},
	StatusInProgress:   {},
	StatusReadyToStart: {},
	StatusDone:         {},
	StatusStopped:      {},
}

var priorities = map[Priority]struct{}{
	PriorityLow:       {},
	PriorityMedium:    {},
	PriorityHigh:      {},
	PriorityCritical:  {},
	PriorityMaxEffort: {},
}

// Statuses lists the accepted status values in workflow order.
func Statuses() []Status {
	return []Status{StatusPending, StatusReadyToStart, StatusInProgress, StatusStopped, StatusDone}
}

// Priorities lists the accepted priority values from lowest to highest.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical, PriorityMaxEffort}
}

func (s Status) IsValid() bool {
	_, ok := statuses[s]
	return ok
}

func (p Priority) IsValid() bool {
	_, ok := priorities[p]
	return ok
}

// ParseStatus matches raw exactly against the status vocabulary.
// No trimming or case folding is applied.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
	}
	return s, nil
}

// ParsePriority matches raw exactly against the priority vocabulary.
func ParsePriority(raw string) (Priority, error) {
	p := Priority(raw)
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPriority, raw)
	}
	return p, nil
}
