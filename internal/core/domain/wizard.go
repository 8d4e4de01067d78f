package domain

import (
	"errors"
	"fmt"
)

var (
	ErrStepIncomplete = errors.New("step is incomplete")
	ErrFirstStep      = errors.New("already at the first step")
	ErrLastStep       = errors.New("already at the last step")
	ErrNotAtLastStep  = errors.New("submit is only allowed from the last step")
)

// Step is one wizard page and the predicate that must hold before leaving it.
type Step[T any] struct {
	Name     string
	Complete func(T) bool
}

// Wizard sequences steps strictly one at a time. Moving forward requires
// the current step to be complete; moving back is always allowed except
// from the first step.
type Wizard[T any] struct {
	steps   []Step[T]
	current int
}

func NewWizard[T any](steps ...Step[T]) *Wizard[T] {
	return &Wizard[T]{steps: steps}
}

// ResumeWizard rebuilds a wizard positioned at a previously stored step.
func ResumeWizard[T any](current int, steps ...Step[T]) *Wizard[T] {
	w := NewWizard(steps...)
	switch {
	case current < 0:
		current = 0
	case current >= len(steps):
		current = len(steps) - 1
	}
	w.current = current
	return w
}

func (w *Wizard[T]) Current() int     { return w.current }
func (w *Wizard[T]) Len() int         { return len(w.steps) }
func (w *Wizard[T]) IsLast() bool     { return w.current == len(w.steps)-1 }
func (w *Wizard[T]) StepName() string { return w.steps[w.current].Name }

// Progress is the completed share of the wizard as a percentage, counting
// the current step.
func (w *Wizard[T]) Progress() int {
	if len(w.steps) == 0 {
		return 0
	}
	return (w.current + 1) * 100 / len(w.steps)
}

func (w *Wizard[T]) CanAdvance(v T) bool {
	return !w.IsLast() && w.steps[w.current].Complete(v)
}

func (w *Wizard[T]) Next(v T) error {
	if w.IsLast() {
		return ErrLastStep
	}
	step := w.steps[w.current]
	if !step.Complete(v) {
		return fmt.Errorf("%w: %s", ErrStepIncomplete, step.Name)
	}
	w.current++
	return nil
}

func (w *Wizard[T]) Back() error {
	if w.current == 0 {
		return ErrFirstStep
	}
	w.current--
	return nil
}

// ValidateSubmit re-checks every step predicate. It fails unless the
// wizard is on its last step.
func (w *Wizard[T]) ValidateSubmit(v T) error {
	if !w.IsLast() {
		return ErrNotAtLastStep
	}
	for _, step := range w.steps {
		if !step.Complete(v) {
			return fmt.Errorf("%w: %s", ErrStepIncomplete, step.Name)
		}
	}
	return nil
}
