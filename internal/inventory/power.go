package inventory

import (
	"fmt"

	"evalgo.org/eqinv/models"
)

// Transition describes the outcome of a power operation.
type Transition struct {
	Operation models.Operation
	From      models.State
	To        models.State

	// Changed is false when the operation was a no-op (already on/off).
	Changed bool

	// Messages are the device messages in the order they were emitted.
	// A restart emits the power-off message followed by the power-on one.
	Messages []string
}

// Apply runs op against the record registered under ip.
//
//	PowerOn:  Off -> On, no-op when already On
//	PowerOff: On -> Off, no-op when already Off
//	Restart:  On -> Off -> On, rejected with ErrRestartWhileOff when Off
//
// A rejected operation leaves the record untouched.
func (r *Registry) Apply(ip string, op models.Operation) (Transition, error) {
	i := r.indexOf(ip)
	if i < 0 {
		return Transition{}, fmt.Errorf("%w: %s", ErrNotFound, ip)
	}

	e := &r.items[i]
	t := Transition{Operation: op, From: e.State, To: e.State}

	switch op {
	case models.OpPowerOn:
		if e.State == models.StateOn {
			t.Messages = []string{"The equipment is already ON."}
			return t, nil
		}
		e.State = models.StateOn
		t.Messages = []string{e.PowerOnMessage()}

	case models.OpPowerOff:
		if e.State == models.StateOff {
			t.Messages = []string{"The equipment is already OFF."}
			return t, nil
		}
		e.State = models.StateOff
		t.Messages = []string{e.PowerOffMessage()}

	case models.OpRestart:
		if e.State != models.StateOn {
			return t, ErrRestartWhileOff
		}
		// Observable as one operation: the record ends On either way.
		t.Messages = []string{e.PowerOffMessage(), e.PowerOnMessage()}
		e.State = models.StateOn

	default:
		return t, fmt.Errorf("%w: %q", ErrUnknownOperation, op)
	}

	t.To = e.State
	t.Changed = true
	return t, nil
}
