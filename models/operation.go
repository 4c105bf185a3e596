package models

import (
	"fmt"
	"strings"
)

// Operation is a power state transition requested by the operator.
type Operation string

const (
	OpPowerOn  Operation = "turn_on"
	OpPowerOff Operation = "turn_off"
	OpRestart  Operation = "restart"
)

// ParseOperation accepts the spellings operators type at the prompt:
// "on", "turn on", "turn_on", "off", "turn off", "turn_off" and "restart".
func ParseOperation(s string) (Operation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "turn on", "turn_on", "power on", "poweron":
		return OpPowerOn, nil
	case "off", "turn off", "turn_off", "power off", "poweroff":
		return OpPowerOff, nil
	case "restart", "reboot":
		return OpRestart, nil
	}
	return "", fmt.Errorf("invalid operation %q: use turn on, turn off or restart", s)
}
