package models

import (
	"fmt"
	"strings"
)

// Kind is the closed category of an equipment record. It decides which
// kind-specific section of Equipment is populated.
type Kind string

const (
	KindRouter   Kind = "ROUTER"
	KindSwitch   Kind = "SWITCH"
	KindServer   Kind = "SERVER"
	KindFirewall Kind = "FIREWALL"
)

// Kinds lists every kind in declaration order. Reports iterate it so output
// order is stable.
var Kinds = []Kind{KindRouter, KindSwitch, KindServer, KindFirewall}

// ParseKind accepts a kind token in any letter case, surrounded by optional
// whitespace (e.g. "router", " Switch ").
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToUpper(strings.TrimSpace(s)))
	switch k {
	case KindRouter, KindSwitch, KindServer, KindFirewall:
		return k, nil
	}
	return "", fmt.Errorf("invalid equipment type %q: must be one of Router, Switch, Server, Firewall", s)
}

// Label returns the kind in title case ("Router").
func (k Kind) Label() string {
	if k == "" {
		return ""
	}
	s := string(k)
	return s[:1] + strings.ToLower(s[1:])
}

// FieldCount is the number of delimited fields a persisted record of this
// kind carries: the seven base fields plus the kind-specific ones.
func (k Kind) FieldCount() int {
	switch k {
	case KindRouter, KindFirewall:
		return BaseFieldCount + 2
	case KindSwitch:
		return BaseFieldCount + 1
	case KindServer:
		return BaseFieldCount + 3
	}
	return BaseFieldCount
}

// BaseFieldCount is the number of fields shared by every kind.
const BaseFieldCount = 7

// State is the power state of an equipment record.
type State string

const (
	StateOn  State = "ON"
	StateOff State = "OFF"
)

// States lists every state in declaration order.
var States = []State{StateOn, StateOff}

// ParseState accepts "on" or "off" in any letter case.
func ParseState(s string) (State, error) {
	st := State(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case StateOn, StateOff:
		return st, nil
	}
	return "", fmt.Errorf("invalid state %q: must be on or off", s)
}

// Label returns the state in title case ("On").
func (s State) Label() string {
	if s == "" {
		return ""
	}
	return string(s[:1]) + strings.ToLower(string(s[1:]))
}

// Equipment is one inventory entry representing a physical network device.
//
// The common fields are always set. Exactly one of Router, Switch, Server or
// Firewall is non-nil and it must match Kind; the others stay nil.
//
// Example JSON representation:
//
//	{
//	  "kind": "ROUTER",
//	  "model": "RT1",
//	  "ip": "10.0.0.1",
//	  "manufacturer": "Acme",
//	  "state": "ON",
//	  "energyWatts": 50,
//	  "hoursPerDay": 24,
//	  "router": {"supportsWifi": true, "mbps": 300}
//	}
type Equipment struct {
	// Kind selects the kind-specific section
	Kind Kind `json:"kind" yaml:"kind" validate:"required,oneof=ROUTER SWITCH SERVER FIREWALL"`

	// Model is the device model name (required)
	Model string `json:"model" yaml:"model" validate:"nonblank,trimmed,singleline,excludes=;"`

	// IP is the dotted-quad address; unique across the inventory
	IP string `json:"ip" yaml:"ip" validate:"dottedquad"`

	// Manufacturer is the vendor name (required)
	Manufacturer string `json:"manufacturer" yaml:"manufacturer" validate:"nonblank,trimmed,singleline,excludes=;"`

	// State is the current power state
	State State `json:"state" yaml:"state" validate:"required,oneof=ON OFF"`

	// EnergyWatts is the power draw while on, in watts
	EnergyWatts float64 `json:"energyWatts" yaml:"energy_watts" validate:"finite,gt=0"`

	// HoursPerDay is the daily usage, 1 to 24 hours
	HoursPerDay int `json:"hoursPerDay" yaml:"hours_per_day" validate:"min=1,max=24"`

	Router   *RouterSpec   `json:"router,omitempty" yaml:"router,omitempty"`
	Switch   *SwitchSpec   `json:"switch,omitempty" yaml:"switch,omitempty"`
	Server   *ServerSpec   `json:"server,omitempty" yaml:"server,omitempty"`
	Firewall *FirewallSpec `json:"firewall,omitempty" yaml:"firewall,omitempty"`
}

// RouterSpec holds the router-only fields.
type RouterSpec struct {
	SupportsWifi bool `json:"supportsWifi" yaml:"supports_wifi"`
	Mbps         int  `json:"mbps" yaml:"mbps" validate:"gt=0"`
}

// SwitchSpec holds the switch-only fields.
type SwitchSpec struct {
	PortCapacityGB float64 `json:"portCapacityGB" yaml:"port_capacity_gb" validate:"finite,gt=0"`
}

// ServerSpec holds the server-only fields.
type ServerSpec struct {
	OperatingSystem string `json:"operatingSystem" yaml:"operating_system" validate:"nonblank,trimmed,singleline,excludes=;"`
	RAMGB           int    `json:"ramGB" yaml:"ram_gb" validate:"gt=0"`
	DiskGB          int    `json:"diskGB" yaml:"disk_gb" validate:"gt=0"`
}

// FirewallSpec holds the firewall-only fields.
type FirewallSpec struct {
	StatefulPacketInspection bool `json:"statefulPacketInspection" yaml:"stateful_packet_inspection"`
	BlockDoS                 bool `json:"blockDoS" yaml:"block_dos"`
}

// Clone returns a deep copy so the kind-specific sections are not shared.
func (e Equipment) Clone() Equipment {
	c := e
	if e.Router != nil {
		r := *e.Router
		c.Router = &r
	}
	if e.Switch != nil {
		s := *e.Switch
		c.Switch = &s
	}
	if e.Server != nil {
		s := *e.Server
		c.Server = &s
	}
	if e.Firewall != nil {
		f := *e.Firewall
		c.Firewall = &f
	}
	return c
}

// DailyConsumptionKWh is energy(W) x hours/day / 1000.
func (e Equipment) DailyConsumptionKWh() float64 {
	return e.EnergyWatts * float64(e.HoursPerDay) / 1000
}

// Details summarises the kind-specific fields on one line.
func (e Equipment) Details() string {
	switch e.Kind {
	case KindRouter:
		if e.Router != nil {
			return fmt.Sprintf("WiFi: %t | Mbps: %d", e.Router.SupportsWifi, e.Router.Mbps)
		}
	case KindSwitch:
		if e.Switch != nil {
			return fmt.Sprintf("Port capacity: %g GB", e.Switch.PortCapacityGB)
		}
	case KindServer:
		if e.Server != nil {
			return fmt.Sprintf("OS: %s | RAM: %d GB | Disk: %d GB",
				e.Server.OperatingSystem, e.Server.RAMGB, e.Server.DiskGB)
		}
	case KindFirewall:
		if e.Firewall != nil {
			return fmt.Sprintf("SPI: %t | Block DoS: %t", e.Firewall.StatefulPacketInspection, e.Firewall.BlockDoS)
		}
	}
	return ""
}

// PowerOnMessage is what the device reports when it is switched on.
func (e Equipment) PowerOnMessage() string {
	switch e.Kind {
	case KindRouter:
		return "Router turning on... Connecting to networks."
	case KindSwitch:
		return "Switch started. All ports active."
	case KindServer:
		return fmt.Sprintf("The server %s is initializing network services.", e.Model)
	case KindFirewall:
		return "Firewall turning on... Connecting to networks."
	}
	return "Equipment turning on."
}

// PowerOffMessage is what the device reports when it is switched off.
func (e Equipment) PowerOffMessage() string {
	switch e.Kind {
	case KindRouter:
		return "Router turning off... Disconnecting from networks."
	case KindSwitch:
		return "Switch turned off... All ports down."
	case KindServer:
		return fmt.Sprintf("The server %s is turning off... Disconnecting from networks.", e.Model)
	case KindFirewall:
		return "Firewall turning off... Disconnecting from networks."
	}
	return "Equipment turning off."
}
