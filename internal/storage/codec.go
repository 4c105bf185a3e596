package storage

import (
	"fmt"
	"strconv"
	"strings"

	"evalgo.org/eqinv/internal/validation"
	"evalgo.org/eqinv/models"
)

// Separator splits the fields of a data file line. Fields are not quoted, so
// a value containing it cannot be stored.
const Separator = ";"

// specDecoder fills the kind-specific section from fields[7:].
type specDecoder func(fields []string, e *models.Equipment) error

// decoders is the factory keyed on the type token.
var decoders = map[models.Kind]specDecoder{
	models.KindRouter: func(f []string, e *models.Equipment) error {
		wifi, err := validation.ParseFlag("WiFi support", f[7])
		if err != nil {
			return err
		}
		mbps, err := validation.ParsePositiveInt("Mbps", f[8])
		if err != nil {
			return err
		}
		e.Router = &models.RouterSpec{SupportsWifi: wifi, Mbps: mbps}
		return nil
	},
	models.KindSwitch: func(f []string, e *models.Equipment) error {
		capacity, err := validation.ParsePositiveFloat("port capacity", f[7])
		if err != nil {
			return err
		}
		e.Switch = &models.SwitchSpec{PortCapacityGB: capacity}
		return nil
	},
	models.KindServer: func(f []string, e *models.Equipment) error {
		opSys, err := validation.ParseRequired("operating system", f[7])
		if err != nil {
			return err
		}
		ram, err := validation.ParsePositiveInt("RAM capacity", f[8])
		if err != nil {
			return err
		}
		disk, err := validation.ParsePositiveInt("disk capacity", f[9])
		if err != nil {
			return err
		}
		e.Server = &models.ServerSpec{OperatingSystem: opSys, RAMGB: ram, DiskGB: disk}
		return nil
	},
	models.KindFirewall: func(f []string, e *models.Equipment) error {
		spi, err := validation.ParseFlag("stateful packet inspection", f[7])
		if err != nil {
			return err
		}
		blockDoS, err := validation.ParseFlag("block DoS", f[8])
		if err != nil {
			return err
		}
		e.Firewall = &models.FirewallSpec{StatefulPacketInspection: spi, BlockDoS: blockDoS}
		return nil
	},
}

// DecodeLine parses one data file line into a record. Field rules are the
// shared validation parsers; IP uniqueness is left to the registry.
func DecodeLine(line string) (models.Equipment, error) {
	fields := strings.Split(line, Separator)

	if len(fields) < models.BaseFieldCount {
		return models.Equipment{}, fmt.Errorf("missing basic fields (expected at least %d, found %d)",
			models.BaseFieldCount, len(fields))
	}

	kind, err := models.ParseKind(fields[0])
	if err != nil {
		return models.Equipment{}, fmt.Errorf("invalid equipment type %q", fields[0])
	}

	if want := kind.FieldCount(); len(fields) < want {
		return models.Equipment{}, fmt.Errorf("missing fields for %s (expected %d, found %d)",
			kind.Label(), want, len(fields))
	}

	e := models.Equipment{Kind: kind}

	if e.Model, err = validation.ParseRequired("model", fields[1]); err != nil {
		return models.Equipment{}, err
	}
	if e.IP, err = validation.ParseIP(fields[2]); err != nil {
		return models.Equipment{}, err
	}
	if e.Manufacturer, err = validation.ParseRequired("manufacturer", fields[3]); err != nil {
		return models.Equipment{}, err
	}
	if e.State, err = models.ParseState(fields[4]); err != nil {
		return models.Equipment{}, fmt.Errorf("invalid equipment state %q", fields[4])
	}
	if e.EnergyWatts, err = validation.ParsePositiveFloat("energy consumption", fields[5]); err != nil {
		return models.Equipment{}, err
	}
	if e.HoursPerDay, err = validation.ParseHours(fields[6]); err != nil {
		return models.Equipment{}, err
	}

	if err := decoders[kind](fields, &e); err != nil {
		return models.Equipment{}, err
	}
	return e, nil
}

// EncodeLine renders a record in the layout DecodeLine reads:
//
//	type;model;ip;manufacturer;state;energy;hours[;kind-specific...]
//
// with Router: wifi;mbps, Switch: portCapacityGB, Server: os;ram;disk and
// Firewall: spi;blockDoS.
func EncodeLine(e models.Equipment) (string, error) {
	fields := []string{
		string(e.Kind),
		e.Model,
		e.IP,
		e.Manufacturer,
		string(e.State),
		formatFloat(e.EnergyWatts),
		strconv.Itoa(e.HoursPerDay),
	}

	switch e.Kind {
	case models.KindRouter:
		if e.Router == nil {
			return "", fmt.Errorf("router %s has no router fields", e.IP)
		}
		fields = append(fields, strconv.FormatBool(e.Router.SupportsWifi), strconv.Itoa(e.Router.Mbps))
	case models.KindSwitch:
		if e.Switch == nil {
			return "", fmt.Errorf("switch %s has no switch fields", e.IP)
		}
		fields = append(fields, formatFloat(e.Switch.PortCapacityGB))
	case models.KindServer:
		if e.Server == nil {
			return "", fmt.Errorf("server %s has no server fields", e.IP)
		}
		fields = append(fields, e.Server.OperatingSystem, strconv.Itoa(e.Server.RAMGB), strconv.Itoa(e.Server.DiskGB))
	case models.KindFirewall:
		if e.Firewall == nil {
			return "", fmt.Errorf("firewall %s has no firewall fields", e.IP)
		}
		fields = append(fields, strconv.FormatBool(e.Firewall.StatefulPacketInspection), strconv.FormatBool(e.Firewall.BlockDoS))
	default:
		return "", fmt.Errorf("unknown equipment type %q", e.Kind)
	}

	for _, f := range fields {
		if strings.Contains(f, Separator) {
			return "", fmt.Errorf("value %q of %s contains %q", f, e.IP, Separator)
		}
		if !validation.IsSingleLine(f) {
			return "", fmt.Errorf("value %q of %s contains a line break", f, e.IP)
		}
	}
	return strings.Join(fields, Separator), nil
}

// formatFloat uses the shortest representation that parses back exactly.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
