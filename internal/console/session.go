package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"evalgo.org/eqinv/internal/eventlog"
	"evalgo.org/eqinv/internal/inventory"
	"evalgo.org/eqinv/internal/logger"
	"evalgo.org/eqinv/internal/validation"
	"evalgo.org/eqinv/models"
)

// Saver persists the registry when the session ends.
type Saver interface {
	Save(reg *inventory.Registry) error
}

// LogReader returns the error log lines.
type LogReader interface {
	Lines() ([]string, error)
}

// Session is one run of the interactive menu.
type Session struct {
	in     *bufio.Scanner
	out    io.Writer
	reg    *inventory.Registry
	saver  Saver
	errLog LogReader
	log    zerolog.Logger
}

// NewSession wires a menu to the given input and output.
func NewSession(in io.Reader, out io.Writer, reg *inventory.Registry, saver Saver, errLog LogReader) *Session {
	return &Session{
		in:     bufio.NewScanner(in),
		out:    out,
		reg:    reg,
		saver:  saver,
		errLog: errLog,
		log:    logger.WithComponent("console"),
	}
}

type menuItem struct {
	key    string
	label  string
	action func(s *Session) error
}

var menu = []menuItem{
	{"1", "Register equipment", (*Session).register},
	{"2", "List equipment", (*Session).list},
	{"3", "Turn on / turn off / restart equipment", (*Session).operate},
	{"4", "Energy consumption report", (*Session).energyReport},
	{"5", "State report", (*Session).stateReport},
	{"6", "Search equipment by IP", (*Session).search},
	{"7", "Remove equipment by IP", (*Session).remove},
	{"8", "Summary report", (*Session).summary},
	{"9", "Show error log", (*Session).showLog},
}

// Run shows the menu until the operator chooses 0 or the input ends. Both
// save the registry before returning; the save error, if any, is returned.
func (s *Session) Run() error {
	for {
		s.showMenu()

		choice, err := s.readLine()
		if err != nil {
			fmt.Fprintln(s.out)
			return s.exit()
		}

		choice = strings.TrimSpace(choice)
		if choice == "0" {
			return s.exit()
		}

		item, ok := lookup(choice)
		if !ok {
			Warning(s.out, "Invalid option.")
			continue
		}

		if err := item.action(s); err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(s.out)
				return s.exit()
			}
			Error(s.out, capitalize(err.Error()))
		}
	}
}

func lookup(key string) (menuItem, bool) {
	for _, item := range menu {
		if item.key == key {
			return item, true
		}
	}
	return menuItem{}, false
}

func (s *Session) showMenu() {
	Heading(s.out, "Equipment Management")
	for _, item := range menu {
		fmt.Fprintf(s.out, "%s - %s\n", item.key, item.label)
	}
	fmt.Fprintln(s.out, "0 - Exit")
	fmt.Fprint(s.out, "Choose an option: ")
}

func (s *Session) exit() error {
	fmt.Fprintln(s.out, "Saving data before exit...")
	if err := s.saver.Save(s.reg); err != nil {
		Error(s.out, "Failed to save data: "+err.Error())
		return err
	}
	fmt.Fprintln(s.out, "Application finished.")
	return nil
}

// readLine returns io.EOF once the input is exhausted.
func (s *Session) readLine() (string, error) {
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.in.Text(), nil
}

// ask prompts until parse accepts the answer. Rejections are shown and the
// question is asked again; only the end of input stops it.
func ask[T any](s *Session, prompt string, parse func(string) (T, error)) (T, error) {
	for {
		fmt.Fprintf(s.out, "%s: ", prompt)
		line, err := s.readLine()
		if err != nil {
			var zero T
			return zero, err
		}

		v, err := parse(line)
		if err == nil {
			return v, nil
		}
		Warning(s.out, capitalize(err.Error())+". Try again.")
	}
}

func (s *Session) register() error {
	Heading(s.out, "Register Equipment")

	var (
		e   models.Equipment
		err error
	)

	if e.Kind, err = ask(s, "Type (Router/Switch/Server/Firewall)", models.ParseKind); err != nil {
		return err
	}
	if e.Model, err = ask(s, "Model", func(v string) (string, error) {
		return validation.ParseRequired("model", v)
	}); err != nil {
		return err
	}
	if e.IP, err = ask(s, "IP", s.parseNewIP); err != nil {
		return err
	}
	if e.Manufacturer, err = ask(s, "Manufacturer", func(v string) (string, error) {
		return validation.ParseRequired("manufacturer", v)
	}); err != nil {
		return err
	}
	if e.State, err = ask(s, "State (on/off)", models.ParseState); err != nil {
		return err
	}
	if e.EnergyWatts, err = ask(s, "Energy consumption (W)", func(v string) (float64, error) {
		return validation.ParsePositiveFloat("energy consumption", v)
	}); err != nil {
		return err
	}
	if e.HoursPerDay, err = ask(s, "Hours of use per day (1-24)", validation.ParseHours); err != nil {
		return err
	}

	if err := s.askSpec(&e); err != nil {
		return err
	}

	stored, err := s.reg.Register(e)
	if err != nil {
		var regErr *inventory.RegistrationError
		if errors.As(err, &regErr) {
			Error(s.out, "Error registering equipment: "+regErr.Reason())
			return nil
		}
		return err
	}

	s.log.Debug().Str("ip", stored.IP).Str("kind", string(stored.Kind)).Msg("Equipment registered")
	Success(s.out, "Equipment registered successfully!")
	return nil
}

// parseNewIP accepts a well-formed IP that is not registered yet.
func (s *Session) parseNewIP(v string) (string, error) {
	ip, err := validation.ParseIP(v)
	if err != nil {
		return "", fmt.Errorf("invalid IP format (e.g. 192.168.0.10)")
	}
	if s.reg.Contains(ip) {
		return "", fmt.Errorf("IP %s is already registered", ip)
	}
	return ip, nil
}

func (s *Session) askSpec(e *models.Equipment) error {
	flag := func(field string) func(string) (bool, error) {
		return func(v string) (bool, error) { return validation.ParseFlag(field, v) }
	}
	positiveInt := func(field string) func(string) (int, error) {
		return func(v string) (int, error) { return validation.ParsePositiveInt(field, v) }
	}

	switch e.Kind {
	case models.KindRouter:
		wifi, err := ask(s, "Supports WiFi (yes/no)", flag("WiFi support"))
		if err != nil {
			return err
		}
		mbps, err := ask(s, "Mbps", positiveInt("Mbps"))
		if err != nil {
			return err
		}
		e.Router = &models.RouterSpec{SupportsWifi: wifi, Mbps: mbps}

	case models.KindSwitch:
		capacity, err := ask(s, "Port capacity (GB)", func(v string) (float64, error) {
			return validation.ParsePositiveFloat("port capacity", v)
		})
		if err != nil {
			return err
		}
		e.Switch = &models.SwitchSpec{PortCapacityGB: capacity}

	case models.KindServer:
		opSys, err := ask(s, "Operating system", func(v string) (string, error) {
			return validation.ParseRequired("operating system", v)
		})
		if err != nil {
			return err
		}
		ram, err := ask(s, "RAM capacity (GB)", positiveInt("RAM capacity"))
		if err != nil {
			return err
		}
		disk, err := ask(s, "Disk capacity (GB)", positiveInt("disk capacity"))
		if err != nil {
			return err
		}
		e.Server = &models.ServerSpec{OperatingSystem: opSys, RAMGB: ram, DiskGB: disk}

	case models.KindFirewall:
		spi, err := ask(s, "Stateful packet inspection (yes/no)", flag("stateful packet inspection"))
		if err != nil {
			return err
		}
		blockDoS, err := ask(s, "Block DoS (yes/no)", flag("block DoS"))
		if err != nil {
			return err
		}
		e.Firewall = &models.FirewallSpec{StatefulPacketInspection: spi, BlockDoS: blockDoS}
	}
	return nil
}

// selectEquipment asks for the IP of a registered record. An empty answer
// cancels; ok is false then, and also when nothing is registered.
func (s *Session) selectEquipment() (models.Equipment, bool, error) {
	if s.reg.Len() == 0 {
		fmt.Fprintln(s.out, NoEquipment)
		return models.Equipment{}, false, nil
	}

	for {
		fmt.Fprint(s.out, "Inform the IP (empty to cancel): ")
		line, err := s.readLine()
		if err != nil {
			return models.Equipment{}, false, err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			return models.Equipment{}, false, nil
		}
		if !validation.IsValidIP(line) {
			Warning(s.out, "Invalid IP format! Try again.")
			continue
		}

		e, err := s.reg.FindByIP(line)
		if err != nil {
			Warning(s.out, "No equipment found with this IP. Try again.")
			continue
		}
		return e, true, nil
	}
}

func (s *Session) list() error {
	return RenderList(s.out, s.reg.All())
}

func (s *Session) operate() error {
	if s.reg.Len() == 0 {
		fmt.Fprintln(s.out, NoEquipment)
		return nil
	}

	op, err := ask(s, "Operation (turn on/turn off/restart)", models.ParseOperation)
	if err != nil {
		return err
	}

	e, ok, err := s.selectEquipment()
	if err != nil || !ok {
		return err
	}

	t, err := s.reg.Apply(e.IP, op)
	if errors.Is(err, inventory.ErrRestartWhileOff) {
		Warning(s.out, "The equipment is OFF. Turn it ON before restarting.")
		return nil
	}
	if err != nil {
		return err
	}

	RenderTransition(s.out, t)
	return nil
}

func (s *Session) energyReport() error {
	e, ok, err := s.selectEquipment()
	if err != nil || !ok {
		return err
	}
	RenderEnergyReport(s.out, e)
	return nil
}

func (s *Session) stateReport() error {
	e, ok, err := s.selectEquipment()
	if err != nil || !ok {
		return err
	}
	RenderStateReport(s.out, e)
	return nil
}

func (s *Session) search() error {
	e, ok, err := s.selectEquipment()
	if err != nil || !ok {
		return err
	}
	RenderEquipment(s.out, e)
	return nil
}

func (s *Session) remove() error {
	e, ok, err := s.selectEquipment()
	if err != nil || !ok {
		return err
	}

	if !s.reg.RemoveByIP(e.IP) {
		Error(s.out, "Error removing equipment with IP "+e.IP)
		return nil
	}
	Success(s.out, fmt.Sprintf("Equipment with IP %s removed successfully.", e.IP))
	return nil
}

func (s *Session) summary() error {
	RenderSummary(s.out, s.reg.Summary())
	return nil
}

func (s *Session) showLog() error {
	lines, err := s.errLog.Lines()
	if errors.Is(err, eventlog.ErrNoLog) {
		fmt.Fprintln(s.out, "No log file found.")
		return nil
	}
	if err != nil {
		return err
	}
	RenderLog(s.out, lines)
	return nil
}
