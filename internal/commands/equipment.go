package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"evalgo.org/eqinv/internal/console"
	"evalgo.org/eqinv/internal/export"
	"evalgo.org/eqinv/internal/inventory"
	"evalgo.org/eqinv/internal/validation"
	"evalgo.org/eqinv/models"
)

var (
	listFormat string

	regType         string
	regModel        string
	regIP           string
	regManufacturer string
	regState        string
	regEnergy       float64
	regHours        int
	regWifi         bool
	regMbps         int
	regPortCapacity float64
	regOS           string
	regRAM          int
	regDisk         int
	regSPI          bool
	regBlockDoS     bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all equipment",
	Long: `List all equipment in registration order.

Examples:
  eqinv list
  eqinv list --format json
  eqinv list --format yaml`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register new equipment",
	Long: `Register new equipment and save the inventory.

Only the flags of the chosen type are used.

Examples:
  eqinv register --type router --model RT1 --ip 10.0.0.1 --manufacturer Acme \
    --state on --energy 50 --hours 24 --wifi --mbps 300
  eqinv register --type server --model PE --ip 10.0.0.3 --manufacturer Dell \
    --state off --energy 400 --hours 12 --os Linux --ram 64 --disk 2000`,
	Args: cobra.NoArgs,
	RunE: runRegister,
}

var operateCmd = &cobra.Command{
	Use:   "operate <ip> <on|off|restart>",
	Short: "Turn equipment on or off, or restart it",
	Args:  cobra.ExactArgs(2),
	RunE:  runOperate,
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Per-equipment reports",
}

var reportEnergyCmd = &cobra.Command{
	Use:   "energy <ip>",
	Short: "Show the daily energy consumption of one equipment",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport(console.RenderEnergyReport),
}

var reportStateCmd = &cobra.Command{
	Use:   "state <ip>",
	Short: "Show the power state of one equipment",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport(console.RenderStateReport),
}

var searchCmd = &cobra.Command{
	Use:   "search <ip>",
	Short: "Show the equipment registered under an IP",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport(console.RenderEquipment),
}

var removeCmd = &cobra.Command{
	Use:   "remove <ip>",
	Short: "Remove the equipment registered under an IP",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show counts, averages and the top consumers",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	listCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "output format (table, json, yaml)")

	f := registerCmd.Flags()
	f.StringVar(&regType, "type", "", "equipment type (router, switch, server, firewall)")
	f.StringVar(&regModel, "model", "", "model name")
	f.StringVar(&regIP, "ip", "", "IP address, e.g. 192.168.0.10")
	f.StringVar(&regManufacturer, "manufacturer", "", "manufacturer name")
	f.StringVar(&regState, "state", "off", "power state (on, off)")
	f.Float64Var(&regEnergy, "energy", 0, "power draw in watts")
	f.IntVar(&regHours, "hours", 0, "hours of use per day (1-24)")
	f.BoolVar(&regWifi, "wifi", false, "router: supports WiFi")
	f.IntVar(&regMbps, "mbps", 0, "router: speed in Mbps")
	f.Float64Var(&regPortCapacity, "port-capacity", 0, "switch: port capacity in GB")
	f.StringVar(&regOS, "os", "", "server: operating system")
	f.IntVar(&regRAM, "ram", 0, "server: RAM in GB")
	f.IntVar(&regDisk, "disk", 0, "server: disk in GB")
	f.BoolVar(&regSPI, "spi", false, "firewall: stateful packet inspection")
	f.BoolVar(&regBlockDoS, "block-dos", false, "firewall: blocks DoS")

	// These should never fail as flags are defined above
	_ = registerCmd.MarkFlagRequired("type")         //nolint:errcheck
	_ = registerCmd.MarkFlagRequired("model")        //nolint:errcheck
	_ = registerCmd.MarkFlagRequired("ip")           //nolint:errcheck
	_ = registerCmd.MarkFlagRequired("manufacturer") //nolint:errcheck

	reportCmd.AddCommand(reportEnergyCmd)
	reportCmd.AddCommand(reportStateCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	if strings.EqualFold(listFormat, "table") {
		return console.RenderList(cmd.OutOrStdout(), ws.reg.All())
	}

	format, err := export.ParseFormat(listFormat)
	if err != nil {
		return err
	}
	return export.Encode(cmd.OutOrStdout(), format, ws.reg.All())
}

// equipmentFromFlags builds the record described by the register flags.
// Field rules are left to the registry so every failure is reported at once.
func equipmentFromFlags() (models.Equipment, error) {
	kind, err := models.ParseKind(regType)
	if err != nil {
		return models.Equipment{}, err
	}
	state, err := models.ParseState(regState)
	if err != nil {
		return models.Equipment{}, err
	}

	e := models.Equipment{
		Kind:         kind,
		Model:        strings.TrimSpace(regModel),
		IP:           strings.TrimSpace(regIP),
		Manufacturer: strings.TrimSpace(regManufacturer),
		State:        state,
		EnergyWatts:  regEnergy,
		HoursPerDay:  regHours,
	}

	switch kind {
	case models.KindRouter:
		e.Router = &models.RouterSpec{SupportsWifi: regWifi, Mbps: regMbps}
	case models.KindSwitch:
		e.Switch = &models.SwitchSpec{PortCapacityGB: regPortCapacity}
	case models.KindServer:
		e.Server = &models.ServerSpec{OperatingSystem: strings.TrimSpace(regOS), RAMGB: regRAM, DiskGB: regDisk}
	case models.KindFirewall:
		e.Firewall = &models.FirewallSpec{StatefulPacketInspection: regSPI, BlockDoS: regBlockDoS}
	}
	return e, nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	e, err := equipmentFromFlags()
	if err != nil {
		return err
	}

	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	stored, err := ws.reg.Register(e)
	if err != nil {
		var regErr *inventory.RegistrationError
		if errors.As(err, &regErr) {
			console.Error(out, "Equipment rejected:")
			for _, ve := range regErr.Result.Errors {
				fmt.Fprintf(out, "  - %s\n", ve)
			}
		}
		return err
	}

	if err := ws.save(); err != nil {
		return err
	}

	console.Success(out, fmt.Sprintf("%s %s registered at %s.", stored.Kind.Label(), stored.Model, stored.IP))
	return nil
}

func runOperate(cmd *cobra.Command, args []string) error {
	ip, err := validation.ParseIP(args[0])
	if err != nil {
		return err
	}
	op, err := models.ParseOperation(args[1])
	if err != nil {
		return err
	}

	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	t, err := ws.reg.Apply(ip, op)
	if err != nil {
		return err
	}
	console.RenderTransition(cmd.OutOrStdout(), t)

	if !t.Changed {
		return nil
	}
	return ws.save()
}

// runReport looks up the equipment named by the first argument and renders it.
func runReport(render func(w io.Writer, e models.Equipment)) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ip, err := validation.ParseIP(args[0])
		if err != nil {
			return err
		}

		ws, err := openWorkspace()
		if err != nil {
			return err
		}

		e, err := ws.reg.FindByIP(ip)
		if err != nil {
			return err
		}
		render(cmd.OutOrStdout(), e)
		return nil
	}
}

func runRemove(cmd *cobra.Command, args []string) error {
	ip, err := validation.ParseIP(args[0])
	if err != nil {
		return err
	}

	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	if !ws.reg.RemoveByIP(ip) {
		return fmt.Errorf("%w: %s", inventory.ErrNotFound, ip)
	}
	if err := ws.save(); err != nil {
		return err
	}

	console.Success(cmd.OutOrStdout(), fmt.Sprintf("Equipment with IP %s removed successfully.", ip))
	return nil
}

func runSummary(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	console.RenderSummary(cmd.OutOrStdout(), ws.reg.Summary())
	return nil
}
