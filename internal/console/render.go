// Package console renders inventory data for a terminal and runs the
// interactive menu.
//
// Renderers write to any io.Writer so the same output serves the menu and
// the one-shot commands. Headings are styled with lipgloss; on a writer that
// is not a terminal they degrade to plain text.
package console

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"evalgo.org/eqinv/internal/inventory"
	"evalgo.org/eqinv/internal/storage"
	"evalgo.org/eqinv/models"
)

// Dracula theme colors.
const (
	draculaCyan    = "#8BE9FD"
	draculaGreen   = "#50FA7B"
	draculaOrange  = "#FFB86C"
	draculaPink    = "#FF79C6"
	draculaRed     = "#FF5555"
	draculaComment = "#6272A4"
)

var styles = struct {
	heading, section, success, warning, error, hint lipgloss.Style
}{
	heading: lipgloss.NewStyle().
		Foreground(lipgloss.Color(draculaPink)).
		Bold(true),
	section: lipgloss.NewStyle().
		Foreground(lipgloss.Color(draculaCyan)),
	success: lipgloss.NewStyle().
		Foreground(lipgloss.Color(draculaGreen)),
	warning: lipgloss.NewStyle().
		Foreground(lipgloss.Color(draculaOrange)),
	error: lipgloss.NewStyle().
		Foreground(lipgloss.Color(draculaRed)).
		Bold(true),
	hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(draculaComment)),
}

const rule = "-----------------------------------------------------------"

// NoEquipment is shown wherever an empty registry has nothing to offer.
const NoEquipment = "No equipment registered yet."

// Heading writes a styled title line.
func Heading(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, styles.heading.Render("=== "+title+" ==="))
}

// Success writes a confirmation line.
func Success(w io.Writer, msg string) {
	fmt.Fprintln(w, styles.success.Render(msg))
}

// Warning writes a recoverable problem, such as input to re-enter.
func Warning(w io.Writer, msg string) {
	fmt.Fprintln(w, styles.warning.Render(msg))
}

// Error writes a failed operation.
func Error(w io.Writer, msg string) {
	fmt.Fprintln(w, styles.error.Render(msg))
}

func section(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, styles.section.Render(title))
	fmt.Fprintln(w, rule)
}

// RenderList prints every record as a table.
func RenderList(w io.Writer, records []models.Equipment) error {
	Heading(w, "Equipment List")
	if len(records) == 0 {
		fmt.Fprintln(w, NoEquipment)
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tMODEL\tIP\tMANUFACTURER\tSTATE\tENERGY(W)\tHOURS/DAY\tDAILY(KWH)\tDETAILS")
	for _, e := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%.2f\t%d\t%.2f\t%s\n",
			e.Kind.Label(),
			e.Model,
			e.IP,
			e.Manufacturer,
			e.State.Label(),
			e.EnergyWatts,
			e.HoursPerDay,
			e.DailyConsumptionKWh(),
			e.Details(),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nTotal: %d\n", len(records))
	return nil
}

// RenderEquipment prints one record, as shown by a search.
func RenderEquipment(w io.Writer, e models.Equipment) {
	Heading(w, "Equipment Found")
	writeIdentity(w, e)
	fmt.Fprintf(w, "Power (Watts)  : %g W\n", e.EnergyWatts)
	fmt.Fprintf(w, "Usage per Day  : %d hours\n", e.HoursPerDay)
	fmt.Fprintf(w, "Details        : %s\n", e.Details())
}

func writeIdentity(w io.Writer, e models.Equipment) {
	fmt.Fprintf(w, "Type           : %s\n", e.Kind.Label())
	fmt.Fprintf(w, "Model          : %s\n", e.Model)
	fmt.Fprintf(w, "IP             : %s\n", e.IP)
	fmt.Fprintf(w, "Manufacturer   : %s\n", e.Manufacturer)
	fmt.Fprintf(w, "State          : %s\n", e.State.Label())
}

// RenderEnergyReport prints the daily consumption of one record.
func RenderEnergyReport(w io.Writer, e models.Equipment) {
	Heading(w, "Energy Consumption Report")

	section(w, "Equipment Information")
	writeIdentity(w, e)

	section(w, "Energy Configuration")
	fmt.Fprintf(w, "Power (Watts)  : %g W\n", e.EnergyWatts)
	fmt.Fprintf(w, "Usage per Day  : %d hours\n", e.HoursPerDay)

	section(w, "Calculated Consumption")
	fmt.Fprintf(w, "Daily Consumption : %.2f kWh\n", e.DailyConsumptionKWh())

	section(w, "Specific Information")
	switch {
	case e.Router != nil:
		fmt.Fprintf(w, "WiFi Supported    : %t\n", e.Router.SupportsWifi)
		fmt.Fprintf(w, "Speed             : %d Mbps\n", e.Router.Mbps)
	case e.Switch != nil:
		fmt.Fprintf(w, "Port Capacity     : %g GB\n", e.Switch.PortCapacityGB)
	case e.Server != nil:
		fmt.Fprintf(w, "Operating System  : %s\n", e.Server.OperatingSystem)
		fmt.Fprintf(w, "RAM Capacity      : %d GB\n", e.Server.RAMGB)
		fmt.Fprintf(w, "Disk Capacity     : %d GB\n", e.Server.DiskGB)
	case e.Firewall != nil:
		fmt.Fprintf(w, "Stateful Packet Inspection : %t\n", e.Firewall.StatefulPacketInspection)
		fmt.Fprintf(w, "Block DoS                  : %t\n", e.Firewall.BlockDoS)
	}
}

// RenderStateReport prints the power state of one record.
func RenderStateReport(w io.Writer, e models.Equipment) {
	Heading(w, "State Report")
	fmt.Fprintf(w, "Model          : %s\n", e.Model)
	fmt.Fprintf(w, "Manufacturer   : %s\n", e.Manufacturer)
	fmt.Fprintf(w, "State          : %s\n", e.State.Label())
}

// RenderTransition prints the device messages of a power operation.
func RenderTransition(w io.Writer, t inventory.Transition) {
	for _, msg := range t.Messages {
		if t.Changed {
			Success(w, msg)
		} else {
			Warning(w, msg)
		}
	}
}

// RenderSummary prints the aggregate report.
func RenderSummary(w io.Writer, s inventory.Summary) {
	Heading(w, "Summary Report")
	if s.Total == 0 {
		fmt.Fprintln(w, NoEquipment)
		return
	}
	fmt.Fprintf(w, "Total equipment: %d\n", s.Total)

	section(w, "Number of equipment by type")
	for _, c := range s.ByKind {
		fmt.Fprintf(w, "%s: %d\n", c.Kind.Label(), c.Count)
	}

	section(w, "Average power draw by type")
	for _, a := range s.AverageByKind {
		fmt.Fprintf(w, "%s: %.2f W\n", a.Kind.Label(), a.AverageWatts)
	}

	section(w, "Number of devices per state")
	for _, c := range s.ByState {
		fmt.Fprintf(w, "%s: %d\n", c.State.Label(), c.Count)
	}

	section(w, "Top 3 by power draw")
	for i, e := range s.TopByConsumption {
		fmt.Fprintf(w, "%d. %s (%s) %s - %.2f W\n", i+1, e.Model, e.Kind.Label(), e.IP, e.EnergyWatts)
	}
}

// RenderLog prints the error log lines, or a notice when there are none.
func RenderLog(w io.Writer, lines []string) {
	Heading(w, "Error Log")
	if len(lines) == 0 {
		fmt.Fprintln(w, "The error log is empty.")
		return
	}
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
}

// RenderLoadReport prints the outcome of a bulk load.
func RenderLoadReport(w io.Writer, source string, r *storage.LoadReport) {
	Heading(w, "Load Report")
	fmt.Fprintf(w, "Source : %s\n", source)
	fmt.Fprintf(w, "Lines  : %d\n", r.Lines)
	fmt.Fprintf(w, "Loaded : %d\n", r.Loaded)
	fmt.Fprintf(w, "Skipped: %d\n", len(r.Skipped))
	for _, rej := range r.Skipped {
		Warning(w, "  "+rej.String())
	}
}

// capitalize upper-cases the first letter of an error message for display.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
