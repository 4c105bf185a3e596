package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evalgo.org/eqinv/models"
)

func TestDecodeLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected models.Equipment
	}{
		{
			name: "router",
			line: "ROUTER;RT1;10.0.0.1;Acme;ON;50;24;true;300",
			expected: models.Equipment{
				Kind: models.KindRouter, Model: "RT1", IP: "10.0.0.1", Manufacturer: "Acme",
				State: models.StateOn, EnergyWatts: 50, HoursPerDay: 24,
				Router: &models.RouterSpec{SupportsWifi: true, Mbps: 300},
			},
		},
		{
			name: "lower case tokens",
			line: "switch;SW-24;10.0.0.2;Cisco;off;12.5;8;10",
			expected: models.Equipment{
				Kind: models.KindSwitch, Model: "SW-24", IP: "10.0.0.2", Manufacturer: "Cisco",
				State: models.StateOff, EnergyWatts: 12.5, HoursPerDay: 8,
				Switch: &models.SwitchSpec{PortCapacityGB: 10},
			},
		},
		{
			name: "server",
			line: "Server;PowerEdge;10.0.0.3;Dell;ON;400;12;Linux;64;2000",
			expected: models.Equipment{
				Kind: models.KindServer, Model: "PowerEdge", IP: "10.0.0.3", Manufacturer: "Dell",
				State: models.StateOn, EnergyWatts: 400, HoursPerDay: 12,
				Server: &models.ServerSpec{OperatingSystem: "Linux", RAMGB: 64, DiskGB: 2000},
			},
		},
		{
			name: "firewall with yes/no flags",
			line: "FIREWALL;FG-60;10.0.0.4;Fortinet;ON;30;24;yes;no",
			expected: models.Equipment{
				Kind: models.KindFirewall, Model: "FG-60", IP: "10.0.0.4", Manufacturer: "Fortinet",
				State: models.StateOn, EnergyWatts: 30, HoursPerDay: 24,
				Firewall: &models.FirewallSpec{StatefulPacketInspection: true, BlockDoS: false},
			},
		},
		{
			name: "extra trailing fields ignored",
			line: "SWITCH;SW;10.0.0.5;HP;ON;10;1;48;extra",
			expected: models.Equipment{
				Kind: models.KindSwitch, Model: "SW", IP: "10.0.0.5", Manufacturer: "HP",
				State: models.StateOn, EnergyWatts: 10, HoursPerDay: 1,
				Switch: &models.SwitchSpec{PortCapacityGB: 48},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := DecodeLine(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, e)
		})
	}
}

func TestDecodeLineErrors(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		contains string
	}{
		{"five fields", "ROUTER;RT1;10.0.0.1;Acme;ON", "missing basic fields (expected at least 7, found 5)"},
		{"unknown type", "HUB;H1;10.0.0.1;Acme;ON;5;24", "invalid equipment type \"HUB\""},
		{"router missing fields", "ROUTER;RT1;10.0.0.1;Acme;ON;50;24;true", "missing fields for Router (expected 9, found 8)"},
		{"server missing fields", "SERVER;S;10.0.0.1;Dell;ON;50;24;Linux;16", "missing fields for Server (expected 10, found 9)"},
		{"blank model", "SWITCH; ;10.0.0.1;HP;ON;10;1;48", "model cannot be empty"},
		{"bad ip", "SWITCH;SW;10.0.0.300;HP;ON;10;1;48", "IP"},
		{"bad state", "SWITCH;SW;10.0.0.1;HP;STANDBY;10;1;48", "invalid equipment state"},
		{"non numeric energy", "SWITCH;SW;10.0.0.1;HP;ON;ten;1;48", "invalid energy consumption value"},
		{"negative energy", "SWITCH;SW;10.0.0.1;HP;ON;-10;1;48", "energy consumption must be positive"},
		{"infinite energy", "SWITCH;SW;10.0.0.1;HP;ON;+Inf;1;48", "invalid energy consumption value"},
		{"NaN capacity", "SWITCH;SW;10.0.0.1;HP;ON;10;1;NaN", "invalid port capacity value"},
		{"hours out of range", "SWITCH;SW;10.0.0.1;HP;ON;10;25;48", "between 1 and 24"},
		{"zero capacity", "SWITCH;SW;10.0.0.1;HP;ON;10;1;0", "port capacity must be positive"},
		{"bad wifi flag", "ROUTER;RT1;10.0.0.1;Acme;ON;50;24;maybe;300", "WiFi support"},
		{"fractional ram", "SERVER;S;10.0.0.1;Dell;ON;50;24;Linux;1.5;100", "invalid RAM capacity value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeLine(tt.line)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestEncodeLine(t *testing.T) {
	e := models.Equipment{
		Kind: models.KindSwitch, Model: "SW-24", IP: "10.0.0.2", Manufacturer: "Cisco",
		State: models.StateOff, EnergyWatts: 12.5, HoursPerDay: 8,
		Switch: &models.SwitchSpec{PortCapacityGB: 10},
	}

	line, err := EncodeLine(e)
	require.NoError(t, err)
	assert.Equal(t, "SWITCH;SW-24;10.0.0.2;Cisco;OFF;12.5;8;10", line)

	decoded, err := DecodeLine(line)
	require.NoError(t, err)
	assert.Equal(t, e, decoded)
}

func TestEncodeLineErrors(t *testing.T) {
	missing := models.Equipment{Kind: models.KindServer, Model: "S", IP: "10.0.0.1", Manufacturer: "Dell"}
	_, err := EncodeLine(missing)
	assert.ErrorContains(t, err, "no server fields")

	withSeparator := models.Equipment{
		Kind: models.KindRouter, Model: "RT;1", IP: "10.0.0.1", Manufacturer: "Acme",
		State: models.StateOn, EnergyWatts: 1, HoursPerDay: 1,
		Router: &models.RouterSpec{Mbps: 1},
	}
	_, err = EncodeLine(withSeparator)
	assert.ErrorContains(t, err, "contains")

	withNewline := withSeparator
	withNewline.Model = "RT\nX"
	_, err = EncodeLine(withNewline)
	assert.ErrorContains(t, err, "line break")

	withNewline.Model = "RT1\r"
	_, err = EncodeLine(withNewline)
	assert.ErrorContains(t, err, "line break")

	_, err = EncodeLine(models.Equipment{Kind: "HUB"})
	assert.ErrorContains(t, err, "unknown equipment type")
}
