// Package eqinv is an inventory manager for network equipment.
//
// # Overview
//
// eqinv keeps a list of routers, switches, servers and firewalls in a plain
// semicolon-delimited text file. An operator registers, lists, searches,
// powers on and off, removes and reports on equipment, either from an
// interactive numbered menu or with one-shot subcommands.
//
// The program consists of:
//   - Registry: the in-memory, IP-keyed collection and its aggregates
//   - Validation: field rules shared by registration and bulk loading
//   - Storage: the line codec, backup-before-load and whole-file save
//   - Error log: timestamped lines for every data file line that was skipped
//   - Console: the interactive menu and terminal renderers
//
// # Architecture
//
//	┌─────────────────┐     ┌─────────────────┐
//	│  Menu (stdin)   │     │  Subcommands    │
//	│  console pkg    │     │  cobra          │
//	└────────┬────────┘     └────────┬────────┘
//	         └──────────┬────────────┘
//	           ┌────────▼────────┐
//	           │    Registry     │──── validation
//	           └────────┬────────┘
//	           ┌────────▼────────┐     ┌──────────────┐
//	           │     Storage     │────►│  Error log   │
//	           │ equipments.csv  │     └──────────────┘
//	           └─────────────────┘
//
// # Data File
//
// One record per line, no header:
//
//	ROUTER;RT1;10.0.0.1;Acme;ON;50;24;true;300
//	SWITCH;SW-24;10.0.0.2;Cisco;OFF;12.5;8;10
//	SERVER;PowerEdge;10.0.0.3;Dell;ON;400;12;Linux;64;2000
//	FIREWALL;FG-60;10.0.0.4;Fortinet;ON;30;24;true;false
//
// The seven shared fields are type, model, IP, manufacturer, state, power
// in watts and hours of use per day. The rest depend on the type. Fields
// are not quoted, so values cannot contain a semicolon.
//
// Every load first copies the data file to the backup file. Lines that fail
// to parse or validate are skipped and recorded in the error log:
//
//	[12/11/2025 14:35:20] Line 3 ignored: missing basic fields (expected at least 7, found 5)
//
// # Usage
//
// Open the interactive menu:
//
//	eqinv
//
// One-shot commands:
//
//	eqinv list --format yaml
//	eqinv register --type switch --model SW-24 --ip 10.0.0.2 --manufacturer Cisco \
//	    --state off --energy 12.5 --hours 8 --port-capacity 10
//	eqinv operate 10.0.0.2 on
//	eqinv report energy 10.0.0.2
//	eqinv summary
//	eqinv validate import.csv
//	eqinv export --output inventory.json
//
// # Configuration
//
// Configuration can be provided via:
//   - YAML file (config.yaml, configs/config.yaml, ~/.eqinv, /etc/eqinv)
//   - Environment variables (EQ_ prefix)
//   - .env file
//   - --data-file, --log-level and --log-format flags
//
// Example configuration:
//
//	data:
//	  file: ./data/equipments.csv
//	  backup_file: ./data/equipments_backup.csv
//	  log_file: ./data/log_equipments.txt
//	logging:
//	  level: warn
//	  format: text
//	  output: stderr
//
// # Development
//
// Run tests:
//
//	go test ./...
//
// Build the binary:
//
//	go build -o eqinv ./cmd/eqinv
//
// # Technology Stack
//
//   - Cobra and Viper (CLI and configuration)
//   - zerolog (diagnostics)
//   - go-playground/validator (record validation)
//   - lipgloss (terminal styling)
//   - yaml.v3 (export and configuration files)
package eqinv
