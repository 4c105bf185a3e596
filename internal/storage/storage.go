// Package storage persists the equipment registry to a semicolon-delimited
// text file, one record per line, no header.
//
// Load copies the current data file to a backup path before reading it and
// tolerates bad lines: each rejected line is written to the error log with
// its line number and reason, then skipped. Save rewrites the whole file.
// Files are opened and closed within each call.
package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"evalgo.org/eqinv/internal/config"
	"evalgo.org/eqinv/internal/inventory"
	"evalgo.org/eqinv/internal/logger"
)

// ErrNoDataFile indicates the data file does not exist yet. It wraps
// fs.ErrNotExist.
var ErrNoDataFile = fmt.Errorf("data file not found: %w", fs.ErrNotExist)

// MaxLineLength is the longest data file line the loader reads. Longer lines
// are rejected like any other bad line.
const MaxLineLength = 64 * 1024

// RejectLog receives one message per rejected line.
type RejectLog interface {
	Append(msg string) error
}

// Store reads and writes the data file.
type Store struct {
	dataFile   string
	backupFile string
	rejects    RejectLog
	log        zerolog.Logger
}

// LoadReport summarises a bulk load.
type LoadReport struct {
	// Lines is the number of lines read, blank ones included
	Lines int `json:"lines" yaml:"lines"`

	// Loaded is the number of records added to the registry
	Loaded int `json:"loaded" yaml:"loaded"`

	// Skipped lists the rejected lines with their reasons
	Skipped []Rejection `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// Rejection is a line the loader skipped.
type Rejection struct {
	Line   int    `json:"line" yaml:"line"`
	Reason string `json:"reason" yaml:"reason"`
}

func (r Rejection) String() string {
	return fmt.Sprintf("Line %d ignored: %s", r.Line, r.Reason)
}

// New creates a Store. rejects may be nil, in which case rejected lines are
// only reported in the LoadReport and the diagnostics log.
func New(dataFile, backupFile string, rejects RejectLog) *Store {
	return &Store{
		dataFile:   dataFile,
		backupFile: backupFile,
		rejects:    rejects,
		log:        logger.WithComponent("storage"),
	}
}

// NewFromConfig creates a Store from the data section of the configuration.
func NewFromConfig(cfg *config.Config, rejects RejectLog) *Store {
	return New(cfg.Data.File, cfg.Data.BackupFile, rejects)
}

// DataFile returns the data file path.
func (s *Store) DataFile() string {
	return s.dataFile
}

// BackupFile returns the backup file path.
func (s *Store) BackupFile() string {
	return s.backupFile
}

// Load backs up the data file and appends every valid line to reg.
//
// A missing data file returns ErrNoDataFile and leaves reg untouched. A
// failed backup or read aborts the load with an error; records appended
// before a read failure stay in reg.
func (s *Store) Load(reg *inventory.Registry) (*LoadReport, error) {
	if _, err := os.Stat(s.dataFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoDataFile
		}
		return nil, fmt.Errorf("failed to stat data file: %w", err)
	}

	if err := s.Backup(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.dataFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer f.Close()

	report, err := s.read(f, reg)
	if err != nil {
		return report, err
	}

	s.log.Info().
		Str("file", s.dataFile).
		Int("lines", report.Lines).
		Int("loaded", report.Loaded).
		Int("skipped", len(report.Skipped)).
		Msg("Inventory loaded")

	return report, nil
}

// Read loads records from r without touching any file. It is Load minus the
// backup, used to validate a file in a dry run.
func (s *Store) Read(r io.Reader, reg *inventory.Registry) (*LoadReport, error) {
	return s.read(r, reg)
}

func (s *Store) read(r io.Reader, reg *inventory.Registry) (*LoadReport, error) {
	report := &LoadReport{}

	br := bufio.NewReaderSize(r, MaxLineLength)
	for {
		line, tooLong, err := readLine(br)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return report, fmt.Errorf("failed to read data file: %w", err)
		}

		report.Lines++
		if tooLong {
			s.reject(report, Rejection{
				Line:   report.Lines,
				Reason: fmt.Sprintf("line too long (limit %d bytes)", MaxLineLength),
			})
			continue
		}

		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if reason := s.loadLine(line, reg); reason != "" {
			s.reject(report, Rejection{Line: report.Lines, Reason: reason})
			continue
		}
		report.Loaded++
	}

	return report, nil
}

// readLine returns the next line without its terminator. A line that does not
// fit the reader's buffer is consumed to its end and reported as too long.
func readLine(br *bufio.Reader) (string, bool, error) {
	chunk, isPrefix, err := br.ReadLine()
	if err != nil {
		return "", false, err
	}
	if !isPrefix {
		return string(chunk), false, nil
	}

	for isPrefix {
		if _, isPrefix, err = br.ReadLine(); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return "", true, err
		}
	}
	return "", true, nil
}

// loadLine returns the rejection reason, or "" when the record was added.
func (s *Store) loadLine(line string, reg *inventory.Registry) string {
	e, err := DecodeLine(line)
	if err != nil {
		return err.Error()
	}

	if _, err := reg.Register(e); err != nil {
		var regErr *inventory.RegistrationError
		if errors.As(err, &regErr) {
			return regErr.Reason()
		}
		return err.Error()
	}
	return ""
}

func (s *Store) reject(report *LoadReport, r Rejection) {
	report.Skipped = append(report.Skipped, r)
	s.log.Debug().Int("line", r.Line).Str("reason", r.Reason).Msg("Line rejected")

	if s.rejects == nil {
		return
	}
	if err := s.rejects.Append(r.String()); err != nil {
		s.log.Warn().Err(err).Int("line", r.Line).Msg("Failed to write error log entry")
	}
}

// Backup copies the data file over the backup file.
func (s *Store) Backup() (err error) {
	src, err := os.Open(s.dataFile)
	if err != nil {
		return fmt.Errorf("failed to open data file for backup: %w", err)
	}
	defer src.Close()

	if err := ensureDir(s.backupFile); err != nil {
		return err
	}

	dst, err := os.OpenFile(s.backupFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}
	defer func() {
		if cerr := dst.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close backup file: %w", cerr)
		}
	}()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to copy data file to backup: %w", err)
	}

	s.log.Debug().Str("backup", s.backupFile).Msg("Data file backed up")
	return nil
}

// Save overwrites the data file with every record of reg in order. All
// lines are encoded before the file is touched, so an unencodable record
// leaves the previous file intact.
func (s *Store) Save(reg *inventory.Registry) (err error) {
	records := reg.All()

	lines := make([]string, 0, len(records))
	for _, e := range records {
		line, err := EncodeLine(e)
		if err != nil {
			return fmt.Errorf("failed to encode equipment: %w", err)
		}
		lines = append(lines, line)
	}

	if err := ensureDir(s.dataFile); err != nil {
		return err
	}

	f, err := os.OpenFile(s.dataFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open data file for writing: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close data file: %w", cerr)
		}
	}()

	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("failed to write data file: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write data file: %w", err)
	}

	s.log.Info().Str("file", s.dataFile).Int("records", len(lines)).Msg("Inventory saved")
	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
