package commands

import (
	"errors"

	"github.com/rs/zerolog"

	"evalgo.org/eqinv/internal/eventlog"
	"evalgo.org/eqinv/internal/inventory"
	"evalgo.org/eqinv/internal/logger"
	"evalgo.org/eqinv/internal/storage"
)

// workspace is the loaded state every command operates on.
type workspace struct {
	errLog *eventlog.Log
	store  *storage.Store
	reg    *inventory.Registry
	report *storage.LoadReport
	log    zerolog.Logger
}

// openWorkspace loads the data file named by the configuration. A missing
// data file is a fresh, empty inventory.
func openWorkspace() (*workspace, error) {
	ws := &workspace{
		errLog: eventlog.New(cfg.Data.LogFile),
		reg:    inventory.New(),
		log:    logger.WithComponent("commands"),
	}
	ws.store = storage.NewFromConfig(cfg, ws.errLog)

	report, err := ws.store.Load(ws.reg)
	switch {
	case errors.Is(err, storage.ErrNoDataFile):
		ws.log.Info().Str("file", cfg.Data.File).Msg("No data file yet, starting with an empty inventory")
		ws.report = &storage.LoadReport{}
	case err != nil:
		return nil, err
	default:
		ws.report = report
	}

	return ws, nil
}

func (ws *workspace) save() error {
	return ws.store.Save(ws.reg)
}
