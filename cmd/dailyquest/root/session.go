package root

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/nathoo/dailyquest/config"
	"github.com/nathoo/dailyquest/engine"
	"github.com/nathoo/dailyquest/loader"
	"github.com/nathoo/dailyquest/store"
	"github.com/nathoo/dailyquest/types"
)

// session is an engine loaded from the configured save slot.
type session struct {
	cfg    config.Config
	engine *engine.Engine
	loaded engine.LoadResult
	close  func()
}

// openSlot opens the storage backend named by cfg.
func openSlot(ctx context.Context, cfg config.Config) (store.Slot, func(), error) {
	switch cfg.Backend {
	case config.BackendSQLite, config.BackendPostgres:
		dialect := store.DialectSQLite
		dsn := cfg.SQLitePath
		if cfg.Backend == config.BackendPostgres {
			dialect, dsn = store.DialectPostgres, cfg.PostgresDSN
		}
		s, err := store.OpenSQL(ctx, dialect, dsn)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	default:
		s, err := store.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	}
}

// openSession reads the environment, opens the save slot and loads it,
// running the day rollover when the record is from another day. Logs go to
// logOut when verbose is set.
func openSession(ctx context.Context, verbose bool, logOut io.Writer) (*session, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}

	quest := loader.DefaultQuest()
	if cfg.QuestFile != "" {
		if quest, err = loader.Load(cfg.QuestFile); err != nil {
			return nil, fmt.Errorf("loading quest: %w", err)
		}
	}
	balance, err := config.LoadBalance(cfg.BalanceFile)
	if err != nil {
		return nil, err
	}

	slot, closeSlot, err := openSlot(ctx, cfg)
	if err != nil {
		return nil, err
	}

	eng := newEngine(cfg, quest, balance, slot)
	if verbose || cfg.Verbose {
		eng.Log = log.New(logOut, "dailyquest: ", log.LstdFlags)
		eng.Log.Printf("storage backend %s, save key %q", cfg.Backend, cfg.SaveKey)
	}

	lr, err := eng.Load(ctx)
	if err != nil {
		closeSlot()
		return nil, err
	}
	return &session{cfg: cfg, engine: eng, loaded: lr, close: closeSlot}, nil
}

func newEngine(cfg config.Config, quest *types.Quest, b types.Balance, slot store.Slot) *engine.Engine {
	eng := engine.New(quest, b, slot)
	eng.Key = cfg.SaveKey
	if cfg.Seed != 0 {
		eng.RNG = engine.NewRNG(cfg.Seed)
	}
	return eng
}
