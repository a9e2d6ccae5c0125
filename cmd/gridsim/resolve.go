package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/vovakirdan/gridsim/internal/engine"
	"github.com/vovakirdan/gridsim/internal/registry"
	"github.com/vovakirdan/gridsim/internal/scenario"
	"github.com/vovakirdan/gridsim/internal/storage"
)

// resolveScenario finds a scenario by preset ID, file path, or ID within
// the scenario directory, in that order.
func resolveScenario(ref string) (scenario.Scenario, error) {
	if registry.Exists(ref) {
		return registry.Create(ref)
	}

	loader := scenario.NewLoader(cfg.Scenarios)
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		return loader.LoadFile(ref)
	}

	s, err := loader.LoadByID(ref)
	if err != nil {
		return scenario.Scenario{}, fmt.Errorf("unknown scenario %q (run 'gridsim list' to see available scenarios): %w", ref, err)
	}
	return s, nil
}

// prepare resolves a scenario and builds its world and rules.
func prepare(ref string) (scenario.Scenario, *engine.World, engine.Rules, error) {
	s, err := resolveScenario(ref)
	if err != nil {
		return s, nil, engine.Rules{}, err
	}
	w, err := s.World()
	if err != nil {
		return s, nil, engine.Rules{}, err
	}
	rules := s.Apply(cfg.EngineRules())
	rules.Logger = logger
	return s, w, rules, nil
}

// openLedger opens the run ledger. It returns nil when recording is
// disabled or the database cannot be opened; simulations work without it.
func openLedger() *storage.Store {
	if !cfg.Storage.Enabled || cfg.Storage.Path == "" {
		return nil
	}
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		logger.Warn("run ledger unavailable", "path", cfg.Storage.Path, "err", err)
		return nil
	}
	return store
}

// record saves a finished run if the ledger is available.
func record(store *storage.Store, run storage.Run) {
	if store == nil {
		return
	}
	id, err := store.SaveRun(run)
	if err != nil {
		logger.Warn("could not record run", "scenario", run.Scenario, "err", err)
		return
	}
	logger.Debug("run recorded", "id", id, "scenario", run.Scenario)
}

// reportFailure logs a simulation error, with the world dump for
// invariant violations. The error itself is still returned to cobra.
func reportFailure(id string, err error) {
	var inv *engine.InvariantError
	if errors.As(err, &inv) {
		logger.Error("invariant violated", "scenario", id, "tick", inv.Tick, "actor", inv.ActorID, "err", inv.Err, "dump", inv.Dump)
		return
	}
	if errors.Is(err, engine.ErrTickLimit) {
		logger.Warn("simulation did not finish", "scenario", id, "err", err)
	}
}
