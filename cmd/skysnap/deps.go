package main

import (
	"fmt"
	"os"

	"github.com/MiNi89iOS/SkySnap-IFC-001/internal/application/handlers"
	"github.com/MiNi89iOS/SkySnap-IFC-001/internal/domain/services"
	"github.com/MiNi89iOS/SkySnap-IFC-001/internal/infrastructure/config"
	"github.com/MiNi89iOS/SkySnap-IFC-001/internal/infrastructure/step"
)

// Deps holds high-level dependencies for commands. Only handlers are
// exposed - services and the model store are wired internally.
type Deps struct {
	Config          *config.Config
	InsertHandler   *handlers.InsertHandler
	ValidateHandler *handlers.ValidateHandler
	PsetsHandler    *handlers.PsetsHandler
}

// withDeps loads config and builds dependencies, then calls the provided
// function.
func withDeps(fn func(*Deps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store := step.NewStore()
	deps := &Deps{
		Config:          cfg,
		InsertHandler:   handlers.NewInsertHandler(store, services.NewPlacementService(), nil),
		ValidateHandler: handlers.NewValidateHandler(store, services.NewValidationService(), os.Stdout),
		PsetsHandler:    handlers.NewPsetsHandler(store, services.NewPsetService()),
	}
	return fn(deps)
}
