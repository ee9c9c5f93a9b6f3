/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/carverauto/hoteltv/pkg/config"
	"github.com/carverauto/hoteltv/pkg/identity"
	"github.com/carverauto/hoteltv/pkg/launcher"
	"github.com/carverauto/hoteltv/pkg/lifecycle"
	"github.com/carverauto/hoteltv/pkg/logger"
	"github.com/carverauto/hoteltv/pkg/models"
	"github.com/carverauto/hoteltv/pkg/notify"
	"github.com/carverauto/hoteltv/pkg/pairing"
	"github.com/carverauto/hoteltv/pkg/rpc"
	"github.com/carverauto/hoteltv/pkg/version"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "/etc/hoteltv/launcher.json", "Path to launcher config file")
	showVersion := flag.Bool("version", false, "Print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.GetFullVersion())
		return nil
	}

	ctx := context.Background()

	// Step 1: Load config
	var cfg models.LauncherConfig
	if err := config.NewConfig(nil).LoadAndValidate(ctx, *configPath, &cfg); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Step 2: Create logger from loaded config
	logConfig := cfg.Logging
	if logConfig == nil {
		logConfig = logger.DefaultConfig()
	}

	// the TUI owns stdout
	if !cfg.Headless && (logConfig.Output == "" || logConfig.Output == "stdout") {
		logConfig.Output = "stderr"
	}

	mainLogger, err := lifecycle.CreateComponentLogger("launcher", logConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Step 3: Device identity
	stateDir := cfg.StateDir
	if stateDir == "" {
		stateDir = defaultStateDir()
	}

	storage, closeStorage := identity.OpenStorageOrMemory(cfg.IdentityStorage, stateDir,
		lifecycle.Component(mainLogger, "identity"))

	defer func() {
		if err := closeStorage(); err != nil {
			mainLogger.Warn().Err(err).Msg("Failed to close identity storage")
		}
	}()

	var storeOpts []identity.StoreOption
	if cfg.IdentityKey != "" {
		storeOpts = append(storeOpts, identity.WithKey(cfg.IdentityKey))
	}

	ids := identity.NewStore(storage, lifecycle.Component(mainLogger, "identity"), storeOpts...)
	identity.SetDefault(ids)

	// Step 4: Session
	loc := time.Local

	if cfg.Timezone != "" {
		if loc, err = time.LoadLocation(cfg.Timezone); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
		}
	}

	caller := rpc.NewClient(cfg.Backend, lifecycle.Component(mainLogger, "rpc"))

	session, err := launcher.NewSession(launcher.Options{
		Backend:     pairing.NewRPCBackend(caller),
		Content:     launcher.NewRPCContent(caller, lifecycle.Component(mainLogger, "content")),
		IDs:         ids,
		Notifier:    notify.NewLogNotifier(lifecycle.Component(mainLogger, "toast")),
		Logger:      mainLogger,
		Intervals:   cfg.Intervals,
		StaleAfter:  cfg.StaleAfter,
		DeviceName:  cfg.DeviceName,
		DeviceInfo:  pairing.CollectDeviceInfo(ctx, version.GetVersion()),
		Location:    loc,
		PushBaseURL: cfg.Backend.BaseURL,
		Hooks: pairing.Hooks{
			PowerOff: func() { mainLogger.Info().Msg("Display going to standby") },
			Restart:  func() { mainLogger.Info().Msg("Restart requested by front desk") },
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create launcher session: %w", err)
	}

	if cfg.Headless {
		return lifecycle.RunUntilSignal(ctx, session, mainLogger)
	}

	if err := session.Start(ctx); err != nil {
		return err
	}

	uiErr := launcher.RunTUI(ctx, session)

	if err := session.Stop(); err != nil {
		mainLogger.Warn().Err(err).Msg("Launcher did not stop cleanly")
	}

	return uiErr
}

func defaultStateDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir + "/hoteltv"
	}

	return "/var/lib/hoteltv"
}
