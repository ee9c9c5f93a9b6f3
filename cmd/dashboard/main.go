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
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/carverauto/hoteltv/pkg/cli"
	"github.com/carverauto/hoteltv/pkg/config"
	"github.com/carverauto/hoteltv/pkg/lifecycle"
	"github.com/carverauto/hoteltv/pkg/logger"
	"github.com/carverauto/hoteltv/pkg/models"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	cmd, err := cli.ParseFlags()
	if cmd != nil && cmd.Help {
		cli.ShowHelp(os.Stdout)
		return nil
	}

	if err != nil {
		cli.ShowHelp(os.Stderr)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg models.DashboardConfig
	if err := config.NewConfig(nil).LoadAndValidate(ctx, cmd.ConfigFile, &cfg); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logConfig := cfg.Logging
	if logConfig == nil {
		logConfig = logger.DefaultConfig()
		logConfig.Level = "warn"
		logConfig.Output = "stderr"
	}

	dashLogger, err := lifecycle.CreateComponentLogger("dashboard", logConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app := cli.NewApp(&cfg, dashLogger, os.Stdout, os.Stderr, os.Stdin)
	app.Interactive = cli.IsInputFromTerminal()

	if err := app.Run(ctx, cmd); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}
