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

package lifecycle

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/carverauto/hoteltv/pkg/logger"
)

// Service is anything with a mount/unmount pair.
type Service interface {
	Start(ctx context.Context) error
	Stop() error
}

// RunUntilSignal starts svc and blocks until SIGINT/SIGTERM or parent cancellation,
// then stops it.
func RunUntilSignal(ctx context.Context, svc Service, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := svc.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()

	log.Info().Msg("Shutdown signal received, stopping")

	return svc.Stop()
}
