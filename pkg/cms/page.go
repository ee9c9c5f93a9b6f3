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

package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/carverauto/hoteltv/pkg/logger"
	"github.com/carverauto/hoteltv/pkg/models"
	"github.com/carverauto/hoteltv/pkg/notify"
	"github.com/carverauto/hoteltv/pkg/rpc"
)

// Confirmer asks the operator to confirm a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool { return f(ctx, prompt) }

var (
	AlwaysConfirm Confirmer = ConfirmFunc(func(context.Context, string) bool { return true })
	NeverConfirm  Confirmer = ConfirmFunc(func(context.Context, string) bool { return false })
)

// Deps are shared by every page of a dashboard.
type Deps struct {
	Caller    rpc.Caller
	Cache     *Cache
	Scope     Scope
	Notifier  notify.Notifier
	Confirmer Confirmer
	Validator *validator.Validate
	Logger    logger.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Cache == nil {
		d.Cache = NewCache()
	}

	if d.Notifier == nil {
		d.Notifier = notify.Discard
	}

	if d.Confirmer == nil {
		d.Confirmer = NeverConfirm
	}

	if d.Validator == nil {
		d.Validator = NewValidator()
	}

	if d.Logger == nil {
		d.Logger = logger.NewTestLogger()
	}

	return d
}

// Page is one list-and-form screen over a namespace. It never updates the list
// optimistically: every successful mutation is followed by a refetch.
type Page[T models.Record] struct {
	resource *Resource[T]
	deps     Deps
	label    string
	defaults func() T

	mu     sync.Mutex
	form   T
	items  []T
	loaded bool
}

// NewPage builds a page. label names one record in toasts ("Channel"); defaults returns the
// empty form and may be nil.
func NewPage[T models.Record](deps Deps, ns Namespace, label string, defaults func() T) *Page[T] {
	if defaults == nil {
		defaults = func() T {
			var zero T
			return zero
		}
	}

	p := &Page[T]{
		resource: NewResource[T](deps.Caller, ns),
		deps:     deps.withDefaults(),
		label:    label,
		defaults: defaults,
	}
	p.form = defaults()

	return p
}

func (p *Page[T]) Namespace() Namespace { return p.resource.ns }

func (p *Page[T]) Label() string { return p.label }

// Load returns the list, fetching it only when the cache has none for this scope.
func (p *Page[T]) Load(ctx context.Context) ([]T, error) {
	key := p.deps.Scope.key()

	if v, ok := p.deps.Cache.get(p.Namespace(), key); ok {
		items, _ := v.([]T)
		p.setItems(items)

		return items, nil
	}

	items, err := p.resource.List(ctx, p.deps.Scope)
	if err != nil {
		if ctx.Err() == nil {
			p.deps.Logger.Warn().Err(err).Str("namespace", string(p.Namespace())).Msg("List failed")
			notify.Error(p.deps.Notifier, fmt.Sprintf("Failed to load %s", p.Namespace()), rpc.UserMessage(err))
		}

		return nil, err
	}

	p.deps.Cache.put(p.Namespace(), key, items)
	p.setItems(items)

	return items, nil
}

// Refresh drops this page's cached list and loads it again.
func (p *Page[T]) Refresh(ctx context.Context) error {
	p.deps.Cache.drop(p.Namespace(), p.deps.Scope.key())

	_, err := p.Load(ctx)

	return err
}

func (p *Page[T]) setItems(items []T) {
	p.mu.Lock()
	p.items = items
	p.loaded = true
	p.mu.Unlock()
}

// Items returns the last loaded list.
func (p *Page[T]) Items() []T {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]T(nil), p.items...)
}

func (p *Page[T]) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.loaded
}

// Form returns the current form contents.
func (p *Page[T]) Form() T {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.form
}

// SetForm replaces the form. A record with a non-zero key is submitted as an update.
func (p *Page[T]) SetForm(form T) {
	p.mu.Lock()
	p.form = form
	p.mu.Unlock()
}

// Edit copies the listed record with id into the form.
func (p *Page[T]) Edit(id int64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, item := range p.items {
		if item.Key() == id {
			p.form = item
			return true
		}
	}

	return false
}

// Reset restores the form to its defaults.
func (p *Page[T]) Reset() {
	p.SetForm(p.defaults())
}

// Submit validates the form and creates or updates the record. Validation failures send
// nothing. Backend failures leave the form as it was; success resets it and refetches the list.
func (p *Page[T]) Submit(ctx context.Context) error {
	form := p.Form()

	if hotelID := p.deps.Scope.HotelID; hotelID > 0 {
		if scoped, ok := any(&form).(models.HotelScoped); ok && form.Key() == 0 {
			scoped.SetHotelID(hotelID)
		}
	}

	if err := validateForm(p.deps.Validator, &form); err != nil {
		notify.Error(p.deps.Notifier, "Please fill in all required fields", err.Error())
		return err
	}

	updating := form.Key() != 0

	var err error
	if updating {
		_, err = p.resource.Update(ctx, form)
	} else {
		_, err = p.resource.Create(ctx, form)
	}

	if err != nil {
		p.deps.Logger.Warn().Err(err).Str("namespace", string(p.Namespace())).Bool("update", updating).Msg("Save failed")
		notify.Error(p.deps.Notifier, fmt.Sprintf("Failed to save %s", p.label), rpc.UserMessage(err))

		return err
	}

	verb := "created"
	if updating {
		verb = "updated"
	}

	notify.Success(p.deps.Notifier, fmt.Sprintf("%s %s", p.label, verb), "")
	p.Reset()
	p.afterMutation(ctx)

	return nil
}

// Delete removes a record once the operator confirms. It reports whether a delete was sent
// and succeeded; a declined confirmation sends nothing.
func (p *Page[T]) Delete(ctx context.Context, id int64) (bool, error) {
	if !p.deps.Confirmer.Confirm(ctx, fmt.Sprintf("Delete this %s?", p.label)) {
		return false, nil
	}

	if err := p.resource.Delete(ctx, id); err != nil {
		p.deps.Logger.Warn().Err(err).Str("namespace", string(p.Namespace())).Int64("id", id).Msg("Delete failed")
		notify.Error(p.deps.Notifier, fmt.Sprintf("Failed to delete %s", p.label), rpc.UserMessage(err))

		return false, err
	}

	notify.Success(p.deps.Notifier, fmt.Sprintf("%s deleted", p.label), "")
	p.afterMutation(ctx)

	return true, nil
}

func (p *Page[T]) afterMutation(ctx context.Context) {
	dropped := p.deps.Cache.Invalidate(p.Namespace())
	p.deps.Logger.Debug().Str("namespace", string(p.Namespace())).Interface("invalidated", dropped).Msg("Cache invalidated")

	// a failed refetch is toasted by Load; the mutation itself succeeded
	_, _ = p.Load(ctx)
}

// SubmitJSON decodes data into a fresh form and submits it.
func (p *Page[T]) SubmitJSON(ctx context.Context, data []byte) error {
	form := p.defaults()

	if err := json.Unmarshal(data, &form); err != nil {
		notify.Error(p.deps.Notifier, "Invalid form data", err.Error())
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	p.SetForm(form)

	return p.Submit(ctx)
}

// ItemsJSON encodes the loaded list.
func (p *Page[T]) ItemsJSON() ([]byte, error) {
	return json.MarshalIndent(p.Items(), "", "  ")
}

// Export loads the list and writes it to w as a spreadsheet.
func (p *Page[T]) Export(ctx context.Context, w io.Writer) error {
	items, err := p.Load(ctx)
	if err != nil {
		return err
	}

	return WriteSpreadsheet(w, string(p.Namespace()), items)
}

// Handle is the type-erased page surface used by the command line.
type Handle interface {
	Namespace() Namespace
	Label() string
	Refresh(ctx context.Context) error
	ItemsJSON() ([]byte, error)
	SubmitJSON(ctx context.Context, data []byte) error
	Delete(ctx context.Context, id int64) (bool, error)
	Export(ctx context.Context, w io.Writer) error
}

var _ Handle = (*Page[models.TVChannel])(nil)
