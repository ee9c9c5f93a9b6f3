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
	"errors"

	"github.com/carverauto/hoteltv/pkg/models"
	"github.com/carverauto/hoteltv/pkg/rpc"
)

// ErrScopeRequired is returned by unscoped list calls outside a super admin session.
var ErrScopeRequired = errors.New("a hotel scope is required")

type listInput struct {
	HotelID int64 `json:"hotelId"`
}

type idInput struct {
	ID int64 `json:"id"`
}

// Resource is the typed RPC surface of one namespace.
type Resource[T models.Record] struct {
	caller rpc.Caller
	ns     Namespace
}

func NewResource[T models.Record](caller rpc.Caller, ns Namespace) *Resource[T] {
	return &Resource[T]{caller: caller, ns: ns}
}

func (r *Resource[T]) Namespace() Namespace { return r.ns }

// List fetches every record visible in scope.
func (r *Resource[T]) List(ctx context.Context, scope Scope) ([]T, error) {
	if scope.HotelID <= 0 && !scope.SuperAdmin {
		return nil, ErrScopeRequired
	}

	var input interface{}
	if scope.HotelID > 0 && r.ns != Hotels {
		input = listInput{HotelID: scope.HotelID}
	}

	var out []T
	if err := r.caller.Query(ctx, r.ns.Procedure(OpList), input, &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (r *Resource[T]) Get(ctx context.Context, id int64) (T, error) {
	var out T
	err := r.caller.Query(ctx, r.ns.Procedure(OpGetByID), idInput{ID: id}, &out)

	return out, err
}

func (r *Resource[T]) Create(ctx context.Context, rec T) (T, error) {
	var out T
	err := r.caller.Mutate(ctx, r.ns.Procedure(OpCreate), rec, &out)

	return out, err
}

func (r *Resource[T]) Update(ctx context.Context, rec T) (T, error) {
	var out T
	err := r.caller.Mutate(ctx, r.ns.Procedure(OpUpdate), rec, &out)

	return out, err
}

func (r *Resource[T]) Delete(ctx context.Context, id int64) error {
	return r.caller.Mutate(ctx, r.ns.Procedure(OpDelete), idInput{ID: id}, nil)
}
