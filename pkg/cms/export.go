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
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

var timeType = reflect.TypeOf(time.Time{})

type column struct {
	header string
	index  int
}

// columnsOf lists the exported, non-sensitive fields of struct type t by JSON name.
func columnsOf(t reflect.Type) []column {
	var cols []column

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Tag.Get("sensitive") == "true" {
			continue
		}

		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}

		if name == "" {
			name = f.Name
		}

		cols = append(cols, column{header: name, index: i})
	}

	return cols
}

func cellValue(v reflect.Value) interface{} {
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}

		v = v.Elem()
	}

	if v.Type() == timeType {
		t := v.Interface().(time.Time)
		if t.IsZero() {
			return nil
		}

		return t.UTC().Format(time.RFC3339)
	}

	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			return "Yes"
		}

		return "No"
	case reflect.Struct, reflect.Map, reflect.Slice:
		return fmt.Sprintf("%v", v.Interface())
	default:
		return v.Interface()
	}
}

// WriteSpreadsheet writes items as an xlsx workbook with one header row of JSON field names.
func WriteSpreadsheet[T any](w io.Writer, sheet string, items []T) error {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() != reflect.Struct {
		return fmt.Errorf("export: %s is not a struct", t)
	}

	cols := columnsOf(t)

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	if sheet != defaultSheet {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return fmt.Errorf("drop default sheet: %w", err)
		}
	}

	index, err := f.GetSheetIndex(sheet)
	if err != nil {
		return fmt.Errorf("locate sheet: %w", err)
	}

	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	header := make([]interface{}, len(cols))
	for i, c := range cols {
		header[i] = c.header
	}

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	if len(cols) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(cols), 1)
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("style header: %w", err)
		}
	}

	for r, item := range items {
		v := reflect.ValueOf(item)

		row := make([]interface{}, len(cols))
		for i, c := range cols {
			row[i] = cellValue(v.Field(c.index))
		}

		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}

		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", r+2, err)
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	return nil
}
