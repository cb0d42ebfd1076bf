// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

package validation

import (
	"errors"
	"strings"
	"testing"
)

type pageQuery struct {
	UserID   string `query:"user_id" validate:"required"`
	Page     int    `query:"page" validate:"min=1"`
	PageSize int    `query:"page_size" validate:"min=1,max=500"`
}

type nestedConfig struct {
	Store struct {
		Backend string `koanf:"backend" validate:"oneof=mongo duckdb memory"`
	} `koanf:"store"`
}

func TestGetValidatorSingleton(t *testing.T) {
	t.Parallel()

	if GetValidator() != GetValidator() {
		t.Error("GetValidator() should return the same instance")
	}
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   pageQuery
		wantErr string
	}{
		{"valid", pageQuery{UserID: "u1", Page: 1, PageSize: 10}, ""},
		{"missing user", pageQuery{Page: 1, PageSize: 10}, "user_id is required"},
		{"zero page", pageQuery{UserID: "u1", Page: 0, PageSize: 10}, "page must be at least 1"},
		{"page size too big", pageQuery{UserID: "u1", Page: 1, PageSize: 501}, "page_size must be at most 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateStruct(&tt.input)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Fatalf("ValidateStruct() = %v, want %q", err, tt.wantErr)
			}
			var verrs Errors
			if !errors.As(err, &verrs) || len(verrs) != 1 {
				t.Fatalf("error should be Errors with one entry, got %#v", err)
			}
		})
	}
}

func TestValidateStructNestedNames(t *testing.T) {
	t.Parallel()

	var cfg nestedConfig
	cfg.Store.Backend = "redis"

	err := ValidateStruct(&cfg)
	if err == nil {
		t.Fatal("expected error for unknown backend")
	}
	if !strings.Contains(err.Error(), "store.backend must be one of: mongo duckdb memory") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestErrorsJoin(t *testing.T) {
	t.Parallel()

	e := Errors{{Message: "a is required"}, {Message: "b must be at least 1"}}
	if got := e.Error(); got != "a is required; b must be at least 1" {
		t.Errorf("Errors.Error() = %q", got)
	}
	if got := (Errors{}).Error(); got != "validation failed" {
		t.Errorf("empty Errors.Error() = %q", got)
	}
}
