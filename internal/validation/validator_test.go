// Reawarding - Personal Movie Ratings and Year-End Awards
// Copyright 2026 Robleto
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/robleto/reawarding

package validation

import (
	"strings"
	"testing"
)

type rankingRequest struct {
	MovieID int64 `validate:"required,gt=0"`
	Ranking *int  `validate:"omitempty,min=1,max=10"`
}

type nominationsRequest struct {
	Year     int     `validate:"required,gte=1888"`
	Nominees []int64 `validate:"max=10,dive,gt=0"`
}

func intPtr(v int) *int { return &v }

func TestValidateStructPasses(t *testing.T) {
	req := rankingRequest{MovieID: 42, Ranking: intPtr(7)}
	if err := ValidateStruct(&req); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidateStructNilOptional(t *testing.T) {
	req := rankingRequest{MovieID: 42}
	if err := ValidateStruct(&req); err != nil {
		t.Fatalf("nil optional ranking should pass, got %v", err)
	}
}

func TestValidateStructSingleFailure(t *testing.T) {
	req := rankingRequest{MovieID: 42, Ranking: intPtr(11)}
	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("expected validation failure")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if apiErr.Details["field"] != "Ranking" {
		t.Errorf("details field = %v, want Ranking", apiErr.Details["field"])
	}
	if !strings.Contains(apiErr.Message, "at most 10") {
		t.Errorf("message = %q, want max translation", apiErr.Message)
	}
}

func TestValidateStructMultipleFailures(t *testing.T) {
	req := rankingRequest{MovieID: 0, Ranking: intPtr(0)}
	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("expected validation failure")
	}
	if len(err.Errors()) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(err.Errors()), err)
	}

	apiErr := err.ToAPIError()
	if _, ok := apiErr.Details["fields"]; !ok {
		t.Error("multi-error details should carry a fields list")
	}
}

func TestValidateStructDive(t *testing.T) {
	req := nominationsRequest{
		Year:     2024,
		Nominees: []int64{1, 2, -3},
	}
	if err := ValidateStruct(&req); err == nil {
		t.Fatal("negative nominee ID should fail dive validation")
	}
}

func TestValidateStructNomineeCap(t *testing.T) {
	nominees := make([]int64, 11)
	for i := range nominees {
		nominees[i] = int64(i + 1)
	}
	req := nominationsRequest{Year: 2024, Nominees: nominees}
	if err := ValidateStruct(&req); err == nil {
		t.Fatal("11 nominees should exceed the max=10 cap")
	}
}

func TestGetValidatorSingleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("GetValidator should return the same instance")
	}
}
