package validation

import (
	"reflect"
	"testing"

	"github.com/dd0wney/cluso-classdiagram/pkg/form"
)

// TestCheckDraft tests attribute and method draft validation
func TestCheckDraft(t *testing.T) {
	tests := []struct {
		name        string
		draft       any
		wantMissing []string
		wantInvalid []string
	}{
		{
			name:  "Valid attribute draft",
			draft: form.AttributeDraft{Visibility: "+", Name: "attr1", Type: "string"},
		},
		{
			name:  "Valid method draft with long visibility",
			draft: form.MethodDraft{Visibility: "protected", Name: "run", ReturnType: "void", Args: "a, b"},
		},
		{
			name:  "Valid method draft without args",
			draft: form.MethodDraft{Visibility: "-", Name: "run", ReturnType: "int"},
		},
		{
			name:        "Empty attribute draft - all missing",
			draft:       form.AttributeDraft{},
			wantMissing: []string{"visibility", "name", "type"},
		},
		{
			name:        "Method missing return type",
			draft:       form.MethodDraft{Visibility: "+", Name: "run"},
			wantMissing: []string{"returnType"},
		},
		{
			name:        "Attribute type outside enumeration",
			draft:       form.AttributeDraft{Visibility: "+", Name: "x", Type: "void"},
			wantInvalid: []string{"type"},
		},
		{
			name:        "Method with bad visibility and missing name",
			draft:       form.MethodDraft{Visibility: "~", ReturnType: "void"},
			wantMissing: []string{"name"},
			wantInvalid: []string{"visibility"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := CheckDraft(tt.draft)
			if err != nil {
				t.Fatalf("CheckDraft() error = %v", err)
			}
			if !reflect.DeepEqual(report.Missing, tt.wantMissing) {
				t.Errorf("Missing = %v, want %v", report.Missing, tt.wantMissing)
			}
			if !reflect.DeepEqual(report.Invalid, tt.wantInvalid) {
				t.Errorf("Invalid = %v, want %v", report.Invalid, tt.wantInvalid)
			}
			wantOK := len(tt.wantMissing) == 0 && len(tt.wantInvalid) == 0
			if report.OK() != wantOK {
				t.Errorf("OK() = %v, want %v", report.OK(), wantOK)
			}
		})
	}
}

func TestCheckDraftNil(t *testing.T) {
	if _, err := CheckDraft(nil); err == nil {
		t.Error("Expected error for nil draft")
	}
}

func TestFieldName(t *testing.T) {
	tests := map[string]string{
		"ReturnType": "returnType",
		"Name":       "name",
		"":           "",
	}
	for in, want := range tests {
		if got := fieldName(in); got != want {
			t.Errorf("fieldName(%q) = %q, want %q", in, got, want)
		}
	}
}
