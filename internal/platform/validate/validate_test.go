package validate

import (
	"strings"
	"testing"
)

type sample struct {
	SourceURL string `env:"CSV_API_URL" validate:"required,url"`
	Database  string `env:"MONGO_DB" validate:"required"`
	Untagged  string `validate:"omitempty,min=3"`
}

func TestStruct_Valid(t *testing.T) {
	if got := Struct(sample{SourceURL: "https://example.test/a.csv", Database: "feeds"}); got != nil {
		t.Fatalf("expected no issues, got %+v", got)
	}
}

func TestStruct_IssuesUseEnvNames(t *testing.T) {
	got := Struct(sample{SourceURL: "not a url", Untagged: "x"})
	if len(got) != 3 {
		t.Fatalf("expected 3 issues, got %+v", got)
	}
	byField := map[string]Issue{}
	for _, is := range got {
		byField[is.Field] = is
	}
	if is, ok := byField["CSV_API_URL"]; !ok || is.Tag != "url" || !strings.Contains(is.Message, "CSV_API_URL") {
		t.Fatalf("CSV_API_URL issue mismatch: %+v", byField)
	}
	if is, ok := byField["MONGO_DB"]; !ok || is.Tag != "required" || !strings.Contains(is.Message, "required") {
		t.Fatalf("MONGO_DB issue mismatch: %+v", byField)
	}
	if _, ok := byField["Untagged"]; !ok {
		t.Fatalf("untagged field should fall back to Go name: %+v", byField)
	}
}

func TestStruct_NonStruct(t *testing.T) {
	got := Struct("nope")
	if len(got) != 1 || got[0].Tag != "invalid" {
		t.Fatalf("expected single invalid issue, got %+v", got)
	}
}

func TestInit_Singleton(t *testing.T) {
	if Init() != Init() {
		t.Fatalf("Init should return the same instance")
	}
}
