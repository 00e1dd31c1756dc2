// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package errors

import (
	"errors"
	"testing"
)

func TestError(t *testing.T) {
	err := New(KindInput, "unparseable descriptor")
	if err.Error() != "unparseable descriptor" {
		t.Errorf("expected 'unparseable descriptor', got '%s'", err.Error())
	}

	wrapped := Wrap(err, KindInternal, "failed to load")
	if wrapped.Error() != "failed to load: unparseable descriptor" {
		t.Errorf("expected 'failed to load: unparseable descriptor', got '%s'", wrapped.Error())
	}

	if Wrap(nil, KindInput, "ignored") != nil {
		t.Error("wrapping nil should return nil")
	}
}

func TestGetKind(t *testing.T) {
	err := New(KindConversion, "pdf failed")
	if GetKind(err) != KindConversion {
		t.Errorf("expected KindConversion, got %v", GetKind(err))
	}

	wrapped := Wrapf(err, KindInput, "source %s", "a.hcl")
	if GetKind(wrapped) != KindInput {
		t.Errorf("expected KindInput, got %v", GetKind(wrapped))
	}

	if GetKind(errors.New("std error")) != KindUnknown {
		t.Errorf("expected KindUnknown, got %v", GetKind(errors.New("std error")))
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KindInput:      "input",
		KindConversion: "conversion",
		KindValidation: "validation",
		KindUnknown:    "unknown",
	}
	for kind, want := range cases {
		if kind.String() != want {
			t.Errorf("expected %q, got %q", want, kind.String())
		}
	}
}

func TestAttributes(t *testing.T) {
	err := New(KindInput, "duplicate path")
	err = Attr(err, "source", "valid/my.hcl")
	err = Attr(err, "path", "configuration.input")

	attrs := GetAttributes(err)
	if attrs["source"] != "valid/my.hcl" {
		t.Errorf("expected valid/my.hcl, got %v", attrs["source"])
	}
	if attrs["path"] != "configuration.input" {
		t.Errorf("expected configuration.input, got %v", attrs["path"])
	}

	wrapped := Wrap(err, KindInternal, "failed")
	wrapped = Attr(wrapped, "operation", "load")

	allAttrs := GetAttributes(wrapped)
	if allAttrs["source"] != "valid/my.hcl" || allAttrs["operation"] != "load" {
		t.Errorf("missing attributes: %v", allAttrs)
	}
}

func TestDomainAttributes(t *testing.T) {
	err := New(KindInput, "duplicate path")
	err = WithComponent(WithPath(err, "configuration.input"), "my", "valid/my.hcl")

	attrs := GetAttributes(err)
	if attrs[AttrSource] != "valid/my.hcl" || attrs[AttrComponent] != "my" || attrs[AttrPath] != "configuration.input" {
		t.Errorf("missing attributes: %v", attrs)
	}

	converted := WithFormat(Wrap(err, KindConversion, "pdf failed"), "pdf")
	if GetAttributes(converted)[AttrFormat] != "pdf" {
		t.Errorf("missing format: %v", GetAttributes(converted))
	}
	if GetAttributes(converted)[AttrComponent] != "my" {
		t.Errorf("attributes should follow the chain: %v", GetAttributes(converted))
	}

	if WithSource(nil, "a.hcl") != nil {
		t.Error("attaching to nil should return nil")
	}
}

func TestKeyVals(t *testing.T) {
	err := WithFormat(WithPath(New(KindConversion, "bad"), "out.pdf"), "pdf")
	got := KeyVals(err)
	want := []any{"kind", "conversion", "format", "pdf", "path", "out.pdf"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
			break
		}
	}
}
