package canon

import (
	"encoding/json"
	"strings"
	"testing"
)

// parse is a test helper to build documents with a specific source key order.
func parse(t *testing.T, src string) Document {
	t.Helper()
	var doc Document
	if err := json.Unmarshal([]byte(src), &doc); err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return doc
}

func marshal(t *testing.T, doc Document) string {
	t.Helper()
	s, err := Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	return s
}

func TestMarshalKeyOrderInsensitive(t *testing.T) {
	a := marshal(t, parse(t, `{"a":1,"b":2}`))
	b := marshal(t, parse(t, `{"b":2,"a":1}`))
	if a != b {
		t.Fatalf("key order changed canonical form: %q vs %q", a, b)
	}
	if a != `{"a":1,"b":2}` {
		t.Fatalf("unexpected canonical form: %q", a)
	}
}

func TestMarshalNestedKeySorting(t *testing.T) {
	got := marshal(t, parse(t, `{"z":{"b":1,"a":[{"y":2,"x":1}]},"a":null}`))
	want := `{"a":null,"z":{"a":[{"x":1,"y":2}],"b":1}}`
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestMarshalSequenceOrderSensitive(t *testing.T) {
	a := marshal(t, parse(t, `[1,2]`))
	b := marshal(t, parse(t, `[2,1]`))
	if a == b {
		t.Fatalf("sequence order must be significant, both %q", a)
	}
}

func TestMarshalScalarTypePreserved(t *testing.T) {
	a := marshal(t, parse(t, `{"flag":true}`))
	b := marshal(t, parse(t, `{"flag":"true"}`))
	if a == b {
		t.Fatalf("bool true and string \"true\" must differ, both %q", a)
	}
}

func TestMarshalIdempotent(t *testing.T) {
	first := marshal(t, parse(t, `{"b":[3,{"d":4,"c":null}],"a":"x"}`))
	second := marshal(t, parse(t, first))
	if first != second {
		t.Fatalf("not idempotent:\n first: %q\nsecond: %q", first, second)
	}
}

func TestMarshalNoHTMLEscaping(t *testing.T) {
	got := marshal(t, parse(t, `{"path":"/a?b=<c>&d"}`))
	if strings.Contains(got, `\u003c`) || strings.Contains(got, `\u0026`) {
		t.Fatalf("HTML escaping leaked into canonical form: %q", got)
	}
	if !strings.Contains(got, `/a?b=<c>&d`) {
		t.Fatalf("path literal mangled: %q", got)
	}
}

func TestNormalizeStringifiesNonStringKeys(t *testing.T) {
	doc := map[any]any{1: "a", true: "b"}
	got := marshal(t, doc)
	want := `{"1":"a","true":"b"}`
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestMarshalIndentShape(t *testing.T) {
	out, err := MarshalIndent(parse(t, `{"b":2,"a":{"c":1}}`))
	if err != nil {
		t.Fatalf("MarshalIndent: %v", err)
	}
	want := "{\n  \"a\": {\n    \"c\": 1\n  },\n  \"b\": 2\n}\n"
	if string(out) != want {
		t.Fatalf("got %q want %q", out, want)
	}
}

func TestDigestKnownVector(t *testing.T) {
	got := Digest("abc")
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got != want {
		t.Fatalf("got %s want %s", got, want)
	}
}
