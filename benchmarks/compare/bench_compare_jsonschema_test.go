package compare_test

import (
	"bytes"
	"encoding/json"
	"testing"

	jschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/reoring/jsvalid"
)

// Same schema and payload through a full JSON Schema implementation.
func Benchmark_Validate_jsonschema_v5_Small(b *testing.B) {
	comp := jschema.MustCompileString("mem:user", userSchema)
	data := decodeAny(b, smallUserJSON())
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := comp.Validate(data); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Validate_jsvalid_Small(b *testing.B) {
	schema := mustSchema(b)
	data := decodeAny(b, smallUserJSON())
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if res := jsvalid.Validate(data, schema); !res.IsValid {
			b.Fatal(res.Errors)
		}
	}
}

func Benchmark_Validate_jsonschema_v5_HugeArray(b *testing.B) {
	comp := jschema.MustCompileString("mem:users", `{"type":"array","items":`+userSchema+`}`)
	data := decodeAny(b, generateHugeJSONArray(cmpHugeN, cmpHugeK))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := comp.Validate(data); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Validate_jsvalid_HugeArray(b *testing.B) {
	schema := hugeArraySchema(b)
	data := decodeAny(b, generateHugeJSONArray(cmpHugeN, cmpHugeK))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if res := jsvalid.Validate(data, schema); !res.IsValid {
			b.Fatal(res.Errors)
		}
	}
}

// decodeAny keeps numbers as encoding/json's json.Number, which
// jsonschema/v5 expects and the validator accepts.
func decodeAny(tb testing.TB, data []byte) any {
	tb.Helper()
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		tb.Fatal(err)
	}
	return v
}
