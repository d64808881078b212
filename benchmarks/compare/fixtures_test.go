package compare_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/reoring/jsvalid"
)

// shared fixtures

const userSchema = `{
  "type": "object",
  "required": ["id"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "age": {"type": "integer", "minimum": 0}
  }
}`

func mustSchema(tb testing.TB) map[string]any {
	tb.Helper()
	s, err := jsvalid.ParseSchema(userSchema)
	if err != nil {
		tb.Fatalf("schema: %v", err)
	}
	return s
}

func smallUserJSON() []byte {
	return []byte(`{"id":"u_1","name":"alice","age":30}`)
}

const (
	cmpHugeN = 10000
	cmpHugeK = 8
)

// generateHugeJSONArray returns [{"id":"obj_0","age":0,"k0":"v0",...}, ...].
func generateHugeJSONArray(numObjects int, extraFields int) []byte {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i := 0; i < numObjects; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, `{"id":"obj_%d","age":%d`, i, i)
		for k := 0; k < extraFields; k++ {
			fmt.Fprintf(&buf, `,"k%d":"v%d"`, k, i)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes()
}

func hugeArraySchema(tb testing.TB) map[string]any {
	tb.Helper()
	s, err := jsvalid.ParseSchema(`{"type":"array","items":` + userSchema + `}`)
	if err != nil {
		tb.Fatalf("schema: %v", err)
	}
	return s
}
