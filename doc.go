// Package jsvalid provides:
//
// - A recursive validator that checks JSON-like values against declarative schema nodes
// - Located violations (path, code, message) in a fixed keyword-check order
// - Schema resolution from JSON text, YAML, maps or typed *jsonschema.Schema values
// - Fail-fast structure checking of schema keyword shapes
// - Decoding of JSON documents with duplicate-key/depth/size enforcement
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Place the HTTP middleware under middleware/ and the CLI under cmd/jsvalid.
// - Validation is a pure function: no I/O, no shared state, safe for concurrent use.
//
// Typical usage:
//
//	schema, err := jsvalid.ParseSchema(`{"type":"object","required":["name"]}`)
//	data, err := jsvalid.DecodeJSONBytes(body, jsvalid.DecodeOptions{OnDuplicateKey: jsvalid.Error})
//	res := jsvalid.Validate(data, schema)
//	if !res.IsValid {
//		for _, v := range res.Errors { fmt.Println(v.Path, v.Message) }
//	}
package jsvalid
