package catalog

import (
	"strings"
	"testing"
)

func TestValidateAcceptsWellFormedDocument(t *testing.T) {
	doc := `datasets:
  - name: toy
    kind: tud
    url: https://example.com/toy.zip
    version: 1.0.0
    sha256: aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa
    description: A toy dataset.
    subdir: toy
`
	result, err := Validate([]byte(doc))
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !result.Valid {
		t.Errorf("well-formed document rejected: %s", result.Summary())
	}
}

func TestValidateEmbeddedCatalog(t *testing.T) {
	result, err := Validate(builtinYAML)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !result.Valid {
		t.Errorf("embedded catalog fails its own schema: %s", result.Summary())
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			"missing url",
			"datasets:\n  - name: x\n    kind: tud\n    version: 1.0.0\n",
		},
		{
			"unknown kind",
			"datasets:\n  - name: x\n    kind: sqlite\n    url: https://e.com/x.zip\n    version: 1.0.0\n",
		},
		{
			"non-http url",
			"datasets:\n  - name: x\n    kind: tud\n    url: ftp://e.com/x.zip\n    version: 1.0.0\n",
		},
		{
			"bad sha256",
			"datasets:\n  - name: x\n    kind: tud\n    url: https://e.com/x.zip\n    version: 1.0.0\n    sha256: nothex\n",
		},
		{
			"missing datasets key",
			"entries: []\n",
		},
		{
			"unexpected entry field",
			"datasets:\n  - name: x\n    kind: tud\n    url: https://e.com/x.zip\n    version: 1.0.0\n    mirror: y\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Validate([]byte(tt.doc))
			if err != nil {
				t.Fatalf("Validate failed: %v", err)
			}
			if result.Valid {
				t.Fatal("invalid document accepted")
			}
			if len(result.Issues) == 0 {
				t.Error("no issues reported for invalid document")
			}
			if strings.TrimSpace(result.Summary()) == "" {
				t.Error("empty summary for invalid document")
			}
		})
	}
}

func TestValidateMalformedYAML(t *testing.T) {
	if _, err := Validate([]byte("datasets: [unclosed")); err == nil {
		t.Error("malformed YAML did not error")
	}
}
