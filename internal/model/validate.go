package model

import (
	"fmt"
	"path/filepath"

	"github.com/xeipuuv/gojsonschema"
)

// SchemaPath locates sections.schema.json relative to the working
// directory of the running process.
var SchemaPath = "templates/sections.schema.json"

// ValidateLoadRequest validates a raw load payload against
// sections.schema.json before any section reaches the document model.
func ValidateLoadRequest(raw []byte) error {
	// Use absolute canonical file:// path for the schema so loaders on all
	// platforms resolve file references correctly.
	abs, err := filepath.Abs(SchemaPath)
	if err != nil {
		return err
	}
	schemaPath := "file://" + filepath.ToSlash(abs)
	schemaLoader := gojsonschema.NewReferenceLoader(schemaPath)
	docLoader := gojsonschema.NewBytesLoader(raw)

	res, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	msgs := ""
	for _, e := range res.Errors() {
		msgs += fmt.Sprintf("%s; ", e.String())
	}
	return fmt.Errorf("schema validation failed: %s", msgs)
}
