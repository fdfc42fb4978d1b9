package claim

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/privacylion/go-didwallet/walleterror"
)

// signedClaimSchema describes the transmissible form of a signed claim: a
// flat JSON object of string values carrying a signature field.
const signedClaimSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["signature"],
	"properties": {
		"signature": {"type": "string", "pattern": "^[0-9a-f]+$"}
	},
	"additionalProperties": {"type": "string"}
}`

// ValidateSigned checks that data is a well-formed signed claim document.
// It is used by verification tooling before decoding and signature checks.
func ValidateSigned(data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(signedClaimSchema)
	claimLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, claimLoader)
	if err != nil {
		return walleterror.New(walleterror.KindDecode, "failed to validate claim", err)
	}

	if !result.Valid() {
		var details []string
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return walleterror.Newf(walleterror.KindDecode, "claim does not match schema: %s", strings.Join(details, "; "))
	}

	return nil
}

// ParseSigned validates and decodes a signed claim document in one step.
func ParseSigned(data []byte) (Fields, error) {
	if err := ValidateSigned(data); err != nil {
		return nil, err
	}
	fields, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode signed claim: %w", err)
	}
	return fields, nil
}
