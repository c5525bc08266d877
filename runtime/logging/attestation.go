// Package logging provides helpers turning SDK types into structured log
// fields.
package logging

import (
	"fmt"

	"github.com/ethereum-attestation-service/sdk/eas"
	"github.com/ethereum-attestation-service/sdk/registry"
	"github.com/sirupsen/logrus"
)

// AttestationFields extracts a standard set of fields from an attestation
// into a logrus.Fields struct which can be passed to log.WithFields.
func AttestationFields(att *eas.Attestation) logrus.Fields {
	return logrus.Fields{
		"uuid":      fmt.Sprintf("%#x", att.UUID)[:10],
		"schema":    fmt.Sprintf("%#x", att.Schema)[:10],
		"attester":  att.Attester.Hex(),
		"recipient": att.Recipient.Hex(),
		"time":      att.Time,
		"revocable": att.Revocable,
		"revoked":   att.RevocationTime != 0,
	}
}

// SchemaFields extracts a standard set of fields from a schema record into a
// logrus.Fields struct which can be passed to log.WithFields.
func SchemaFields(rec *registry.SchemaRecord) logrus.Fields {
	return logrus.Fields{
		"uuid":      fmt.Sprintf("%#x", rec.UUID)[:10],
		"schema":    rec.Schema,
		"resolver":  rec.Resolver.Hex(),
		"revocable": rec.Revocable,
	}
}
