package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// ProjectPatch is an explicit choice between two update modes. A field-set
// patch wraps plain fields in $set and restamps updated_at. A structural
// patch is an array operator ($push/$pull) applied verbatim, with no
// timestamp restamp, so roster transitions stay single atomic document
// operations. The caller picks the variant; nothing is inferred from key
// syntax.
type ProjectPatch struct {
	fields bson.M
	op     bson.M
}

func FieldSetPatch(fields bson.M) ProjectPatch {
	return ProjectPatch{fields: fields}
}

func StructuralPatch(op bson.M) ProjectPatch {
	return ProjectPatch{op: op}
}

func (p ProjectPatch) IsStructural() bool {
	return p.op != nil
}

// Document renders the update document sent to the store.
func (p ProjectPatch) Document(now time.Time) bson.M {
	if p.op != nil {
		return p.op
	}
	set := bson.M{"updated_at": now}
	for k, v := range p.fields {
		set[k] = v
	}
	return bson.M{"$set": set}
}
