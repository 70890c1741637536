package tabledb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Record_binaryRoundTrip(t *testing.T) {
	assert := assert.New(t)

	rec := Record{
		Canonical:      "(p^-p)",
		Directive:      "SAT",
		Verdict:        "Unsatisfiable",
		Classification: "(p^-p) is a binary connective propositional formula with left p, connective ^, and right -p.",
	}

	data, err := rec.MarshalBinary()
	if !assert.NoError(err) {
		return
	}

	var decoded Record
	err = decoded.UnmarshalBinary(data)
	if !assert.NoError(err) {
		return
	}

	assert.Equal(rec.Canonical, decoded.Canonical)
	assert.Equal(rec.Directive, decoded.Directive)
	assert.Equal(rec.Verdict, decoded.Verdict)
	assert.Equal(rec.Classification, decoded.Classification)
}
