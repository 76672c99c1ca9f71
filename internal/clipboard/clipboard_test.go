package clipboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranscript(t *testing.T) {
	assert.Equal(t, "ALICE: hi\nBOB: bye", Transcript("12\nALICE: hi\nBOB: bye\n"))
	assert.Equal(t, "12", Transcript("12"))
	assert.Equal(t, "", Transcript("12\n"))
}
