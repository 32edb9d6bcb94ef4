package whatsapp

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageDeduper_Remember(t *testing.T) {
	d := newMessageDeduper(8)

	assert.False(t, d.Remember("wamid.1"))
	assert.True(t, d.Remember("wamid.1"))
	assert.False(t, d.Remember("wamid.2"))
}

func TestMessageDeduper_EmptyIDNeverDuplicates(t *testing.T) {
	d := newMessageDeduper(8)

	assert.False(t, d.Remember(""))
	assert.False(t, d.Remember(""))
}

func TestMessageDeduper_EvictsOldest(t *testing.T) {
	d := newMessageDeduper(2)

	d.Remember("wamid.1")
	d.Remember("wamid.2")
	d.Remember("wamid.3") // evicts wamid.1

	assert.False(t, d.Remember("wamid.1"))
	assert.True(t, d.Remember("wamid.3"))
}

func TestMessageDeduper_StaysBounded(t *testing.T) {
	d := newMessageDeduper(16)
	for i := 0; i < 100; i++ {
		d.Remember(fmt.Sprintf("wamid.%d", i))
	}

	assert.Len(t, d.seen, 16)
	assert.Len(t, d.order, 16)
}

func TestMessageDeduper_ForgetAllowsReprocessing(t *testing.T) {
	d := newMessageDeduper(8)

	d.Remember("wamid.1")
	d.Remember("wamid.2")
	d.Forget("wamid.1")

	assert.False(t, d.Remember("wamid.1"))
	assert.True(t, d.Remember("wamid.2"))

	d.Forget("wamid.unknown")
	d.Forget("")
	assert.Len(t, d.seen, 2)
	assert.Len(t, d.order, 2)
}
