package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(global().intents.WithLabelValues("booking"))
	IntentRouted("booking")
	IntentRouted("booking")
	assert.Equal(t, before+2, testutil.ToFloat64(global().intents.WithLabelValues("booking")))

	HandlerError("issue", "invalid_input")
	assert.Equal(t, 1.0, testutil.ToFloat64(global().handlerErrors.WithLabelValues("issue", "invalid_input")))
}

func TestTimeExternalCall(t *testing.T) {
	done := TimeExternalCall("directions")
	done()
	assert.Equal(t, 1, testutil.CollectAndCount(global().externalCalls))
}
